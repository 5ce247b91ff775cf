package iris

/*------------------------------------------------------------------
 *
 * Purpose:	RGB colour value shared by cues, the LED matrix, and the
 *		persisted cue record.
 *
 *---------------------------------------------------------------*/

// Color is a simple 8-bit-per-channel RGB triple.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Black is the zero value of Color, spelled out for readability at call sites
// that draw disabled channels.
var Black = Color{}

// White is returned by the not-yet-implemented LinearHSL ramp.
var White = Color{R: 255, G: 255, B: 255}
