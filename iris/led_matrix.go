package iris

/*------------------------------------------------------------------
 *
 * Purpose:	Charlieplexed pin geometry and frame composition. DrawLed
 *		writes one logical RGB LED's colour into the DisplayedFrame
 *		that BcmDriver scans out; DrawCue walks all twelve channels
 *		of a cue and draws each enabled one in turn.
 *
 * Description:	COLOR_CHANNEL_PIN_MAP is fixed hardware geometry: for each of
 *		the twelve channels and each of the three colour components,
 *		it names which of the seven Charlieplex pins sinks and which
 *		sources current for that LED. It must be reproduced exactly;
 *		it is not derived from any formula.
 *
 *---------------------------------------------------------------*/

const (
	CharliePins    = 7
	NumChannels    = 12
	BCMResolution  = 8
)

type colorComponent int

const (
	componentRed colorComponent = iota
	componentGreen
	componentBlue
)

type pinPair struct {
	sink   uint8
	source uint8
}

// ColorChannelPinMap[channel][component] names the (sink, source) pin pair
// driving that channel's colour component. Reproduced bit-exact from the
// original firmware's color_channel_frame_map.
var ColorChannelPinMap = [NumChannels][3]pinPair{
	0:  {{0, 1}, {1, 0}, {5, 2}},
	1:  {{6, 1}, {2, 0}, {0, 2}},
	2:  {{2, 1}, {3, 0}, {1, 2}},
	3:  {{3, 1}, {4, 0}, {6, 2}},
	4:  {{4, 1}, {5, 0}, {3, 2}},
	5:  {{5, 1}, {6, 0}, {4, 2}},
	6:  {{3, 4}, {4, 3}, {2, 5}},
	7:  {{6, 4}, {5, 3}, {3, 5}},
	8:  {{5, 4}, {0, 3}, {4, 5}},
	9:  {{0, 4}, {1, 3}, {6, 5}},
	10: {{1, 4}, {2, 3}, {0, 5}},
	11: {{2, 4}, {6, 3}, {1, 5}},
}

// DisplayedFrame is the composed, BCM-ready frame buffer: DisplayedFrame[line][bit]
// is the byte pattern written to the 8-pin GPIO port when pin `line` is
// sinking current and bit-significance `bit` is being scanned out. Owned by
// BcmDriver, written here one byte at a time by LedMatrix.
type DisplayedFrame [CharliePins][BCMResolution]byte

// LedMatrix composes cue output into a DisplayedFrame.
type LedMatrix struct {
	Frame *DisplayedFrame
}

// DrawLed writes one logical RGB LED's colour into the frame, one bit at a
// time for each of the three colour components.
func (m LedMatrix) DrawLed(channel uint8, c Color) {
	var components = [3]uint8{c.R, c.G, c.B}

	for comp := 0; comp < 3; comp++ {
		var pins = ColorChannelPinMap[channel][comp]
		var value = components[comp]

		for bit := 0; bit < BCMResolution; bit++ {
			var bitValue = (value >> bit) & 1
			if bitValue != 0 {
				m.Frame[pins.sink][bit] |= 1 << pins.source
			} else {
				m.Frame[pins.sink][bit] &^= 1 << pins.source
			}
		}
	}
}

// DrawCue draws every channel of cue at tMs. Channels the cue's mask leaves
// disabled are left untouched unless drawDisabledChannels is set, in which
// case they are drawn black.
func (m LedMatrix) DrawCue(cue Cue, tMs uint32, drawDisabledChannels bool) {
	for channel := uint8(0); channel < NumChannels; channel++ {
		if cue.Channels&(1<<channel) != 0 {
			m.DrawLed(channel, cue.Interpolate(tMs, channel))
		} else if drawDisabledChannels {
			m.DrawLed(channel, Black)
		}
	}
}
