package iris

/*------------------------------------------------------------------
 *
 * Purpose:	Ring ties together everything the main execution context
 *		owns - the loaded Store, the composed DisplayedFrame, and
 *		the BcmDriver scanning it out - behind one struct instead of
 *		the package-level globals the original firmware used.
 *
 *---------------------------------------------------------------*/

import "github.com/charmbracelet/log"

// Ring is one complete device: its loaded configuration, the frame buffer
// shared (lock-free, by design) with the BCM scan-out driver, and the
// driver itself.
type Ring struct {
	Store  *Store
	Driver *BcmDriver
	Matrix LedMatrix

	Logger *log.Logger

	// ScheduleIDs are the schedule ids driven every Tick, in order. A
	// single-schedule device has exactly one entry.
	ScheduleIDs []int
}

// NewRing wires a Store and a BcmDriver (already constructed over its own
// Timer/GPIOPort) into a Ring sharing one DisplayedFrame.
func NewRing(store *Store, driver *BcmDriver, logger *log.Logger, scheduleIDs ...int) *Ring {
	return &Ring{
		Store:       store,
		Driver:      driver,
		Matrix:      LedMatrix{Frame: driver.Frame},
		Logger:      logger,
		ScheduleIDs: scheduleIDs,
	}
}

// Tick composes one frame: for every driven schedule, it renders whatever
// periods are active at tMs, drawing each referenced cue's channels. This is
// the main-context counterpart to BcmDriver.Step and is meant to be called
// from a plain loop (or a goroutine ticking on a coarser interval than the
// BCM interrupt) rather than from inside the interrupt context itself.
func (r *Ring) Tick(tMs uint32) {
	var draw DrawCueFunc = func(cueID uint8, t uint32, drawDisabledChannels bool) {
		if int(cueID) >= len(r.Store.Cues) {
			if r.Logger != nil {
				r.Logger.Warn("schedule referenced out-of-range cue", "cue_id", cueID)
			}
			return
		}
		r.Matrix.DrawCue(r.Store.Cues[cueID], t, drawDisabledChannels)
	}

	for _, id := range r.ScheduleIDs {
		RenderSchedule(r.Store.Schedule, r.Store.ScheduleIndex, id, tMs, draw)
	}
}
