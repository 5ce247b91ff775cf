package main

/*------------------------------------------------------------------
 *
 * Purpose:	Host-side stand-ins for the microcontroller's 16-bit timer
 *		and 8-pin GPIO port. Driving actual hardware registers is
 *		below the BcmDriver contract and out of scope here; these
 *		satisfy iris.Timer and iris.GPIOPort well enough to let the
 *		BCM algorithm run end-to-end on a development machine.
 *
 *---------------------------------------------------------------*/

import (
	"time"

	"github.com/charmbracelet/log"
)

// softwareTimer is a monotonic-clock-backed stand-in for the free-running
// 16-bit hardware timer BcmDriver expects: Count/Reset sample elapsed
// wall-clock ticks since the last reset, and Wait sleeps for the requested
// number of simulated ticks.
type softwareTimer struct {
	last      time.Time
	tickNanos time.Duration
}

func newSoftwareTimer() *softwareTimer {
	return &softwareTimer{last: time.Now(), tickNanos: time.Microsecond}
}

func (t *softwareTimer) Count() uint16 {
	var elapsed = time.Since(t.last)
	var ticks = elapsed / t.tickNanos
	if ticks > 0xFFFF {
		return 0xFFFF
	}
	return uint16(ticks)
}

func (t *softwareTimer) Reset() {
	t.last = time.Now()
}

func (t *softwareTimer) ArmCompare(ticks uint16) {
	// The real timer schedules the next output-compare interrupt here;
	// the software equivalent is the goroutine in main that calls Step
	// back to back, so there is nothing to program.
}

func (t *softwareTimer) Wait(ticks uint16) {
	time.Sleep(time.Duration(ticks) * t.tickNanos)
}

// loggedGPIOPort stands in for the single charlieplexed 8-pin port; it just
// remembers the last masks it was told to drive, for inspection by anything
// that wants to render the ring state (a future TUI/host visualizer), and
// logs at debug level so the scan-out can be observed without hardware.
type loggedGPIOPort struct {
	logger *log.Logger
	ddr    uint8
	level  uint8
}

func newLoggedGPIOPort(logger *log.Logger) *loggedGPIOPort {
	return &loggedGPIOPort{logger: logger}
}

func (p *loggedGPIOPort) SetDDR(mask uint8) {
	p.ddr = mask
	p.logger.Debug("gpio ddr", "mask", mask)
}

func (p *loggedGPIOPort) SetLevel(mask uint8) {
	p.level = mask
	p.logger.Debug("gpio level", "mask", mask)
}
