package iris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTimer is a test double for Timer: Count returns whatever the test
// queues up next, ArmCompare/Wait just record what they were asked for.
type fakeTimer struct {
	counts       []uint16
	countIdx     int
	armedTicks   []uint16
	waitedTicks  []uint16
}

func (f *fakeTimer) Count() uint16 {
	if f.countIdx >= len(f.counts) {
		return 0
	}
	var c = f.counts[f.countIdx]
	f.countIdx++
	return c
}

func (f *fakeTimer) Reset() {}

func (f *fakeTimer) ArmCompare(ticks uint16) {
	f.armedTicks = append(f.armedTicks, ticks)
}

func (f *fakeTimer) Wait(ticks uint16) {
	f.waitedTicks = append(f.waitedTicks, ticks)
}

// fakeGPIO is a test double for GPIOPort, recording every mask it is asked
// to drive.
type fakeGPIO struct {
	ddrs   []uint8
	levels []uint8
}

func (g *fakeGPIO) SetDDR(mask uint8)   { g.ddrs = append(g.ddrs, mask) }
func (g *fakeGPIO) SetLevel(mask uint8) { g.levels = append(g.levels, mask) }

// withBrightnessMap temporarily overrides BCMBrightnessMap[i] for the
// duration of the calling test, restoring the original value on cleanup. The
// map is a package-level global shared with every other test, so it must
// never be left mutated once a test finishes.
func withBrightnessMap(t *testing.T, i int, value uint16) {
	var original = BCMBrightnessMap[i]
	BCMBrightnessMap[i] = value
	t.Cleanup(func() { BCMBrightnessMap[i] = original })
}

func Test_BcmDriver_DelayCorrection_Increments(t *testing.T) {
	var frame DisplayedFrame
	var timer = &fakeTimer{}
	var gpio = &fakeGPIO{}
	var driver = NewBcmDriver(timer, gpio, &frame)

	driver.DelayCorrection[3] = 0
	driver.Counts[4] = 66
	withBrightnessMap(t, 3, 64) // matches the literal scenario's target

	driver.updateDelayCorrection()

	assert.Equal(t, uint16(1), driver.DelayCorrection[3])
}

func Test_BcmDriver_DelayCorrection_UnderflowsByDesign(t *testing.T) {
	var frame DisplayedFrame
	var timer = &fakeTimer{}
	var gpio = &fakeGPIO{}
	var driver = NewBcmDriver(timer, gpio, &frame)

	driver.DelayCorrection[3] = 0
	driver.Counts[4] = 62
	withBrightnessMap(t, 3, 64)

	driver.updateDelayCorrection()

	assert.Equal(t, uint16(0xFFFF), driver.DelayCorrection[3])
}

func Test_BcmDriver_DelayCorrection_NeverReachesTarget(t *testing.T) {
	var frame DisplayedFrame
	var timer = &fakeTimer{}
	var gpio = &fakeGPIO{}
	var driver = NewBcmDriver(timer, gpio, &frame)

	withBrightnessMap(t, 0, 8)
	driver.DelayCorrection[0] = 7 // one below target; should not advance further
	driver.Counts[1] = 999       // measured far above target

	driver.updateDelayCorrection()

	assert.Less(t, driver.DelayCorrection[0], BCMBrightnessMap[0])
}

func Test_BcmDriver_Step_AdvancesBitAndLine(t *testing.T) {
	var frame DisplayedFrame
	var timer = &fakeTimer{counts: make([]uint16, 16)}
	var gpio = &fakeGPIO{}
	var driver = NewBcmDriver(timer, gpio, &frame)

	assert.Equal(t, BCMResolution-1, driver.BitIndex)

	// Wrapping to bit 0 also advances the line and renders the
	// loop-unrolled bits inline, so BitIndex ends on the first armed bit.
	driver.Step()
	assert.Equal(t, BCMLoopUnrollAmount, driver.BitIndex)
	assert.Equal(t, 1, driver.LineIndex)
	assert.Equal(t, uint32(1), driver.InterruptCounter)
}

func Test_BcmDriver_Step_FirstStepRendersUnrolledBits(t *testing.T) {
	var frame DisplayedFrame
	var timer = &fakeTimer{counts: make([]uint16, 64)}
	var gpio = &fakeGPIO{}
	var driver = NewBcmDriver(timer, gpio, &frame)

	// First Step() wraps BitIndex to 0, which triggers the loop-unrolled
	// bits 0..BCMLoopUnrollAmount-1 plus the ordinary armed bit.
	driver.Step()
	assert.Equal(t, BCMLoopUnrollAmount, driver.BitIndex)
	assert.Equal(t, uint32(1), driver.FrameCounter)
}
