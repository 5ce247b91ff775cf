package iris

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_Store_PersistenceRoundTrip_Literal(t *testing.T) {
	var store = NewStore(nil)
	store.PushCue(DefaultCue())
	store.PushScheduleElement(NewScheduleDelimiter(0))

	var buf bytes.Buffer
	assert.NoError(t, store.StoreAll(&buf, 1024))

	var loaded = NewStore(nil)
	assert.NoError(t, loaded.LoadAll(&buf))

	assert.Equal(t, store.Cues, loaded.Cues)
	assert.Equal(t, store.Schedule, loaded.Schedule)
	assert.Equal(t, store.ScheduleIndex, loaded.ScheduleIndex)
}

func Test_Store_StoreAll_OverflowRefused(t *testing.T) {
	var store = NewStore(nil)
	store.PushCue(DefaultCue())

	var buf bytes.Buffer
	var err = store.StoreAll(&buf, 1)

	assert.ErrorIs(t, err, ErrNVRAMOverflow)
	assert.Zero(t, buf.Len())
}

func Test_Store_LoadAll_ClearsExistingContents(t *testing.T) {
	var store = NewStore(nil)
	store.PushCue(DefaultCue())
	store.PushScheduleElement(NewDelay(5))

	var empty bytes.Buffer
	assert.NoError(t, store.LoadAll(&empty))

	assert.Empty(t, store.Cues)
	assert.Empty(t, store.Schedule)
	assert.Empty(t, store.ScheduleIndex)
}

func Test_Store_PersistenceRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var store = NewStore(nil)

		var numCues = rapid.IntRange(0, 5).Draw(t, "numCues")
		for i := 0; i < numCues; i++ {
			var cue = Cue{
				Channels:      uint16(rapid.IntRange(0, 0x0FFF).Draw(t, "channels")),
				Reverse:       rapid.Bool().Draw(t, "reverse"),
				WrapHue:       rapid.Bool().Draw(t, "wrapHue"),
				TimeDivisor:   uint8(rapid.IntRange(1, 255).Draw(t, "timeDivisor")),
				Delay:         uint16(rapid.IntRange(0, 0xFFFF).Draw(t, "delay")),
				Duration:      uint32(rapid.IntRange(1, 1<<20).Draw(t, "duration")),
				RampType:      RampType(rapid.IntRange(0, 2).Draw(t, "rampType")),
				RampParameter: uint32(rapid.IntRange(0, 1<<20).Draw(t, "rampParameter")),
				StartColor:    Color{uint8(rapid.IntRange(0, 255).Draw(t, "sr")), uint8(rapid.IntRange(0, 255).Draw(t, "sg")), uint8(rapid.IntRange(0, 255).Draw(t, "sb"))},
				EndColor:      Color{uint8(rapid.IntRange(0, 255).Draw(t, "er")), uint8(rapid.IntRange(0, 255).Draw(t, "eg")), uint8(rapid.IntRange(0, 255).Draw(t, "eb"))},
				OffsetColor:   Color{uint8(rapid.IntRange(0, 255).Draw(t, "or")), uint8(rapid.IntRange(0, 255).Draw(t, "og")), uint8(rapid.IntRange(0, 255).Draw(t, "ob"))},
			}
			store.PushCue(cue)
		}

		var numElements = rapid.IntRange(0, 10).Draw(t, "numElements")
		for i := 0; i < numElements; i++ {
			if rapid.Bool().Draw(t, "isScheduleDelimiter") {
				store.PushScheduleElement(NewScheduleDelimiter(uint8(rapid.IntRange(0, int(MaximumCueID)).Draw(t, "cueID"))))
			} else {
				store.PushScheduleElement(NewDelay(uint16(rapid.IntRange(0, int(MaximumDelay)).Draw(t, "delay"))))
			}
		}

		var buf bytes.Buffer
		if err := store.StoreAll(&buf, 1<<20); err != nil {
			t.Fatalf("StoreAll: %v", err)
		}

		var loaded = NewStore(nil)
		if err := loaded.LoadAll(&buf); err != nil {
			t.Fatalf("LoadAll: %v", err)
		}

		assert.Equal(t, store.Cues, loaded.Cues)
		assert.Equal(t, store.Schedule, loaded.Schedule)
		assert.Equal(t, store.ScheduleIndex, loaded.ScheduleIndex)
	})
}
