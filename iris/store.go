package iris

/*------------------------------------------------------------------
 *
 * Purpose:	Store owns the two growable buffers - loaded cues and the
 *		packed schedule code-unit stream - plus the schedule index
 *		map, and persists them byte-for-byte to and from a
 *		byte-addressable destination.
 *
 * Description:	Mutated only from the main execution context; the interrupt
 *		side never touches it directly, only the DisplayedFrame the
 *		main loop composes from it. The persisted layout is a small
 *		header (counts of cues and schedule elements) followed by
 *		the raw cue records and then the raw schedule code units,
 *		all little-endian. Field-by-field explicit serialization is
 *		used throughout rather than a raw memory cast, per the
 *		portability note in the original design.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// cueEncodedSize is the byte length of one persisted Cue record:
// Channels(2) Reverse(1) WrapHue(1) TimeDivisor(1) Delay(2) Duration(4)
// RampType(1) RampParameter(4) StartColor(3) EndColor(3) OffsetColor(3).
const cueEncodedSize = 25

// headerEncodedSize is the byte length of the persisted header: two uint16
// counts (number of cues, number of schedule code units).
const headerEncodedSize = 4

// ErrNVRAMOverflow is returned by StoreAll when the store's current contents
// would not fit in the caller's maximumSize. StoreAll writes nothing in
// this case; it is a no-op, not a partial write.
var ErrNVRAMOverflow = errors.New("iris: store contents exceed maximum size")

// Store holds the in-memory cue and schedule buffers plus the schedule
// index map, and logs the diagnostics the spec's error-handling design
// calls for (NVRAM overflow, and - via ScheduleCodec's callers - malformed
// streams).
type Store struct {
	Cues     []Cue
	Schedule []CodeUnit
	// ScheduleIndex[i] is the position in Schedule at which schedule i
	// begins. Rebuilt incrementally every time a schedule delimiter is
	// pushed.
	ScheduleIndex []int

	Logger *log.Logger
}

// NewStore returns an empty Store. A nil logger is fine; diagnostics are
// simply dropped.
func NewStore(logger *log.Logger) *Store {
	return &Store{Logger: logger}
}

// Clear empties both buffers and the index map.
func (s *Store) Clear() {
	s.Cues = s.Cues[:0]
	s.Schedule = s.Schedule[:0]
	s.ScheduleIndex = s.ScheduleIndex[:0]
}

// PushCue appends cue to the cue buffer, returning its new cue-id.
func (s *Store) PushCue(cue Cue) uint8 {
	s.Cues = append(s.Cues, cue)
	return uint8(len(s.Cues) - 1)
}

// PushScheduleElement appends one code unit to the schedule buffer,
// extending the index map whenever the element is a schedule delimiter.
func (s *Store) PushScheduleElement(u CodeUnit) {
	if u.IsScheduleDelimiter() {
		s.ScheduleIndex = append(s.ScheduleIndex, len(s.Schedule))
	}
	s.Schedule = append(s.Schedule, u)
}

func (s *Store) warn(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, kv...)
	}
}

// sizeInBytes returns the total persisted size of the store's current
// contents, header included.
func (s *Store) sizeInBytes() int {
	return headerEncodedSize + len(s.Cues)*cueEncodedSize + len(s.Schedule)*2
}

// StoreAll writes the header, then cue records, then schedule code units to
// dst. If the total size would exceed maximumSize, nothing is written and
// ErrNVRAMOverflow is returned (logged as a warning); any other returned
// error comes from dst itself and may have left a partial write behind.
func (s *Store) StoreAll(dst io.Writer, maximumSize int) error {
	var total = s.sizeInBytes()
	if total > maximumSize {
		s.warn("nvram store refused: contents too large", "size", total, "max", maximumSize)
		return ErrNVRAMOverflow
	}

	var header [headerEncodedSize]byte
	binary.LittleEndian.PutUint16(header[0:2], uint16(len(s.Cues)))
	binary.LittleEndian.PutUint16(header[2:4], uint16(len(s.Schedule)))
	if _, err := dst.Write(header[:]); err != nil {
		return err
	}

	for _, cue := range s.Cues {
		var b = encodeCue(cue)
		if _, err := dst.Write(b[:]); err != nil {
			return err
		}
	}

	for _, u := range s.Schedule {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(u))
		if _, err := dst.Write(b[:]); err != nil {
			return err
		}
	}

	return nil
}

// LoadAll clears both buffers, then reads the header and that many cues and
// schedule code units from src. A short or truncated input is not an error:
// the load short-circuits cleanly, leaving whatever was fully read before
// the input ran out (and the store already empty if the header itself was
// incomplete).
func (s *Store) LoadAll(src io.Reader) error {
	s.Clear()

	var header [headerEncodedSize]byte
	if _, err := io.ReadFull(src, header[:]); err != nil {
		return nil
	}
	var numCues = int(binary.LittleEndian.Uint16(header[0:2]))
	var numElements = int(binary.LittleEndian.Uint16(header[2:4]))

	for i := 0; i < numCues; i++ {
		var b [cueEncodedSize]byte
		if _, err := io.ReadFull(src, b[:]); err != nil {
			return nil
		}
		s.Cues = append(s.Cues, decodeCue(b))
	}

	for i := 0; i < numElements; i++ {
		var b [2]byte
		if _, err := io.ReadFull(src, b[:]); err != nil {
			return nil
		}
		s.PushScheduleElement(CodeUnit(binary.LittleEndian.Uint16(b[:])))
	}

	return nil
}

func encodeCue(c Cue) [cueEncodedSize]byte {
	var b [cueEncodedSize]byte
	binary.LittleEndian.PutUint16(b[0:2], c.Channels)
	b[2] = boolToByte(c.Reverse)
	b[3] = boolToByte(c.WrapHue)
	b[4] = c.TimeDivisor
	binary.LittleEndian.PutUint16(b[5:7], c.Delay)
	binary.LittleEndian.PutUint32(b[7:11], c.Duration)
	b[11] = uint8(c.RampType)
	binary.LittleEndian.PutUint32(b[12:16], c.RampParameter)
	b[16], b[17], b[18] = c.StartColor.R, c.StartColor.G, c.StartColor.B
	b[19], b[20], b[21] = c.EndColor.R, c.EndColor.G, c.EndColor.B
	b[22], b[23], b[24] = c.OffsetColor.R, c.OffsetColor.G, c.OffsetColor.B
	return b
}

func decodeCue(b [cueEncodedSize]byte) Cue {
	return Cue{
		Channels:      binary.LittleEndian.Uint16(b[0:2]),
		Reverse:       b[2] != 0,
		WrapHue:       b[3] != 0,
		TimeDivisor:   b[4],
		Delay:         binary.LittleEndian.Uint16(b[5:7]),
		Duration:      binary.LittleEndian.Uint32(b[7:11]),
		RampType:      RampType(b[11]),
		RampParameter: binary.LittleEndian.Uint32(b[12:16]),
		StartColor:    Color{R: b[16], G: b[17], B: b[18]},
		EndColor:      Color{R: b[19], G: b[20], B: b[21]},
		OffsetColor:   Color{R: b[22], G: b[23], B: b[24]},
	}
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
