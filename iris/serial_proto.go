package iris

/*------------------------------------------------------------------
 *
 * Purpose:	SerialProto frames host-exchange traffic over a byte stream:
 *		diagnostic text distinguished by a leading EOT (0x04) byte,
 *		binary messages handed to and from an externally-supplied
 *		tagged-union codec. It answers RequestInfo, streams the
 *		loaded configuration on DownloadConfiguration, echoes
 *		Confirm, and reports anything else as an error.
 *
 * Description:	The wire encoding of messages themselves - beyond this
 *		framing - is explicitly out of this package's scope (see
 *		MessageCodec); SerialProto only ever deals in the decoded
 *		Message/Signal values the codec hands back.
 *
 *---------------------------------------------------------------*/

import (
	"time"

	"github.com/charmbracelet/log"
)

// EOT is the single byte prefixing all diagnostic text, distinguishing it
// from a binary message on the same stream.
const EOT = 0x04

// MaxMessageBufferSize bounds the codec's internal read buffer, mirroring
// the original firmware's fixed-size decode buffer.
const MaxMessageBufferSize = 300

// RequestNextTimeout is how long DownloadConfiguration waits for a
// RequestNext signal after streaming each cue or schedule before aborting.
const RequestNextTimeout = 2000 * time.Millisecond

// Signal is the small fixed vocabulary of control messages exchanged
// between host and device.
type Signal uint8

const (
	SignalRequestInfo Signal = iota
	SignalDownloadConfiguration
	SignalConfirm
	SignalRequestNext
	SignalError
)

// MessageKind discriminates the tagged-union Message.
type MessageKind uint8

const (
	MessageKindSignal MessageKind = iota
	MessageKindCue
	MessageKindSchedule
)

// Message is the decoded form of one inbound or outbound binary message.
// Only the field matching Kind is meaningful.
type Message struct {
	Kind     MessageKind
	Signal   Signal
	Cue      Cue
	Schedule Schedule
}

// Transport is the byte stream SerialProto runs over.
type Transport interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// MessageCodec is the externally-supplied tagged-union wire encoder/decoder
// for Cue, Schedule, and Signal payloads. Its concrete wire format (field
// numbering, varint packing, whatever the host tool and device agree on) is
// explicitly out of scope here: SerialProto only needs to decode inbound
// bytes into a Message and encode outbound values into bytes.
type MessageCodec interface {
	// DecodeMessage reads one complete binary message from r and returns
	// its decoded form. It must not read past the end of that message.
	DecodeMessage(r Transport) (Message, error)
	EncodeSignal(s Signal) []byte
	EncodeCue(c Cue) []byte
	EncodeSchedule(s Schedule) []byte
}

// SerialProto drives the request/response loop described above over one
// Transport/MessageCodec pair.
type SerialProto struct {
	Transport Transport
	Codec     MessageCodec
	Store     *Store
	Logger    *log.Logger
}

func (p *SerialProto) logf(level log.Level, msg string, kv ...any) {
	if p.Logger == nil {
		return
	}
	p.Logger.Log(level, msg, kv...)
}

// WriteDiagnostic sends human-readable diagnostic text, prefixed with the
// single EOT byte that distinguishes it from a binary message.
func (p *SerialProto) WriteDiagnostic(text string) error {
	var b = make([]byte, 0, len(text)+1)
	b = append(b, EOT)
	b = append(b, text...)
	_, err := p.Transport.Write(b)
	return err
}

func (p *SerialProto) writeSignal(s Signal) error {
	_, err := p.Transport.Write(p.Codec.EncodeSignal(s))
	return err
}

// HandleOnce reads and dispatches exactly one inbound message.
func (p *SerialProto) HandleOnce() error {
	var msg, err = p.Codec.DecodeMessage(p.Transport)
	if err != nil {
		return err
	}

	if msg.Kind != MessageKindSignal {
		p.logf(log.WarnLevel, "unexpected non-signal request")
		return p.writeSignal(SignalError)
	}

	switch msg.Signal {
	case SignalRequestInfo:
		return p.WriteDiagnostic("Communication works!")
	case SignalDownloadConfiguration:
		return p.handleDownloadConfiguration()
	case SignalConfirm:
		return p.writeSignal(SignalConfirm)
	default:
		p.logf(log.WarnLevel, "unknown signal", "signal", msg.Signal)
		return p.writeSignal(SignalError)
	}
}

// handleDownloadConfiguration streams every loaded cue, then every loaded
// schedule, waiting for a RequestNext after each; it emits Confirm once both
// are exhausted, or aborts silently (after logging) if a RequestNext never
// arrives.
func (p *SerialProto) handleDownloadConfiguration() error {
	for _, cue := range p.Store.Cues {
		if _, err := p.Transport.Write(p.Codec.EncodeCue(cue)); err != nil {
			return err
		}
		if !p.waitForRequestNext() {
			p.logf(log.InfoLevel, "download configuration aborted: no RequestNext for cue")
			return nil
		}
	}

	var codec ScheduleCodec
	for _, schedule := range codec.Expand(p.Store.Schedule, p.Store.ScheduleIndex) {
		if _, err := p.Transport.Write(p.Codec.EncodeSchedule(schedule)); err != nil {
			return err
		}
		if !p.waitForRequestNext() {
			p.logf(log.InfoLevel, "download configuration aborted: no RequestNext for schedule")
			return nil
		}
	}

	return p.writeSignal(SignalConfirm)
}

// requestNextResult carries the outcome of one background DecodeMessage
// call back to waitForRequestNext.
type requestNextResult struct {
	msg Message
	err error
}

// waitForRequestNext waits up to RequestNextTimeout for an inbound
// RequestNext signal, polling the transport on its own goroutine so a slow
// or absent reply never blocks the caller past the timeout. The decode
// itself is a blocking Transport.Read under the hood and cannot be
// interrupted early; the goroutine simply delivers its result into a
// buffered channel nobody reads if the timeout already fired, and exits
// once the transport produces a byte or is closed.
func (p *SerialProto) waitForRequestNext() bool {
	var ch = make(chan requestNextResult, 1)
	go func() {
		var msg, err = p.Codec.DecodeMessage(p.Transport)
		ch <- requestNextResult{msg, err}
	}()

	select {
	case r := <-ch:
		return r.err == nil && r.msg.Kind == MessageKindSignal && r.msg.Signal == SignalRequestNext
	case <-time.After(RequestNextTimeout):
		return false
	}
}
