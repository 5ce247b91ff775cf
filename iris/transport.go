package iris

/*------------------------------------------------------------------
 *
 * Purpose:	Concrete Transport implementations: a pseudo-terminal pair
 *		for local testing and a real serial device for cmd/irisd.
 *
 *---------------------------------------------------------------*/

import (
	"os"

	"github.com/creack/pty"
	"github.com/pkg/term"
)

// PTYTransport wraps one side of a creack/pty pair as a Transport. Tests
// open a pair with pty.Open and drive SerialProto over the master end while
// a decoder reads the slave end (or vice versa), exactly as the underlying
// TNC firmware's own KISS-over-pty tests do.
type PTYTransport struct {
	f *os.File
}

// NewPTYTransport wraps an already-open pty end (master or slave) as a
// Transport.
func NewPTYTransport(f *os.File) *PTYTransport {
	return &PTYTransport{f: f}
}

func (t *PTYTransport) Read(p []byte) (int, error)  { return t.f.Read(p) }
func (t *PTYTransport) Write(p []byte) (int, error) { return t.f.Write(p) }

// Close closes the underlying pty end.
func (t *PTYTransport) Close() error { return t.f.Close() }

// OpenPTYPair opens a fresh pty pair and returns both ends already wrapped
// as Transports, for use in tests exercising SerialProto end-to-end without
// a real device.
func OpenPTYPair() (master, slave *PTYTransport, closeFunc func() error, err error) {
	ptmx, pts, err := pty.Open()
	if err != nil {
		return nil, nil, nil, err
	}
	return NewPTYTransport(ptmx), NewPTYTransport(pts), func() error {
		var errMaster = ptmx.Close()
		var errSlave = pts.Close()
		if errMaster != nil {
			return errMaster
		}
		return errSlave
	}, nil
}

// SerialTransport wraps a real serial device, opened via pkg/term, as a
// Transport.
type SerialTransport struct {
	t *term.Term
}

// OpenSerialTransport opens device in raw mode and sets its speed to baud -
// the 8N1, no-flow-control configuration the original board's USB-serial
// bridge used.
func OpenSerialTransport(device string, baud int) (*SerialTransport, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, err
	}
	if err := t.SetSpeed(baud); err != nil {
		t.Close()
		return nil, err
	}
	return &SerialTransport{t: t}, nil
}

func (t *SerialTransport) Read(p []byte) (int, error)  { return t.t.Read(p) }
func (t *SerialTransport) Write(p []byte) (int, error) { return t.t.Write(p) }

// Close closes the underlying device.
func (t *SerialTransport) Close() error { return t.t.Close() }
