package iris

/*------------------------------------------------------------------
 *
 * Purpose:	Shared diagnostic logger setup. Where the Dire Wolf TNC code
 *		whose conventions this module follows classifies console
 *		output into a handful of colour-coded severities (info, error,
 *		received, decoded, transmitted, debug) via text_color_set,
 *		this is a structured equivalent:
 *		one leveled logger threaded through Store, SerialProto, and
 *		BcmDriver's own wiring in cmd/irisd.
 *
 *---------------------------------------------------------------*/

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w at the given level, with the
// compact prefix/time format cmd/irisd uses for console output.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	var logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "irisd",
	})
	logger.SetLevel(level)
	return logger
}

// ParseLevel maps a config/flag string onto a charmbracelet/log level,
// defaulting to Info for anything unrecognised.
func ParseLevel(s string) log.Level {
	var level, err = log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
