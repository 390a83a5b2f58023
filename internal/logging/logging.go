// Package logging sets up the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w. When pretty is true, output is
// human-readable console text (for interactive terminals); otherwise it is
// newline-delimited JSON, suitable for log collectors.
func New(w io.Writer, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Default returns a logger writing to stderr: human-readable console text
// when stderr is a terminal, newline-delimited JSON otherwise.
func Default() zerolog.Logger {
	return New(os.Stderr, isTerminal(os.Stderr))
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
