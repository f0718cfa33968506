package log

import (
	"io"
	"time"
)

// HandlerOption configures the default Handler.
type HandlerOption func(*textHandler)

// WithWriters sets the stdout and stderr writers, a nil writer keeps the current one.
func WithWriters(stdout, stderr io.Writer) HandlerOption {
	return func(h *textHandler) {
		if stdout != nil {
			h.stdout = stdout
		}
		if stderr != nil {
			h.stderr = stderr
		}
	}
}

// WithWriter sends every level to the same writer.
func WithWriter(w io.Writer) HandlerOption {
	return WithWriters(w, w)
}

// WithMessageFormat sets the line format, supporting {time}, {level} and {message}.
func WithMessageFormat(format string) HandlerOption {
	return func(h *textHandler) {
		h.msgfmt = format
	}
}

// WithTimeFormat sets the layout used for {time}.
func WithTimeFormat(format string) HandlerOption {
	return func(h *textHandler) {
		h.timefmt = format
	}
}

// WithClock replaces the time source, mostly useful in tests.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *textHandler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithEnabled enables or disables the handler.
func WithEnabled(enabled bool) HandlerOption {
	return func(h *textHandler) {
		h.disabled = !enabled
	}
}
