package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// NewHandler creates the default text Handler.
// Warnings and more severe levels are written to stderr, everything else to stdout,
// using the message format "{time} [{level}] {message}" and RFC3339 timestamps.
func NewHandler(opts ...HandlerOption) Handler {
	h := &textHandler{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		msgfmt:  "{time} [{level}] {message}",
		timefmt: time.RFC3339,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

type textHandler struct {
	stdout   io.Writer
	stderr   io.Writer
	mu       sync.Mutex
	disabled bool
	msgfmt   string
	timefmt  string
	now      func() time.Time
}

func (h *textHandler) Handle(level Level, message string, fields []Field) {
	if h.disabled {
		return
	}

	line := strings.NewReplacer(
		"{time}", h.now().Format(h.timefmt),
		"{level}", level.String(),
		"{message}", message,
	).Replace(h.msgfmt)

	var b strings.Builder
	b.WriteString(line)
	for _, field := range fields {
		b.WriteByte(' ')
		b.WriteString(field.Key)
		b.WriteByte('=')
		if strings.ContainsAny(field.Value, " \t\"") {
			b.WriteString(`"` + strings.ReplaceAll(field.Value, `"`, `\"`) + `"`)
		} else {
			b.WriteString(field.Value)
		}
	}
	b.WriteByte('\n')

	w := h.stdout
	if level <= LevelWarning {
		w = h.stderr
	}

	h.mu.Lock()
	_, _ = io.WriteString(w, b.String())
	h.mu.Unlock()
}
