package log

import (
	"sync/atomic"
)

type logger struct {
	handler Handler
	fields  []Field
	// shared by every child created through With.
	level *atomic.Uint32
}

// NewLogger returns a Logger that forwards messages at or above level to handler.
// A nil handler falls back to NewHandler().
func NewLogger(level Level, handler Handler) Logger {
	if handler == nil {
		handler = NewHandler()
	}

	lvl := &atomic.Uint32{}
	lvl.Store(uint32(level))

	return &logger{
		handler: handler,
		fields:  nil,
		level:   lvl,
	}
}

func (l *logger) Log(level Level, message string, fields ...Field) {
	if Level(l.level.Load()) < level {
		return
	}

	if len(l.fields) == 0 {
		l.handler.Handle(level, message, fields)
		return
	}

	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)
	l.handler.Handle(level, message, all)
}

func (l *logger) With(fields ...Field) Logger {
	// copy so siblings created from the same parent never share a backing array.
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &logger{
		handler: l.handler,
		fields:  merged,
		level:   l.level,
	}
}

func (l *logger) SetLevel(level Level) {
	l.level.Store(uint32(level))
}

type noopLogger struct{}

// Noop returns a Logger that discards everything.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Log(_ Level, _ string, _ ...Field) {}

func (noopLogger) SetLevel(_ Level) {}

func (l noopLogger) With(_ ...Field) Logger {
	return l
}
