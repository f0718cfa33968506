// Package log is the structured, leveled logger used by rxopc.
// Messages carry key/value fields and are filtered by syslog style levels
// before being passed to a Handler.
package log

import (
	"fmt"
	"strconv"
	"strings"
)

// Handler receives every message that passed the logger level filter.
type Handler interface {
	Handle(level Level, message string, fields []Field)
}

// Logger is the logging interface accepted by the client and its worker.
type Logger interface {
	Log(level Level, message string, fields ...Field)
	With(fields ...Field) Logger
	SetLevel(level Level)
}

const (
	// LevelEmergency (0) the process is unusable.
	LevelEmergency Level = iota
	// LevelAlert (1) immediate attention is required.
	LevelAlert
	// LevelCritical (2) a failure severe enough to stop the client.
	LevelCritical
	// LevelError (3) an operation failed but the client keeps serving.
	// examples include: resource read failures, response timeouts.
	LevelError
	// LevelWarning (4) something unexpected that does not fail an operation.
	// examples include: late results discarded, stop grace period exceeded.
	LevelWarning
	// LevelNotice (5) significant lifecycle events.
	// examples include: worker started, worker stopped with its processed count.
	LevelNotice
	// LevelInfo (6) general information about the client's operation.
	LevelInfo
	// LevelDebug (7) per command traffic.
	LevelDebug
)

// Level is the severity of a message, lower is more severe.
type Level uint8

func (l Level) String() string {
	switch l {
	case LevelEmergency:
		return "EMERGENCY"
	case LevelAlert:
		return "ALERT"
	case LevelCritical:
		return "CRITICAL"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelNotice:
		return "NOTICE"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "INFO"
	}
}

// LevelFromString converts a case-insensitive level name to a Level.
// Unknown names map to LevelInfo.
func LevelFromString(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "EMERGENCY":
		return LevelEmergency
	case "ALERT":
		return LevelAlert
	case "CRITICAL":
		return LevelCritical
	case "ERROR":
		return LevelError
	case "WARNING", "WARN":
		return LevelWarning
	case "NOTICE":
		return LevelNotice
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Field is a key/value pair attached to a message.
type Field struct {
	Key   string
	Value string
}

// Any formats value with %v.
func Any(key string, value any) Field {
	return Field{Key: key, Value: fmt.Sprintf("%v", value)}
}

// Error uses the error message as the value, a nil error renders as "<nil>".
func Error(key string, err error) Field {
	if err == nil {
		return Field{Key: key, Value: "<nil>"}
	}
	return Field{Key: key, Value: err.Error()}
}

// Int accepts any signed or unsigned integer type.
func Int(key string, value any) Field {
	switch t := value.(type) {
	case int:
		return Field{Key: key, Value: strconv.Itoa(t)}
	case int8:
		return Field{Key: key, Value: strconv.FormatInt(int64(t), 10)}
	case int16:
		return Field{Key: key, Value: strconv.FormatInt(int64(t), 10)}
	case int32:
		return Field{Key: key, Value: strconv.FormatInt(int64(t), 10)}
	case int64:
		return Field{Key: key, Value: strconv.FormatInt(t, 10)}
	case uint:
		return Field{Key: key, Value: strconv.FormatUint(uint64(t), 10)}
	case uint8:
		return Field{Key: key, Value: strconv.FormatUint(uint64(t), 10)}
	case uint16:
		return Field{Key: key, Value: strconv.FormatUint(uint64(t), 10)}
	case uint32:
		return Field{Key: key, Value: strconv.FormatUint(uint64(t), 10)}
	case uint64:
		return Field{Key: key, Value: strconv.FormatUint(t, 10)}
	default:
		return Field{Key: key, Value: "<unknown value type for int field>"}
	}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}
