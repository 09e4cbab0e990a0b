package log

import (
	"encoding/hex"
	"time"
)

// Logger provides structured logging capabilities.
// Implementations can wrap zerolog, zap, logrus, or any other logging library.
type Logger interface {
	// Debug logs a debug-level message with fields.
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with fields.
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with fields.
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with fields.
	Error(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field with key "error".
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any creates a field with any value.
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Seq creates a "seq" field for a message sequence number.
func Seq(seq uint16) Field {
	return Field{Key: "seq", Value: int(seq)}
}

// Kind creates a "kind" field from anything with a String method, such as
// a data kind.
func Kind(kind interface{ String() string }) Field {
	return Field{Key: "kind", Value: kind.String()}
}

// Hex creates a field holding the hex encoding of b.
func Hex(key string, b []byte) Field {
	return Field{Key: key, Value: hex.EncodeToString(b)}
}

// With returns a Logger that adds fields to every entry written through it.
func With(l Logger, fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	if z, ok := l.(*ZerologAdapter); ok {
		return z.With(fields...)
	}
	return &fieldLogger{base: l, fields: fields}
}

type fieldLogger struct {
	base   Logger
	fields []Field
}

func (f *fieldLogger) merge(extra []Field) []Field {
	out := make([]Field, 0, len(f.fields)+len(extra))
	return append(append(out, f.fields...), extra...)
}

func (f *fieldLogger) Debug(msg string, fields ...Field) { f.base.Debug(msg, f.merge(fields)...) }
func (f *fieldLogger) Info(msg string, fields ...Field)  { f.base.Info(msg, f.merge(fields)...) }
func (f *fieldLogger) Warn(msg string, fields ...Field)  { f.base.Warn(msg, f.merge(fields)...) }
func (f *fieldLogger) Error(msg string, fields ...Field) { f.base.Error(msg, f.merge(fields)...) }
