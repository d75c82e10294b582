// Package log is a thin leveled logging facade over logrus shared by every
// uploader component. It exposes a package-level default logger plus
// structured fields via F/With.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger with the field helpers the uploader uses.
type Logger struct {
	l *logrus.Logger
}

// Option configures a Logger at construction.
type Option func(*Logger)

// WithOutput directs log output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(lg *Logger) {
		lg.l.SetOutput(w)
	}
}

// WithJSON switches the logger to JSON output with timestamp/level/message
// keys and caller information.
func WithJSON() Option {
	return func(lg *Logger) {
		lg.l.SetReportCaller(true)
		lg.l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "caller",
			},
		})
	}
}

// NewLogger creates a logger with the default text format.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&textFormatter{})
	lg := &Logger{l: l}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// Entry carries accumulated fields toward a single log line.
type Entry struct {
	e *logrus.Entry
}

// With attaches fields to the logger, returning an Entry for chaining.
func (lg *Logger) With(fields ...Field) *Entry {
	return &Entry{e: lg.l.WithFields(toLogrus(fields))}
}

// With attaches further fields to the entry.
func (en *Entry) With(fields ...Field) *Entry {
	return &Entry{e: en.e.WithFields(toLogrus(fields))}
}

func (en *Entry) Debug(args ...interface{}) { en.e.Debug(args...) }
func (en *Entry) Info(args ...interface{})  { en.e.Info(args...) }
func (en *Entry) Warn(args ...interface{})  { en.e.Warn(args...) }
func (en *Entry) Error(args ...interface{}) { en.e.Error(args...) }

func (en *Entry) Debugf(format string, args ...interface{}) { en.e.Debugf(format, args...) }
func (en *Entry) Infof(format string, args ...interface{})  { en.e.Infof(format, args...) }
func (en *Entry) Warnf(format string, args ...interface{})  { en.e.Warnf(format, args...) }
func (en *Entry) Errorf(format string, args ...interface{}) { en.e.Errorf(format, args...) }

func (lg *Logger) Debug(args ...interface{}) { lg.l.Debug(args...) }
func (lg *Logger) Info(args ...interface{})  { lg.l.Info(args...) }
func (lg *Logger) Warn(args ...interface{})  { lg.l.Warn(args...) }
func (lg *Logger) Error(args ...interface{}) { lg.l.Error(args...) }

func (lg *Logger) Debugf(format string, args ...interface{}) { lg.l.Debugf(format, args...) }
func (lg *Logger) Infof(format string, args ...interface{})  { lg.l.Infof(format, args...) }
func (lg *Logger) Warnf(format string, args ...interface{})  { lg.l.Warnf(format, args...) }
func (lg *Logger) Errorf(format string, args ...interface{}) { lg.l.Errorf(format, args...) }

// SetDebug toggles debug-level output on the logger.
func (lg *Logger) SetDebug(debug bool) {
	if debug {
		lg.l.SetLevel(logrus.DebugLevel)
	} else {
		lg.l.SetLevel(logrus.InfoLevel)
	}
}

var std = NewLogger()

// Default returns the package-level logger.
func Default() *Logger {
	return std
}

// SetDebug toggles debug-level output on the package-level logger.
func SetDebug(debug bool) {
	std.SetDebug(debug)
}

// SetOutput redirects the package-level logger.
func SetOutput(w io.Writer) {
	std.l.SetOutput(w)
}

// LogWithFields attaches fields to the package-level logger.
func LogWithFields(fields ...Field) *Entry {
	return std.With(fields...)
}

func Debug(args ...interface{}) { std.Debug(args...) }
func Info(args ...interface{})  { std.Info(args...) }
func Warn(args ...interface{})  { std.Warn(args...) }
func Error(args ...interface{}) { std.Error(args...) }

func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { std.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { std.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }

func toLogrus(fields []Field) logrus.Fields {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return lf
}

// textFormatter renders "[timestamp] LEVEL: message key=value" lines.
type textFormatter struct{}

func (textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "[%s] %s: %s",
		entry.Time.Format("2006-01-02 15:04:05"),
		levelName(entry.Level),
		entry.Message,
	)

	// Stable field order keeps log output diffable.
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(l logrus.Level) string {
	switch l {
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.ErrorLevel:
		return "ERROR"
	default:
		return "LOG"
	}
}
