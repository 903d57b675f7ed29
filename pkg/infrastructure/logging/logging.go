package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger used by the CLI
var Log = logrus.New()

// Logger abstracts logging so services can take logrus, an entry with fields,
// or nothing at all.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Nop silently discards all messages.
type Nop struct{}

func (Nop) Infof(string, ...interface{})  {}
func (Nop) Warnf(string, ...interface{})  {}
func (Nop) Errorf(string, ...interface{}) {}
func (Nop) Debugf(string, ...interface{}) {}

// OrNop returns log, or Nop when log is nil
func OrNop(log Logger) Logger {
	if log == nil {
		return Nop{}
	}
	return log
}

// SetLogLevel sets the level of Log. Trace and panic levels are not exposed.
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("bad log level: %s (expected debug, info, warn, error or fatal)", level)
	}
	return nil
}

// fieldLogger is implemented by *logrus.Logger and *logrus.Entry
type fieldLogger interface {
	WithField(key string, value interface{}) *logrus.Entry
}

// WithRun tags every message of log with the run id. Loggers that cannot
// carry fields are returned unchanged.
func WithRun(log Logger, runID string) Logger {
	if fl, ok := log.(fieldLogger); ok {
		return fl.WithField("run_id", runID)
	}
	return OrNop(log)
}
