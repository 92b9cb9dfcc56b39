// Package logger provides the structured logger shared by the wallet layer.
// It wraps logrus so packages can attach fields without importing it directly.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingConfig configures a Logger.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level string `yaml:"level" env:"WALLET_LOG_LEVEL"`
	// Format is "json" or "text". Defaults to text.
	Format string `yaml:"format" env:"WALLET_LOG_FORMAT"`
	// Output is "stdout", "stderr" or "file". Defaults to stderr.
	Output string `yaml:"output" env:"WALLET_LOG_OUTPUT"`
	// FilePrefix names the log file when Output is "file".
	FilePrefix string `yaml:"file_prefix" env:"WALLET_LOG_FILE_PREFIX"`
}

// Logger is a logrus logger bound to a component name.
type Logger struct {
	*logrus.Logger
	component string
}

// New creates a logger from cfg. Invalid settings fall back to defaults.
func New(cfg LoggingConfig) *Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	l.SetOutput(openOutput(cfg))
	return &Logger{Logger: l}
}

// NewDefault creates an info-level text logger for a named component.
func NewDefault(component string) *Logger {
	log := New(LoggingConfig{Level: "info", Format: "text"})
	log.component = component
	return log
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *Logger {
	log := New(LoggingConfig{Level: "panic"})
	log.SetOutput(io.Discard)
	return log
}

// Named returns a copy of l bound to component. The underlying logrus
// logger is shared.
func (l *Logger) Named(component string) *Logger {
	return &Logger{Logger: l.Logger, component: component}
}

// Component returns the component name.
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) entry() *logrus.Entry {
	e := logrus.NewEntry(l.Logger)
	if l.component != "" {
		e = e.WithField("component", l.component)
	}
	return e
}

// WithField returns an entry carrying key=value and the component name.
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.entry().WithField(key, value)
}

// WithFields returns an entry carrying fields and the component name.
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return l.entry().WithFields(logrus.Fields(fields))
}

// WithError returns an entry carrying err and the component name.
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.entry().WithError(err)
}

// Info logs at info level.
func (l *Logger) Info(args ...interface{}) { l.entry().Info(args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) { l.entry().Infof(format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(args ...interface{}) { l.entry().Warn(args...) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) { l.entry().Warnf(format, args...) }

// Error logs at error level.
func (l *Logger) Error(args ...interface{}) { l.entry().Error(args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry().Errorf(format, args...) }

// Debug logs at debug level.
func (l *Logger) Debug(args ...interface{}) { l.entry().Debug(args...) }

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry().Debugf(format, args...) }

func openOutput(cfg LoggingConfig) io.Writer {
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		return os.Stdout
	case "file":
		prefix := cfg.FilePrefix
		if prefix == "" {
			prefix = "wallet"
		}
		name := filepath.Clean(fmt.Sprintf("%s-%s.log", prefix, time.Now().UTC().Format("20060102")))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return os.Stderr
		}
		return f
	default:
		return os.Stderr
	}
}
