// ABOUTME: Logrus-backed logger implementation
// ABOUTME: Provides structured logging with configurable level and text or JSON output

package logrus

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements the Logger interface on top of logrus
type LogrusLogger struct {
	logger *logrus.Logger
}

// Options configures a LogrusLogger
type Options struct {
	// Level is one of debug, info, warn or error
	Level string

	// Format is text or json
	Format string

	// Output defaults to stderr
	Output io.Writer
}

// NewLogrusLogger creates a logger from options
func NewLogrusLogger(opts Options) (*LogrusLogger, error) {
	logger := logrus.New()

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	logger.SetLevel(parsed)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return &LogrusLogger{logger: logger}, nil
}

// New wraps an existing logrus logger
func New(logger *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{logger: logger}
}

// NewQuietLogger returns a logger that discards everything
func NewQuietLogger() *LogrusLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return &LogrusLogger{logger: logger}
}

// Debug logs a debug message
func (l *LogrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *LogrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *LogrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *LogrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Error(msg)
}
