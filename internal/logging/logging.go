// Package logging wraps charmbracelet/log for the localmcp servers.
//
// Both servers speak MCP over stdout, so log output must never touch it:
// the logger writes to stderr by default, or to a file when one is
// configured.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the application logger shared by server components.
type Logger struct {
	logger *log.Logger
	closer io.Closer
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the process-wide logger, creating a stderr logger at
// info level on first use.
func Default() *Logger {
	once.Do(func() {
		defaultLogger, _ = New(Options{})
	})
	return defaultLogger
}

// Options configures logger construction.
type Options struct {
	// Level is a textual level: debug, info, warn, error. Empty means info.
	Level string
	// File redirects output to the named file instead of stderr.
	File string
	// Prefix labels every line; useful when both servers log to one file.
	Prefix string
}

// New builds a Logger from options. The returned logger writes to stderr
// unless a file is configured.
func New(opts Options) (*Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
	})
	logger.SetLevel(level)

	return &Logger{logger: logger, closer: closer}, nil
}

// Close releases the log file if one was opened.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.logger.Debug(msg, keyvals...)
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.logger.Info(msg, keyvals...)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.logger.Warn(msg, keyvals...)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.logger.Error(msg, keyvals...)
}

// With returns a logger that attaches the given key/value pairs to every
// entry it emits.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{logger: l.logger.With(keyvals...), closer: nil}
}
