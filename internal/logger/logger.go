// Package logger routes diagnostics away from stdout, which carries only
// status line text. Entries go to a writer (stderr in verbose mode), an
// append-only log file, or nowhere.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel applies when Options.Level is empty.
const DefaultLevel = "warn"

// Options describes where and how much to log.
type Options struct {
	Level         string
	HumanReadable bool
	// Writer takes precedence over File.
	Writer io.Writer
	// File is opened in append mode and closed by Logger.Close.
	File string
}

// Logger is a nil-safe zerolog wrapper.
type Logger struct {
	base   zerolog.Logger
	closer io.Closer
}

// New builds a Logger. With neither Writer nor File set, entries go to stderr.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var closer io.Closer
	writer := opts.Writer
	if writer == nil && opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writer, closer = file, file
	}
	if writer == nil {
		writer = os.Stderr
	}

	if opts.HumanReadable {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	}

	base := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &Logger{base: base, closer: closer}, nil
}

func parseLevel(raw string) (zerolog.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		raw = DefaultLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", raw, err)
	}
	return level, nil
}

// Discard returns a logger that drops every entry.
func Discard() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// Close releases the log file, if New opened one.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// WithFields returns a derived logger that always writes the supplied fields.
// The derived logger does not own the parent's file.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Fields(fields).Logger()}
}

// WithField is shorthand for WithFields with a single entry.
func (l *Logger) WithField(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Interface(key, value).Logger()}
}

func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Warnings writes one warn entry per problem, numbered from 1.
func (l *Logger) Warnings(msg string, problems []error) {
	if l == nil {
		return
	}
	for i, problem := range problems {
		l.base.Warn().Err(problem).Int("problem", i+1).Int("of", len(problems)).Msg(msg)
	}
}

// Error writes an error entry; err may be nil.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
