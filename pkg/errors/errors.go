// Package errors defines the typed errors returned where settings, session
// input and usage snapshots enter the program.
package errors

import (
	"bytes"
	"fmt"
)

// ParseError reports a document that could not be decoded. Source is a file
// path or "stdin"; Line is 1-based and zero when unknown.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

// NewParseError constructs a ParseError.
func NewParseError(source string, line int, err error) error {
	return &ParseError{Source: source, Line: line, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LineAt converts a byte offset into data to a 1-based line number. Offsets
// past the end report the last line.
func LineAt(data []byte, offset int64) int {
	if offset <= 0 {
		return 1
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}

// ValidationError is a settings problem at a field path such as
// rows[0][2].color.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OptionError reports widget options that could not be decoded into the widget's
// option table. Row and Column locate the widget inside settings.rows.
type OptionError struct {
	Widget string
	Row    int
	Column int
	Err    error
}

// NewOptionError constructs an OptionError for the widget at rows[row][column].
func NewOptionError(widget string, row, column int, err error) error {
	return &OptionError{Widget: widget, Row: row, Column: column, Err: err}
}

func (e *OptionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("option error [%s] at rows[%d][%d]: %v", e.Widget, e.Row, e.Column, e.Err)
}

func (e *OptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
