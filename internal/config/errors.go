package config

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Errors returned by config loading.
var (
	// ErrInvalid indicates a setting with an unacceptable value.
	ErrInvalid = errors.New("invalid setting")

	// ErrUnknownKey indicates a key the schema does not define.
	ErrUnknownKey = errors.New("unknown config key")
)

// ParseError describes a TOML syntax error.
type ParseError struct {
	// Path is the file path, or "<data>" for in-memory input.
	Path string
	// Line is the 1-based line number, 0 when unknown.
	Line int
	// Column is the 1-based column number, 0 when unknown.
	Column int
	// Message describes the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Key is the dotted setting path, e.g. "view.width".
	Key string
	// Message describes the failure.
	Message string
	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Key, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
