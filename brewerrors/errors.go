// Package brewerrors provides structured error types for brewtools.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - FormatError: no recognized recipe format signature matched
//   - StructuralError: missing wrapper, recipe list, or recipe name
//   - UnitConversionError: an unregistered unit pairing was requested
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	result, err := importer.Import(data)
//	if err != nil {
//	    var fmtErr *brewerrors.FormatError
//	    if errors.As(err, &fmtErr) {
//	        // fmtErr.Hints names the structural clues that were found
//	    }
//	}
package brewerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrFormat indicates the input matched no recognized recipe format.
	ErrFormat = errors.New("unrecognized format")

	// ErrStructural indicates a document-level structural failure.
	ErrStructural = errors.New("structural error")

	// ErrUnitConversion indicates an unknown unit pairing.
	ErrUnitConversion = errors.New("unit conversion error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// FormatError reports that raw input could not be classified as BeerXML,
// BeerJSON, or Brewfather JSON. Unlike a generic parse error it carries the
// structural hints that were found, so the caller can tell a near-miss
// Brewfather export from random JSON.
type FormatError struct {
	// Hints lists the structural clues found in the input
	// (e.g., "root-level 'fermentables' list"), possibly empty.
	Hints []string
	// Message describes why classification failed
	Message string
	// Cause is the underlying decode error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FormatError) Error() string {
	msg := "unrecognized format"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Hints) > 0 {
		msg += " (found: " + strings.Join(e.Hints, ", ") + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// StructuralError reports a fatal document-level problem: a missing root
// wrapper, a missing or empty recipe list, or a recipe without a name.
// It always aborts an import before any ingredient is processed.
type StructuralError struct {
	// Path is the document path to the missing or invalid element
	// (e.g., "beerjson.recipes")
	Path string
	// Message describes the structural failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	msg := "structural error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// UnitConversionError reports a request to convert between two units with
// no registered pairing. It names both units so the caller can fix the
// source file or register the pairing.
type UnitConversionError struct {
	// SourceUnit is the unit found in the source document
	SourceUnit string
	// TargetUnit is the canonical unit that was requested
	TargetUnit string
	// Field is the field being converted, when known
	Field string
}

// Error returns a human-readable error message.
func (e *UnitConversionError) Error() string {
	msg := fmt.Sprintf("unit conversion error: no conversion from %q to %q", e.SourceUnit, e.TargetUnit)
	if e.Field != "" {
		msg += " for field " + e.Field
	}
	return msg
}

// Unwrap returns nil as UnitConversionError has no underlying cause.
func (e *UnitConversionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnitConversionError) Is(target error) bool {
	return target == ErrUnitConversion
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
