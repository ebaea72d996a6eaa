// Package issues provides a unified issue type for conversion problems and
// per-ingredient skip warnings.
package issues

import (
	"fmt"

	"github.com/maltworks/brewtools/internal/severity"
)

// Issue represents a single problem found during format conversion or
// recipe import.
type Issue struct {
	// Path is the document path to the problematic element
	// (e.g., "water.sparge" or "hops[2].amount")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Kind is the ingredient kind when the issue concerns one ingredient
	// entry (e.g., "hop", "fermentable"); empty otherwise
	Kind string
	// Index is the zero-based position of the ingredient entry in its
	// source list; meaningful only when Kind is set
	Index int
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// Context provides additional information about the issue (optional)
	Context string
}

// SkippedIngredient builds the warning recorded when a single malformed
// ingredient entry is excluded from an otherwise-successful import.
func SkippedIngredient(kind string, index int, field, reason string) Issue {
	return Issue{
		Path:     fmt.Sprintf("%ss[%d]", kind, index),
		Message:  reason,
		Severity: severity.SeverityWarning,
		Kind:     kind,
		Index:    index,
		Field:    field,
	}
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
	if i.Field != "" {
		result = fmt.Sprintf("%s %s (field %s): %s", symbol, i.Path, i.Field, i.Message)
	}
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// IsSkip reports whether this issue records a skipped ingredient entry.
func (i Issue) IsSkip() bool {
	return i.Kind != ""
}
