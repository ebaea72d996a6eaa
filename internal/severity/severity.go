// Package severity provides severity level constants and utilities for
// issues reported by the converter and importer packages.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical.
//
//   - SeverityInfo: informational messages about mapping choices
//   - SeverityWarning: skipped ingredients, defaulted values, lossy mappings
//   - SeverityError: document problems that make a recipe invalid
//   - SeverityCritical: data that cannot be carried without loss
package severity

// Severity indicates the severity level of an issue found during format
// conversion or recipe import.
type Severity int

const (
	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a recoverable problem: a skipped ingredient
	// entry, a defaulted optional field, or a lossy structural mapping.
	SeverityWarning

	// SeverityError indicates a problem that makes the recipe invalid.
	SeverityError

	// SeverityCritical indicates source data that cannot be carried into the
	// canonical representation without loss.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
