package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maltworks/brewtools/internal/issues"
	"github.com/maltworks/brewtools/internal/severity"
	"github.com/maltworks/brewtools/parser"
	"github.com/maltworks/brewtools/units"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy conversions or best-effort transformations
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates source data that cannot be carried (data loss)
	SeverityCritical = severity.SeverityCritical
)

// ConversionIssue represents a single conversion issue or limitation
type ConversionIssue = issues.Issue

// ConversionResult contains the outcome of translating one source document
// into the canonical tree.
type ConversionResult struct {
	// Tree is the canonical recipe tree
	Tree *parser.CanonicalTree
	// SourceFormat is the wire format the tree was translated from
	SourceFormat parser.SourceFormat
	// Issues contains all conversion issues
	Issues []ConversionIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if conversion completed without critical issues
	Success bool
}

// HasCriticalIssues returns true if there are any critical issues
func (r *ConversionResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *ConversionResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// Converter handles translation of parsed recipe documents into the
// canonical tree.
type Converter struct {
	// IncludeInfo determines whether informational messages are kept in
	// the result
	IncludeInfo bool
}

// New creates a new Converter instance with default settings
func New() *Converter {
	return &Converter{IncludeInfo: true}
}

// ToCanonical is a convenience function that translates an already-parsed
// document with default settings. It's equivalent to creating a Converter
// with New() and calling ToCanonical.
func ToCanonical(parseResult *parser.ParseResult) (*ConversionResult, error) {
	return New().ToCanonical(parseResult)
}

// ToCanonical translates a parsed document into the canonical tree.
// BeerJSON input is already canonical and passes through; BeerXML and
// Brewfather documents are restructured field by field.
func (c *Converter) ToCanonical(parseResult *parser.ParseResult) (*ConversionResult, error) {
	if parseResult == nil || parseResult.Document == nil {
		return nil, fmt.Errorf("converter: nil parse result")
	}

	result := &ConversionResult{
		SourceFormat: parseResult.SourceFormat,
		Issues:       make([]ConversionIssue, 0),
	}

	switch doc := parseResult.Document.(type) {
	case *parser.BeerJSONDocument:
		result.Tree = doc.BeerJSON
		c.addIssue(result, "document", "source is already canonical BeerJSON, no translation needed", SeverityInfo)

	case *parser.BrewfatherRecipe:
		result.Tree = c.convertBrewfather(doc, result)

	case *parser.BeerXMLDocument:
		result.Tree = c.convertBeerXML(doc, result)

	default:
		return nil, fmt.Errorf("converter: unsupported document type %T", parseResult.Document)
	}

	c.updateCounts(result)
	result.Success = result.CriticalCount == 0

	if !c.IncludeInfo {
		filtered := make([]ConversionIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

// updateCounts updates the issue counts in the result
func (c *Converter) updateCounts(result *ConversionResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}

// addIssue is a helper to add a conversion issue to the result
func (c *Converter) addIssue(result *ConversionResult, path, message string, sev Severity) {
	result.Issues = append(result.Issues, ConversionIssue{
		Path:     path,
		Message:  message,
		Severity: sev,
	})
}

// quantity builds a tagged quantity from an optional bare value and its
// vendor-implied unit. Absence propagates as nil.
func quantity(v *float64, unit string) *units.Quantity {
	if v == nil {
		return nil
	}
	return units.New(*v, unit)
}

// parseNumber leniently parses a numeric element value. Empty or malformed
// text yields nil rather than an error: a single bad number inside one
// ingredient must not abort the translation.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseLeadingNumber parses the leading numeric portion of a display value
// such as "13.2 SRM".
func parseLeadingNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' || ch == '+' {
			end++
			continue
		}
		break
	}
	return parseNumber(s[:end])
}
