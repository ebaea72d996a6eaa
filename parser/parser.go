package parser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/maltworks/brewtools/brewerrors"
)

// Parser handles recipe file detection and decoding.
type Parser struct {
	// BrewfatherThreshold is the number of Brewfather shape indicators
	// required before JSON input is classified as a Brewfather export.
	// Zero means DefaultBrewfatherThreshold.
	BrewfatherThreshold int
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
}

// New creates a new Parser instance with default settings.
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// ParseResult contains the detected format and the decoded format-specific
// document.
//
// Callers should treat ParseResult as read-only after parsing. The
// converter package translates the document into the canonical tree; the
// importer package builds the Recipe aggregate from that tree.
type ParseResult struct {
	// SourceFormat is the detected wire format
	SourceFormat SourceFormat
	// Hints is the structural evidence gathered during detection
	Hints *DetectionHints
	// Document contains the format-specific decoded document:
	// - *BeerXMLDocument for BeerXML
	// - *BeerJSONDocument for BeerJSON
	// - *BrewfatherRecipe for Brewfather exports
	Document any
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// LoadTime is the time taken to detect and decode the source
	LoadTime time.Duration
}

// BeerXML returns the decoded document as a BeerXMLDocument, with a boolean
// indicating whether the type assertion succeeded.
func (pr *ParseResult) BeerXML() (*BeerXMLDocument, bool) {
	doc, ok := pr.Document.(*BeerXMLDocument)
	return doc, ok
}

// BeerJSON returns the decoded document as a BeerJSONDocument, with a
// boolean indicating whether the type assertion succeeded.
func (pr *ParseResult) BeerJSON() (*BeerJSONDocument, bool) {
	doc, ok := pr.Document.(*BeerJSONDocument)
	return doc, ok
}

// Brewfather returns the decoded document as a BrewfatherRecipe, with a
// boolean indicating whether the type assertion succeeded.
func (pr *ParseResult) Brewfather() (*BrewfatherRecipe, bool) {
	doc, ok := pr.Document.(*BrewfatherRecipe)
	return doc, ok
}

// ParseBytes detects the format of raw recipe bytes and decodes them into
// the matching document model. Unrecognized input returns a
// *brewerrors.FormatError carrying the structural hints that were found.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	start := time.Now()

	format, hints := DetectFormatWithThreshold(data, p.BrewfatherThreshold)
	result := &ParseResult{
		SourceFormat: format,
		Hints:        hints,
		SourceSize:   int64(len(data)),
	}

	switch format {
	case SourceFormatBeerJSON:
		var doc BeerJSONDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return result, fmt.Errorf("parser: decoding BeerJSON: %w", err)
		}
		if doc.BeerJSON == nil {
			// Wrapper fields at the root, without the "beerjson" key
			var tree CanonicalTree
			if err := json.Unmarshal(data, &tree); err != nil {
				return result, fmt.Errorf("parser: decoding BeerJSON: %w", err)
			}
			doc.BeerJSON = &tree
		}
		result.Document = &doc

	case SourceFormatBrewfather:
		var doc BrewfatherRecipe
		if err := json.Unmarshal(data, &doc); err != nil {
			return result, fmt.Errorf("parser: decoding Brewfather export: %w", err)
		}
		result.Document = &doc

	case SourceFormatBeerXML:
		doc, err := decodeBeerXML(data)
		if err != nil {
			return result, err
		}
		result.Document = doc

	default:
		p.log().Warn("unrecognized recipe format", "evidence", hints.Summary())
		return result, &brewerrors.FormatError{
			Hints:   hints.Found(),
			Message: hints.Summary(),
		}
	}

	result.LoadTime = time.Since(start)
	p.log().Debug("parsed recipe input",
		"format", string(format),
		"bytes", result.SourceSize,
		"load_time", result.LoadTime)
	return result, nil
}

// ParseBytes is a convenience function that parses raw recipe bytes with
// default settings. It's equivalent to creating a Parser with New() and
// calling ParseBytes.
func ParseBytes(data []byte) (*ParseResult, error) {
	return New().ParseBytes(data)
}
