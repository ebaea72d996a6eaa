package parser

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
)

// SourceFormat represents the wire format of a source recipe file.
type SourceFormat string

const (
	// SourceFormatBeerXML indicates a BeerXML 1.0 document
	SourceFormatBeerXML SourceFormat = "beerxml"
	// SourceFormatBeerJSON indicates a BeerJSON 1.0 document
	SourceFormatBeerJSON SourceFormat = "beerjson"
	// SourceFormatBrewfather indicates a Brewfather JSON export
	SourceFormatBrewfather SourceFormat = "brewfather"
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// DefaultBrewfatherThreshold is the number of Brewfather shape indicators
// (out of [BrewfatherIndicatorCount]) that must be present before JSON input
// is classified as a Brewfather export. The value is an empirically tuned
// heuristic: real exports exhibit five or more, random recipe-ish JSON
// rarely reaches three. Recalibrate against a labeled corpus rather than
// treating the exact value as contractual.
const DefaultBrewfatherThreshold = 3

// BrewfatherIndicatorCount is the total number of structural indicators
// scored during Brewfather detection.
const BrewfatherIndicatorCount = 7

// DetectionHints records the structural evidence gathered while classifying
// input. When classification fails, the hints explain what was and was not
// found so the caller can diagnose a near-miss rather than a generic parse
// error.
type DetectionHints struct {
	// ParsedAsJSON is true when the input decoded as a JSON document
	ParsedAsJSON bool
	// ParsedAsXML is true when the input decoded as an XML document
	ParsedAsXML bool
	// XMLRootElement is the root element name when ParsedAsXML is true
	XMLRootElement string
	// Indicators lists the Brewfather shape indicators that were present
	Indicators []string
	// Notes carries additional structural observations (e.g., a version
	// wrapper with an empty recipe list)
	Notes []string
}

// Found returns every structural clue gathered, for embedding in a
// FormatError.
func (h *DetectionHints) Found() []string {
	if h == nil {
		return nil
	}
	found := make([]string, 0, len(h.Indicators)+len(h.Notes))
	found = append(found, h.Indicators...)
	found = append(found, h.Notes...)
	return found
}

// Summary returns a one-line description of the detection evidence.
func (h *DetectionHints) Summary() string {
	if h == nil {
		return "no detection evidence"
	}
	switch {
	case h.ParsedAsXML:
		return fmt.Sprintf("XML document with root element <%s>", h.XMLRootElement)
	case h.ParsedAsJSON:
		parts := make([]string, 0, 2)
		if len(h.Indicators) > 0 {
			parts = append(parts, fmt.Sprintf("%d of %d Brewfather indicators (%s)",
				len(h.Indicators), BrewfatherIndicatorCount, strings.Join(h.Indicators, ", ")))
		}
		parts = append(parts, h.Notes...)
		if len(parts) == 0 {
			return "JSON document with no recognized recipe structure"
		}
		return "JSON document: " + strings.Join(parts, "; ")
	default:
		return "input is neither valid JSON nor valid XML"
	}
}

// DetectFormat classifies raw input bytes as one of the three supported
// recipe formats using the default Brewfather indicator threshold. It
// returns the classification together with the structural evidence that
// produced it; on SourceFormatUnknown the hints name what was found.
func DetectFormat(data []byte) (SourceFormat, *DetectionHints) {
	return DetectFormatWithThreshold(data, DefaultBrewfatherThreshold)
}

// DetectFormatWithThreshold classifies raw input bytes, requiring at least
// threshold of the seven Brewfather shape indicators before classifying a
// JSON document as a Brewfather export. A threshold below 1 falls back to
// the default.
func DetectFormatWithThreshold(data []byte, threshold int) (SourceFormat, *DetectionHints) {
	if threshold < 1 {
		threshold = DefaultBrewfatherThreshold
	}
	hints := &DetectionHints{}

	// JSON first: both JSON dialects are far more common than BeerXML in
	// current exports, and json.Unmarshal rejects XML cheaply.
	var root any
	if err := json.Unmarshal(data, &root); err == nil {
		hints.ParsedAsJSON = true
		obj, ok := root.(map[string]any)
		if !ok {
			hints.Notes = append(hints.Notes, "JSON root is not an object")
			return SourceFormatUnknown, hints
		}
		return classifyJSON(obj, threshold, hints)
	}

	if name, ok := xmlRootElement(data); ok {
		hints.ParsedAsXML = true
		hints.XMLRootElement = name
		if strings.EqualFold(name, "RECIPES") {
			return SourceFormatBeerXML, hints
		}
		hints.Notes = append(hints.Notes, fmt.Sprintf("XML root element <%s> is not a recipe list", name))
		return SourceFormatUnknown, hints
	}

	return SourceFormatUnknown, hints
}

// classifyJSON distinguishes BeerJSON from Brewfather for an already-decoded
// JSON object.
func classifyJSON(obj map[string]any, threshold int, hints *DetectionHints) (SourceFormat, *DetectionHints) {
	// BeerJSON: a root wrapper object carrying a version field and a
	// non-empty recipe list. The wrapper is usually under the "beerjson"
	// key, but some tools emit the wrapper fields at the root.
	wrapper := obj
	if inner, ok := obj["beerjson"].(map[string]any); ok {
		wrapper = inner
	}
	_, hasVersion := wrapper["version"]
	recipes, hasRecipes := wrapper["recipes"].([]any)
	if hasVersion && hasRecipes {
		if len(recipes) > 0 {
			return SourceFormatBeerJSON, hints
		}
		hints.Notes = append(hints.Notes, "version wrapper present but recipe list is empty")
	} else if hasVersion || hasRecipes {
		hints.Notes = append(hints.Notes, "partial version wrapper (needs both version and recipes)")
	}

	// Brewfather: score the root-shape indicators. The dialect has no
	// version wrapper; its signature is flat ingredient lists plus
	// equipment and water objects.
	if _, ok := obj["fermentables"].([]any); ok {
		hints.Indicators = append(hints.Indicators, "root-level 'fermentables' list")
	}
	if _, ok := obj["hops"].([]any); ok {
		hints.Indicators = append(hints.Indicators, "root-level 'hops' list")
	}
	if _, ok := obj["yeasts"].([]any); ok {
		hints.Indicators = append(hints.Indicators, "root-level 'yeasts' list")
	}
	if _, ok := obj["equipment"].(map[string]any); ok {
		hints.Indicators = append(hints.Indicators, "'equipment' object")
	}
	water, hasWater := obj["water"].(map[string]any)
	if hasWater {
		hints.Indicators = append(hints.Indicators, "'water' object")
		_, hasMash := water["mash"].(map[string]any)
		_, hasSparge := water["sparge"].(map[string]any)
		if hasMash || hasSparge {
			hints.Indicators = append(hints.Indicators, "water mash/sparge sub-objects")
		}
	}
	if _, ok := obj["_id"]; ok {
		hints.Indicators = append(hints.Indicators, "'_id' identifier field")
	}

	if len(hints.Indicators) >= threshold {
		return SourceFormatBrewfather, hints
	}
	if len(hints.Indicators) > 0 {
		hints.Notes = append(hints.Notes,
			fmt.Sprintf("only %d of %d Brewfather indicators (threshold %d), missing version wrapper",
				len(hints.Indicators), BrewfatherIndicatorCount, threshold))
	}
	return SourceFormatUnknown, hints
}

// xmlRootElement returns the local name of the first XML start element.
func xmlRootElement(data []byte) (string, bool) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", false
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, true
		}
	}
}
