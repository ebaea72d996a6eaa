package importer

import (
	"fmt"

	"github.com/maltworks/brewtools/units"
)

// FormatExtensions is the side-channel that makes import lossless: the
// original unit of every converted value, keyed so export can invert the
// conversion per field and per ingredient line, plus vendor data the
// Recipe shape cannot represent natively.
type FormatExtensions struct {
	// OriginalUnits maps recipe-level scalar field names to the source
	// unit they arrived in, recorded only when that unit is non-metric
	OriginalUnits map[string]string `json:"original_units,omitempty"`
	// IngredientOriginalUnits is keyed "<kind>_<index>_<field>"
	// (e.g. "hop_2_amount"); the index is the entry's position in the
	// imported aggregate, so lookups line up even after skipped entries
	IngredientOriginalUnits map[string]string `json:"ingredient_original_units,omitempty"`
	// Passthrough carries vendor blocks keyed by source format name
	Passthrough map[string]map[string]any `json:"passthrough,omitempty"`
}

func newExtensions() *FormatExtensions {
	return &FormatExtensions{
		OriginalUnits:           map[string]string{},
		IngredientOriginalUnits: map[string]string{},
		Passthrough:             map[string]map[string]any{},
	}
}

// Empty reports whether nothing was recorded.
func (e *FormatExtensions) Empty() bool {
	return len(e.OriginalUnits) == 0 &&
		len(e.IngredientOriginalUnits) == 0 &&
		len(e.Passthrough) == 0
}

// recordScalar remembers a recipe-level scalar's source unit. Units already
// in canonical metric form are never recorded: an all-metric source leaves
// the map empty and round-trips without any extension data.
func (e *FormatExtensions) recordScalar(field string, q *units.Quantity) {
	if q == nil {
		return
	}
	unit := units.Normalize(q.Unit)
	if unit == "" || units.IsCanonical(unit) {
		return
	}
	e.OriginalUnits[field] = unit
}

// recordIngredient remembers one ingredient field's source unit under
// "<kind>_<index>_<field>". Canonical units are never recorded.
func (e *FormatExtensions) recordIngredient(kind string, index int, field string, q *units.Quantity) {
	if q == nil {
		return
	}
	unit := units.Normalize(q.Unit)
	if unit == "" || units.IsCanonical(unit) {
		return
	}
	e.IngredientOriginalUnits[fmt.Sprintf("%s_%d_%s", kind, index, field)] = unit
}

// IngredientUnit looks up the recorded source unit for one ingredient
// field; ok is false when the value imported already metric.
func (e *FormatExtensions) IngredientUnit(kind string, index int, field string) (string, bool) {
	unit, ok := e.IngredientOriginalUnits[fmt.Sprintf("%s_%d_%s", kind, index, field)]
	return unit, ok
}

// prune drops empty maps, collapsing to nil when nothing was recorded so
// an all-metric import carries no extension data at all.
func (e *FormatExtensions) prune() *FormatExtensions {
	if len(e.OriginalUnits) == 0 {
		e.OriginalUnits = nil
	}
	if len(e.IngredientOriginalUnits) == 0 {
		e.IngredientOriginalUnits = nil
	}
	if len(e.Passthrough) == 0 {
		e.Passthrough = nil
	}
	if e.Empty() {
		return nil
	}
	return e
}
