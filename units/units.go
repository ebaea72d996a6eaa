// Package units provides tagged physical quantities and conversion into the
// canonical metric units used by the Recipe aggregate.
//
// A Quantity pairs a float value with an explicit unit string and is the
// only representation for physical quantities crossing a format boundary.
// Conversion is table-driven: each registered (source, target) pairing is
// either a linear scale factor or a function, the latter required for
// non-linear families such as temperature and gravity. A source unit equal
// to its target short-circuits before any table lookup, so identity
// conversion works even for units the table has never heard of.
//
// The tables are populated at init and read-only afterwards; the package is
// safe for concurrent use without synchronization.
package units

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/maltworks/brewtools/brewerrors"
)

// Canonical metric units. All persisted recipe quantities are normalized to
// one of these.
const (
	Liters          = "l"
	Kilograms       = "kg"
	Grams           = "g"
	Celsius         = "C"
	Minutes         = "min"
	Days            = "day"
	SpecificGravity = "sg"
	Percent         = "%"
	Dimensionless   = "1"
	SRM             = "srm"
	PPM             = "ppm"
)

// canonical is the fixed allow-list of units considered already metric.
// A source unit in this set is never recorded in format extensions.
var canonical = map[string]bool{
	Liters:          true,
	Kilograms:       true,
	Grams:           true,
	Celsius:         true,
	Minutes:         true,
	Days:            true,
	SpecificGravity: true,
	Percent:         true,
	Dimensionless:   true,
	SRM:             true,
	PPM:             true,
}

// IsCanonical reports whether unit (after normalization) is one of the
// canonical metric units.
func IsCanonical(unit string) bool {
	return canonical[Normalize(unit)]
}

// Quantity is a tagged quantity: a value paired with an explicit unit
// string. A nil *Quantity represents an absent value.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// New returns a Quantity with the given value and unit.
func New(value float64, unit string) *Quantity {
	return &Quantity{Value: value, Unit: unit}
}

// UnmarshalJSON accepts both the tagged object form {"value": 5, "unit": "l"}
// and a bare JSON number. A bare number produces a Quantity with an empty
// unit; callers supply the contextual unit via WithDefaultUnit.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("units: quantity must be a number or {value, unit} object: %w", err)
		}
		q.Value = v
		q.Unit = ""
		return nil
	}

	type quantityAlias Quantity
	var alias quantityAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*q = Quantity(alias)
	return nil
}

// WithDefaultUnit returns q with unit set to the given unit if q carries
// none. Nil propagates. Used for wire fields that may arrive as a bare
// number whose unit is implied by context.
func (q *Quantity) WithDefaultUnit(unit string) *Quantity {
	if q == nil || q.Unit != "" {
		return q
	}
	return &Quantity{Value: q.Value, Unit: unit}
}

// String returns the quantity in "value unit" form.
func (q *Quantity) String() string {
	if q == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// unitAliases maps the unit spellings seen in real exports onto the table
// keys. Keys are pre-lowercased.
var unitAliases = map[string]string{
	"liter": Liters, "litre": Liters, "liters": Liters, "litres": Liters,
	"milliliter": "ml", "milliliters": "ml", "millilitre": "ml",
	"gallon": "gal", "gallons": "gal",
	"quart": "qt", "quarts": "qt",
	"floz": "floz", "fl oz": "floz", "fluid ounce": "floz",
	"pint": "pt", "pints": "pt",
	"barrel": "bbl", "barrels": "bbl",
	"pound": "lb", "pounds": "lb", "lbs": "lb",
	"ounce": "oz", "ounces": "oz",
	"gram": Grams, "grams": Grams,
	"kilogram": Kilograms, "kilograms": Kilograms,
	"milligram": "mg", "milligrams": "mg",
	"fahrenheit": "F", "°f": "F",
	"celsius": "C", "centigrade": "C", "°c": "C",
	"kelvin": "K",
	"minute": Minutes, "minutes": Minutes, "mins": Minutes,
	"hour": "hr", "hours": "hr", "h": "hr",
	"second": "sec", "seconds": "sec", "s": "sec",
	"d": Days, "days": Days,
	"percent": Percent, "pct": Percent,
	"°p": "plato", "p": "plato",
	"mg/l": PPM,
}

// Normalize folds a raw unit string onto its table key: trims, lowercases,
// and resolves common aliases. Single-letter temperature units come back
// uppercase to match the canonical spelling.
func Normalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if alias, ok := unitAliases[u]; ok {
		return alias
	}
	switch u {
	case "c":
		return "C"
	case "f":
		return "F"
	case "k":
		return "K"
	}
	return u
}

// conversionKey identifies one registered (source → target) pairing.
type conversionKey struct {
	source string
	target string
}

// conversionEntry is either a linear scale factor or a function.
// fn takes precedence when non-nil.
type conversionEntry struct {
	factor float64
	fn     func(float64) float64
}

func (e conversionEntry) apply(v float64) float64 {
	if e.fn != nil {
		return e.fn(v)
	}
	return v * e.factor
}

// Exact conversion factors per NIST; gallon truncated to the five decimals
// universally used in brewing software.
const (
	litersPerGallon     = 3.78541
	litersPerQuart      = 0.946353
	litersPerFluidOunce = 0.0295735
	litersPerPint       = 0.473176
	litersPerBarrel     = 117.348
	gramsPerPound       = 453.59237
	gramsPerOunce       = 28.349523125
)

var conversions = map[conversionKey]conversionEntry{}

func registerLinear(source, target string, factor float64) {
	conversions[conversionKey{source, target}] = conversionEntry{factor: factor}
	conversions[conversionKey{target, source}] = conversionEntry{factor: 1 / factor}
}

func registerFunc(source, target string, forward, inverse func(float64) float64) {
	conversions[conversionKey{source, target}] = conversionEntry{fn: forward}
	conversions[conversionKey{target, source}] = conversionEntry{fn: inverse}
}

func init() {
	// Volume family (canonical: liters)
	registerLinear("gal", Liters, litersPerGallon)
	registerLinear("qt", Liters, litersPerQuart)
	registerLinear("ml", Liters, 0.001)
	registerLinear("floz", Liters, litersPerFluidOunce)
	registerLinear("pt", Liters, litersPerPint)
	registerLinear("bbl", Liters, litersPerBarrel)
	registerLinear("hl", Liters, 100)

	// Mass family (canonical: kilograms or grams depending on field)
	registerLinear("lb", Kilograms, gramsPerPound/1000)
	registerLinear("oz", Kilograms, gramsPerOunce/1000)
	registerLinear(Grams, Kilograms, 0.001)
	registerLinear("mg", Kilograms, 1e-6)
	registerLinear("lb", Grams, gramsPerPound)
	registerLinear("oz", Grams, gramsPerOunce)
	registerLinear("mg", Grams, 0.001)

	// Temperature requires functions, not factors
	registerFunc("F", Celsius,
		func(f float64) float64 { return (f - 32) * 5 / 9 },
		func(c float64) float64 { return c*9/5 + 32 })
	registerFunc("K", Celsius,
		func(k float64) float64 { return k - 273.15 },
		func(c float64) float64 { return c + 273.15 })

	// Time family (canonical: minutes, or days for fermentation-scale spans)
	registerLinear("hr", Minutes, 60)
	registerLinear("sec", Minutes, 1.0/60)
	registerLinear(Days, Minutes, 1440)
	registerLinear("hr", Days, 1.0/24)

	// Color (canonical: SRM). Brewfather and most European software report EBC.
	registerLinear("ebc", SRM, 0.508)
	// Lovibond is affine, not proportional
	registerFunc("lovibond", SRM,
		func(l float64) float64 { return 1.3546*l - 0.76 },
		func(srm float64) float64 { return (srm + 0.76) / 1.3546 })

	// Gravity: Plato/Brix to specific gravity is non-linear. The forward
	// direction uses the ASBC polynomial's rational approximation; the
	// inverse is the standard cubic fit.
	platoToSG := func(p float64) float64 {
		return 1 + p/(258.6-227.1*(p/258.2))
	}
	sgToPlato := func(sg float64) float64 {
		return -616.868 + 1111.14*sg - 630.272*sg*sg + 135.997*sg*sg*sg
	}
	registerFunc("plato", SpecificGravity, platoToSG, sgToPlato)
	registerFunc("brix", SpecificGravity, platoToSG, sgToPlato)
}

// Convert converts q to the target canonical unit. A source unit equal to
// the target (after normalization) is returned unchanged with no table
// lookup. An unregistered pairing returns a
// *brewerrors.UnitConversionError naming both units.
func Convert(q Quantity, target string) (float64, error) {
	source := Normalize(q.Unit)
	if source == Normalize(target) {
		return q.Value, nil
	}
	entry, ok := conversions[conversionKey{source, Normalize(target)}]
	if !ok {
		return 0, &brewerrors.UnitConversionError{SourceUnit: q.Unit, TargetUnit: target}
	}
	return entry.apply(q.Value), nil
}

// ConvertOptional converts an optional quantity. Absence (nil) propagates
// through as (nil, nil); a present quantity converts like Convert and
// returns a pointer to the converted value.
func ConvertOptional(q *Quantity, target string) (*float64, error) {
	if q == nil {
		return nil, nil
	}
	v, err := Convert(*q, target)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Warning records a conversion that fell back to a default value.
type Warning struct {
	// SourceUnit is the unit that could not be converted ("" when the
	// quantity was absent entirely)
	SourceUnit string
	// TargetUnit is the canonical unit that was requested
	TargetUnit string
	// Message describes why the default was used
	Message string
}

// ConvertWithDefault is the safe conversion variant: absence or an
// unregistered pairing yields the given default and a non-nil Warning
// instead of an error. It is intended only for fields with a sane fallback
// (e.g., hop alpha acid defaulting to zero), never for names or required
// amounts.
func ConvertWithDefault(q *Quantity, target string, def float64) (float64, *Warning) {
	if q == nil {
		return def, &Warning{
			TargetUnit: target,
			Message:    fmt.Sprintf("value absent, defaulted to %g %s", def, target),
		}
	}
	v, err := Convert(*q, target)
	if err != nil {
		return def, &Warning{
			SourceUnit: q.Unit,
			TargetUnit: target,
			Message:    fmt.Sprintf("no conversion from %q to %q, defaulted to %g", q.Unit, target, def),
		}
	}
	return v, nil
}
