package importer

import "github.com/maltworks/brewtools/units"

// Recipe is the normalized aggregate every import converges on. All
// quantities are canonical metric; absent optional data is nil, never a
// fabricated default. Field name suffixes state the unit.
type Recipe struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Author string `json:"author,omitempty"`

	// BeerJSONVersion is the canonical tree version the recipe was
	// deserialized from
	BeerJSONVersion float64 `json:"beerjson_version"`

	BatchSizeLiters   *float64 `json:"batch_size_liters,omitempty"`
	BoilSizeLiters    *float64 `json:"boil_size_liters,omitempty"`
	BoilTimeMinutes   *float64 `json:"boil_time_minutes,omitempty"`
	EfficiencyPercent *float64 `json:"efficiency_percent,omitempty"`
	OriginalGravity   *float64 `json:"original_gravity,omitempty"`
	FinalGravity      *float64 `json:"final_gravity,omitempty"`
	ABVPercent        *float64 `json:"abv_percent,omitempty"`
	IBU               *float64 `json:"ibu,omitempty"`
	ColorSRM          *float64 `json:"color_srm,omitempty"`
	CarbonationVols   *float64 `json:"carbonation_vols,omitempty"`

	Style *Style `json:"style,omitempty"`

	// Ingredient collections preserve source order
	Fermentables []*Fermentable    `json:"fermentables,omitempty"`
	Hops         []*Hop            `json:"hops,omitempty"`
	Cultures     []*Culture        `json:"cultures,omitempty"`
	Miscs        []*MiscIngredient `json:"miscs,omitempty"`

	WaterProfiles    []*WaterProfile    `json:"water_profiles,omitempty"`
	WaterAdjustments []*WaterAdjustment `json:"water_adjustments,omitempty"`

	MashSteps         []*MashStep         `json:"mash_steps,omitempty"`
	FermentationSteps []*FermentationStep `json:"fermentation_steps,omitempty"`

	// Extensions remembers the source's original units and vendor data so
	// export can reconstruct them
	Extensions *FormatExtensions `json:"extensions,omitempty"`
}

// Style identifies the target beer style.
type Style struct {
	Name       string `json:"name,omitempty"`
	Category   string `json:"category,omitempty"`
	StyleGuide string `json:"style_guide,omitempty"`
	Type       string `json:"type,omitempty"`
}

// Fermentable is one grain/extract/sugar addition. Name and amount are
// required; an entry missing either is skipped at deserialization.
type Fermentable struct {
	Name            string   `json:"name"`
	Type            string   `json:"type,omitempty"`
	Producer        string   `json:"producer,omitempty"`
	AmountKilograms float64  `json:"amount_kilograms"`
	YieldPercent    *float64 `json:"yield_percent,omitempty"`
	ColorSRM        *float64 `json:"color_srm,omitempty"`
}

// Hop is one hop addition. Name and amount are required.
type Hop struct {
	Name             string     `json:"name"`
	Producer         string     `json:"producer,omitempty"`
	Origin           string     `json:"origin,omitempty"`
	Form             string     `json:"form,omitempty"`
	AlphaAcidPercent *float64   `json:"alpha_acid_percent,omitempty"`
	AmountGrams      float64    `json:"amount_grams"`
	Timing           *HopTiming `json:"timing,omitempty"`
}

// HopTiming says when a hop addition happens. A nil *HopTiming means the
// source carried no timing; it is never synthesized.
type HopTiming struct {
	// Use is the addition point (add_to_mash, add_to_boil,
	// add_to_fermentation, add_to_package)
	Use string `json:"use,omitempty"`
	// Duration is the contact time, normalized to minutes except for
	// fermentation-phase additions which keep their day count
	Duration *units.Quantity `json:"duration,omitempty"`
	// TemperatureCelsius is the hopstand/whirlpool contact temperature
	TemperatureCelsius *float64 `json:"temperature_celsius,omitempty"`
	// Phase marks which production phase the duration counts from
	Phase string `json:"phase,omitempty"`
}

// Culture is one yeast or bacteria addition. Amounts canonicalize to grams
// or liters where the source unit belongs to those families; package counts
// and other units pass through tagged.
type Culture struct {
	Name               string          `json:"name"`
	Type               string          `json:"type,omitempty"`
	Form               string          `json:"form,omitempty"`
	Producer           string          `json:"producer,omitempty"`
	AttenuationPercent *float64        `json:"attenuation_percent,omitempty"`
	Amount             *units.Quantity `json:"amount,omitempty"`
}

// MiscIngredient is one miscellaneous addition (finings, salts, spices).
type MiscIngredient struct {
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Amount      *units.Quantity `json:"amount,omitempty"`
	Use         string          `json:"use,omitempty"`
	TimeMinutes *float64        `json:"time_minutes,omitempty"`
}

// WaterProfile is a water composition in ppm plus pH.
type WaterProfile struct {
	Name           string   `json:"name,omitempty"`
	CalciumPPM     *float64 `json:"calcium_ppm,omitempty"`
	MagnesiumPPM   *float64 `json:"magnesium_ppm,omitempty"`
	SodiumPPM      *float64 `json:"sodium_ppm,omitempty"`
	ChloridePPM    *float64 `json:"chloride_ppm,omitempty"`
	SulfatePPM     *float64 `json:"sulfate_ppm,omitempty"`
	BicarbonatePPM *float64 `json:"bicarbonate_ppm,omitempty"`
	PH             *float64 `json:"ph,omitempty"`
}

// WaterAdjustment is one stage's brewing-salt and acid additions. Only
// stages the source recorded at least one salt or acid for exist at all.
type WaterAdjustment struct {
	// Stage is "mash", "sparge", or "total"
	Stage        string   `json:"stage"`
	VolumeLiters *float64 `json:"volume_liters,omitempty"`

	GypsumGrams            *float64 `json:"gypsum_grams,omitempty"`
	CalciumChlorideGrams   *float64 `json:"calcium_chloride_grams,omitempty"`
	EpsomSaltGrams         *float64 `json:"epsom_salt_grams,omitempty"`
	TableSaltGrams         *float64 `json:"table_salt_grams,omitempty"`
	BakingSodaGrams        *float64 `json:"baking_soda_grams,omitempty"`
	CalciumHydroxideGrams  *float64 `json:"calcium_hydroxide_grams,omitempty"`
	MagnesiumChlorideGrams *float64 `json:"magnesium_chloride_grams,omitempty"`

	AcidType                 string   `json:"acid_type,omitempty"`
	AcidAmountMilliliters    *float64 `json:"acid_amount_ml,omitempty"`
	AcidConcentrationPercent *float64 `json:"acid_concentration_percent,omitempty"`
}

// MashStep is one step of the mash schedule.
type MashStep struct {
	Name                   string   `json:"name,omitempty"`
	Type                   string   `json:"type,omitempty"`
	StepTemperatureCelsius *float64 `json:"step_temperature_celsius,omitempty"`
	StepTimeMinutes        *float64 `json:"step_time_minutes,omitempty"`
	RampTimeMinutes        *float64 `json:"ramp_time_minutes,omitempty"`
}

// FermentationStep is one step of the fermentation schedule.
type FermentationStep struct {
	Name                    string   `json:"name,omitempty"`
	StartTemperatureCelsius *float64 `json:"start_temperature_celsius,omitempty"`
	EndTemperatureCelsius   *float64 `json:"end_temperature_celsius,omitempty"`
	StepTimeDays            *float64 `json:"step_time_days,omitempty"`
}
