package parser

import "github.com/maltworks/brewtools/units"

// BeerJSONDocument is the outermost object of a BeerJSON 1.0 file.
type BeerJSONDocument struct {
	BeerJSON *CanonicalTree `json:"beerjson"`
}

// CanonicalTree is the format-agnostic intermediate representation every
// import converges on: the BeerJSON wrapper carrying a version and a recipe
// list. BeerJSON input decodes into it directly; BeerXML and Brewfather
// documents are translated into it by the converter package. The tree is
// ephemeral, built once per import and discarded after deserialization into
// the Recipe aggregate.
type CanonicalTree struct {
	Version float64       `json:"version"`
	Recipes []*RecipeNode `json:"recipes"`
}

// RecipeNode is one recipe in the canonical tree. All quantities are tagged
// with their source units; nothing here is converted to metric yet.
type RecipeNode struct {
	Name            string            `json:"name"`
	Type            string            `json:"type,omitempty"`
	Author          string            `json:"author,omitempty"`
	BatchSize       *units.Quantity   `json:"batch_size,omitempty"`
	Boil            *BoilNode         `json:"boil,omitempty"`
	Efficiency      *EfficiencyNode   `json:"efficiency,omitempty"`
	OriginalGravity *units.Quantity   `json:"original_gravity,omitempty"`
	FinalGravity    *units.Quantity   `json:"final_gravity,omitempty"`
	AlcoholByVolume *units.Quantity   `json:"alcohol_by_volume,omitempty"`
	IBUEstimate     *units.Quantity   `json:"ibu_estimate,omitempty"`
	Color           *units.Quantity   `json:"color_estimate,omitempty"`
	Carbonation     *units.Quantity   `json:"carbonation,omitempty"`
	Ingredients     *IngredientsNode  `json:"ingredients,omitempty"`
	Mash            *MashNode         `json:"mash,omitempty"`
	Fermentation    *FermentationNode `json:"fermentation,omitempty"`
	Style           *StyleNode        `json:"style,omitempty"`
	// Extensions carries vendor data the canonical shape cannot represent
	// natively, keyed by source format name.
	Extensions map[string]any `json:"_extensions,omitempty"`
}

// BoilNode holds the boil procedure.
type BoilNode struct {
	BoilTime *units.Quantity `json:"boil_time,omitempty"`
	BoilSize *units.Quantity `json:"pre_boil_size,omitempty"`
}

// EfficiencyNode holds mash/brewhouse efficiency percentages.
type EfficiencyNode struct {
	Brewhouse *units.Quantity `json:"brewhouse,omitempty"`
	Mash      *units.Quantity `json:"mash,omitempty"`
}

// IngredientsNode groups the per-kind ingredient addition lists.
// Source list order is significant and must be preserved.
type IngredientsNode struct {
	FermentableAdditions   []*FermentableNode `json:"fermentable_additions,omitempty"`
	HopAdditions           []*HopNode         `json:"hop_additions,omitempty"`
	CultureAdditions       []*CultureNode     `json:"culture_additions,omitempty"`
	MiscellaneousAdditions []*MiscNode        `json:"miscellaneous_additions,omitempty"`
	WaterAdditions         []*WaterNode       `json:"water_additions,omitempty"`
}

// FermentableNode is one fermentable addition.
type FermentableNode struct {
	Name     string          `json:"name"`
	Type     string          `json:"type,omitempty"`
	Producer string          `json:"producer,omitempty"`
	Amount   *units.Quantity `json:"amount,omitempty"`
	Yield    *units.Quantity `json:"yield,omitempty"`
	Color    *units.Quantity `json:"color,omitempty"`
}

// HopNode is one hop addition.
type HopNode struct {
	Name      string          `json:"name"`
	Producer  string          `json:"producer,omitempty"`
	Origin    string          `json:"origin,omitempty"`
	Form      string          `json:"form,omitempty"`
	AlphaAcid *units.Quantity `json:"alpha_acid,omitempty"`
	Amount    *units.Quantity `json:"amount,omitempty"`
	Timing    *TimingNode     `json:"timing,omitempty"`
}

// TimingNode describes when an addition happens. A nil *TimingNode means
// the source carried no timing information at all; it is never fabricated.
type TimingNode struct {
	// Use is the addition point (add_to_mash, add_to_boil,
	// add_to_fermentation, add_to_package)
	Use string `json:"use,omitempty"`
	// Duration is how long the addition stays in contact
	Duration *units.Quantity `json:"duration,omitempty"`
	// Temperature is the contact temperature, carried for hopstand and
	// whirlpool additions
	Temperature *units.Quantity `json:"temperature,omitempty"`
	// Phase marks which production phase the duration counts from
	// (e.g., "fermentation" for dry hops measured in days)
	Phase string `json:"phase,omitempty"`
}

// CultureNode is one yeast or bacteria addition.
type CultureNode struct {
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Form        string          `json:"form,omitempty"`
	Producer    string          `json:"producer,omitempty"`
	Attenuation *units.Quantity `json:"attenuation,omitempty"`
	Amount      *units.Quantity `json:"amount,omitempty"`
}

// MiscNode is one miscellaneous ingredient addition.
type MiscNode struct {
	Name   string          `json:"name"`
	Type   string          `json:"type,omitempty"`
	Amount *units.Quantity `json:"amount,omitempty"`
	Timing *TimingNode     `json:"timing,omitempty"`
}

// WaterNode describes a water composition (ion concentrations), not an
// addition of brewing salts. Salt and acid additions travel through the
// Brewfather extensions block instead.
type WaterNode struct {
	Name        string          `json:"name"`
	Calcium     *units.Quantity `json:"calcium,omitempty"`
	Magnesium   *units.Quantity `json:"magnesium,omitempty"`
	Sodium      *units.Quantity `json:"sodium,omitempty"`
	Chloride    *units.Quantity `json:"chloride,omitempty"`
	Sulfate     *units.Quantity `json:"sulfate,omitempty"`
	Bicarbonate *units.Quantity `json:"bicarbonate,omitempty"`
	PH          *float64        `json:"ph,omitempty"`
}

// MashNode holds the mash procedure.
type MashNode struct {
	Name      string          `json:"name,omitempty"`
	MashSteps []*MashStepNode `json:"mash_steps,omitempty"`
}

// MashStepNode is one step of the mash schedule.
type MashStepNode struct {
	Name            string          `json:"name,omitempty"`
	Type            string          `json:"type,omitempty"`
	StepTemperature *units.Quantity `json:"step_temperature,omitempty"`
	StepTime        *units.Quantity `json:"step_time,omitempty"`
	RampTime        *units.Quantity `json:"ramp_time,omitempty"`
}

// FermentationNode holds the fermentation procedure.
type FermentationNode struct {
	Name              string                  `json:"name,omitempty"`
	FermentationSteps []*FermentationStepNode `json:"fermentation_steps,omitempty"`
}

// FermentationStepNode is one step of the fermentation schedule.
type FermentationStepNode struct {
	Name             string          `json:"name,omitempty"`
	StartTemperature *units.Quantity `json:"start_temperature,omitempty"`
	EndTemperature   *units.Quantity `json:"end_temperature,omitempty"`
	StepTime         *units.Quantity `json:"step_time,omitempty"`
}

// StyleNode identifies the target beer style.
type StyleNode struct {
	Name       string `json:"name,omitempty"`
	Category   string `json:"category,omitempty"`
	StyleGuide string `json:"style_guide,omitempty"`
	Type       string `json:"type,omitempty"`
}

// BrewfatherExtensionKey is the Extensions map key under which the
// converter stores Brewfather vendor data.
const BrewfatherExtensionKey = "brewfather"

// BrewfatherExtension is the vendor block stored at
// Extensions[BrewfatherExtensionKey]: the Brewfather data the canonical
// shape cannot represent natively.
type BrewfatherExtension struct {
	// ID is the Brewfather document identifier
	ID string `json:"id,omitempty"`
	// Tags are the user's search tags
	Tags []string `json:"tags,omitempty"`
	// StyleConformity is Brewfather's calculated style-match flag
	StyleConformity *bool `json:"style_conformity,omitempty"`
	// InventoryCounts maps "<kind>_<index>" to the on-hand inventory
	// amount recorded for that ingredient
	InventoryCounts map[string]float64 `json:"inventory_counts,omitempty"`
	// WaterAdjustments holds the per-stage salt and acid records
	WaterAdjustments []*WaterAdjustmentRecord `json:"water_adjustments,omitempty"`
}

// WaterAdjustmentRecord is one stage's brewing-salt and acid additions as
// recorded by Brewfather. Only stages with at least one non-nil salt or
// acid field are ever materialized.
type WaterAdjustmentRecord struct {
	// Stage is "mash", "sparge", or "total"
	Stage string `json:"stage"`
	// Volume is the treated water volume; may arrive as a bare number
	// (implied liters) or a tagged quantity
	Volume *units.Quantity `json:"volume,omitempty"`
	// Salts maps canonical salt names to masses in grams. Keys:
	// gypsum, calcium_chloride, epsom_salt, table_salt, baking_soda,
	// calcium_hydroxide, magnesium_chloride.
	Salts map[string]float64 `json:"salts,omitempty"`
	// AcidType names the acid used, if any (e.g., "lactic")
	AcidType string `json:"acid_type,omitempty"`
	// AcidAmount is the acid volume in milliliters
	AcidAmount *float64 `json:"acid_amount,omitempty"`
	// AcidConcentration is the acid strength in percent
	AcidConcentration *float64 `json:"acid_concentration,omitempty"`
}

// Empty reports whether the record carries neither salts nor acid and
// therefore must not be materialized.
func (r *WaterAdjustmentRecord) Empty() bool {
	return len(r.Salts) == 0 && r.AcidType == "" && r.AcidAmount == nil
}
