package parser

import "github.com/maltworks/brewtools/units"

// Brewfather export dialect document model.
//
// Brewfather JSON has no version wrapper and no unit tags: each field's
// unit is fixed by the vendor (batch volumes in liters, fermentable
// amounts in kilograms, hop amounts in grams, color in EBC, temperatures
// in Celsius). The converter attaches those implied units when building
// the canonical tree. Optional numbers are pointers so that absent and
// zero stay distinguishable.

// BrewfatherRecipe is the root object of a Brewfather export.
type BrewfatherRecipe struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Author      string   `json:"author"`
	BatchSize   *float64 `json:"batchSize"`
	BoilSize    *float64 `json:"boilSize"`
	BoilTime    *float64 `json:"boilTime"`
	Efficiency  *float64 `json:"efficiency"`
	OG          *float64 `json:"og"`
	FG          *float64 `json:"fg"`
	ABV         *float64 `json:"abv"`
	IBU         *float64 `json:"ibu"`
	Color       *float64 `json:"color"`
	Carbonation *float64 `json:"carbonation"`

	Fermentables []*BrewfatherFermentable `json:"fermentables"`
	Hops         []*BrewfatherHop         `json:"hops"`
	Yeasts       []*BrewfatherYeast       `json:"yeasts"`
	Miscs        []*BrewfatherMisc        `json:"miscs"`

	Equipment    map[string]any         `json:"equipment"`
	Water        *BrewfatherWater       `json:"water"`
	Mash         *BrewfatherMash        `json:"mash"`
	Fermentation *BrewfatherProfile     `json:"fermentation"`
	Style        *BrewfatherStyle       `json:"style"`

	Tags            []string `json:"searchTags"`
	StyleConformity *bool    `json:"styleConformity"`
}

// BrewfatherFermentable is one fermentable entry. Amount is kilograms.
type BrewfatherFermentable struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Supplier  string   `json:"supplier"`
	Amount    *float64 `json:"amount"`
	Yield     *float64 `json:"yield"`
	Color     *float64 `json:"color"`
	Inventory *float64 `json:"inventory"`
}

// BrewfatherHop is one hop entry. Amount is grams; Time is interpreted
// against TimeUnit; Day counts dry-hop contact days; Temp is the
// hopstand/whirlpool temperature in Celsius.
type BrewfatherHop struct {
	Name      string   `json:"name"`
	Origin    string   `json:"origin"`
	Alpha     *float64 `json:"alpha"`
	Amount    *float64 `json:"amount"`
	Use       string   `json:"use"`
	Time      *float64 `json:"time"`
	TimeUnit  string   `json:"timeUnit"`
	Temp      *float64 `json:"temp"`
	Day       *float64 `json:"day"`
	Inventory *float64 `json:"inventory"`
}

// BrewfatherYeast is one yeast entry.
type BrewfatherYeast struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Form        string   `json:"form"`
	Laboratory  string   `json:"laboratory"`
	Amount      *float64 `json:"amount"`
	Unit        string   `json:"unit"`
	Attenuation *float64 `json:"attenuation"`
	Inventory   *float64 `json:"inventory"`
}

// BrewfatherMisc is one miscellaneous ingredient entry.
type BrewfatherMisc struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Use       string   `json:"use"`
	Amount    *float64 `json:"amount"`
	Unit      string   `json:"unit"`
	Time      *float64 `json:"time"`
	TimeUnit  string   `json:"timeUnit"`
	Inventory *float64 `json:"inventory"`
}

// BrewfatherWater groups the source profile and the per-stage treatment
// objects.
type BrewfatherWater struct {
	Source *BrewfatherWaterIons  `json:"source"`
	Mash   *BrewfatherWaterStage `json:"mash"`
	Sparge *BrewfatherWaterStage `json:"sparge"`
	Total  *BrewfatherWaterStage `json:"total"`
}

// BrewfatherWaterIons is a water composition in ppm.
type BrewfatherWaterIons struct {
	Name        string   `json:"name"`
	Calcium     *float64 `json:"calcium"`
	Magnesium   *float64 `json:"magnesium"`
	Sodium      *float64 `json:"sodium"`
	Chloride    *float64 `json:"chloride"`
	Sulfate     *float64 `json:"sulfate"`
	Bicarbonate *float64 `json:"bicarbonate"`
	PH          *float64 `json:"ph"`
}

// BrewfatherWaterStage is one stage's treatment: treated volume, the seven
// brewing-salt masses in grams, and acid additions. The volume may be a
// bare number (implied liters) or a tagged quantity.
type BrewfatherWaterStage struct {
	Volume            *units.Quantity   `json:"volume"`
	Gypsum            *float64          `json:"gypsum"`
	CalciumChloride   *float64          `json:"calciumChloride"`
	Epsom             *float64          `json:"epsom"`
	TableSalt         *float64          `json:"tableSalt"`
	BakingSoda        *float64          `json:"bakingSoda"`
	CalciumHydroxide  *float64          `json:"calciumHydroxide"`
	MagnesiumChloride *float64          `json:"magnesiumChloride"`
	Acids             []*BrewfatherAcid `json:"acids"`
}

// BrewfatherAcid is one acid addition: ml of acid at a given concentration.
type BrewfatherAcid struct {
	Type          string   `json:"type"`
	Amount        *float64 `json:"amount"`
	Concentration *float64 `json:"concentration"`
}

// BrewfatherMash is the mash profile.
type BrewfatherMash struct {
	Name  string                 `json:"name"`
	Steps []*BrewfatherMashStep  `json:"steps"`
}

// BrewfatherMashStep is one mash step: Celsius and minutes.
type BrewfatherMashStep struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	StepTemp *float64 `json:"stepTemp"`
	StepTime *float64 `json:"stepTime"`
	RampTime *float64 `json:"rampTime"`
}

// BrewfatherProfile is the fermentation profile.
type BrewfatherProfile struct {
	Name  string                 `json:"name"`
	Steps []*BrewfatherFermStep  `json:"steps"`
}

// BrewfatherFermStep is one fermentation step: Celsius and days.
type BrewfatherFermStep struct {
	Type      string   `json:"type"`
	StepTemp  *float64 `json:"stepTemp"`
	EndTemp   *float64 `json:"endTemp"`
	StepTime  *float64 `json:"stepTime"`
}

// BrewfatherStyle identifies the target style.
type BrewfatherStyle struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	StyleGuide    string `json:"styleGuide"`
	Type          string `json:"type"`
}
