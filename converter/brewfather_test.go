package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltworks/brewtools/parser"
	"github.com/maltworks/brewtools/units"
)

func convertBrewfatherDoc(t *testing.T, doc *parser.BrewfatherRecipe) *ConversionResult {
	t.Helper()
	result, err := New().ToCanonical(&parser.ParseResult{
		SourceFormat: parser.SourceFormatBrewfather,
		Document:     doc,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Tree)
	require.Len(t, result.Tree.Recipes, 1)
	return result
}

func TestConvertBrewfatherScalars(t *testing.T) {
	doc := &parser.BrewfatherRecipe{
		ID:          "rec-abc123",
		Name:        "Hazy Thing",
		Type:        "All Grain",
		Author:      "J. Brewer",
		BatchSize:   fptr(20),
		BoilSize:    fptr(24),
		BoilTime:    fptr(60),
		Efficiency:  fptr(72),
		OG:          fptr(1.062),
		FG:          fptr(1.012),
		ABV:         fptr(6.5),
		IBU:         fptr(45),
		Color:       fptr(12),
		Carbonation: fptr(2.4),
	}

	result := convertBrewfatherDoc(t, doc)
	recipe := result.Tree.Recipes[0]

	assert.Equal(t, "Hazy Thing", recipe.Name)
	assert.Equal(t, "all grain", recipe.Type)
	assert.Equal(t, "J. Brewer", recipe.Author)

	// Implied units are tagged, values stay untouched
	tests := []struct {
		name string
		q    *units.Quantity
		val  float64
		unit string
	}{
		{"batch size", recipe.BatchSize, 20, units.Liters},
		{"boil time", recipe.Boil.BoilTime, 60, units.Minutes},
		{"pre-boil size", recipe.Boil.BoilSize, 24, units.Liters},
		{"efficiency", recipe.Efficiency.Brewhouse, 72, units.Percent},
		{"og", recipe.OriginalGravity, 1.062, units.SpecificGravity},
		{"fg", recipe.FinalGravity, 1.012, units.SpecificGravity},
		{"abv", recipe.AlcoholByVolume, 6.5, units.Percent},
		{"ibu", recipe.IBUEstimate, 45, units.Dimensionless},
		{"color", recipe.Color, 12, "ebc"},
		{"carbonation", recipe.Carbonation, 2.4, units.Dimensionless},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.q)
			assert.Equal(t, tt.val, tt.q.Value)
			assert.Equal(t, tt.unit, tt.q.Unit)
		})
	}

	ext, ok := recipe.Extensions[parser.BrewfatherExtensionKey].(*parser.BrewfatherExtension)
	require.True(t, ok, "extension block must be present")
	assert.Equal(t, "rec-abc123", ext.ID)
}

func TestConvertBrewfatherAbsentScalarsStayAbsent(t *testing.T) {
	result := convertBrewfatherDoc(t, &parser.BrewfatherRecipe{Name: "Bare"})
	recipe := result.Tree.Recipes[0]

	assert.Nil(t, recipe.BatchSize)
	assert.Nil(t, recipe.Boil)
	assert.Nil(t, recipe.Efficiency)
	assert.Nil(t, recipe.OriginalGravity)
	assert.Nil(t, recipe.Color)
	assert.Nil(t, recipe.Mash)
	assert.Nil(t, recipe.Fermentation)
}

func TestConvertBrewfatherFermentables(t *testing.T) {
	doc := &parser.BrewfatherRecipe{
		Name: "Grist",
		Fermentables: []*parser.BrewfatherFermentable{
			{Name: "Pale Ale Malt", Type: "Grain", Supplier: "Weyermann",
				Amount: fptr(5.2), Yield: fptr(80), Color: fptr(7), Inventory: fptr(25)},
			{Name: "Flaked Oats", Type: "Grain", Amount: fptr(0.8)},
		},
	}

	result := convertBrewfatherDoc(t, doc)
	ferms := result.Tree.Recipes[0].Ingredients.FermentableAdditions
	require.Len(t, ferms, 2)

	assert.Equal(t, "Pale Ale Malt", ferms[0].Name)
	assert.Equal(t, "Weyermann", ferms[0].Producer)
	assert.Equal(t, units.Kilograms, ferms[0].Amount.Unit)
	assert.Equal(t, 5.2, ferms[0].Amount.Value)
	assert.Equal(t, "ebc", ferms[0].Color.Unit)
	assert.Nil(t, ferms[1].Yield)

	ext := result.Tree.Recipes[0].Extensions[parser.BrewfatherExtensionKey].(*parser.BrewfatherExtension)
	assert.Equal(t, map[string]float64{"fermentable_0": 25}, ext.InventoryCounts)
}

func TestConvertBrewfatherHopTiming(t *testing.T) {
	tests := []struct {
		name         string
		hop          *parser.BrewfatherHop
		wantNil      bool
		wantUse      string
		wantPhase    string
		wantDuration *units.Quantity
		wantTemp     *units.Quantity
	}{
		{
			name:         "boil addition in minutes",
			hop:          &parser.BrewfatherHop{Name: "Magnum", Use: "Boil", Time: fptr(60)},
			wantUse:      "add_to_boil",
			wantDuration: units.New(60, units.Minutes),
		},
		{
			name:         "dry hop measured in days",
			hop:          &parser.BrewfatherHop{Name: "Citra", Use: "Dry Hop", Day: fptr(3)},
			wantUse:      "add_to_fermentation",
			wantPhase:    "fermentation",
			wantDuration: units.New(3, units.Days),
		},
		{
			name:         "dry hop falls back to time and timeUnit",
			hop:          &parser.BrewfatherHop{Name: "Mosaic", Use: "Dry Hop", Time: fptr(4), TimeUnit: "days"},
			wantUse:      "add_to_fermentation",
			wantPhase:    "fermentation",
			wantDuration: units.New(4, units.Days),
		},
		{
			name:         "hopstand carries temperature",
			hop:          &parser.BrewfatherHop{Name: "Galaxy", Use: "Hopstand", Time: fptr(20), Temp: fptr(80)},
			wantUse:      "add_to_boil",
			wantDuration: units.New(20, units.Minutes),
			wantTemp:     units.New(80, units.Celsius),
		},
		{
			name:    "no timing data at all stays absent",
			hop:     &parser.BrewfatherHop{Name: "Mystery"},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &parser.BrewfatherRecipe{
				Name: "Hop Test",
				Hops: []*parser.BrewfatherHop{tt.hop},
			}
			result := convertBrewfatherDoc(t, doc)
			hops := result.Tree.Recipes[0].Ingredients.HopAdditions
			require.Len(t, hops, 1)

			timing := hops[0].Timing
			if tt.wantNil {
				assert.Nil(t, timing, "timing must never be fabricated")
				return
			}
			require.NotNil(t, timing)
			assert.Equal(t, tt.wantUse, timing.Use)
			assert.Equal(t, tt.wantPhase, timing.Phase)
			assert.Equal(t, tt.wantDuration, timing.Duration)
			assert.Equal(t, tt.wantTemp, timing.Temperature)
		})
	}
}

func TestConvertBrewfatherHopUnits(t *testing.T) {
	doc := &parser.BrewfatherRecipe{
		Name: "Units",
		Hops: []*parser.BrewfatherHop{
			{Name: "Simcoe", Alpha: fptr(13), Amount: fptr(50), Use: "Boil", Time: fptr(10)},
		},
	}
	result := convertBrewfatherDoc(t, doc)
	hop := result.Tree.Recipes[0].Ingredients.HopAdditions[0]

	assert.Equal(t, units.Grams, hop.Amount.Unit, "hop amounts are grams")
	assert.Equal(t, units.Percent, hop.AlphaAcid.Unit)
}

func TestConvertBrewfatherYeastAndMisc(t *testing.T) {
	doc := &parser.BrewfatherRecipe{
		Name: "Pitch",
		Yeasts: []*parser.BrewfatherYeast{
			{Name: "US-05", Type: "Ale", Form: "Dry", Laboratory: "Fermentis",
				Amount: fptr(2), Unit: "pkg", Attenuation: fptr(78)},
			{Name: "Starter", Amount: fptr(1.5), Unit: "L"},
		},
		Miscs: []*parser.BrewfatherMisc{
			{Name: "Whirlfloc", Type: "Fining", Use: "Boil", Amount: fptr(1), Unit: "items", Time: fptr(10)},
			{Name: "Gypsum", Amount: fptr(4)},
		},
	}

	result := convertBrewfatherDoc(t, doc)
	cultures := result.Tree.Recipes[0].Ingredients.CultureAdditions
	require.Len(t, cultures, 2)
	assert.Equal(t, "Fermentis", cultures[0].Producer)
	assert.Equal(t, "pkg", cultures[0].Amount.Unit)
	assert.Equal(t, "l", cultures[1].Amount.Unit, "vendor unit string is lowercased")

	miscs := result.Tree.Recipes[0].Ingredients.MiscellaneousAdditions
	require.Len(t, miscs, 2)
	require.NotNil(t, miscs[0].Timing)
	assert.Equal(t, "add_to_boil", miscs[0].Timing.Use)
	assert.Equal(t, units.New(10, units.Minutes), miscs[0].Timing.Duration)
	assert.Nil(t, miscs[1].Timing)
	assert.Equal(t, units.Grams, miscs[1].Amount.Unit, "misc amounts default to grams")
}

func TestConvertBrewfatherWaterSelectivity(t *testing.T) {
	doc := &parser.BrewfatherRecipe{
		Name: "Water",
		Water: &parser.BrewfatherWater{
			Source: &parser.BrewfatherWaterIons{
				Name: "Tap", Calcium: fptr(50), Sulfate: fptr(60), PH: fptr(7.8),
			},
			// Mash has salts and an acid: one record
			Mash: &parser.BrewfatherWaterStage{
				Volume:          units.New(18, units.Liters),
				Gypsum:          fptr(4.2),
				CalciumChloride: fptr(2.1),
				Acids: []*parser.BrewfatherAcid{
					{Type: "Lactic", Amount: fptr(3.5), Concentration: fptr(88)},
				},
			},
			// Sparge is volumes only, no salts, no acid: no record
			Sparge: &parser.BrewfatherWaterStage{
				Volume: units.New(12, units.Liters),
			},
			// Total has one salt: one record
			Total: &parser.BrewfatherWaterStage{
				TableSalt: fptr(1),
			},
		},
	}

	result := convertBrewfatherDoc(t, doc)
	recipe := result.Tree.Recipes[0]

	waters := recipe.Ingredients.WaterAdditions
	require.Len(t, waters, 1)
	assert.Equal(t, "Tap", waters[0].Name)
	assert.Equal(t, units.New(50, units.PPM), waters[0].Calcium)
	require.NotNil(t, waters[0].PH)
	assert.Equal(t, 7.8, *waters[0].PH)

	ext := recipe.Extensions[parser.BrewfatherExtensionKey].(*parser.BrewfatherExtension)
	require.Len(t, ext.WaterAdjustments, 2, "only stages with salts or acid produce records")

	mash := ext.WaterAdjustments[0]
	assert.Equal(t, "mash", mash.Stage)
	assert.Equal(t, units.New(18, units.Liters), mash.Volume)
	assert.Equal(t, map[string]float64{"gypsum": 4.2, "calcium_chloride": 2.1}, mash.Salts)
	assert.Equal(t, "lactic", mash.AcidType)
	require.NotNil(t, mash.AcidAmount)
	assert.Equal(t, 3.5, *mash.AcidAmount)
	require.NotNil(t, mash.AcidConcentration)
	assert.Equal(t, 88.0, *mash.AcidConcentration)

	total := ext.WaterAdjustments[1]
	assert.Equal(t, "total", total.Stage)
	assert.Equal(t, map[string]float64{"table_salt": 1}, total.Salts)
	assert.Empty(t, total.AcidType)
}

func TestConvertBrewfatherWaterZeroSaltIsStillRecorded(t *testing.T) {
	// Present-but-zero is distinct from absent
	doc := &parser.BrewfatherRecipe{
		Name: "Zero",
		Water: &parser.BrewfatherWater{
			Mash: &parser.BrewfatherWaterStage{Gypsum: fptr(0)},
		},
	}
	result := convertBrewfatherDoc(t, doc)
	ext := result.Tree.Recipes[0].Extensions[parser.BrewfatherExtensionKey].(*parser.BrewfatherExtension)
	require.Len(t, ext.WaterAdjustments, 1)
	assert.Equal(t, map[string]float64{"gypsum": 0}, ext.WaterAdjustments[0].Salts)
}

func TestConvertBrewfatherMultipleAcidsWarns(t *testing.T) {
	doc := &parser.BrewfatherRecipe{
		Name: "Acids",
		Water: &parser.BrewfatherWater{
			Mash: &parser.BrewfatherWaterStage{
				Acids: []*parser.BrewfatherAcid{
					{Type: "Lactic", Amount: fptr(2)},
					{Type: "Phosphoric", Amount: fptr(1)},
				},
			},
		},
	}
	result := convertBrewfatherDoc(t, doc)
	assert.True(t, result.HasWarnings())
	ext := result.Tree.Recipes[0].Extensions[parser.BrewfatherExtensionKey].(*parser.BrewfatherExtension)
	require.Len(t, ext.WaterAdjustments, 1)
	assert.Equal(t, "lactic", ext.WaterAdjustments[0].AcidType, "only the first acid is carried")
}

func TestConvertBrewfatherMashAndFermentation(t *testing.T) {
	doc := &parser.BrewfatherRecipe{
		Name: "Schedules",
		Mash: &parser.BrewfatherMash{
			Name: "Single Infusion",
			Steps: []*parser.BrewfatherMashStep{
				{Name: "Sacch Rest", Type: "Temperature", StepTemp: fptr(67), StepTime: fptr(60), RampTime: fptr(5)},
				{Name: "Mash Out", Type: "Temperature", StepTemp: fptr(76), StepTime: fptr(10)},
			},
		},
		Fermentation: &parser.BrewfatherProfile{
			Name: "Ale",
			Steps: []*parser.BrewfatherFermStep{
				{Type: "Primary", StepTemp: fptr(19), StepTime: fptr(10)},
				{Type: "Conditioning", StepTemp: fptr(2), EndTemp: fptr(2), StepTime: fptr(7)},
			},
		},
	}

	result := convertBrewfatherDoc(t, doc)
	recipe := result.Tree.Recipes[0]

	require.NotNil(t, recipe.Mash)
	require.Len(t, recipe.Mash.MashSteps, 2)
	assert.Equal(t, units.New(67, units.Celsius), recipe.Mash.MashSteps[0].StepTemperature)
	assert.Equal(t, units.New(60, units.Minutes), recipe.Mash.MashSteps[0].StepTime)
	assert.Equal(t, units.New(5, units.Minutes), recipe.Mash.MashSteps[0].RampTime)
	assert.Nil(t, recipe.Mash.MashSteps[1].RampTime)

	require.NotNil(t, recipe.Fermentation)
	require.Len(t, recipe.Fermentation.FermentationSteps, 2)
	assert.Equal(t, "primary", recipe.Fermentation.FermentationSteps[0].Name)
	assert.Equal(t, units.New(10, units.Days), recipe.Fermentation.FermentationSteps[0].StepTime)
	assert.Equal(t, units.New(2, units.Celsius), recipe.Fermentation.FermentationSteps[1].EndTemperature)
}

func TestConvertBrewfatherExtensionMetadata(t *testing.T) {
	conforms := true
	doc := &parser.BrewfatherRecipe{
		ID:              "rec-42",
		Name:            "Tagged",
		Tags:            []string{"ipa", "competition"},
		StyleConformity: &conforms,
	}
	result := convertBrewfatherDoc(t, doc)
	ext := result.Tree.Recipes[0].Extensions[parser.BrewfatherExtensionKey].(*parser.BrewfatherExtension)

	assert.Equal(t, "rec-42", ext.ID)
	assert.Equal(t, []string{"ipa", "competition"}, ext.Tags)
	require.NotNil(t, ext.StyleConformity)
	assert.True(t, *ext.StyleConformity)
	assert.Nil(t, ext.InventoryCounts, "no inventory data, no map")
}
