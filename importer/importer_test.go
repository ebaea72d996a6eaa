package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltworks/brewtools/brewerrors"
	"github.com/maltworks/brewtools/parser"
	"github.com/maltworks/brewtools/units"
)

// mixedUnitsBeerJSON uses US customary units throughout so every converted
// value must leave a trace in the extensions side-channel.
const mixedUnitsBeerJSON = `{
  "beerjson": {
    "version": 1.0,
    "recipes": [{
      "name": "West Coast IPA",
      "type": "all grain",
      "author": "R. Hopper",
      "batch_size": {"value": 5.5, "unit": "gal"},
      "boil": {
        "boil_time": {"value": 1, "unit": "hr"},
        "pre_boil_size": {"value": 7, "unit": "gal"}
      },
      "efficiency": {"brewhouse": {"value": 70, "unit": "%"}},
      "original_gravity": {"value": 1.060, "unit": "sg"},
      "final_gravity": {"value": 1.010, "unit": "sg"},
      "ingredients": {
        "fermentable_additions": [
          {"name": "2-Row Pale", "type": "grain", "amount": {"value": 12, "unit": "lb"}},
          {"name": "Crystal 40", "type": "grain", "amount": {"value": 1, "unit": "lb"},
           "color": {"value": 40, "unit": "lovibond"}}
        ],
        "hop_additions": [
          {"name": "Columbus", "amount": {"value": 1, "unit": "oz"},
           "timing": {"use": "add_to_boil", "duration": {"value": 60, "unit": "min"}}},
          {"name": "Citra", "amount": {"value": 2, "unit": "oz"},
           "timing": {"use": "add_to_fermentation", "duration": {"value": 3, "unit": "day"},
                      "phase": "fermentation"}}
        ],
        "culture_additions": [
          {"name": "SafAle US-05", "type": "ale", "form": "dry",
           "amount": {"value": 11.5, "unit": "g"}}
        ]
      },
      "mash": {
        "mash_steps": [
          {"name": "Sacch Rest",
           "step_temperature": {"value": 152, "unit": "F"},
           "step_time": {"value": 60, "unit": "min"}}
        ]
      }
    }]
  }
}`

const allMetricBeerJSON = `{
  "beerjson": {
    "version": 1.0,
    "recipes": [{
      "name": "Metric Pils",
      "batch_size": {"value": 20, "unit": "l"},
      "ingredients": {
        "fermentable_additions": [
          {"name": "Pilsner Malt", "amount": {"value": 4.5, "unit": "kg"}}
        ],
        "hop_additions": [
          {"name": "Saaz", "amount": {"value": 40, "unit": "g"},
           "timing": {"use": "add_to_boil", "duration": {"value": 60, "unit": "min"}}}
        ]
      }
    }]
  }
}`

const brewfatherWithWater = `{
  "_id": "rec-water-1",
  "name": "Burton Bitter",
  "batchSize": 20,
  "fermentables": [{"name": "Maris Otter", "amount": 4.2}],
  "hops": [{"name": "Challenger", "amount": 30, "use": "Boil", "time": 60}],
  "yeasts": [{"name": "WLP023", "amount": 1, "unit": "pkg"}],
  "equipment": {"name": "Kettle"},
  "water": {
    "source": {"name": "Burton", "calcium": 275, "sulfate": 610},
    "mash": {"volume": 16, "gypsum": 5.5, "acids": [{"type": "Lactic", "amount": 2, "concentration": 88}]},
    "sparge": {"volume": 10, "acids": [{"type": "Lactic", "amount": 1.5, "concentration": 88}]},
    "total": {"volume": 26}
  }
}`

func TestImportMixedUnits(t *testing.T) {
	result, err := Import([]byte(mixedUnitsBeerJSON))
	require.NoError(t, err)
	require.NotNil(t, result.Recipe)

	recipe := result.Recipe
	assert.Equal(t, parser.SourceFormatBeerJSON, result.SourceFormat)
	assert.Equal(t, "West Coast IPA", recipe.Name)
	assert.Equal(t, 1.0, recipe.BeerJSONVersion)

	require.NotNil(t, recipe.BatchSizeLiters)
	assert.InDelta(t, 20.819755, *recipe.BatchSizeLiters, 1e-4)
	require.NotNil(t, recipe.BoilTimeMinutes)
	assert.Equal(t, 60.0, *recipe.BoilTimeMinutes)
	require.NotNil(t, recipe.OriginalGravity)
	assert.Equal(t, 1.060, *recipe.OriginalGravity)

	require.Len(t, recipe.Fermentables, 2)
	assert.InDelta(t, 5.443108, recipe.Fermentables[0].AmountKilograms, 1e-4)
	require.NotNil(t, recipe.Fermentables[1].ColorSRM)
	assert.InDelta(t, 1.3546*40-0.76, *recipe.Fermentables[1].ColorSRM, 1e-6)

	require.Len(t, recipe.Hops, 2)
	assert.InDelta(t, 28.349523, recipe.Hops[0].AmountGrams, 1e-4)
	require.NotNil(t, recipe.Hops[1].Timing)
	assert.Equal(t, units.New(3, units.Days), recipe.Hops[1].Timing.Duration)

	require.Len(t, recipe.MashSteps, 1)
	require.NotNil(t, recipe.MashSteps[0].StepTemperatureCelsius)
	assert.InDelta(t, 66.667, *recipe.MashSteps[0].StepTemperatureCelsius, 1e-3)

	// Every non-metric source unit is recorded, per field and per line
	ext := result.Extensions
	require.NotNil(t, ext)
	assert.Equal(t, "gal", ext.OriginalUnits["batch_size"])
	assert.Equal(t, "gal", ext.OriginalUnits["boil_size"])
	assert.Equal(t, "hr", ext.OriginalUnits["boil_time"])
	assert.Equal(t, "lb", ext.IngredientOriginalUnits["fermentable_0_amount"])
	assert.Equal(t, "lb", ext.IngredientOriginalUnits["fermentable_1_amount"])
	assert.Equal(t, "lovibond", ext.IngredientOriginalUnits["fermentable_1_color"])
	assert.Equal(t, "oz", ext.IngredientOriginalUnits["hop_0_amount"])
	assert.Equal(t, "oz", ext.IngredientOriginalUnits["hop_1_amount"])
	assert.Equal(t, "F", ext.IngredientOriginalUnits["mash_step_0_step_temperature"])

	// Already-metric units never appear
	_, recorded := ext.OriginalUnits["og"]
	assert.False(t, recorded, "sg is canonical and must not be recorded")
	_, recorded = ext.IngredientOriginalUnits["culture_0_amount"]
	assert.False(t, recorded, "grams are canonical and must not be recorded")
	_, recorded = ext.IngredientOriginalUnits["hop_0_duration"]
	assert.False(t, recorded, "minutes are canonical and must not be recorded")
}

func TestImportAllMetricRecordsNothing(t *testing.T) {
	result, err := Import([]byte(allMetricBeerJSON))
	require.NoError(t, err)

	assert.Nil(t, result.Extensions, "an all-metric source needs no extension data")
	assert.Empty(t, result.Warnings)
	require.NotNil(t, result.Recipe.BatchSizeLiters)
	assert.Equal(t, 20.0, *result.Recipe.BatchSizeLiters)
	assert.Equal(t, 4.5, result.Recipe.Fermentables[0].AmountKilograms)
	assert.Equal(t, 40.0, result.Recipe.Hops[0].AmountGrams)
}

func TestImportBrewfatherWaterAdjustments(t *testing.T) {
	result, err := Import([]byte(brewfatherWithWater))
	require.NoError(t, err)
	recipe := result.Recipe

	assert.Equal(t, parser.SourceFormatBrewfather, result.SourceFormat)

	require.Len(t, recipe.WaterProfiles, 1)
	assert.Equal(t, "Burton", recipe.WaterProfiles[0].Name)
	require.NotNil(t, recipe.WaterProfiles[0].SulfatePPM)
	assert.Equal(t, 610.0, *recipe.WaterProfiles[0].SulfatePPM)

	// mash has a salt and an acid, sparge has an acid only, total has
	// neither: exactly two adjustment records
	require.Len(t, recipe.WaterAdjustments, 2)

	mash := recipe.WaterAdjustments[0]
	assert.Equal(t, "mash", mash.Stage)
	require.NotNil(t, mash.VolumeLiters)
	assert.Equal(t, 16.0, *mash.VolumeLiters, "bare-number volume implies liters")
	require.NotNil(t, mash.GypsumGrams)
	assert.Equal(t, 5.5, *mash.GypsumGrams)
	assert.Equal(t, "lactic", mash.AcidType)

	sparge := recipe.WaterAdjustments[1]
	assert.Equal(t, "sparge", sparge.Stage)
	assert.Nil(t, sparge.GypsumGrams)
	assert.Equal(t, "lactic", sparge.AcidType)
	require.NotNil(t, sparge.AcidAmountMilliliters)
	assert.Equal(t, 1.5, *sparge.AcidAmountMilliliters)

	// Vendor metadata lands in the passthrough block
	require.NotNil(t, result.Extensions)
	require.Contains(t, result.Extensions.Passthrough, "brewfather")
	assert.Equal(t, "rec-water-1", result.Extensions.Passthrough["brewfather"]["id"])
}

func TestImportPartialFailureIsolation(t *testing.T) {
	const input = `{
	  "beerjson": {
	    "version": 1.0,
	    "recipes": [{
	      "name": "Hoppy",
	      "ingredients": {
	        "hop_additions": [
	          {"name": "Cascade", "amount": {"value": 30, "unit": "g"}},
	          {"name": "Amarillo"},
	          {"name": "Centennial", "amount": {"value": 25, "unit": "g"}},
	          {"name": "Chinook", "amount": {"value": 20, "unit": "g"}}
	        ]
	      }
	    }]
	  }
	}`

	result, err := Import([]byte(input))
	require.NoError(t, err, "a skipped ingredient must not fail the import")

	require.Len(t, result.Recipe.Hops, 3, "siblings of the bad entry import normally")
	assert.Equal(t, "Cascade", result.Recipe.Hops[0].Name)
	assert.Equal(t, "Centennial", result.Recipe.Hops[1].Name)
	assert.Equal(t, "Chinook", result.Recipe.Hops[2].Name)

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.True(t, w.IsSkip())
	assert.Equal(t, "hop", w.Kind)
	assert.Equal(t, 1, w.Index)
	assert.Equal(t, "amount", w.Field)
	assert.Equal(t, 1, result.Stats.SkippedCount)
	assert.Equal(t, 3, result.Stats.HopCount)
}

func TestImportNoFabricatedDefaults(t *testing.T) {
	const input = `{
	  "beerjson": {
	    "version": 1.0,
	    "recipes": [{
	      "name": "Sparse",
	      "ingredients": {
	        "hop_additions": [
	          {"name": "Mystery Hop", "amount": {"value": 10, "unit": "g"}}
	        ]
	      }
	    }]
	  }
	}`

	result, err := Import([]byte(input))
	require.NoError(t, err)
	recipe := result.Recipe

	assert.Nil(t, recipe.Hops[0].Timing, "absent timing stays absent")
	assert.Nil(t, recipe.BatchSizeLiters)
	assert.Nil(t, recipe.OriginalGravity)
	assert.Nil(t, recipe.ColorSRM)
	assert.Empty(t, recipe.WaterAdjustments)
}

func TestImportStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{
			name:     "empty recipe list",
			input:    `<RECIPES></RECIPES>`,
			wantPath: "recipes",
		},
		{
			name:     "recipe without name",
			input:    `{"beerjson": {"version": 1.0, "recipes": [{"type": "all grain"}]}}`,
			wantPath: "recipes[0].name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Import([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, brewerrors.ErrStructural)
			var structErr *brewerrors.StructuralError
			require.ErrorAs(t, err, &structErr)
			assert.Equal(t, tt.wantPath, structErr.Path)
		})
	}
}

func TestImportUnknownFormat(t *testing.T) {
	result, err := Import([]byte(`{"just": "some json"}`))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, brewerrors.ErrFormat)
}

func TestImportStrictMode(t *testing.T) {
	const input = `{
	  "beerjson": {
	    "version": 1.0,
	    "recipes": [{
	      "name": "Strict",
	      "ingredients": {
	        "hop_additions": [{"name": "No Amount"}]
	      }
	    }]
	  }
	}`

	_, err := Import([]byte(input))
	require.NoError(t, err, "lenient mode records a warning")

	result, err := Import([]byte(input), WithStrictMode())
	require.Error(t, err, "strict mode promotes warnings to failure")
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestImportOptions(t *testing.T) {
	i := New(WithLogger(parser.NopLogger{}), WithStrictMode(), WithDetectionThreshold(5))
	assert.True(t, i.StrictMode)
	assert.Equal(t, 5, i.DetectionThreshold)
	assert.NotNil(t, i.Logger)
}

func TestImportStats(t *testing.T) {
	result, err := Import([]byte(brewfatherWithWater))
	require.NoError(t, err)

	assert.Equal(t, len(brewfatherWithWater), result.Stats.SourceBytes)
	assert.Equal(t, 1, result.Stats.FermentableCount)
	assert.Equal(t, 1, result.Stats.HopCount)
	assert.Equal(t, 1, result.Stats.CultureCount)
	assert.Zero(t, result.Stats.SkippedCount)
	assert.GreaterOrEqual(t, result.Stats.LoadTime.Nanoseconds(), int64(0))
}

func TestImportMultipleRecipesTakesFirst(t *testing.T) {
	const input = `{
	  "beerjson": {
	    "version": 1.0,
	    "recipes": [{"name": "First"}, {"name": "Second"}]
	  }
	}`
	result, err := Import([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "First", result.Recipe.Name)

	found := false
	for _, w := range result.Warnings {
		if w.Path == "recipes" {
			found = true
		}
	}
	assert.True(t, found, "ignored extra recipes must be reported")
	assert.False(t, errors.Is(err, brewerrors.ErrStructural))
}
