package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/maltworks/brewtools/importer"
	"github.com/maltworks/brewtools/parser"
	"github.com/maltworks/brewtools/units"
)

// Exporter serializes Recipe aggregates to BeerJSON.
type Exporter struct {
	// Indent enables pretty-printed output
	Indent bool
}

// New creates an Exporter with default settings.
func New() *Exporter {
	return &Exporter{Indent: true}
}

// BeerJSON is a convenience that exports with default settings.
func BeerJSON(recipe *importer.Recipe) ([]byte, error) {
	return New().BeerJSON(recipe)
}

// BeerJSON serializes the recipe as a BeerJSON document, restoring the
// source's unit choices from the extensions side-channel. A recorded unit
// whose inversion is unknown degrades to the canonical metric value; the
// value itself is never lost.
func (e *Exporter) BeerJSON(recipe *importer.Recipe) ([]byte, error) {
	if recipe == nil {
		return nil, fmt.Errorf("exporter: nil recipe")
	}

	node := e.buildRecipeNode(recipe)
	doc := &parser.BeerJSONDocument{
		BeerJSON: &parser.CanonicalTree{
			Version: recipe.BeerJSONVersion,
			Recipes: []*parser.RecipeNode{node},
		},
	}
	if doc.BeerJSON.Version == 0 {
		doc.BeerJSON.Version = 1.0
	}

	if e.Indent {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("exporter: encoding BeerJSON: %w", err)
		}
		return data, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("exporter: encoding BeerJSON: %w", err)
	}
	return data, nil
}

func (e *Exporter) buildRecipeNode(recipe *importer.Recipe) *parser.RecipeNode {
	r := &restorer{ext: recipe.Extensions}

	node := &parser.RecipeNode{
		Name:            recipe.Name,
		Type:            recipe.Type,
		Author:          recipe.Author,
		BatchSize:       r.scalar("batch_size", recipe.BatchSizeLiters, units.Liters),
		OriginalGravity: r.scalar("og", recipe.OriginalGravity, units.SpecificGravity),
		FinalGravity:    r.scalar("fg", recipe.FinalGravity, units.SpecificGravity),
		AlcoholByVolume: r.scalar("abv", recipe.ABVPercent, units.Percent),
		IBUEstimate:     r.scalar("ibu", recipe.IBU, units.Dimensionless),
		Color:           r.scalar("color", recipe.ColorSRM, units.SRM),
		Carbonation:     r.scalar("carbonation", recipe.CarbonationVols, units.Dimensionless),
	}

	if recipe.BoilSizeLiters != nil || recipe.BoilTimeMinutes != nil {
		node.Boil = &parser.BoilNode{
			BoilSize: r.scalar("boil_size", recipe.BoilSizeLiters, units.Liters),
			BoilTime: r.scalar("boil_time", recipe.BoilTimeMinutes, units.Minutes),
		}
	}
	if recipe.EfficiencyPercent != nil {
		node.Efficiency = &parser.EfficiencyNode{
			Brewhouse: r.scalar("efficiency", recipe.EfficiencyPercent, units.Percent),
		}
	}
	if recipe.Style != nil {
		node.Style = &parser.StyleNode{
			Name:       recipe.Style.Name,
			Category:   recipe.Style.Category,
			StyleGuide: recipe.Style.StyleGuide,
			Type:       recipe.Style.Type,
		}
	}

	node.Ingredients = e.buildIngredients(recipe, r)
	node.Mash = buildMash(recipe, r)
	node.Fermentation = buildFermentation(recipe, r)
	node.Extensions = buildVendorExtensions(recipe)

	return node
}

func (e *Exporter) buildIngredients(recipe *importer.Recipe, r *restorer) *parser.IngredientsNode {
	if len(recipe.Fermentables) == 0 && len(recipe.Hops) == 0 &&
		len(recipe.Cultures) == 0 && len(recipe.Miscs) == 0 &&
		len(recipe.WaterProfiles) == 0 {
		return nil
	}
	ing := &parser.IngredientsNode{}

	for i, f := range recipe.Fermentables {
		amount := f.AmountKilograms
		ing.FermentableAdditions = append(ing.FermentableAdditions, &parser.FermentableNode{
			Name:     f.Name,
			Type:     f.Type,
			Producer: f.Producer,
			Amount:   r.ingredient("fermentable", i, "amount", &amount, units.Kilograms),
			Yield:    r.ingredient("fermentable", i, "yield", f.YieldPercent, units.Percent),
			Color:    r.ingredient("fermentable", i, "color", f.ColorSRM, units.SRM),
		})
	}

	for i, h := range recipe.Hops {
		amount := h.AmountGrams
		ing.HopAdditions = append(ing.HopAdditions, &parser.HopNode{
			Name:      h.Name,
			Producer:  h.Producer,
			Origin:    h.Origin,
			Form:      h.Form,
			AlphaAcid: r.ingredient("hop", i, "alpha_acid", h.AlphaAcidPercent, units.Percent),
			Amount:    r.ingredient("hop", i, "amount", &amount, units.Grams),
			Timing:    buildHopTiming(h.Timing, i, r),
		})
	}

	for i, c := range recipe.Cultures {
		ing.CultureAdditions = append(ing.CultureAdditions, &parser.CultureNode{
			Name:        c.Name,
			Type:        c.Type,
			Form:        c.Form,
			Producer:    c.Producer,
			Attenuation: r.ingredient("culture", i, "attenuation", c.AttenuationPercent, units.Percent),
			Amount:      r.quantity("culture", i, "amount", c.Amount),
		})
	}

	for i, m := range recipe.Miscs {
		misc := &parser.MiscNode{
			Name:   m.Name,
			Type:   m.Type,
			Amount: r.quantity("misc", i, "amount", m.Amount),
		}
		if m.Use != "" || m.TimeMinutes != nil {
			misc.Timing = &parser.TimingNode{
				Use:      m.Use,
				Duration: r.ingredient("misc", i, "time", m.TimeMinutes, units.Minutes),
			}
		}
		ing.MiscellaneousAdditions = append(ing.MiscellaneousAdditions, misc)
	}

	for i, w := range recipe.WaterProfiles {
		ing.WaterAdditions = append(ing.WaterAdditions, &parser.WaterNode{
			Name:        w.Name,
			Calcium:     r.ingredient("water", i, "calcium", w.CalciumPPM, units.PPM),
			Magnesium:   r.ingredient("water", i, "magnesium", w.MagnesiumPPM, units.PPM),
			Sodium:      r.ingredient("water", i, "sodium", w.SodiumPPM, units.PPM),
			Chloride:    r.ingredient("water", i, "chloride", w.ChloridePPM, units.PPM),
			Sulfate:     r.ingredient("water", i, "sulfate", w.SulfatePPM, units.PPM),
			Bicarbonate: r.ingredient("water", i, "bicarbonate", w.BicarbonatePPM, units.PPM),
			PH:          w.PH,
		})
	}

	return ing
}

func buildHopTiming(t *importer.HopTiming, index int, r *restorer) *parser.TimingNode {
	if t == nil {
		return nil
	}
	timing := &parser.TimingNode{Use: t.Use, Phase: t.Phase}
	if t.Duration != nil {
		timing.Duration = r.restoreQuantity("hop", index, "duration", t.Duration)
	}
	timing.Temperature = r.ingredient("hop", index, "temperature", t.TemperatureCelsius, units.Celsius)
	return timing
}

func buildMash(recipe *importer.Recipe, r *restorer) *parser.MashNode {
	if len(recipe.MashSteps) == 0 {
		return nil
	}
	node := &parser.MashNode{}
	for i, step := range recipe.MashSteps {
		node.MashSteps = append(node.MashSteps, &parser.MashStepNode{
			Name:            step.Name,
			Type:            step.Type,
			StepTemperature: r.ingredient("mash_step", i, "step_temperature", step.StepTemperatureCelsius, units.Celsius),
			StepTime:        r.ingredient("mash_step", i, "step_time", step.StepTimeMinutes, units.Minutes),
			RampTime:        r.ingredient("mash_step", i, "ramp_time", step.RampTimeMinutes, units.Minutes),
		})
	}
	return node
}

func buildFermentation(recipe *importer.Recipe, r *restorer) *parser.FermentationNode {
	if len(recipe.FermentationSteps) == 0 {
		return nil
	}
	node := &parser.FermentationNode{}
	for i, step := range recipe.FermentationSteps {
		node.FermentationSteps = append(node.FermentationSteps, &parser.FermentationStepNode{
			Name:             step.Name,
			StartTemperature: r.ingredient("fermentation_step", i, "start_temperature", step.StartTemperatureCelsius, units.Celsius),
			EndTemperature:   r.ingredient("fermentation_step", i, "end_temperature", step.EndTemperatureCelsius, units.Celsius),
			StepTime:         r.ingredient("fermentation_step", i, "step_time", step.StepTimeDays, units.Days),
		})
	}
	return node
}

// buildVendorExtensions reassembles the Brewfather extension block from the
// passthrough map and the first-class water adjustments.
func buildVendorExtensions(recipe *importer.Recipe) map[string]any {
	var ext *parser.BrewfatherExtension

	if recipe.Extensions != nil {
		if meta, ok := recipe.Extensions.Passthrough[parser.BrewfatherExtensionKey]; ok {
			ext = &parser.BrewfatherExtension{}
			if id, ok := meta["id"].(string); ok {
				ext.ID = id
			}
			if tags, ok := meta["tags"].([]string); ok {
				ext.Tags = tags
			}
			if conforms, ok := meta["style_conformity"].(bool); ok {
				ext.StyleConformity = &conforms
			}
			if counts, ok := meta["inventory_counts"].(map[string]float64); ok {
				ext.InventoryCounts = counts
			}
		}
	}

	if len(recipe.WaterAdjustments) > 0 {
		if ext == nil {
			ext = &parser.BrewfatherExtension{}
		}
		for _, adj := range recipe.WaterAdjustments {
			record := &parser.WaterAdjustmentRecord{
				Stage:             adj.Stage,
				AcidType:          adj.AcidType,
				AcidAmount:        adj.AcidAmountMilliliters,
				AcidConcentration: adj.AcidConcentrationPercent,
				Salts:             saltsMap(adj),
			}
			if adj.VolumeLiters != nil {
				record.Volume = units.New(*adj.VolumeLiters, units.Liters)
			}
			ext.WaterAdjustments = append(ext.WaterAdjustments, record)
		}
	}

	if ext == nil {
		return nil
	}
	return map[string]any{parser.BrewfatherExtensionKey: ext}
}

func saltsMap(adj *importer.WaterAdjustment) map[string]float64 {
	salts := map[string]float64{}
	set := func(key string, v *float64) {
		if v != nil {
			salts[key] = *v
		}
	}
	set("gypsum", adj.GypsumGrams)
	set("calcium_chloride", adj.CalciumChlorideGrams)
	set("epsom_salt", adj.EpsomSaltGrams)
	set("table_salt", adj.TableSaltGrams)
	set("baking_soda", adj.BakingSodaGrams)
	set("calcium_hydroxide", adj.CalciumHydroxideGrams)
	set("magnesium_chloride", adj.MagnesiumChlorideGrams)
	if len(salts) == 0 {
		return nil
	}
	return salts
}

// restorer converts canonical values back to their recorded source units.
type restorer struct {
	ext *importer.FormatExtensions
}

func (r *restorer) originalScalarUnit(field string) (string, bool) {
	if r.ext == nil {
		return "", false
	}
	unit, ok := r.ext.OriginalUnits[field]
	return unit, ok
}

// scalar emits a recipe-level value in its recorded original unit, or in
// the canonical unit when none was recorded or the inversion is unknown.
func (r *restorer) scalar(field string, v *float64, canonicalUnit string) *units.Quantity {
	if v == nil {
		return nil
	}
	if unit, ok := r.originalScalarUnit(field); ok {
		if restored, err := units.Convert(*units.New(*v, canonicalUnit), unit); err == nil {
			return units.New(restored, unit)
		}
	}
	return units.New(*v, canonicalUnit)
}

// ingredient is scalar for per-line ingredient fields.
func (r *restorer) ingredient(kind string, index int, field string, v *float64, canonicalUnit string) *units.Quantity {
	if v == nil {
		return nil
	}
	if r.ext != nil {
		if unit, ok := r.ext.IngredientUnit(kind, index, field); ok {
			if restored, err := units.Convert(*units.New(*v, canonicalUnit), unit); err == nil {
				return units.New(restored, unit)
			}
		}
	}
	return units.New(*v, canonicalUnit)
}

// quantity restores an already-tagged quantity (culture and misc amounts
// keep their family-canonical tag on the Recipe).
func (r *restorer) quantity(kind string, index int, field string, q *units.Quantity) *units.Quantity {
	if q == nil {
		return nil
	}
	return r.restoreQuantity(kind, index, field, q)
}

func (r *restorer) restoreQuantity(kind string, index int, field string, q *units.Quantity) *units.Quantity {
	if r.ext != nil {
		if unit, ok := r.ext.IngredientUnit(kind, index, field); ok {
			if restored, err := units.Convert(*q, unit); err == nil {
				return units.New(restored, unit)
			}
		}
	}
	return units.New(q.Value, q.Unit)
}
