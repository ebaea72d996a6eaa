package importer

import (
	"encoding/json"
	"fmt"

	"github.com/maltworks/brewtools/brewerrors"
	"github.com/maltworks/brewtools/internal/issues"
	"github.com/maltworks/brewtools/internal/severity"
	"github.com/maltworks/brewtools/parser"
	"github.com/maltworks/brewtools/units"
)

// deserializer walks one canonical tree, accumulating the extensions
// side-channel and the ordered warning list as it goes.
type deserializer struct {
	ext      *FormatExtensions
	warnings []issues.Issue
}

// deserializeTree validates the tree structurally and converts its first
// recipe into the normalized aggregate. Structural defects are fatal;
// everything past validation degrades to recorded warnings.
func deserializeTree(tree *parser.CanonicalTree) (*Recipe, []issues.Issue, error) {
	if tree == nil {
		return nil, nil, &brewerrors.StructuralError{
			Path:    "document",
			Message: "missing canonical recipe wrapper",
		}
	}
	if len(tree.Recipes) == 0 || tree.Recipes[0] == nil {
		return nil, nil, &brewerrors.StructuralError{
			Path:    "recipes",
			Message: "recipe list is missing or empty",
		}
	}
	node := tree.Recipes[0]
	if node.Name == "" {
		return nil, nil, &brewerrors.StructuralError{
			Path:    "recipes[0].name",
			Message: "recipe has no name",
		}
	}

	d := &deserializer{ext: newExtensions()}
	if len(tree.Recipes) > 1 {
		d.warn("recipes", fmt.Sprintf("document contains %d recipes, only the first is imported", len(tree.Recipes)))
	}

	recipe := d.recipe(node, tree.Version)
	recipe.Extensions = d.ext.prune()
	return recipe, d.warnings, nil
}

func (d *deserializer) warn(path, message string) {
	d.warnings = append(d.warnings, issues.Issue{
		Path:     path,
		Message:  message,
		Severity: severity.SeverityWarning,
	})
}

func (d *deserializer) skip(kind string, index int, field, reason string) {
	d.warnings = append(d.warnings, issues.SkippedIngredient(kind, index, field, reason))
}

// scalar converts a recipe-level quantity to its canonical unit, recording
// the source unit on success. Conversion failure degrades to a warning and
// an absent value with nothing recorded.
func (d *deserializer) scalar(field string, q *units.Quantity, target string) *float64 {
	if q == nil {
		return nil
	}
	v, err := units.Convert(*q, target)
	if err != nil {
		d.warn(field, fmt.Sprintf("cannot normalize %s: %v", q, err))
		return nil
	}
	d.ext.recordScalar(field, q)
	return &v
}

// ingredientValue converts one ingredient field, recording its source unit
// on success. The record index must be the entry's position in the Recipe
// aggregate, not in the source list: skipped source entries hold no
// aggregate position, and export looks units up by aggregate position.
// The error is returned for the caller to decide between skip and degrade.
func (d *deserializer) ingredientValue(kind string, recIndex int, field string, q *units.Quantity, target string) (*float64, error) {
	if q == nil {
		return nil, nil
	}
	v, err := units.Convert(*q, target)
	if err != nil {
		return nil, err
	}
	d.ext.recordIngredient(kind, recIndex, field, q)
	return &v, nil
}

// optionalIngredientValue is ingredientValue with conversion failure
// degraded to a warning instead of propagated. Warnings name the source
// position while recording stays keyed by aggregate position.
func (d *deserializer) optionalIngredientValue(kind string, srcIndex, recIndex int, field string, q *units.Quantity, target string) *float64 {
	v, err := d.ingredientValue(kind, recIndex, field, q, target)
	if err != nil {
		d.warn(fmt.Sprintf("%ss[%d].%s", kind, srcIndex, field),
			fmt.Sprintf("cannot normalize %s: %v", q, err))
		return nil
	}
	return v
}

func (d *deserializer) recipe(node *parser.RecipeNode, version float64) *Recipe {
	recipe := &Recipe{
		Name:            node.Name,
		Type:            node.Type,
		Author:          node.Author,
		BeerJSONVersion: version,

		BatchSizeLiters: d.scalar("batch_size", node.BatchSize, units.Liters),
		OriginalGravity: d.scalar("og", node.OriginalGravity, units.SpecificGravity),
		FinalGravity:    d.scalar("fg", node.FinalGravity, units.SpecificGravity),
		ABVPercent:      d.scalar("abv", node.AlcoholByVolume, units.Percent),
		IBU:             d.scalar("ibu", node.IBUEstimate, units.Dimensionless),
		ColorSRM:        d.scalar("color", node.Color, units.SRM),
		CarbonationVols: d.scalar("carbonation", node.Carbonation, units.Dimensionless),
	}

	if node.Boil != nil {
		recipe.BoilSizeLiters = d.scalar("boil_size", node.Boil.BoilSize, units.Liters)
		recipe.BoilTimeMinutes = d.scalar("boil_time", node.Boil.BoilTime, units.Minutes)
	}
	if node.Efficiency != nil {
		recipe.EfficiencyPercent = d.scalar("efficiency", node.Efficiency.Brewhouse, units.Percent)
	}
	if node.Style != nil {
		recipe.Style = &Style{
			Name:       node.Style.Name,
			Category:   node.Style.Category,
			StyleGuide: node.Style.StyleGuide,
			Type:       node.Style.Type,
		}
	}

	if node.Ingredients != nil {
		d.fermentables(recipe, node.Ingredients.FermentableAdditions)
		d.hops(recipe, node.Ingredients.HopAdditions)
		d.cultures(recipe, node.Ingredients.CultureAdditions)
		d.miscs(recipe, node.Ingredients.MiscellaneousAdditions)
		d.waterProfiles(recipe, node.Ingredients.WaterAdditions)
	}

	d.mash(recipe, node.Mash)
	d.fermentation(recipe, node.Fermentation)
	d.vendorExtension(recipe, node)

	return recipe
}

func (d *deserializer) fermentables(recipe *Recipe, nodes []*parser.FermentableNode) {
	for i, f := range nodes {
		if f == nil {
			d.skip("fermentable", i, "", "entry is null")
			continue
		}
		if f.Name == "" {
			d.skip("fermentable", i, "name", "missing required name")
			continue
		}
		if f.Amount == nil {
			d.skip("fermentable", i, "amount", "missing required amount")
			continue
		}
		idx := len(recipe.Fermentables)
		amount, err := d.ingredientValue("fermentable", idx, "amount", f.Amount, units.Kilograms)
		if err != nil {
			d.skip("fermentable", i, "amount", err.Error())
			continue
		}
		recipe.Fermentables = append(recipe.Fermentables, &Fermentable{
			Name:            f.Name,
			Type:            f.Type,
			Producer:        f.Producer,
			AmountKilograms: *amount,
			YieldPercent:    d.optionalIngredientValue("fermentable", i, idx, "yield", f.Yield, units.Percent),
			ColorSRM:        d.optionalIngredientValue("fermentable", i, idx, "color", f.Color, units.SRM),
		})
	}
}

func (d *deserializer) hops(recipe *Recipe, nodes []*parser.HopNode) {
	for i, h := range nodes {
		if h == nil {
			d.skip("hop", i, "", "entry is null")
			continue
		}
		if h.Name == "" {
			d.skip("hop", i, "name", "missing required name")
			continue
		}
		if h.Amount == nil {
			d.skip("hop", i, "amount", "missing required amount")
			continue
		}
		idx := len(recipe.Hops)
		amount, err := d.ingredientValue("hop", idx, "amount", h.Amount, units.Grams)
		if err != nil {
			d.skip("hop", i, "amount", err.Error())
			continue
		}
		recipe.Hops = append(recipe.Hops, &Hop{
			Name:             h.Name,
			Producer:         h.Producer,
			Origin:           h.Origin,
			Form:             h.Form,
			AlphaAcidPercent: d.optionalIngredientValue("hop", i, idx, "alpha_acid", h.AlphaAcid, units.Percent),
			AmountGrams:      *amount,
			Timing:           d.hopTiming(h.Timing, i, idx),
		})
	}
}

// hopTiming normalizes one timing block. Day-denominated durations keep
// their day count (dry-hop contact days are not minutes); everything else
// normalizes to minutes. Nil input stays nil.
func (d *deserializer) hopTiming(t *parser.TimingNode, srcIndex, recIndex int) *HopTiming {
	if t == nil {
		return nil
	}
	timing := &HopTiming{Use: t.Use, Phase: t.Phase}

	if t.Duration != nil {
		unit := units.Normalize(t.Duration.Unit)
		if unit == units.Days {
			timing.Duration = units.New(t.Duration.Value, units.Days)
			d.ext.recordIngredient("hop", recIndex, "duration", t.Duration)
		} else if v, err := units.Convert(*t.Duration, units.Minutes); err == nil {
			timing.Duration = units.New(v, units.Minutes)
			d.ext.recordIngredient("hop", recIndex, "duration", t.Duration)
		} else {
			d.warn(fmt.Sprintf("hops[%d].timing.duration", srcIndex),
				fmt.Sprintf("cannot normalize %s: %v", t.Duration, err))
		}
	}

	if t.Temperature != nil {
		if v, err := units.Convert(*t.Temperature, units.Celsius); err == nil {
			timing.TemperatureCelsius = &v
			d.ext.recordIngredient("hop", recIndex, "temperature", t.Temperature)
		} else {
			d.warn(fmt.Sprintf("hops[%d].timing.temperature", srcIndex),
				fmt.Sprintf("cannot normalize %s: %v", t.Temperature, err))
		}
	}

	return timing
}

func (d *deserializer) cultures(recipe *Recipe, nodes []*parser.CultureNode) {
	for i, c := range nodes {
		if c == nil {
			d.skip("culture", i, "", "entry is null")
			continue
		}
		if c.Name == "" {
			d.skip("culture", i, "name", "missing required name")
			continue
		}
		idx := len(recipe.Cultures)
		recipe.Cultures = append(recipe.Cultures, &Culture{
			Name:               c.Name,
			Type:               c.Type,
			Form:               c.Form,
			Producer:           c.Producer,
			AttenuationPercent: d.optionalIngredientValue("culture", i, idx, "attenuation", c.Attenuation, units.Percent),
			Amount:             d.flexibleAmount("culture", idx, c.Amount),
		})
	}
}

func (d *deserializer) miscs(recipe *Recipe, nodes []*parser.MiscNode) {
	for i, m := range nodes {
		if m == nil {
			d.skip("misc", i, "", "entry is null")
			continue
		}
		if m.Name == "" {
			d.skip("misc", i, "name", "missing required name")
			continue
		}
		idx := len(recipe.Miscs)
		misc := &MiscIngredient{
			Name:   m.Name,
			Type:   m.Type,
			Amount: d.flexibleAmount("misc", idx, m.Amount),
		}
		if m.Timing != nil {
			misc.Use = m.Timing.Use
			misc.TimeMinutes = d.optionalIngredientValue("misc", i, idx, "time", m.Timing.Duration, units.Minutes)
		}
		recipe.Miscs = append(recipe.Miscs, misc)
	}
}

// flexibleAmount canonicalizes an amount that may be a mass, a volume, or a
// count. Mass-family units become grams, volume-family units become liters,
// anything else (package counts, vendor units) passes through with its
// normalized tag. recIndex is the entry's aggregate position.
func (d *deserializer) flexibleAmount(kind string, recIndex int, q *units.Quantity) *units.Quantity {
	if q == nil {
		return nil
	}
	d.ext.recordIngredient(kind, recIndex, "amount", q)
	normalized := units.New(q.Value, units.Normalize(q.Unit))
	if v, err := units.Convert(*normalized, units.Grams); err == nil {
		return units.New(v, units.Grams)
	}
	if v, err := units.Convert(*normalized, units.Liters); err == nil {
		return units.New(v, units.Liters)
	}
	return normalized
}

func (d *deserializer) waterProfiles(recipe *Recipe, nodes []*parser.WaterNode) {
	for i, w := range nodes {
		if w == nil {
			continue
		}
		idx := len(recipe.WaterProfiles)
		recipe.WaterProfiles = append(recipe.WaterProfiles, &WaterProfile{
			Name:           w.Name,
			CalciumPPM:     d.optionalIngredientValue("water", i, idx, "calcium", w.Calcium, units.PPM),
			MagnesiumPPM:   d.optionalIngredientValue("water", i, idx, "magnesium", w.Magnesium, units.PPM),
			SodiumPPM:      d.optionalIngredientValue("water", i, idx, "sodium", w.Sodium, units.PPM),
			ChloridePPM:    d.optionalIngredientValue("water", i, idx, "chloride", w.Chloride, units.PPM),
			SulfatePPM:     d.optionalIngredientValue("water", i, idx, "sulfate", w.Sulfate, units.PPM),
			BicarbonatePPM: d.optionalIngredientValue("water", i, idx, "bicarbonate", w.Bicarbonate, units.PPM),
			PH:             w.PH,
		})
	}
}

func (d *deserializer) mash(recipe *Recipe, mash *parser.MashNode) {
	if mash == nil {
		return
	}
	for i, step := range mash.MashSteps {
		if step == nil {
			continue
		}
		idx := len(recipe.MashSteps)
		recipe.MashSteps = append(recipe.MashSteps, &MashStep{
			Name:                   step.Name,
			Type:                   step.Type,
			StepTemperatureCelsius: d.optionalIngredientValue("mash_step", i, idx, "step_temperature", step.StepTemperature, units.Celsius),
			StepTimeMinutes:        d.optionalIngredientValue("mash_step", i, idx, "step_time", step.StepTime, units.Minutes),
			RampTimeMinutes:        d.optionalIngredientValue("mash_step", i, idx, "ramp_time", step.RampTime, units.Minutes),
		})
	}
}

func (d *deserializer) fermentation(recipe *Recipe, ferm *parser.FermentationNode) {
	if ferm == nil {
		return
	}
	for i, step := range ferm.FermentationSteps {
		if step == nil {
			continue
		}
		idx := len(recipe.FermentationSteps)
		recipe.FermentationSteps = append(recipe.FermentationSteps, &FermentationStep{
			Name:                    step.Name,
			StartTemperatureCelsius: d.optionalIngredientValue("fermentation_step", i, idx, "start_temperature", step.StartTemperature, units.Celsius),
			EndTemperatureCelsius:   d.optionalIngredientValue("fermentation_step", i, idx, "end_temperature", step.EndTemperature, units.Celsius),
			StepTimeDays:            d.optionalIngredientValue("fermentation_step", i, idx, "step_time", step.StepTime, units.Days),
		})
	}
}

// vendorExtension lifts the Brewfather extension block off the tree:
// water adjustments become first-class Recipe data, the remaining vendor
// metadata lands in the passthrough map.
func (d *deserializer) vendorExtension(recipe *Recipe, node *parser.RecipeNode) {
	ext := brewfatherBlock(node)
	if ext == nil {
		return
	}

	for i, rec := range ext.WaterAdjustments {
		if rec == nil || rec.Empty() {
			continue
		}
		adj := &WaterAdjustment{
			Stage:                    rec.Stage,
			AcidType:                 rec.AcidType,
			AcidAmountMilliliters:    rec.AcidAmount,
			AcidConcentrationPercent: rec.AcidConcentration,
		}
		if rec.Volume != nil {
			// bare-number volumes imply liters
			vol := rec.Volume.WithDefaultUnit(units.Liters)
			adj.VolumeLiters = d.optionalIngredientValue("water_adjustment", i, len(recipe.WaterAdjustments), "volume", vol, units.Liters)
		}
		applySalts(adj, rec.Salts)
		recipe.WaterAdjustments = append(recipe.WaterAdjustments, adj)
	}

	meta := map[string]any{}
	if ext.ID != "" {
		meta["id"] = ext.ID
	}
	if len(ext.Tags) > 0 {
		meta["tags"] = ext.Tags
	}
	if ext.StyleConformity != nil {
		meta["style_conformity"] = *ext.StyleConformity
	}
	if len(ext.InventoryCounts) > 0 {
		meta["inventory_counts"] = ext.InventoryCounts
	}
	if len(meta) > 0 {
		d.ext.Passthrough["brewfather"] = meta
	}
}

// brewfatherBlock extracts the vendor block whether it arrived as the
// converter's typed struct or as generic JSON from a serialized tree.
func brewfatherBlock(node *parser.RecipeNode) *parser.BrewfatherExtension {
	raw, ok := node.Extensions[parser.BrewfatherExtensionKey]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case *parser.BrewfatherExtension:
		return v
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var ext parser.BrewfatherExtension
		if err := json.Unmarshal(data, &ext); err != nil {
			return nil
		}
		return &ext
	}
	return nil
}

func applySalts(adj *WaterAdjustment, salts map[string]float64) {
	assign := func(key string, dst **float64) {
		if v, ok := salts[key]; ok {
			val := v
			*dst = &val
		}
	}
	assign("gypsum", &adj.GypsumGrams)
	assign("calcium_chloride", &adj.CalciumChlorideGrams)
	assign("epsom_salt", &adj.EpsomSaltGrams)
	assign("table_salt", &adj.TableSaltGrams)
	assign("baking_soda", &adj.BakingSodaGrams)
	assign("calcium_hydroxide", &adj.CalciumHydroxideGrams)
	assign("magnesium_chloride", &adj.MagnesiumChlorideGrams)
}
