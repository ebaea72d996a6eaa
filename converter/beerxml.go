package converter

import (
	"fmt"
	"strings"

	"github.com/maltworks/brewtools/parser"
	"github.com/maltworks/brewtools/units"
)

// BeerXML 1.0 fixed units: the standard mandates kilograms for masses,
// liters for volumes, minutes for times, Celsius for temperatures, and
// Lovibond for fermentable color.
const (
	bxVolumeUnit = units.Liters
	bxMassUnit   = units.Kilograms
	bxTempUnit   = units.Celsius
	bxTimeUnit   = units.Minutes
	bxColorUnit  = "lovibond"
)

// convertBeerXML restructures a decoded BeerXML document into the canonical
// tree. Numeric elements arrive as raw strings and are parsed here; an
// unparseable value inside one element yields a warning and a nil quantity
// rather than aborting the rest of the document.
func (c *Converter) convertBeerXML(doc *parser.BeerXMLDocument, result *ConversionResult) *parser.CanonicalTree {
	tree := &parser.CanonicalTree{Version: 1.0}
	for i, recipe := range doc.Recipes {
		if recipe == nil {
			continue
		}
		tree.Recipes = append(tree.Recipes, c.convertBeerXMLRecipe(recipe, i, result))
	}
	return tree
}

func (c *Converter) convertBeerXMLRecipe(recipe *parser.BeerXMLRecipe, index int, result *ConversionResult) *parser.RecipeNode {
	path := fmt.Sprintf("recipes[%d]", index)

	node := &parser.RecipeNode{
		Name:            recipe.Name,
		Type:            strings.ToLower(recipe.Type),
		Author:          recipe.Brewer,
		BatchSize:       c.xmlQuantity(recipe.BatchSize, bxVolumeUnit, path+".batch_size", result),
		OriginalGravity: c.xmlQuantity(recipe.OG, units.SpecificGravity, path+".og", result),
		FinalGravity:    c.xmlQuantity(recipe.FG, units.SpecificGravity, path+".fg", result),
		AlcoholByVolume: c.xmlQuantity(recipe.ABV, units.Percent, path+".abv", result),
		IBUEstimate:     c.xmlQuantity(recipe.IBU, units.Dimensionless, path+".ibu", result),
		Carbonation:     c.xmlQuantity(recipe.Carbonation, units.Dimensionless, path+".carbonation", result),
	}

	// EST_COLOR is a display string in the wild ("13.2 SRM"); take the
	// leading number and tag it SRM.
	if recipe.Color != "" {
		if v := parseLeadingNumber(recipe.Color); v != nil {
			node.Color = units.New(*v, units.SRM)
		} else {
			c.addIssue(result, path+".est_color",
				fmt.Sprintf("unparseable color value %q dropped", recipe.Color), SeverityWarning)
		}
	}

	boilTime := c.xmlQuantity(recipe.BoilTime, bxTimeUnit, path+".boil_time", result)
	boilSize := c.xmlQuantity(recipe.BoilSize, bxVolumeUnit, path+".boil_size", result)
	if boilTime != nil || boilSize != nil {
		node.Boil = &parser.BoilNode{BoilTime: boilTime, BoilSize: boilSize}
	}
	if eff := c.xmlQuantity(recipe.Efficiency, units.Percent, path+".efficiency", result); eff != nil {
		node.Efficiency = &parser.EfficiencyNode{Brewhouse: eff}
	}
	if recipe.Style != nil {
		node.Style = &parser.StyleNode{
			Name:       recipe.Style.Name,
			Category:   recipe.Style.Category,
			StyleGuide: recipe.Style.StyleGuide,
			Type:       strings.ToLower(recipe.Style.Type),
		}
	}

	node.Ingredients = c.convertBeerXMLIngredients(recipe, path, result)
	node.Mash = c.convertBeerXMLMash(recipe.Mash, path, result)
	node.Fermentation = c.convertBeerXMLFermentation(recipe, path, result)

	return node
}

func (c *Converter) convertBeerXMLIngredients(recipe *parser.BeerXMLRecipe, path string, result *ConversionResult) *parser.IngredientsNode {
	ing := &parser.IngredientsNode{}

	for i, f := range recipe.Fermentables {
		if f == nil {
			continue
		}
		p := fmt.Sprintf("%s.fermentables[%d]", path, i)
		ing.FermentableAdditions = append(ing.FermentableAdditions, &parser.FermentableNode{
			Name:   f.Name,
			Type:   strings.ToLower(f.Type),
			Amount: c.xmlQuantity(f.Amount, bxMassUnit, p+".amount", result),
			Yield:  c.xmlQuantity(f.Yield, units.Percent, p+".yield", result),
			Color:  c.xmlQuantity(f.Color, bxColorUnit, p+".color", result),
		})
	}

	for i, h := range recipe.Hops {
		if h == nil {
			continue
		}
		p := fmt.Sprintf("%s.hops[%d]", path, i)
		ing.HopAdditions = append(ing.HopAdditions, &parser.HopNode{
			Name:      h.Name,
			Origin:    h.Origin,
			Form:      strings.ToLower(h.Form),
			AlphaAcid: c.xmlQuantity(h.Alpha, units.Percent, p+".alpha", result),
			Amount:    c.xmlQuantity(h.Amount, bxMassUnit, p+".amount", result),
			Timing:    c.convertBeerXMLHopTiming(h, p, result),
		})
	}

	for i, y := range recipe.Yeasts {
		if y == nil {
			continue
		}
		p := fmt.Sprintf("%s.yeasts[%d]", path, i)
		// AMOUNT_IS_WEIGHT selects kilograms over the liter default
		amountUnit := bxVolumeUnit
		if isXMLTrue(y.AmountIsWt) {
			amountUnit = bxMassUnit
		}
		ing.CultureAdditions = append(ing.CultureAdditions, &parser.CultureNode{
			Name:        y.Name,
			Type:        strings.ToLower(y.Type),
			Form:        strings.ToLower(y.Form),
			Producer:    y.Laboratory,
			Attenuation: c.xmlQuantity(y.Attenuation, units.Percent, p+".attenuation", result),
			Amount:      c.xmlQuantity(y.Amount, amountUnit, p+".amount", result),
		})
	}

	for i, m := range recipe.Miscs {
		if m == nil {
			continue
		}
		p := fmt.Sprintf("%s.miscs[%d]", path, i)
		amountUnit := bxVolumeUnit
		if isXMLTrue(m.AmountIsWt) {
			amountUnit = bxMassUnit
		}
		misc := &parser.MiscNode{
			Name:   m.Name,
			Type:   strings.ToLower(m.Type),
			Amount: c.xmlQuantity(m.Amount, amountUnit, p+".amount", result),
		}
		duration := c.xmlQuantity(m.Time, bxTimeUnit, p+".time", result)
		if m.Use != "" || duration != nil {
			misc.Timing = &parser.TimingNode{
				Use:      mapBeerXMLUse(m.Use),
				Duration: duration,
			}
		}
		ing.MiscellaneousAdditions = append(ing.MiscellaneousAdditions, misc)
	}

	for i, w := range recipe.Waters {
		if w == nil {
			continue
		}
		p := fmt.Sprintf("%s.waters[%d]", path, i)
		water := &parser.WaterNode{
			Name:        w.Name,
			Calcium:     c.xmlQuantity(w.Calcium, units.PPM, p+".calcium", result),
			Magnesium:   c.xmlQuantity(w.Magnesium, units.PPM, p+".magnesium", result),
			Sodium:      c.xmlQuantity(w.Sodium, units.PPM, p+".sodium", result),
			Chloride:    c.xmlQuantity(w.Chloride, units.PPM, p+".chloride", result),
			Sulfate:     c.xmlQuantity(w.Sulfate, units.PPM, p+".sulfate", result),
			Bicarbonate: c.xmlQuantity(w.Bicarbonate, units.PPM, p+".bicarbonate", result),
		}
		water.PH = parseNumber(w.PH)
		ing.WaterAdditions = append(ing.WaterAdditions, water)
	}

	return ing
}

// convertBeerXMLHopTiming maps a hop's USE and TIME onto canonical timing.
// Dry-hop times are days per the BeerXML convention; every other use counts
// TIME in minutes. A vendor hopstand temperature element is carried when
// present. Nil when the element had neither use nor time.
func (c *Converter) convertBeerXMLHopTiming(h *parser.BeerXMLHop, path string, result *ConversionResult) *parser.TimingNode {
	duration := c.xmlQuantity(h.Time, bxTimeUnit, path+".time", result)
	if h.Use == "" && duration == nil && h.VendorTemp == "" {
		return nil
	}

	timing := &parser.TimingNode{Use: mapBeerXMLUse(h.Use)}
	if strings.EqualFold(strings.TrimSpace(h.Use), "dry hop") {
		timing.Phase = "fermentation"
		if duration != nil {
			timing.Duration = units.New(duration.Value, units.Days)
		}
	} else {
		timing.Duration = duration
	}

	if h.VendorTemp != "" {
		if v := parseNumber(h.VendorTemp); v != nil {
			timing.Temperature = units.New(*v, bxTempUnit)
		} else {
			c.addIssue(result, path+".bf_temp",
				fmt.Sprintf("unparseable hop temperature %q dropped", h.VendorTemp), SeverityWarning)
		}
	}

	return timing
}

// mapBeerXMLUse maps BeerXML USE labels onto canonical addition points.
func mapBeerXMLUse(use string) string {
	switch strings.ToLower(strings.TrimSpace(use)) {
	case "":
		return ""
	case "boil", "aroma", "first wort":
		return "add_to_boil"
	case "dry hop", "primary", "secondary":
		return "add_to_fermentation"
	case "mash":
		return "add_to_mash"
	case "bottling":
		return "add_to_package"
	default:
		return strings.ToLower(strings.TrimSpace(use))
	}
}

func (c *Converter) convertBeerXMLMash(mash *parser.BeerXMLMash, path string, result *ConversionResult) *parser.MashNode {
	if mash == nil || len(mash.MashSteps) == 0 {
		return nil
	}
	node := &parser.MashNode{Name: mash.Name}
	for i, step := range mash.MashSteps {
		if step == nil {
			continue
		}
		p := fmt.Sprintf("%s.mash.mash_steps[%d]", path, i)
		node.MashSteps = append(node.MashSteps, &parser.MashStepNode{
			Name:            step.Name,
			Type:            strings.ToLower(step.Type),
			StepTemperature: c.xmlQuantity(step.StepTemp, bxTempUnit, p+".step_temp", result),
			StepTime:        c.xmlQuantity(step.StepTime, bxTimeUnit, p+".step_time", result),
			RampTime:        c.xmlQuantity(step.RampTime, bxTimeUnit, p+".ramp_time", result),
		})
	}
	return node
}

// convertBeerXMLFermentation synthesizes fermentation steps from the flat
// PRIMARY_AGE/PRIMARY_TEMP and SECONDARY_AGE/SECONDARY_TEMP pairs. A stage
// contributes a step only when at least one of its pair is present.
func (c *Converter) convertBeerXMLFermentation(recipe *parser.BeerXMLRecipe, path string, result *ConversionResult) *parser.FermentationNode {
	node := &parser.FermentationNode{}

	stages := []struct {
		name string
		age  string
		temp string
	}{
		{"primary", recipe.PrimaryAge, recipe.PrimaryTemp},
		{"secondary", recipe.SecondaryAge, recipe.SecondaryTemp},
	}

	for _, stage := range stages {
		age := c.xmlQuantity(stage.age, units.Days, fmt.Sprintf("%s.%s_age", path, stage.name), result)
		temp := c.xmlQuantity(stage.temp, bxTempUnit, fmt.Sprintf("%s.%s_temp", path, stage.name), result)
		if age == nil && temp == nil {
			continue
		}
		node.FermentationSteps = append(node.FermentationSteps, &parser.FermentationStepNode{
			Name:             stage.name,
			StartTemperature: temp,
			StepTime:         age,
		})
	}

	if len(node.FermentationSteps) == 0 {
		return nil
	}
	return node
}

// xmlQuantity leniently parses a raw BeerXML numeric string into a tagged
// quantity. Empty means absent; an unparseable value yields nil plus a
// warning against the element's path.
func (c *Converter) xmlQuantity(raw, unit, path string, result *ConversionResult) *units.Quantity {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v := parseNumber(raw)
	if v == nil {
		c.addIssue(result, path, fmt.Sprintf("unparseable numeric value %q dropped", raw), SeverityWarning)
		return nil
	}
	return units.New(*v, unit)
}

// isXMLTrue reports whether a BeerXML boolean element is TRUE.
func isXMLTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
