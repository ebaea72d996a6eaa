package converter

import (
	"fmt"
	"strings"

	"github.com/maltworks/brewtools/parser"
	"github.com/maltworks/brewtools/units"
)

// Brewfather's fixed export units. The dialect tags nothing; these are the
// units the vendor documents for each field family.
const (
	bfVolumeUnit = units.Liters
	bfMassUnit   = units.Kilograms // fermentables
	bfHopUnit    = units.Grams     // hops and misc default
	bfTempUnit   = units.Celsius
	bfTimeUnit   = units.Minutes
	bfColorUnit  = "ebc"
)

// convertBrewfather restructures a Brewfather export into the canonical
// tree. Structural translation only: implied units become tags, vendor-only
// data moves to the extensions block, no values are converted.
func (c *Converter) convertBrewfather(doc *parser.BrewfatherRecipe, result *ConversionResult) *parser.CanonicalTree {
	node := &parser.RecipeNode{
		Name:            doc.Name,
		Type:            strings.ToLower(doc.Type),
		Author:          doc.Author,
		BatchSize:       quantity(doc.BatchSize, bfVolumeUnit),
		OriginalGravity: quantity(doc.OG, units.SpecificGravity),
		FinalGravity:    quantity(doc.FG, units.SpecificGravity),
		AlcoholByVolume: quantity(doc.ABV, units.Percent),
		IBUEstimate:     quantity(doc.IBU, units.Dimensionless),
		Color:           quantity(doc.Color, bfColorUnit),
		Carbonation:     quantity(doc.Carbonation, units.Dimensionless),
	}

	if doc.BoilTime != nil || doc.BoilSize != nil {
		node.Boil = &parser.BoilNode{
			BoilTime: quantity(doc.BoilTime, bfTimeUnit),
			BoilSize: quantity(doc.BoilSize, bfVolumeUnit),
		}
	}
	if doc.Efficiency != nil {
		node.Efficiency = &parser.EfficiencyNode{
			Brewhouse: quantity(doc.Efficiency, units.Percent),
		}
	}
	if doc.Style != nil {
		node.Style = &parser.StyleNode{
			Name:       doc.Style.Name,
			Category:   doc.Style.Category,
			StyleGuide: doc.Style.StyleGuide,
			Type:       doc.Style.Type,
		}
	}

	ext := &parser.BrewfatherExtension{
		ID:              doc.ID,
		Tags:            doc.Tags,
		StyleConformity: doc.StyleConformity,
		InventoryCounts: map[string]float64{},
	}

	node.Ingredients = c.convertBrewfatherIngredients(doc, ext, result)
	node.Mash = convertBrewfatherMash(doc.Mash)
	node.Fermentation = convertBrewfatherFermentation(doc.Fermentation)
	c.convertBrewfatherWater(doc.Water, ext, result)

	if len(ext.InventoryCounts) == 0 {
		ext.InventoryCounts = nil
	}
	node.Extensions = map[string]any{parser.BrewfatherExtensionKey: ext}

	return &parser.CanonicalTree{Version: 1.0, Recipes: []*parser.RecipeNode{node}}
}

func (c *Converter) convertBrewfatherIngredients(doc *parser.BrewfatherRecipe, ext *parser.BrewfatherExtension, result *ConversionResult) *parser.IngredientsNode {
	ing := &parser.IngredientsNode{}

	for i, f := range doc.Fermentables {
		if f == nil {
			continue
		}
		ing.FermentableAdditions = append(ing.FermentableAdditions, &parser.FermentableNode{
			Name:     f.Name,
			Type:     strings.ToLower(f.Type),
			Producer: f.Supplier,
			Amount:   quantity(f.Amount, bfMassUnit),
			Yield:    quantity(f.Yield, units.Percent),
			Color:    quantity(f.Color, bfColorUnit),
		})
		if f.Inventory != nil {
			ext.InventoryCounts[fmt.Sprintf("fermentable_%d", i)] = *f.Inventory
		}
	}

	for i, h := range doc.Hops {
		if h == nil {
			continue
		}
		ing.HopAdditions = append(ing.HopAdditions, &parser.HopNode{
			Name:      h.Name,
			Origin:    h.Origin,
			AlphaAcid: quantity(h.Alpha, units.Percent),
			Amount:    quantity(h.Amount, bfHopUnit),
			Timing:    c.convertBrewfatherHopTiming(h, i, result),
		})
		if h.Inventory != nil {
			ext.InventoryCounts[fmt.Sprintf("hop_%d", i)] = *h.Inventory
		}
	}

	for i, y := range doc.Yeasts {
		if y == nil {
			continue
		}
		amountUnit := strings.ToLower(y.Unit)
		if amountUnit == "" {
			amountUnit = "pkg"
		}
		ing.CultureAdditions = append(ing.CultureAdditions, &parser.CultureNode{
			Name:        y.Name,
			Type:        strings.ToLower(y.Type),
			Form:        strings.ToLower(y.Form),
			Producer:    y.Laboratory,
			Attenuation: quantity(y.Attenuation, units.Percent),
			Amount:      quantity(y.Amount, amountUnit),
		})
		if y.Inventory != nil {
			ext.InventoryCounts[fmt.Sprintf("culture_%d", i)] = *y.Inventory
		}
	}

	for i, m := range doc.Miscs {
		if m == nil {
			continue
		}
		amountUnit := strings.ToLower(m.Unit)
		if amountUnit == "" {
			amountUnit = bfHopUnit
		}
		misc := &parser.MiscNode{
			Name:   m.Name,
			Type:   strings.ToLower(m.Type),
			Amount: quantity(m.Amount, amountUnit),
		}
		if m.Use != "" || m.Time != nil {
			misc.Timing = &parser.TimingNode{
				Use:      mapBrewfatherUse(m.Use),
				Duration: quantity(m.Time, normalizeTimeUnit(m.TimeUnit)),
			}
		}
		ing.MiscellaneousAdditions = append(ing.MiscellaneousAdditions, misc)
		if m.Inventory != nil {
			ext.InventoryCounts[fmt.Sprintf("misc_%d", i)] = *m.Inventory
		}
	}

	if doc.Water != nil && doc.Water.Source != nil {
		src := doc.Water.Source
		ing.WaterAdditions = append(ing.WaterAdditions, &parser.WaterNode{
			Name:        src.Name,
			Calcium:     quantity(src.Calcium, units.PPM),
			Magnesium:   quantity(src.Magnesium, units.PPM),
			Sodium:      quantity(src.Sodium, units.PPM),
			Chloride:    quantity(src.Chloride, units.PPM),
			Sulfate:     quantity(src.Sulfate, units.PPM),
			Bicarbonate: quantity(src.Bicarbonate, units.PPM),
			PH:          src.PH,
		})
	}

	return ing
}

// convertBrewfatherHopTiming translates Brewfather's {use, time, timeUnit,
// temp, day} quadruple into canonical timing. Returns nil when the source
// carries no timing information at all; timing is never fabricated.
func (c *Converter) convertBrewfatherHopTiming(h *parser.BrewfatherHop, index int, result *ConversionResult) *parser.TimingNode {
	if h.Use == "" && h.Time == nil && h.Day == nil && h.Temp == nil {
		return nil
	}

	timing := &parser.TimingNode{Use: mapBrewfatherUse(h.Use)}

	switch {
	case isDryHopUse(h.Use):
		// Dry hops are measured in contact days from the start of
		// fermentation
		timing.Phase = "fermentation"
		if h.Day != nil {
			timing.Duration = units.New(*h.Day, units.Days)
		} else if h.Time != nil {
			timing.Duration = quantity(h.Time, normalizeTimeUnit(h.TimeUnit))
		}
	default:
		if h.Time != nil {
			timing.Duration = quantity(h.Time, normalizeTimeUnit(h.TimeUnit))
		}
	}

	// A hopstand/whirlpool temperature must never be dropped
	if h.Temp != nil {
		timing.Temperature = units.New(*h.Temp, bfTempUnit)
		c.addIssue(result, fmt.Sprintf("hops[%d].timing", index),
			"whirlpool/hopstand temperature carried onto canonical timing", SeverityInfo)
	}

	return timing
}

// isDryHopUse reports whether a Brewfather hop use string denotes a dry hop.
func isDryHopUse(use string) bool {
	return strings.Contains(strings.ToLower(use), "dry")
}

// mapBrewfatherUse maps Brewfather hop/misc use labels onto canonical
// addition points. Unrecognized labels pass through lowercased rather than
// being guessed at.
func mapBrewfatherUse(use string) string {
	switch strings.ToLower(strings.TrimSpace(use)) {
	case "":
		return ""
	case "boil", "aroma", "first wort", "hopstand", "whirlpool":
		return "add_to_boil"
	case "dry hop":
		return "add_to_fermentation"
	case "mash":
		return "add_to_mash"
	case "bottling", "keg":
		return "add_to_package"
	default:
		return strings.ToLower(strings.TrimSpace(use))
	}
}

// normalizeTimeUnit maps Brewfather's timeUnit labels to unit tags,
// defaulting to minutes as the vendor does.
func normalizeTimeUnit(timeUnit string) string {
	switch strings.ToLower(strings.TrimSpace(timeUnit)) {
	case "", "min", "mins", "minute", "minutes":
		return units.Minutes
	case "hour", "hours", "hr", "hrs":
		return "hr"
	case "day", "days":
		return units.Days
	default:
		return strings.ToLower(strings.TrimSpace(timeUnit))
	}
}

func convertBrewfatherMash(mash *parser.BrewfatherMash) *parser.MashNode {
	if mash == nil || len(mash.Steps) == 0 {
		return nil
	}
	node := &parser.MashNode{Name: mash.Name}
	for _, step := range mash.Steps {
		if step == nil {
			continue
		}
		node.MashSteps = append(node.MashSteps, &parser.MashStepNode{
			Name:            step.Name,
			Type:            strings.ToLower(step.Type),
			StepTemperature: quantity(step.StepTemp, bfTempUnit),
			StepTime:        quantity(step.StepTime, bfTimeUnit),
			RampTime:        quantity(step.RampTime, bfTimeUnit),
		})
	}
	return node
}

func convertBrewfatherFermentation(profile *parser.BrewfatherProfile) *parser.FermentationNode {
	if profile == nil || len(profile.Steps) == 0 {
		return nil
	}
	node := &parser.FermentationNode{Name: profile.Name}
	for _, step := range profile.Steps {
		if step == nil {
			continue
		}
		node.FermentationSteps = append(node.FermentationSteps, &parser.FermentationStepNode{
			Name:             strings.ToLower(step.Type),
			StartTemperature: quantity(step.StepTemp, bfTempUnit),
			EndTemperature:   quantity(step.EndTemp, bfTempUnit),
			StepTime:         quantity(step.StepTime, units.Days),
		})
	}
	return node
}

// convertBrewfatherWater walks the three treatment stages and records an
// adjustment only for stages carrying at least one salt or acid. Stages
// with neither produce no record at all.
func (c *Converter) convertBrewfatherWater(water *parser.BrewfatherWater, ext *parser.BrewfatherExtension, result *ConversionResult) {
	if water == nil {
		return
	}

	stages := []struct {
		name  string
		stage *parser.BrewfatherWaterStage
	}{
		{"mash", water.Mash},
		{"sparge", water.Sparge},
		{"total", water.Total},
	}

	for _, s := range stages {
		if s.stage == nil {
			continue
		}
		record := buildWaterAdjustment(s.name, s.stage)
		if record.Empty() {
			continue
		}
		if len(s.stage.Acids) > 1 {
			c.addIssue(result, fmt.Sprintf("water.%s.acids", s.name),
				fmt.Sprintf("%d acid additions present, only the first is carried", len(s.stage.Acids)),
				SeverityWarning)
		}
		ext.WaterAdjustments = append(ext.WaterAdjustments, record)
	}
}

// buildWaterAdjustment collects the non-nil salt masses and the first acid
// addition of one stage.
func buildWaterAdjustment(stageName string, stage *parser.BrewfatherWaterStage) *parser.WaterAdjustmentRecord {
	record := &parser.WaterAdjustmentRecord{
		Stage:  stageName,
		Volume: stage.Volume,
		Salts:  map[string]float64{},
	}

	salts := []struct {
		key   string
		value *float64
	}{
		{"gypsum", stage.Gypsum},
		{"calcium_chloride", stage.CalciumChloride},
		{"epsom_salt", stage.Epsom},
		{"table_salt", stage.TableSalt},
		{"baking_soda", stage.BakingSoda},
		{"calcium_hydroxide", stage.CalciumHydroxide},
		{"magnesium_chloride", stage.MagnesiumChloride},
	}
	for _, salt := range salts {
		if salt.value != nil {
			record.Salts[salt.key] = *salt.value
		}
	}
	if len(record.Salts) == 0 {
		record.Salts = nil
	}

	if len(stage.Acids) > 0 && stage.Acids[0] != nil {
		acid := stage.Acids[0]
		record.AcidType = strings.ToLower(acid.Type)
		record.AcidAmount = acid.Amount
		record.AcidConcentration = acid.Concentration
	}

	return record
}
