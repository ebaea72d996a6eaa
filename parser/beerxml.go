package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"
)

// BeerXML 1.0 document model.
//
// Numeric fields are declared as strings and parsed leniently downstream:
// a single malformed number inside one ingredient must not abort decoding
// of the whole file. BeerXML fixes its units by specification (amounts in
// kilograms, volumes in liters, times in minutes, temperatures in Celsius),
// so elements carry no unit tags; the converter attaches them.
//
// Vendor extension elements (internal IDs, fermentation-profile references,
// hop temperature fields) are superimposed on the standard schema by some
// exporters. They are tolerated as optional data and never required.

// BeerXMLDocument is the root <RECIPES> element.
type BeerXMLDocument struct {
	XMLName xml.Name         `xml:"RECIPES"`
	Recipes []*BeerXMLRecipe `xml:"RECIPE"`
}

// BeerXMLRecipe is one <RECIPE> element.
type BeerXMLRecipe struct {
	Name        string `xml:"NAME"`
	Type        string `xml:"TYPE"`
	Brewer      string `xml:"BREWER"`
	BatchSize   string `xml:"BATCH_SIZE"`
	BoilSize    string `xml:"BOIL_SIZE"`
	BoilTime    string `xml:"BOIL_TIME"`
	Efficiency  string `xml:"EFFICIENCY"`
	OG          string `xml:"OG"`
	FG          string `xml:"FG"`
	ABV         string `xml:"ABV"`
	IBU         string `xml:"IBU"`
	Color       string `xml:"EST_COLOR"`
	Carbonation string `xml:"CARBONATION"`

	Fermentables []*BeerXMLFermentable `xml:"FERMENTABLES>FERMENTABLE"`
	Hops         []*BeerXMLHop         `xml:"HOPS>HOP"`
	Yeasts       []*BeerXMLYeast       `xml:"YEASTS>YEAST"`
	Miscs        []*BeerXMLMisc        `xml:"MISCS>MISC"`
	Waters       []*BeerXMLWater       `xml:"WATERS>WATER"`
	Mash         *BeerXMLMash          `xml:"MASH"`
	Style        *BeerXMLStyle         `xml:"STYLE"`

	// Fermentation schedule fields (ages in days, temps in Celsius)
	PrimaryAge    string `xml:"PRIMARY_AGE"`
	PrimaryTemp   string `xml:"PRIMARY_TEMP"`
	SecondaryAge  string `xml:"SECONDARY_AGE"`
	SecondaryTemp string `xml:"SECONDARY_TEMP"`

	// Vendor extension: fermentation-profile reference, tolerated only
	FermentationProfileID string `xml:"BF_FERMENTATION_PROFILE"`
}

// BeerXMLFermentable is one <FERMENTABLE> element. Amount is in kilograms.
type BeerXMLFermentable struct {
	Name   string `xml:"NAME"`
	Type   string `xml:"TYPE"`
	Amount string `xml:"AMOUNT"`
	Yield  string `xml:"YIELD"`
	Color  string `xml:"COLOR"`
	// Vendor extension: exporter-internal ingredient ID, tolerated only
	VendorID string `xml:"BF_ID"`
}

// BeerXMLHop is one <HOP> element. Amount is in kilograms, Time in minutes.
type BeerXMLHop struct {
	Name   string `xml:"NAME"`
	Origin string `xml:"ORIGIN"`
	Alpha  string `xml:"ALPHA"`
	Amount string `xml:"AMOUNT"`
	Use    string `xml:"USE"`
	Time   string `xml:"TIME"`
	Form   string `xml:"FORM"`
	// Vendor extensions: hopstand temperature and internal ID, tolerated only
	VendorTemp string `xml:"BF_TEMP"`
	VendorID   string `xml:"BF_ID"`
}

// BeerXMLYeast is one <YEAST> element.
type BeerXMLYeast struct {
	Name        string `xml:"NAME"`
	Type        string `xml:"TYPE"`
	Form        string `xml:"FORM"`
	Laboratory  string `xml:"LABORATORY"`
	Amount      string `xml:"AMOUNT"`
	AmountIsWt  string `xml:"AMOUNT_IS_WEIGHT"`
	Attenuation string `xml:"ATTENUATION"`
}

// BeerXMLMisc is one <MISC> element. Amount is kilograms or liters
// depending on AMOUNT_IS_WEIGHT.
type BeerXMLMisc struct {
	Name       string `xml:"NAME"`
	Type       string `xml:"TYPE"`
	Use        string `xml:"USE"`
	Time       string `xml:"TIME"`
	Amount     string `xml:"AMOUNT"`
	AmountIsWt string `xml:"AMOUNT_IS_WEIGHT"`
}

// BeerXMLWater is one <WATER> element carrying ion concentrations in ppm.
type BeerXMLWater struct {
	Name        string `xml:"NAME"`
	Calcium     string `xml:"CALCIUM"`
	Magnesium   string `xml:"MAGNESIUM"`
	Sodium      string `xml:"SODIUM"`
	Chloride    string `xml:"CHLORIDE"`
	Sulfate     string `xml:"SULFATE"`
	Bicarbonate string `xml:"BICARBONATE"`
	PH          string `xml:"PH"`
}

// BeerXMLMash is the <MASH> element.
type BeerXMLMash struct {
	Name      string             `xml:"NAME"`
	MashSteps []*BeerXMLMashStep `xml:"MASH_STEPS>MASH_STEP"`
}

// BeerXMLMashStep is one <MASH_STEP> element. StepTemp is Celsius,
// StepTime minutes.
type BeerXMLMashStep struct {
	Name     string `xml:"NAME"`
	Type     string `xml:"TYPE"`
	StepTemp string `xml:"STEP_TEMP"`
	StepTime string `xml:"STEP_TIME"`
	RampTime string `xml:"RAMP_TIME"`
}

// BeerXMLStyle is the <STYLE> element.
type BeerXMLStyle struct {
	Name       string `xml:"NAME"`
	Category   string `xml:"CATEGORY"`
	StyleGuide string `xml:"STYLE_GUIDE"`
	Type       string `xml:"TYPE"`
}

// charsetReader resolves XML charset declarations through the WHATWG
// encoding index. BeerXML files in the wild commonly declare ISO-8859-1.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("parser: unsupported charset %q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// decodeBeerXML decodes raw bytes into a BeerXMLDocument.
func decodeBeerXML(data []byte) (*BeerXMLDocument, error) {
	var doc BeerXMLDocument
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parser: decoding BeerXML: %w", err)
	}
	return &doc, nil
}
