// Package brewtools provides tools for importing and normalizing brewing
// recipe files across the three common interchange formats.
//
// brewtools accepts BeerXML 1.0, BeerJSON 1.0, and the proprietary
// Brewfather JSON export dialect, and produces a single internal Recipe
// representation in canonical metric units. Nothing is lost silently:
// every non-metric unit and every vendor-specific water-chemistry field is
// either converted correctly or preserved in a format-extensions
// side-channel so a later export can reproduce the original file's units.
//
// # Packages
//
//   - parser: format detection and wire-format document models
//   - converter: structural translation of BeerXML and Brewfather
//     documents into the canonical (BeerJSON-shaped) tree
//   - units: tagged quantities and metric unit conversion
//   - importer: the one-call import pipeline producing a Recipe aggregate
//   - exporter: serialization of a Recipe back to BeerJSON with original
//     units restored
//   - brewerrors: structured error types for programmatic handling
//
// # Quick Start
//
// Import a recipe file of any supported format:
//
//	data, _ := os.ReadFile("my-ipa.json")
//	result, err := importer.Import(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s (%s): %d hops, %d warnings\n",
//		result.Recipe.Name, result.SourceFormat,
//		len(result.Recipe.Hops), len(result.Warnings))
//
// A structurally valid import never fails because of a single malformed
// ingredient: bad entries are skipped and reported as warnings while the
// rest of the recipe imports normally.
package brewtools
