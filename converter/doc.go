// Package converter translates format-specific recipe documents into the
// canonical (BeerJSON-shaped) tree.
//
// The conversion is purely structural: fields with a direct canonical
// analogue map 1:1, implied vendor units are attached as tags, and vendor
// data the canonical shape cannot represent (Brewfather inventory counts,
// search tags, per-stage water salt/acid records) moves into the recipe's
// extensions block. No unit values are converted here; that happens in the
// importer against the units package.
//
// Every conversion returns a ConversionResult carrying severity-graded
// issues, so lossy or best-effort mappings are reported rather than
// silently applied:
//
//	result, err := converter.ToCanonical(parseResult)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
package converter
