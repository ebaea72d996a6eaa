// Package parser provides format detection and document models for brewing
// recipe files.
//
// The parser accepts the three common recipe interchange formats: BeerXML
// 1.0, BeerJSON 1.0, and the proprietary Brewfather JSON export dialect.
// Detection is structural, not extension-based: JSON input is classified by
// the presence of the BeerJSON version wrapper or by scoring Brewfather
// root-shape indicators, and XML input by its root recipe-list element.
//
// # Quick Start
//
// Parse raw bytes of any supported format:
//
//	result, err := parser.ParseBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("format:", result.SourceFormat)
//	if doc, ok := result.Brewfather(); ok {
//		fmt.Println("recipe:", doc.Name)
//	}
//
// The parser only detects and decodes; it performs no unit conversion and
// no restructuring. The converter package translates BeerXML and
// Brewfather documents into the canonical (BeerJSON-shaped) tree, and the
// importer package walks that tree into the Recipe aggregate.
//
// # Charset Handling
//
// Real-world BeerXML exports frequently declare ISO-8859-1 or Windows-1252
// encodings. The XML decoder resolves declared charsets through
// golang.org/x/text/encoding/htmlindex, so such files decode without
// preprocessing.
package parser
