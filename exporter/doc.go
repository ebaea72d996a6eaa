// Package exporter serializes a normalized Recipe back to BeerJSON.
//
// Where the import recorded an original unit in the FormatExtensions
// side-channel, the exporter converts the canonical metric value back and
// tags it with that unit, so a recipe imported from a gallons-and-pounds
// source exports with gallons and pounds on exactly the lines that had
// them. Values that imported already metric export metric unchanged.
package exporter
