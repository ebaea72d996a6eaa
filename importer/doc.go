// Package importer is the one-call entry point of the engine: it detects the
// wire format of raw recipe bytes, translates them to the canonical tree,
// and deserializes that tree into the normalized Recipe aggregate.
//
// All quantities on the Recipe are canonical metric (liters, kilograms,
// grams, Celsius, minutes, days, specific gravity, percent, SRM, ppm).
// Units the source expressed differently are converted, and the original
// unit of every converted value is recorded in FormatExtensions so an
// exporter can reconstruct the source's unit choices line by line.
//
// Ingredient deserialization is guarded per entry: one hop with a missing
// amount or an unconvertible unit is skipped with a recorded warning while
// its siblings import normally. Only structural defects (no recipe list,
// a recipe without a name) abort the import.
package importer
