package importer

import (
	"fmt"
	"time"

	"github.com/maltworks/brewtools/converter"
	"github.com/maltworks/brewtools/internal/issues"
	"github.com/maltworks/brewtools/parser"
)

// Importer runs the full pipeline: detect, parse, translate to the
// canonical tree, deserialize into the Recipe aggregate. The zero value is
// usable; options and the exported fields configure it.
type Importer struct {
	// Logger receives debug/info output; defaults to NopLogger
	Logger parser.Logger
	// StrictMode promotes warnings (skipped ingredients, degraded values)
	// to import failure
	StrictMode bool
	// DetectionThreshold overrides the Brewfather indicator threshold;
	// zero keeps the default
	DetectionThreshold int
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used during import.
func WithLogger(logger parser.Logger) Option {
	return func(i *Importer) { i.Logger = logger }
}

// WithStrictMode makes any recorded warning fail the import instead of
// degrading.
func WithStrictMode() Option {
	return func(i *Importer) { i.StrictMode = true }
}

// WithDetectionThreshold overrides how many Brewfather indicators must
// match before JSON input is classified as Brewfather.
func WithDetectionThreshold(threshold int) Option {
	return func(i *Importer) { i.DetectionThreshold = threshold }
}

// New creates an Importer with the given options applied.
func New(opts ...Option) *Importer {
	i := &Importer{Logger: parser.NopLogger{}}
	for _, opt := range opts {
		opt(i)
	}
	if i.Logger == nil {
		i.Logger = parser.NopLogger{}
	}
	return i
}

// ImportStats summarizes one import.
type ImportStats struct {
	// SourceBytes is the input size
	SourceBytes int
	// LoadTime is the wall time the full pipeline took
	LoadTime time.Duration
	// FermentableCount through MiscCount count successfully imported
	// ingredients
	FermentableCount int
	HopCount         int
	CultureCount     int
	MiscCount        int
	// SkippedCount counts ingredients dropped with a recorded warning
	SkippedCount int
}

// ImportResult is the outcome of one import.
type ImportResult struct {
	// Recipe is the normalized aggregate
	Recipe *Recipe
	// SourceFormat is the detected wire format
	SourceFormat parser.SourceFormat
	// Warnings lists conversion and skip warnings in encounter order
	Warnings []issues.Issue
	// Stats summarizes the import
	Stats ImportStats
	// Extensions is Recipe.Extensions, exposed for direct access
	Extensions *FormatExtensions
}

// Import is a convenience that builds an Importer from the options and runs
// one import.
func Import(data []byte, opts ...Option) (*ImportResult, error) {
	return New(opts...).Import(data)
}

// Import runs the pipeline on raw recipe bytes.
func (i *Importer) Import(data []byte) (*ImportResult, error) {
	start := time.Now()
	log := i.Logger
	if log == nil {
		log = parser.NopLogger{}
	}

	p := &parser.Parser{
		BrewfatherThreshold: i.DetectionThreshold,
		Logger:              log,
	}
	parseResult, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	log.Debug("parsed input", "format", parseResult.SourceFormat, "bytes", len(data))

	conv := converter.New()
	conv.IncludeInfo = false
	convResult, err := conv.ToCanonical(parseResult)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}

	recipe, warnings, err := deserializeTree(convResult.Tree)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}

	// Converter warnings come first, then deserialization warnings, each
	// in encounter order
	all := make([]issues.Issue, 0, len(convResult.Issues)+len(warnings))
	all = append(all, convResult.Issues...)
	all = append(all, warnings...)

	if i.StrictMode && len(all) > 0 {
		return nil, fmt.Errorf("importer: strict mode: %d warnings, first: %s", len(all), all[0].String())
	}

	result := &ImportResult{
		Recipe:       recipe,
		SourceFormat: parseResult.SourceFormat,
		Warnings:     all,
		Extensions:   recipe.Extensions,
		Stats: ImportStats{
			SourceBytes:      len(data),
			LoadTime:         time.Since(start),
			FermentableCount: len(recipe.Fermentables),
			HopCount:         len(recipe.Hops),
			CultureCount:     len(recipe.Cultures),
			MiscCount:        len(recipe.Miscs),
			SkippedCount:     countSkips(all),
		},
	}
	log.Info("import complete",
		"recipe", recipe.Name,
		"format", result.SourceFormat,
		"warnings", len(all),
		"skipped", result.Stats.SkippedCount)
	return result, nil
}

func countSkips(warnings []issues.Issue) int {
	n := 0
	for _, w := range warnings {
		if w.IsSkip() {
			n++
		}
	}
	return n
}
