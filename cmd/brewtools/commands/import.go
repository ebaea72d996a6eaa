package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/maltworks/brewtools/importer"
	"github.com/maltworks/brewtools/parser"
)

// ImportFlags holds the parsed command-line flags for the import command.
type ImportFlags struct {
	RecipePath *string
	Format     *string
	Strict     *bool
	Threshold  *int
	Quiet      *bool
}

// SetupImportFlags creates and configures the flag set for the import command.
func SetupImportFlags() (*flag.FlagSet, *ImportFlags) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	flags := &ImportFlags{
		RecipePath: fs.String("f", "", "Path to recipe file (required, use '-' for stdin)"),
		Format:     fs.String("format", FormatJSON, "Output format: json or yaml"),
		Strict:     fs.Bool("strict", false, "Fail when any warning is produced"),
		Threshold: fs.Int("threshold", parser.DefaultBrewfatherThreshold,
			"Number of Brewfather shape indicators required for classification"),
		Quiet: fs.Bool("quiet", false, "Suppress import summary and warnings"),
	}

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: brewtools import -f <recipe-path> [options]\n\n")
		Writef(fs.Output(), "Import a BeerXML, BeerJSON, or Brewfather recipe into the canonical metric model\n\n")
		Writef(fs.Output(), "Options:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleImport processes the import command with the given arguments.
func HandleImport(args []string) error {
	fs, flags := SetupImportFlags()
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *flags.RecipePath == "" {
		fs.Usage()
		return fmt.Errorf("recipe path is required (use -f)")
	}
	if *flags.Format != FormatJSON && *flags.Format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", *flags.Format, FormatJSON, FormatYAML)
	}

	data, err := ReadInput(*flags.RecipePath)
	if err != nil {
		return err
	}

	result, err := runImport(data, *flags.Strict, *flags.Threshold)
	if err != nil {
		return err
	}

	if !*flags.Quiet {
		printImportSummary(FormatRecipePath(*flags.RecipePath), result)
	}

	return OutputStructured(result.Recipe, *flags.Format)
}

// runImport performs the import with the flag-derived options applied.
func runImport(data []byte, strict bool, threshold int) (*importer.ImportResult, error) {
	opts := []importer.Option{importer.WithDetectionThreshold(threshold)}
	if strict {
		opts = append(opts, importer.WithStrictMode())
	}
	return importer.Import(data, opts...)
}

// printImportSummary writes the import summary and warnings to stderr,
// keeping stdout clean for the recipe data.
func printImportSummary(path string, result *importer.ImportResult) {
	Writef(os.Stderr, "Imported %s (%s, %s)\n", path, result.SourceFormat, FormatBytes(result.Stats.SourceBytes))
	Writef(os.Stderr, "  Fermentables: %d  Hops: %d  Cultures: %d  Miscs: %d\n",
		result.Stats.FermentableCount, result.Stats.HopCount,
		result.Stats.CultureCount, result.Stats.MiscCount)
	if result.Stats.SkippedCount > 0 {
		Writef(os.Stderr, "  Skipped entries: %d\n", result.Stats.SkippedCount)
	}
	for _, w := range result.Warnings {
		Writef(os.Stderr, "  %s\n", w.String())
	}
}
