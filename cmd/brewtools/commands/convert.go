package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/maltworks/brewtools/exporter"
	"github.com/maltworks/brewtools/parser"
)

// ConvertFlags holds the parsed command-line flags for the convert command.
type ConvertFlags struct {
	RecipePath *string
	OutputPath *string
	Compact    *bool
	Strict     *bool
	Threshold  *int
	Quiet      *bool
}

// SetupConvertFlags creates and configures the flag set for the convert command.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{
		RecipePath: fs.String("f", "", "Path to recipe file (required, use '-' for stdin)"),
		OutputPath: fs.String("o", "", "Output file path (default: stdout)"),
		Compact:    fs.Bool("compact", false, "Emit compact JSON without indentation"),
		Strict:     fs.Bool("strict", false, "Fail when any warning is produced"),
		Threshold: fs.Int("threshold", parser.DefaultBrewfatherThreshold,
			"Number of Brewfather shape indicators required for classification"),
		Quiet: fs.Bool("quiet", false, "Suppress import summary and warnings"),
	}

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: brewtools convert -f <recipe-path> [options]\n\n")
		Writef(fs.Output(), "Convert a BeerXML, BeerJSON, or Brewfather recipe to BeerJSON,\n")
		Writef(fs.Output(), "restoring each line's original units where they were non-metric\n\n")
		Writef(fs.Output(), "Options:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleConvert processes the convert command with the given arguments.
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()
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

	exp := exporter.New()
	exp.Indent = !*flags.Compact
	out, err := exp.BeerJSON(result.Recipe)
	if err != nil {
		return err
	}

	if *flags.OutputPath == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(*flags.OutputPath, append(out, '\n'), 0600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !*flags.Quiet {
		Writef(os.Stderr, "Wrote %s\n", *flags.OutputPath)
	}
	return nil
}
