package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/maltworks/brewtools/parser"
)

// DetectFlags holds the parsed command-line flags for the detect command.
type DetectFlags struct {
	RecipePath *string
	Format     *string
	Threshold  *int
	Quiet      *bool
}

// SetupDetectFlags creates and configures the flag set for the detect command.
func SetupDetectFlags() (*flag.FlagSet, *DetectFlags) {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	flags := &DetectFlags{
		RecipePath: fs.String("f", "", "Path to recipe file (required, use '-' for stdin)"),
		Format:     fs.String("format", FormatText, "Output format: text, json, or yaml"),
		Threshold: fs.Int("threshold", parser.DefaultBrewfatherThreshold,
			"Number of Brewfather shape indicators required for classification"),
		Quiet: fs.Bool("quiet", false, "Suppress detection evidence, print only the format name"),
	}

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: brewtools detect -f <recipe-path> [options]\n\n")
		Writef(fs.Output(), "Classify a recipe file as BeerXML, BeerJSON, or Brewfather JSON\n\n")
		Writef(fs.Output(), "Options:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// detectReport is the structured output of the detect command.
type detectReport struct {
	File     string   `json:"file" yaml:"file"`
	Format   string   `json:"format" yaml:"format"`
	Evidence []string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Summary  string   `json:"summary" yaml:"summary"`
}

// HandleDetect processes the detect command with the given arguments.
func HandleDetect(args []string) error {
	fs, flags := SetupDetectFlags()
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
	if err := ValidateOutputFormat(*flags.Format); err != nil {
		return err
	}

	data, err := ReadInput(*flags.RecipePath)
	if err != nil {
		return err
	}

	format, hints := parser.DetectFormatWithThreshold(data, *flags.Threshold)
	report := detectReport{
		File:     FormatRecipePath(*flags.RecipePath),
		Format:   string(format),
		Evidence: hints.Found(),
		Summary:  hints.Summary(),
	}

	switch *flags.Format {
	case FormatJSON, FormatYAML:
		return OutputStructured(report, *flags.Format)
	default:
		if *flags.Quiet {
			fmt.Println(report.Format)
			return nil
		}
		fmt.Printf("File:   %s\n", report.File)
		fmt.Printf("Format: %s\n", report.Format)
		fmt.Printf("Detail: %s\n", report.Summary)
		if len(report.Evidence) > 0 {
			Writef(os.Stderr, "Evidence:\n  %s\n", strings.Join(report.Evidence, "\n  "))
		}
	}

	if format == parser.SourceFormatUnknown {
		return fmt.Errorf("could not classify %s as a supported recipe format", report.File)
	}
	return nil
}
