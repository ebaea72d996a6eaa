package mcpserver

import (
	"context"

	"github.com/maltworks/brewtools/importer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type importInput struct {
	Recipe    recipeInput `json:"recipe"              jsonschema:"The recipe document to import"`
	Strict    bool        `json:"strict,omitempty"    jsonschema:"Fail when any warning is produced instead of degrading"`
	Threshold int         `json:"threshold,omitempty" jsonschema:"Number of Brewfather shape indicators required for classification (default 3)"`
}

type importOutput struct {
	Recipe           *importer.Recipe `json:"recipe"`
	SourceFormat     string           `json:"source_format"`
	Warnings         []string         `json:"warnings,omitempty"`
	FermentableCount int              `json:"fermentable_count"`
	HopCount         int              `json:"hop_count"`
	CultureCount     int              `json:"culture_count"`
	MiscCount        int              `json:"misc_count"`
	SkippedCount     int              `json:"skipped_count"`
}

func handleImport(_ context.Context, _ *mcp.CallToolRequest, input importInput) (*mcp.CallToolResult, importOutput, error) {
	data, err := input.Recipe.resolve()
	if err != nil {
		return errResult(err), importOutput{}, nil
	}

	result, err := runImport(data, input.Strict, input.Threshold)
	if err != nil {
		return errResult(err), importOutput{}, nil
	}

	output := importOutput{
		Recipe:           result.Recipe,
		SourceFormat:     string(result.SourceFormat),
		Warnings:         warningStrings(result),
		FermentableCount: result.Stats.FermentableCount,
		HopCount:         result.Stats.HopCount,
		CultureCount:     result.Stats.CultureCount,
		MiscCount:        result.Stats.MiscCount,
		SkippedCount:     result.Stats.SkippedCount,
	}
	return nil, output, nil
}

// runImport builds the importer options shared by the import and convert
// tools.
func runImport(data []byte, strict bool, threshold int) (*importer.ImportResult, error) {
	opts := []importer.Option{}
	if threshold > 0 {
		opts = append(opts, importer.WithDetectionThreshold(threshold))
	}
	if strict {
		opts = append(opts, importer.WithStrictMode())
	}
	return importer.Import(data, opts...)
}

func warningStrings(result *importer.ImportResult) []string {
	if len(result.Warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		out = append(out, w.String())
	}
	return out
}
