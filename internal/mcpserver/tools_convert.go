package mcpserver

import (
	"context"

	"github.com/maltworks/brewtools/exporter"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type convertInput struct {
	Recipe    recipeInput `json:"recipe"              jsonschema:"The recipe document to convert"`
	Compact   bool        `json:"compact,omitempty"   jsonschema:"Emit compact JSON without indentation"`
	Strict    bool        `json:"strict,omitempty"    jsonschema:"Fail when any warning is produced instead of degrading"`
	Threshold int         `json:"threshold,omitempty" jsonschema:"Number of Brewfather shape indicators required for classification (default 3)"`
}

type convertOutput struct {
	SourceFormat string   `json:"source_format"`
	Document     string   `json:"document"`
	Warnings     []string `json:"warnings,omitempty"`
}

func handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	data, err := input.Recipe.resolve()
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	result, err := runImport(data, input.Strict, input.Threshold)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	exp := exporter.New()
	exp.Indent = !input.Compact
	doc, err := exp.BeerJSON(result.Recipe)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	output := convertOutput{
		SourceFormat: string(result.SourceFormat),
		Document:     string(doc),
		Warnings:     warningStrings(result),
	}
	return nil, output, nil
}
