package mcpserver

import (
	"context"

	"github.com/maltworks/brewtools/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type detectInput struct {
	Recipe    recipeInput `json:"recipe"              jsonschema:"The recipe document to classify"`
	Threshold int         `json:"threshold,omitempty" jsonschema:"Number of Brewfather shape indicators required for classification (default 3)"`
}

type detectOutput struct {
	Format   string   `json:"format"`
	Summary  string   `json:"summary"`
	Evidence []string `json:"evidence,omitempty"`
}

func handleDetect(_ context.Context, _ *mcp.CallToolRequest, input detectInput) (*mcp.CallToolResult, detectOutput, error) {
	data, err := input.Recipe.resolve()
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}

	format, hints := parser.DetectFormatWithThreshold(data, input.Threshold)
	output := detectOutput{
		Format:   string(format),
		Summary:  hints.Summary(),
		Evidence: hints.Found(),
	}
	return nil, output, nil
}
