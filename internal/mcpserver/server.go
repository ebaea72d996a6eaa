// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes brewtools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/maltworks/brewtools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `brewtools MCP server — detects, imports, and converts brewing recipe files.

Supported formats: BeerXML 1.0, BeerJSON 1.0, and Brewfather JSON exports.
All imported recipes are normalized to canonical metric units (liters,
kilograms, grams, Celsius, minutes); the original units of every converted
value are preserved so a later export can reproduce the source file's units.

A structurally valid recipe never fails to import because of a single
malformed ingredient: bad entries are skipped and reported as warnings.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "brewtools", Version: brewtools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect",
		Description: "Classify a recipe document as BeerXML, BeerJSON, or Brewfather JSON. Returns the detected format together with the structural evidence that produced the classification; on an unknown result the evidence names what was and was not found.",
	}, handleDetect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import",
		Description: "Import a BeerXML, BeerJSON, or Brewfather recipe into a canonical metric recipe model. Returns the normalized recipe, the detected source format, per-ingredient skip warnings, and import statistics. Use strict=true to fail on any warning instead of degrading.",
	}, handleImport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert a BeerXML, BeerJSON, or Brewfather recipe to a BeerJSON 1.0 document. Each value whose source unit was non-metric is exported back in its original unit.",
	}, handleConvert)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
