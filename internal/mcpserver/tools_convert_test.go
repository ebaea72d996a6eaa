package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTool_BeerXMLToBeerJSON(t *testing.T) {
	input := convertInput{Recipe: recipeInput{Content: testBeerXML}}
	result, output, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "beerxml", output.SourceFormat)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(output.Document), &doc))
	wrapper, ok := doc["beerjson"].(map[string]any)
	require.True(t, ok, "output must carry a beerjson wrapper")
	recipes, ok := wrapper["recipes"].([]any)
	require.True(t, ok)
	require.Len(t, recipes, 1)
	recipe := recipes[0].(map[string]any)
	assert.Equal(t, "XML Bitter", recipe["name"])
}

func TestConvertTool_Compact(t *testing.T) {
	indented := convertInput{Recipe: recipeInput{Content: testBeerJSON}}
	_, pretty, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, indented)
	require.NoError(t, err)

	compact := convertInput{Recipe: recipeInput{Content: testBeerJSON}, Compact: true}
	_, flat, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, compact)
	require.NoError(t, err)

	assert.Contains(t, pretty.Document, "\n")
	assert.NotContains(t, strings.TrimSpace(flat.Document), "\n")
	assert.Less(t, len(flat.Document), len(pretty.Document))
}

func TestConvertTool_UnknownFormat(t *testing.T) {
	input := convertInput{Recipe: recipeInput{Content: `not a recipe at all`}}
	result, _, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
