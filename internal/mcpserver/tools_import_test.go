package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBeerJSONWithSkip = `{"beerjson":{"version":1.0,"recipes":[{"name":"Skip Test","ingredients":{"hop_additions":[{"name":"Cascade","amount":{"value":30,"unit":"g"}},{"name":"Amountless"}]}}]}}`

func TestImportTool_BeerJSON(t *testing.T) {
	input := importInput{Recipe: recipeInput{Content: testBeerJSON}}
	result, output, err := handleImport(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	require.NotNil(t, output.Recipe)
	assert.Equal(t, "Test Pale", output.Recipe.Name)
	assert.Equal(t, "beerjson", output.SourceFormat)
	require.NotNil(t, output.Recipe.BatchSizeLiters)
	assert.InDelta(t, 20.0, *output.Recipe.BatchSizeLiters, 1e-9)
}

func TestImportTool_SkipsBadIngredient(t *testing.T) {
	input := importInput{Recipe: recipeInput{Content: testBeerJSONWithSkip}}
	result, output, err := handleImport(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 1, output.HopCount)
	assert.Equal(t, 1, output.SkippedCount)
	require.NotEmpty(t, output.Warnings)
	assert.Contains(t, output.Warnings[0], "hops[1]")
}

func TestImportTool_Strict(t *testing.T) {
	input := importInput{
		Recipe: recipeInput{Content: testBeerJSONWithSkip},
		Strict: true,
	}
	result, output, err := handleImport(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Nil(t, output.Recipe)
}

func TestImportTool_UnknownFormat(t *testing.T) {
	input := importInput{Recipe: recipeInput{Content: `{"whatever": true}`}}
	result, _, err := handleImport(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestImportTool_NoInput(t *testing.T) {
	result, _, err := handleImport(context.Background(), &mcp.CallToolRequest{}, importInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
