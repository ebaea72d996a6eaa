package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"name": "Test Pale", "hops": 3}

	assert.NoError(t, OutputStructured(data, FormatJSON))
	assert.NoError(t, OutputStructured(data, FormatYAML))
	assert.Error(t, OutputStructured(data, FormatText))
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x"}`), 0600))

	data, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x"}`, string(data))

	_, err = ReadInput(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatRecipePath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatRecipePath(StdinFilePath))
	assert.Equal(t, "recipe.xml", FormatRecipePath("recipe.xml"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KB", FormatBytes(1024))
	assert.Equal(t, "1.5 MB", FormatBytes(1536*1024))
}
