package mcpserver

import (
	"fmt"
	"os"

	"github.com/maltworks/brewtools/internal/options"
)

// recipeInput represents the two ways a recipe document can be provided to
// a tool. Exactly one of File or Content must be set. Recipe files are small
// enough that results are not cached between calls.
type recipeInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a recipe file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline recipe document content (XML or JSON)"`
}

// resolve returns the raw recipe bytes from whichever source is set.
func (in recipeInput) resolve() ([]byte, error) {
	err := options.ValidateSingleInputSource(
		"one of file or content must be provided",
		"only one of file or content may be provided",
		in.File != "", in.Content != "")
	if err != nil {
		return nil, err
	}
	if in.Content != "" {
		return []byte(in.Content), nil
	}
	data, err := os.ReadFile(in.File)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}
	return data, nil
}
