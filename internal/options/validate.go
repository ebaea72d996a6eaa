// Package options holds small validation helpers shared by the CLI and the
// MCP server.
package options

import "fmt"

// ValidateSingleInputSource checks that exactly one way of supplying a
// recipe is set. Each source flag reports whether that input was provided;
// the caller supplies the message for the none-set and the several-set
// case so the wording can name its own fields.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	set := 0
	for _, provided := range sources {
		if provided {
			set++
		}
	}

	switch {
	case set == 0:
		return fmt.Errorf("%s", noSourceMsg)
	case set > 1:
		return fmt.Errorf("%s", multiSourceMsg)
	}
	return nil
}
