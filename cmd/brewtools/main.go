// Command brewtools is a CLI for importing, normalizing, and converting
// brewing recipe files (BeerXML, BeerJSON, Brewfather JSON).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/maltworks/brewtools"
	"github.com/maltworks/brewtools/cmd/brewtools/commands"
	"github.com/maltworks/brewtools/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("brewtools %s\n", brewtools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "detect":
		err = commands.HandleDetect(args)
	case "import":
		err = commands.HandleImport(args)
	case "convert":
		err = commands.HandleConvert(args)
	case "mcp":
		err = mcpserver.Run(context.Background())
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("brewtools - brewing recipe import and normalization tools")
	fmt.Println()
	fmt.Println("Usage: brewtools <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  detect    Classify a recipe file as BeerXML, BeerJSON, or Brewfather")
	fmt.Println("  import    Import a recipe into the canonical metric model")
	fmt.Println("  convert   Convert a recipe to BeerJSON with original units restored")
	fmt.Println("  mcp       Run as a Model Context Protocol server over stdio")
	fmt.Println("  version   Show version information")
	fmt.Println("  help      Show this help message")
	fmt.Println()
	fmt.Println("Run 'brewtools <command> -h' for command-specific options.")
}
