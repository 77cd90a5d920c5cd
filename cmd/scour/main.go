// Package main is the entrypoint for the scour CLI.
package main

import (
	"fmt"
	"os"

	"github.com/scour-search/scour-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
