// Package main is the entry point for the statutree CLI.
package main

import (
	"os"

	"github.com/statutree/statutree/cmd/statutree/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
