// Package main is the entry point for the morty CLI.
package main

import (
	"os"

	"github.com/f3rmion/morty/cmd/morty/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
