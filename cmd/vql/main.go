// Package main is the entry point for the vql CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/vql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
