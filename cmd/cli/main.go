// Package main is the entry point for the traceflow-pricing CLI.
package main

import (
	"os"

	"traceflow-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
