// Package main provides the leapreport command-line entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/leapreport/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
