// Package main is the entry point for the telepilot CLI.
// The CLI drives a media device directly over the local network.
package main

import (
	"os"

	"telepilot/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
