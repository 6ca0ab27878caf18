package main

import (
	"os"

	"github.com/insurekit/premiumcast/cmd/premiumcast/commands"
)

// main is the entry point for the premiumcast CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
