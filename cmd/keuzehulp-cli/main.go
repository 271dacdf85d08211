package main

import (
	"fmt"
	"os"

	"tv-keuzehulp-be/cmd/keuzehulp-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
