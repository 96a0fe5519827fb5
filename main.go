// Package main is the entry point for the ticketero CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ticketero/ticketero/cmd"
	"github.com/ticketero/ticketero/internal/logging"
)

// main executes the root command and handles any errors that occur.
func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}
