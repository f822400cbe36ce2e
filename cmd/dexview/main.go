/*
PURPOSE:
  Entry point for the dexview application.
  Loads .env, then initializes the CLI root command and executes it.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o dexview ./cmd/dexview
  ./dexview [command] [flags]
*/

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/daryltucker/dexview/internal/cli"
)

func main() {
	// Optional: DEX_* settings may live in a .env file.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
