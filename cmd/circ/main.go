package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// A local .env can override CIRC_* settings during development.
	_ = godotenv.Load()

	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
