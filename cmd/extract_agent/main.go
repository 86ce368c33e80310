// Package main provides the entry point for the knowledge extraction CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "extract_agent",
	Short: "Schema-driven document extraction pipeline",
	Long:  "extract_agent turns a field configuration into a validated extraction schema and runs generative extraction over batches of parsed documents, producing one structured JSON record per document.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
