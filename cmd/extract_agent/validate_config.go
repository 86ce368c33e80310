package main

import (
	"fmt"
	"os"

	"github.com/mkravchenko/knowledge-extractor/internal/fieldconfig"
	"github.com/mkravchenko/knowledge-extractor/internal/observability"
	"github.com/mkravchenko/knowledge-extractor/internal/schema"
	"github.com/spf13/cobra"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate a field configuration file",
	Long:  "Validate a field configuration JSON file: structural constraints, enum declarations, and schema compilability, without calling any generative backend.",
	RunE:  runValidateConfig,
}

var (
	validateConfigFile string
	validateVerbose    bool
)

func init() {
	validateConfigCmd.Flags().StringVarP(&validateConfigFile, "config", "c", "", "Path to field configuration JSON (required)")
	validateConfigCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print the parsed configuration and compiled schema")
	_ = validateConfigCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(validateConfigCmd)
}

func runValidateConfig(_ *cobra.Command, _ []string) error {
	cfg, err := fieldconfig.Load(validateConfigFile)
	if err != nil {
		return err
	}

	// Compilation catches problems validation alone cannot, like two field
	// names that normalize to the same identifier.
	compiled, err := schema.Compile(cfg)
	if err != nil {
		return err
	}

	if validateVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintFieldConfig(cfg)
		printer.PrintSchema(compiled)
	}

	fmt.Printf("✓ Configuration is valid: %d fields, main model %s\n", len(cfg.Fields), cfg.MainModelName)
	return nil
}
