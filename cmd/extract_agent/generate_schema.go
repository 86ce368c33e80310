package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mkravchenko/knowledge-extractor/internal/config"
	"github.com/mkravchenko/knowledge-extractor/internal/fieldconfig"
	"github.com/mkravchenko/knowledge-extractor/internal/observability"
	"github.com/mkravchenko/knowledge-extractor/internal/prompt"
	"github.com/mkravchenko/knowledge-extractor/internal/provider"
	"github.com/mkravchenko/knowledge-extractor/internal/schemagen"
	"github.com/spf13/cobra"
)

var generateSchemaCmd = &cobra.Command{
	Use:   "generate-schema",
	Short: "Generate the extraction schema for a field configuration",
	Long:  "Generate the JSON Schema artifact and the reusable extraction prompt for a field configuration. Uses a generative backend with a deterministic fallback; --offline skips the backend entirely.",
	RunE:  runGenerateSchema,
}

var (
	genConfigFile  string
	genArtifactOut string
	genPromptOut   string
	genBackend     string
	genModel       string
	genMaxTokens   int
	genOffline     bool
	genVerbose     bool
)

func init() {
	generateSchemaCmd.Flags().StringVarP(&genConfigFile, "config", "c", "", "Path to field configuration JSON (required)")
	generateSchemaCmd.Flags().StringVarP(&genArtifactOut, "artifact-out", "o", "schema.json", "Where to write the schema artifact")
	generateSchemaCmd.Flags().StringVar(&genPromptOut, "prompt-out", "", "Where to write the reusable extraction prompt (optional)")
	generateSchemaCmd.Flags().StringVar(&genBackend, "backend", "anthropic", "Generative backend: anthropic, openai or gemini")
	generateSchemaCmd.Flags().StringVar(&genModel, "model", "", "Model override for the chosen backend")
	generateSchemaCmd.Flags().IntVar(&genMaxTokens, "max-tokens", 0, "Response size cap per call")
	generateSchemaCmd.Flags().BoolVar(&genOffline, "offline", false, "Build the deterministic artifact without calling a backend")
	generateSchemaCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed progress")
	_ = generateSchemaCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(generateSchemaCmd)
}

func runGenerateSchema(_ *cobra.Command, _ []string) error {
	cfg, err := fieldconfig.Load(genConfigFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var p provider.Provider
	if !genOffline {
		opts := buildProviderOptions(config.Config{SchemaBackend: genBackend})
		opts = withModel(opts, opts.SchemaBackend, genModel)
		p, err = provider.NewForSchemaGeneration(ctx, opts)
		if err != nil {
			return err
		}
		defer func() { _ = p.Close() }()
	}

	engine := schemagen.NewEngine(p,
		schemagen.WithMaxOutputTokens(genMaxTokens),
		schemagen.WithVerbose(genVerbose),
	)

	compiled, artifact, err := engine.Generate(ctx, cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(genArtifactOut, []byte(artifact), 0644); err != nil {
		return fmt.Errorf("failed to write schema artifact: %w", err)
	}

	if genVerbose {
		observability.NewPrinter(os.Stdout).PrintSchema(compiled)
	}

	switch {
	case genOffline:
		fmt.Printf("✓ Deterministic schema artifact written to %s\n", genArtifactOut)
	case engine.UsedFallback():
		fmt.Printf("✓ Schema artifact written to %s (deterministic fallback)\n", genArtifactOut)
	default:
		fmt.Printf("✓ Schema artifact written to %s\n", genArtifactOut)
	}

	if genPromptOut != "" {
		rulePrompt := prompt.ExtractionPrompt(cfg, artifact)
		if err := os.WriteFile(genPromptOut, []byte(rulePrompt), 0644); err != nil {
			return fmt.Errorf("failed to write extraction prompt: %w", err)
		}
		fmt.Printf("✓ Extraction prompt written to %s\n", genPromptOut)
	}

	return nil
}
