package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkravchenko/knowledge-extractor/internal/config"
	"github.com/mkravchenko/knowledge-extractor/internal/document"
	"github.com/mkravchenko/knowledge-extractor/internal/extraction"
	"github.com/mkravchenko/knowledge-extractor/internal/fieldconfig"
	"github.com/mkravchenko/knowledge-extractor/internal/observability"
	"github.com/mkravchenko/knowledge-extractor/internal/prompt"
	"github.com/mkravchenko/knowledge-extractor/internal/provider"
	"github.com/mkravchenko/knowledge-extractor/internal/schema"
	"github.com/mkravchenko/knowledge-extractor/internal/schemagen"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run schema-guided extraction over a batch of documents",
	Long:  "Run the full pipeline: establish the extraction schema for a field configuration, then extract one structured JSON record per document. Documents come from a parsed-documents JSON array or a directory of plain-text files.",
	RunE:  runExtract,
}

var (
	extractConfigFile  string
	extractCLIConfig   string
	extractDocuments   string
	extractDocsDir     string
	extractArtifact    string
	extractResultsOut  string
	extractSchemaBack  string
	extractExtractBack string
	extractSchemaModel string
	extractModel       string
	extractWorkers     int
	extractMaxTokens   int
	extractUseAzure    bool
	extractAzureEndpt  string
	extractAzureAPIVer string
	extractAzureDeploy string
	extractOffline     bool
	extractVerbose     bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractConfigFile, "config", "c", "", "Path to field configuration JSON (required)")
	extractCmd.Flags().StringVar(&extractCLIConfig, "config-file", "", "Path to a CLI config JSON providing flag defaults")
	extractCmd.Flags().StringVarP(&extractDocuments, "documents", "d", "", "Path to parsed-documents JSON array")
	extractCmd.Flags().StringVar(&extractDocsDir, "documents-dir", "", "Directory of plain-text documents")
	extractCmd.Flags().StringVar(&extractArtifact, "artifact", "", "Reuse a previously saved schema artifact instead of generating one")
	extractCmd.Flags().StringVarP(&extractResultsOut, "out", "o", "results.json", "Where to write batch results JSON")
	extractCmd.Flags().StringVar(&extractSchemaBack, "schema-backend", "", "Backend for schema generation: anthropic, openai or gemini")
	extractCmd.Flags().StringVar(&extractExtractBack, "extraction-backend", "", "Backend for extraction: anthropic, openai or gemini")
	extractCmd.Flags().StringVar(&extractSchemaModel, "schema-model", "", "Model override for schema generation")
	extractCmd.Flags().StringVar(&extractModel, "extraction-model", "", "Model override for extraction")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "Concurrent document extractions (default 1, sequential)")
	extractCmd.Flags().IntVar(&extractMaxTokens, "max-tokens", 0, "Response size cap per call")
	extractCmd.Flags().BoolVar(&extractUseAzure, "azure", false, "Route the OpenAI backend through an Azure endpoint")
	extractCmd.Flags().StringVar(&extractAzureEndpt, "azure-endpoint", "", "Azure OpenAI endpoint URL")
	extractCmd.Flags().StringVar(&extractAzureAPIVer, "azure-api-version", "", "Azure OpenAI API version")
	extractCmd.Flags().StringVar(&extractAzureDeploy, "azure-deployment", "", "Azure OpenAI deployment name")
	extractCmd.Flags().BoolVar(&extractOffline, "offline-schema", false, "Use the deterministic schema, no generative schema call")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed progress")
	_ = extractCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(extractCmd)
}

// resolveExtractConfig merges flag values over config-file defaults.
// Flags always win; the file only fills what the flags left empty.
func resolveExtractConfig() (config.Config, error) {
	cfg := config.Config{
		FieldConfig:       extractConfigFile,
		Documents:         extractDocuments,
		DocumentsDir:      extractDocsDir,
		ArtifactOut:       extractArtifact,
		ResultsOut:        extractResultsOut,
		SchemaBackend:     extractSchemaBack,
		ExtractionBackend: extractExtractBack,
		SchemaModel:       extractSchemaModel,
		ExtractionModel:   extractModel,
		UseAzure:          extractUseAzure,
		AzureEndpoint:     extractAzureEndpt,
		AzureAPIVersion:   extractAzureAPIVer,
		AzureDeployment:   extractAzureDeploy,
		Workers:           extractWorkers,
		MaxOutputTokens:   extractMaxTokens,
		Offline:           extractOffline,
		Verbose:           extractVerbose,
	}

	if extractCLIConfig != "" {
		fileCfg, err := config.LoadConfig(extractCLIConfig)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	} else {
		cfg = cfg.MergeWithDefaults(config.Config{})
	}

	if cfg.SchemaBackend == "" {
		cfg.SchemaBackend = string(provider.BackendAnthropic)
	}
	if cfg.ExtractionBackend == "" {
		cfg.ExtractionBackend = string(provider.BackendOpenAI)
	}

	return cfg, cfg.Validate()
}

func runExtract(_ *cobra.Command, _ []string) error {
	cfg, err := resolveExtractConfig()
	if err != nil {
		return err
	}

	fieldCfg, err := fieldconfig.Load(cfg.FieldConfig)
	if err != nil {
		return err
	}

	docs, err := loadDocuments(cfg)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents to extract")
	}
	fmt.Printf("Loaded %d documents\n", len(docs))

	ctx := context.Background()
	opts := buildProviderOptions(cfg)
	if err := opts.Validate(); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintProviders(cfg.SchemaBackend, cfg.ExtractionBackend, cfg.UseAzure)
		printer.PrintFieldConfig(fieldCfg)
	}

	compiled, artifact, err := establishSchema(ctx, cfg, fieldCfg, opts)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintSchema(compiled)
	}

	materialized, err := schema.Materialize(artifact, fieldCfg.MainModelName)
	if err != nil {
		return err
	}

	extractionProvider, err := provider.NewForExtraction(ctx, withModel(opts, opts.ExtractionBackend, cfg.ExtractionModel))
	if err != nil {
		return err
	}
	defer func() { _ = extractionProvider.Close() }()

	rulePrompt := prompt.ExtractionPrompt(fieldCfg, artifact)
	engine := extraction.NewEngine(
		extractionProvider, compiled, materialized,
		prompt.ContextFromConfig(fieldCfg), rulePrompt,
		extraction.WithMaxOutputTokens(cfg.MaxOutputTokens),
		extraction.WithVerbose(cfg.Verbose),
	)

	batch := extraction.NewBatch(engine,
		extraction.WithWorkers(cfg.Workers),
		extraction.WithBatchVerbose(cfg.Verbose),
	)

	fmt.Printf("Extracting with %s...\n", extractionProvider.Name())
	results, summary := batch.Run(ctx, docs)

	if err := writeResults(cfg.ResultsOut, results); err != nil {
		return err
	}

	printer.PrintBatchSummary(summary)
	fmt.Printf("✓ Results written to %s\n", cfg.ResultsOut)

	if summary.Failed > 0 {
		fmt.Printf("⚠ %d of %d documents fell back to default records\n", summary.Failed, summary.Total)
	}

	return nil
}

// establishSchema reuses a saved artifact when one is given, otherwise runs
// schema generation (generative with deterministic fallback, or offline).
func establishSchema(ctx context.Context, cfg config.Config, fieldCfg *fieldconfig.FieldConfig, opts provider.Options) (*schema.Schema, string, error) {
	if cfg.ArtifactOut != "" {
		data, err := os.ReadFile(cfg.ArtifactOut)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read schema artifact: %w", err)
		}
		compiled, err := schema.Compile(fieldCfg)
		if err != nil {
			return nil, "", err
		}
		return compiled, string(data), nil
	}

	var p provider.Provider
	if !cfg.Offline {
		var err error
		p, err = provider.NewForSchemaGeneration(ctx, withModel(opts, opts.SchemaBackend, cfg.SchemaModel))
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = p.Close() }()
	}

	engine := schemagen.NewEngine(p,
		schemagen.WithMaxOutputTokens(cfg.MaxOutputTokens),
		schemagen.WithVerbose(cfg.Verbose),
	)
	compiled, artifact, err := engine.Generate(ctx, fieldCfg)
	if err != nil {
		return nil, "", err
	}
	if engine.UsedFallback() {
		fmt.Println("⚠ Using deterministic schema artifact")
	}
	return compiled, artifact, nil
}

func loadDocuments(cfg config.Config) ([]document.Record, error) {
	switch {
	case cfg.Documents != "":
		return document.LoadRecords(cfg.Documents)
	case cfg.DocumentsDir != "":
		return document.LoadTextDirectory(cfg.DocumentsDir)
	default:
		return nil, fmt.Errorf("must provide --documents or --documents-dir")
	}
}

func writeResults(path string, results []extraction.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
