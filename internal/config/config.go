// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	FieldConfig  string `json:"field_config,omitempty"`  // Path to the field configuration JSON
	Documents    string `json:"documents,omitempty"`     // Path to parsed-documents JSON array
	DocumentsDir string `json:"documents_dir,omitempty"` // Directory of plain-text documents

	// Outputs
	ArtifactOut string `json:"artifact_out,omitempty"` // Where to save the schema artifact
	PromptOut   string `json:"prompt_out,omitempty"`   // Where to save the extraction prompt
	ResultsOut  string `json:"results_out,omitempty"`  // Where to save batch results JSON

	// Backends
	SchemaBackend     string `json:"schema_backend,omitempty"`     // anthropic, openai or gemini
	ExtractionBackend string `json:"extraction_backend,omitempty"` // anthropic, openai or gemini
	SchemaModel       string `json:"schema_model,omitempty"`       // Model override for schema generation
	ExtractionModel   string `json:"extraction_model,omitempty"`   // Model override for extraction

	// Azure routing of the OpenAI backend
	UseAzure        bool   `json:"use_azure,omitempty"`
	AzureEndpoint   string `json:"azure_endpoint,omitempty"`
	AzureAPIVersion string `json:"azure_api_version,omitempty"`
	AzureDeployment string `json:"azure_deployment,omitempty"`

	// Behavior
	Workers         int  `json:"workers,omitempty"`           // Concurrent document extractions
	MaxOutputTokens int  `json:"max_output_tokens,omitempty"` // Response size cap per call
	Offline         bool `json:"offline,omitempty"`           // Deterministic schema only, no generative call
	Verbose         bool `json:"verbose,omitempty"`           // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Documents != "" && c.DocumentsDir != "" {
		return fmt.Errorf("config error: 'documents' and 'documents_dir' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("config error: 'max_output_tokens' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.FieldConfig != "" {
		if _, err := os.Stat(c.FieldConfig); os.IsNotExist(err) {
			return fmt.Errorf("config error: field config file not found: %s", c.FieldConfig)
		}
	}

	if c.Documents != "" {
		if _, err := os.Stat(c.Documents); os.IsNotExist(err) {
			return fmt.Errorf("config error: documents file not found: %s", c.Documents)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.FieldConfig == "" {
		result.FieldConfig = defaults.FieldConfig
	}
	if result.Documents == "" {
		result.Documents = defaults.Documents
	}
	if result.DocumentsDir == "" {
		result.DocumentsDir = defaults.DocumentsDir
	}
	if result.ArtifactOut == "" {
		result.ArtifactOut = defaults.ArtifactOut
	}
	if result.PromptOut == "" {
		result.PromptOut = defaults.PromptOut
	}
	if result.ResultsOut == "" {
		result.ResultsOut = defaults.ResultsOut
	}
	if result.SchemaBackend == "" {
		result.SchemaBackend = defaults.SchemaBackend
	}
	if result.ExtractionBackend == "" {
		result.ExtractionBackend = defaults.ExtractionBackend
	}
	if result.SchemaModel == "" {
		result.SchemaModel = defaults.SchemaModel
	}
	if result.ExtractionModel == "" {
		result.ExtractionModel = defaults.ExtractionModel
	}
	if result.AzureEndpoint == "" {
		result.AzureEndpoint = defaults.AzureEndpoint
	}
	if result.AzureAPIVersion == "" {
		result.AzureAPIVersion = defaults.AzureAPIVersion
	}
	if result.AzureDeployment == "" {
		result.AzureDeployment = defaults.AzureDeployment
	}

	// Int fields: use default if zero
	if result.Workers == 0 {
		if defaults.Workers > 0 {
			result.Workers = defaults.Workers
		} else {
			result.Workers = 1 // Sequential by default
		}
	}
	if result.MaxOutputTokens == 0 {
		result.MaxOutputTokens = defaults.MaxOutputTokens
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
