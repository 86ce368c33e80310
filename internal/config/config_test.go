package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"documents": "docs.json",
		"schema_backend": "anthropic",
		"extraction_backend": "openai",
		"workers": 4,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "docs.json", cfg.Documents)
	assert.Equal(t, "anthropic", cfg.SchemaBackend)
	assert.Equal(t, "openai", cfg.ExtractionBackend)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		Documents:    "docs.json",
		DocumentsDir: "docs/",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		Workers: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestValidate_MissingFieldConfig(t *testing.T) {
	cfg := &Config{
		FieldConfig: "/nonexistent/fields.json",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "field config file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		SchemaBackend: "gemini",
		Workers:       8,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Documents:         "default-docs.json",
		SchemaBackend:     "anthropic",
		ExtractionBackend: "openai",
		Workers:           4,
	}

	cfg := Config{
		Documents: "override-docs.json",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "override-docs.json", merged.Documents)
	assert.Equal(t, "anthropic", merged.SchemaBackend)
	assert.Equal(t, "openai", merged.ExtractionBackend)
	assert.Equal(t, 4, merged.Workers)
}

func TestMergeWithDefaults_SequentialWorkers(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, 1, merged.Workers)
}

func TestMergeWithDefaults_FlagsWin(t *testing.T) {
	defaults := Config{
		ExtractionModel: "gpt-4o",
		AzureEndpoint:   "https://default.openai.azure.com",
	}

	cfg := Config{
		ExtractionModel: "gpt-4.1-2025-04-14",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "gpt-4.1-2025-04-14", merged.ExtractionModel)
	assert.Equal(t, "https://default.openai.azure.com", merged.AzureEndpoint)
}
