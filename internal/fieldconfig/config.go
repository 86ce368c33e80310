// Package fieldconfig defines the user-authored extraction intent: which fields to
// extract from documents, their types, and the context the extraction runs under.
package fieldconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType enumerates the supported field types in a configuration.
type FieldType string

// Field type constants match the config artifact's field_type values.
const (
	TypeString     FieldType = "str"
	TypeInt        FieldType = "int"
	TypeFloat      FieldType = "float"
	TypeBool       FieldType = "bool"
	TypeStringList FieldType = "list[str]"
	TypeEnum       FieldType = "enum"
	TypeEnumList   FieldType = "list[enum]"
)

// FieldSpec describes a single field the user wants extracted.
// Name is kept verbatim; normalization happens at schema compile time.
type FieldSpec struct {
	Name        string    `json:"field_name" validate:"required"`
	Type        FieldType `json:"field_type" validate:"required,oneof=str int float bool list[str] enum list[enum]"`
	Description string    `json:"description"`
	Required    bool      `json:"required"`
	EnumValues  []string  `json:"enum_values"`
}

// FieldConfig is the full user-authored extraction configuration.
type FieldConfig struct {
	UseCase             string      `json:"use_case" validate:"required"`
	Description         string      `json:"description"`
	MainModelName       string      `json:"main_model_name" validate:"required"`
	PurposeOfExtraction string      `json:"purpose_of_extraction"`
	DocumentType        string      `json:"document_type"`
	CustomInstructions  string      `json:"custom_instructions"`
	CreatedAt           string      `json:"created_at"`
	Fields              []FieldSpec `json:"fields" validate:"required,min=1,dive"`
}

// artifact is the on-disk envelope for a field configuration.
type artifact struct {
	ExtractionConfig struct {
		FieldConfig
		// Legacy combined instructions blob, split on load.
		AdditionalInstructions string `json:"additional_instructions"`
	} `json:"extraction_config"`
}

var validate = validator.New()

// mainModelNamePattern admits identifier-safe names: letters, digits and
// underscores, not starting with a digit.
var mainModelNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads a field configuration artifact from a JSON file.
func Load(path string) (*FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field config %s: %w", path, err)
	}
	return LoadData(data)
}

// LoadData parses a field configuration artifact from raw JSON and validates it.
func LoadData(data []byte) (*FieldConfig, error) {
	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("failed to parse field config JSON: %w", err)
	}

	cfg := art.ExtractionConfig.FieldConfig

	// Older artifacts carry one combined instructions blob instead of the
	// split purpose/document-type/custom fields.
	if art.ExtractionConfig.AdditionalInstructions != "" &&
		cfg.PurposeOfExtraction == "" && cfg.DocumentType == "" && cfg.CustomInstructions == "" {
		purpose, docType, custom := ParseAdditionalInstructions(art.ExtractionConfig.AdditionalInstructions)
		cfg.PurposeOfExtraction = purpose
		cfg.DocumentType = docType
		cfg.CustomInstructions = custom
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks structural and semantic constraints of the configuration.
// Enum-typed fields must declare enum values; other types must not.
func (c *FieldConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return &ConfigError{
				Field:   first.Namespace(),
				Message: fmt.Sprintf("failed %q constraint", first.Tag()),
			}
		}
		return &ConfigError{Message: err.Error()}
	}

	if !mainModelNamePattern.MatchString(c.MainModelName) {
		return &ConfigError{
			Field:   "main_model_name",
			Message: fmt.Sprintf("%q is not identifier-safe (letters, digits and underscores, not starting with a digit)", c.MainModelName),
		}
	}

	for _, field := range c.Fields {
		isEnum := field.Type == TypeEnum || field.Type == TypeEnumList
		if isEnum && len(field.EnumValues) == 0 {
			return &ConfigError{
				Field:   field.Name,
				Message: "enum field requires non-empty enum_values",
			}
		}
		if !isEnum && len(field.EnumValues) > 0 && field.Type != TypeStringList {
			return &ConfigError{
				Field:   field.Name,
				Message: fmt.Sprintf("enum_values not allowed for type %s", field.Type),
			}
		}
	}

	return nil
}

// structured instruction sentence written by the legacy authoring surface
var (
	purposePattern = regexp.MustCompile(`The purpose of this extraction task is (.+?)\. Therefore, the document should be related to`)
	docTypePattern = regexp.MustCompile(`Therefore, the document should be related to (.+?)\. Do not attempt`)
)

// ParseAdditionalInstructions splits a legacy combined instructions blob into
// its purpose, document type, and custom instruction components.
func ParseAdditionalInstructions(instructions string) (purpose, docType, custom string) {
	if strings.TrimSpace(instructions) == "" {
		return "", "", ""
	}

	for _, block := range strings.Split(instructions, "\n\n") {
		if strings.Contains(block, "The purpose of this extraction task is") &&
			strings.Contains(block, "Therefore, the document should be related to") {
			if m := purposePattern.FindStringSubmatch(block); m != nil {
				purpose = strings.TrimSpace(m[1])
			}
			if m := docTypePattern.FindStringSubmatch(block); m != nil {
				docType = strings.TrimSpace(m[1])
			}
			continue
		}
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if custom != "" {
			custom += "\n\n" + block
		} else {
			custom = block
		}
	}

	return purpose, docType, custom
}
