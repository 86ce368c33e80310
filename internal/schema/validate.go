package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is a single validation mismatch at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates per-field mismatches between a record and its
// schema. Validation is advisory: callers keep the raw record either way.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateRecord checks a decoded record against the materialized schema.
// Returns nil when the record conforms; a *ValidationError otherwise.
func (m *Materialized) ValidateRecord(record map[string]any) error {
	result, err := m.compiled.Validate(gojsonschema.NewGoLoader(record))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// CoerceRecord applies light type coercion to a decoded record so that
// near-miss values ("42" for an integer field, a bare string for a list
// field) validate cleanly. Enum display values are never coerced: they must
// match a declared value exactly or fail validation.
func CoerceRecord(s *Schema, record map[string]any) map[string]any {
	coerced := make(map[string]any, len(record))
	for key, value := range record {
		field := s.Field(key)
		if field == nil {
			coerced[key] = value
			continue
		}
		coerced[key] = coerceValue(field, value)
	}
	return coerced
}

func coerceValue(field *Field, value any) any {
	switch field.Kind {
	case KindInt:
		if str, ok := value.(string); ok {
			if n, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64); err == nil {
				return n
			}
		}
	case KindFloat:
		if str, ok := value.(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
				return f
			}
		}
	case KindBool:
		if str, ok := value.(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(str))); err == nil {
				return b
			}
		}
	case KindStringList, KindEnumList:
		// A single scalar where a list is expected becomes a one-element list,
		// except the "n/a" sentinel which stays scalar for visibility.
		if str, ok := value.(string); ok && str != NotAvailable {
			return []any{str}
		}
	}
	return value
}

// NotAvailable is the sentinel the extraction contract uses for fields whose
// value cannot be verified from the source text.
const NotAvailable = "n/a"
