package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolForValue_Overrides(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Healthcare & wellbeing", "HEALTHCARE"},
		{"Transport, mobility, logistics", "TRANSPORT"},
		{"Business development/business services", "BUSINESS"},
		{"Generative AI", "GENERATIVE_AI"},
		{"Smart cities", "SMART_CITIES"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolForValue(tt.value))
		})
	}
}

func TestSymbolForValue_Derivation(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"multi word", "Natural language processing", "NATURAL_LANGUAGE_PROCESSING"},
		{"stop word dropped", "Internet of Things", "INTERNET_THINGS"},
		{"short first token kept", "AI research", "AI_RESEARCH"},
		{"slash delimiter", "Oil/Gas", "OIL_GAS"},
		{"hyphen delimiter", "Rule-based approach", "RULE_BASED_APPROACH"},
		{"digit prefix", "3D printing", "OPTION_3D_PRINTING"},
		{"purely numeric", "2024", "OPTION_2024"},
		{"punctuation only", "???", "OTHER"},
		{"single word", "Finance", "FINANCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolForValue(tt.value))
		})
	}
}

func TestSymbolForValue_OverrideTableIsExact(t *testing.T) {
	// A near-miss of an override entry goes through normal derivation.
	assert.Equal(t, "HEALTHCARE_WELLBEING", SymbolForValue("Healthcare wellbeing"))
}

func TestNormalizeUnicode(t *testing.T) {
	assert.Equal(t, "Health-care", NormalizeUnicode("Health–care"))
	assert.Equal(t, `"quoted"`, NormalizeUnicode("“quoted”"))
	assert.Equal(t, "it's", NormalizeUnicode("it’s"))
}

func TestSplitEnumValues_CommaJoinedSingle(t *testing.T) {
	got := splitEnumValues([]string{"Healthcare, Education, Transport, mobility, logistics, Finance"})

	assert.Equal(t, []string{
		"Healthcare",
		"Education",
		"Transport, mobility, logistics",
		"Finance",
	}, got)
}

func TestSplitEnumValues_BusinessDevelopmentLookahead(t *testing.T) {
	got := splitEnumValues([]string{"Retail, business development, business services, Finance"})

	assert.Equal(t, []string{
		"Retail",
		"business development, business services",
		"Finance",
	}, got)
}

func TestSplitEnumValues_CompoundCategoryAlone(t *testing.T) {
	// A single compound category containing commas is one value, not three.
	got := splitEnumValues([]string{"Transport, mobility, logistics"})

	assert.Equal(t, []string{"Transport, mobility, logistics"}, got)
}

func TestSplitEnumValues_MultipleValuesUntouched(t *testing.T) {
	got := splitEnumValues([]string{"Alpha, Beta", "Gamma"})

	assert.Equal(t, []string{"Alpha, Beta", "Gamma"}, got)
}

func TestSplitEnumValues_NoCommas(t *testing.T) {
	got := splitEnumValues([]string{"Alpha"})

	assert.Equal(t, []string{"Alpha"}, got)
}

func TestEnumNameForField(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"ai_field", "AiField"},
		{"ai field", "AiField"},
		{"domain", "Domain"},
		{"category_enum", "Category"},
		{"industry-sector", "IndustrySector"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, enumNameForField(tt.field))
		})
	}
}
