package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderArtifact_Structure(t *testing.T) {
	s, err := Compile(testConfig())
	require.NoError(t, err)

	artifact, err := RenderArtifact(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(artifact), &doc))

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	assert.Equal(t, "Startup", doc["title"])
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, true, doc["additionalProperties"])

	order, ok := doc["x-field-order"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{
		"company_name", "founding_year", "revenue", "is_profitable",
		"founders", "domain", "ai_field",
	}, order)

	required, ok := doc["required"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"company_name", "domain"}, required)

	properties, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, properties, 7)

	domain, ok := properties["domain"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#/definitions/Domain", domain["$ref"])

	aiField, ok := properties["ai_field"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", aiField["type"])
	items, ok := aiField["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#/definitions/AiField", items["$ref"])

	definitions, ok := doc["definitions"].(map[string]any)
	require.True(t, ok)
	domainDef, ok := definitions["Domain"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Healthcare & wellbeing", "Finance", "Smart cities"}, domainDef["enum"])
	assert.Equal(t, []any{"HEALTHCARE", "FINANCE", "SMART_CITIES"}, domainDef["x-enum-symbols"])
}

func TestRenderArtifact_Deterministic(t *testing.T) {
	s, err := Compile(testConfig())
	require.NoError(t, err)

	first, err := RenderArtifact(s)
	require.NoError(t, err)
	second, err := RenderArtifact(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderArtifact_NoEnums(t *testing.T) {
	s := &Schema{
		MainModel: "Plain",
		Fields: []Field{
			{Name: "title", Kind: KindString},
		},
	}

	artifact, err := RenderArtifact(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(artifact), &doc))
	_, hasDefinitions := doc["definitions"]
	assert.False(t, hasDefinitions)
	_, hasRequired := doc["required"]
	assert.False(t, hasRequired)
}

func TestMaterialize_RoundTrip(t *testing.T) {
	s, err := Compile(testConfig())
	require.NoError(t, err)
	artifact, err := RenderArtifact(s)
	require.NoError(t, err)

	m, err := Materialize(artifact, "Startup")
	require.NoError(t, err)
	assert.Equal(t, "Startup", m.MainModel)

	record := map[string]any{
		"company_name":  "Acme Robotics",
		"founding_year": 2019,
		"revenue":       1250000.50,
		"is_profitable": false,
		"founders":      []any{"Ada", "Grace"},
		"domain":        "Finance",
		"ai_field":      []any{"Machine learning"},
	}
	assert.NoError(t, m.ValidateRecord(record))
}

func TestMaterialize_TitleMismatch(t *testing.T) {
	s, err := Compile(testConfig())
	require.NoError(t, err)
	artifact, err := RenderArtifact(s)
	require.NoError(t, err)

	m, err := Materialize(artifact, "SomethingElse")
	assert.Nil(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not declare main model")
}

func TestMaterialize_InvalidJSON(t *testing.T) {
	_, err := Materialize("not json", "Startup")
	assert.Error(t, err)
}

func TestCheckArtifact(t *testing.T) {
	assert.Error(t, CheckArtifact("not json"))
	assert.NoError(t, CheckArtifact(`{"type": "object"}`))
}
