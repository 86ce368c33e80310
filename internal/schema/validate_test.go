package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materializedTestSchema(t *testing.T) (*Schema, *Materialized) {
	t.Helper()
	s, err := Compile(testConfig())
	require.NoError(t, err)
	artifact, err := RenderArtifact(s)
	require.NoError(t, err)
	m, err := Materialize(artifact, "Startup")
	require.NoError(t, err)
	return s, m
}

func TestValidateRecord_MissingRequired(t *testing.T) {
	_, m := materializedTestSchema(t)

	err := m.ValidateRecord(map[string]any{
		"founding_year": 2019,
	})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "validation failed")
}

func TestValidateRecord_UnknownEnumValue(t *testing.T) {
	_, m := materializedTestSchema(t)

	err := m.ValidateRecord(map[string]any{
		"company_name": "Acme",
		"domain":       "Underwater basket weaving",
	})
	assert.Error(t, err)
}

func TestValidateRecord_ExtraKeysAllowed(t *testing.T) {
	_, m := materializedTestSchema(t)

	err := m.ValidateRecord(map[string]any{
		"company_name": "Acme",
		"domain":       "Finance",
		"unexpected":   "kept as-is",
	})
	assert.NoError(t, err)
}

func TestCoerceRecord_NumericStrings(t *testing.T) {
	s, _ := materializedTestSchema(t)

	coerced := CoerceRecord(s, map[string]any{
		"founding_year": "2019",
		"revenue":       " 1250000.5 ",
		"is_profitable": "true",
	})

	assert.Equal(t, int64(2019), coerced["founding_year"])
	assert.Equal(t, 1250000.5, coerced["revenue"])
	assert.Equal(t, true, coerced["is_profitable"])
}

func TestCoerceRecord_ScalarToList(t *testing.T) {
	s, _ := materializedTestSchema(t)

	coerced := CoerceRecord(s, map[string]any{
		"founders": "Ada",
		"ai_field": "Machine learning",
	})

	assert.Equal(t, []any{"Ada"}, coerced["founders"])
	assert.Equal(t, []any{"Machine learning"}, coerced["ai_field"])
}

func TestCoerceRecord_NotAvailableStaysScalar(t *testing.T) {
	s, _ := materializedTestSchema(t)

	coerced := CoerceRecord(s, map[string]any{
		"founders": NotAvailable,
	})

	assert.Equal(t, NotAvailable, coerced["founders"])
}

func TestCoerceRecord_UnknownKeysPassThrough(t *testing.T) {
	s, _ := materializedTestSchema(t)

	coerced := CoerceRecord(s, map[string]any{
		"mystery": 42,
	})

	assert.Equal(t, 42, coerced["mystery"])
}

func TestCoerceRecord_UnparseableStringsKept(t *testing.T) {
	s, _ := materializedTestSchema(t)

	coerced := CoerceRecord(s, map[string]any{
		"founding_year": "around 2019",
	})

	assert.Equal(t, "around 2019", coerced["founding_year"])
}
