package schemagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanArtifact_Fences(t *testing.T) {
	raw := "```json\n{\"type\": \"object\"}\n```"
	assert.Equal(t, `{"type": "object"}`, CleanArtifact(raw))
}

func TestCleanArtifact_NarrativePreamble(t *testing.T) {
	raw := "Here is the generated schema:\n{\"type\": \"object\"}\nThis schema covers all requested fields."
	assert.Equal(t, `{"type": "object"}`, CleanArtifact(raw))
}

func TestCleanArtifact_BulletProse(t *testing.T) {
	raw := "* generated from your configuration\n{\n  \"type\": \"object\"\n}\n- reply if you need changes"
	assert.Equal(t, "{\n  \"type\": \"object\"\n}", CleanArtifact(raw))
}

func TestCleanArtifact_KeepsJSONLinesStartingWithDash(t *testing.T) {
	// A JSON line may begin with a quote or brace; bullets carrying JSON
	// syntax are kept.
	raw := "{\n\"note\": \"- keep: this\"\n}"
	assert.Equal(t, raw, CleanArtifact(raw))
}

func TestCleanArtifact_TextAroundBraces(t *testing.T) {
	raw := "Sure thing. {\"a\": 1} Hope that helps!"
	assert.Equal(t, `{"a": 1}`, CleanArtifact(raw))
}

func TestCleanArtifact_NoJSON(t *testing.T) {
	assert.Equal(t, "no braces at all", CleanArtifact("no braces at all"))
}

func TestCleanArtifact_Empty(t *testing.T) {
	assert.Equal(t, "", CleanArtifact(""))
}
