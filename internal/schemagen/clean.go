package schemagen

import "strings"

// narrativeOpeners start lines that are prose, not artifact content.
var narrativeOpeners = []string{
	"here is", "here's", "the following", "this is", "below is",
	"this schema", "the schema", "note:", "example:", "above",
}

// CleanArtifact strips code fences and natural-language preamble/postamble
// from a generated schema artifact. This is a best-effort pass; the
// deterministic compiler artifact remains the hard fallback when the cleaned
// text still fails validation.
func CleanArtifact(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Fence markers, with or without a language tag.
		if strings.HasPrefix(trimmed, "```") {
			continue
		}

		if isNarrativeLine(trimmed) {
			continue
		}

		kept = append(kept, line)
	}

	cleaned := strings.Join(kept, "\n")

	// Anything outside the outermost braces is leftover prose.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return strings.TrimSpace(cleaned)
}

// isNarrativeLine reports whether a line is prose or a markdown bullet
// lacking structural JSON tokens.
func isNarrativeLine(trimmed string) bool {
	if trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, opener := range narrativeOpeners {
		if strings.HasPrefix(lower, opener) {
			return true
		}
	}

	// Markdown bullets and headings are prose unless they carry JSON syntax.
	if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "#") {
		if !strings.ContainsAny(trimmed, "{}\":") {
			return true
		}
	}

	return false
}
