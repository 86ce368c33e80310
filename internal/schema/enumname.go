package schema

import (
	"regexp"
	"strings"
)

// symbolOverrides maps known multi-word display values to curated symbols.
// Consulted before the general derivation algorithm.
var symbolOverrides = map[string]string{
	"Healthcare & wellbeing":                  "HEALTHCARE",
	"Cultural & creative industries":          "CULTURAL",
	"Education & training":                    "EDUCATION",
	"Environment & sustainability":            "ENVIRONMENT",
	"Smart cities":                            "SMART_CITIES",
	"Transport, mobility, logistics":          "TRANSPORT",
	"Travel & tourism":                        "TRAVEL",
	"Business development/business services":  "BUSINESS",
	"Real estate & property":                  "REAL_ESTATE",
	"Arts & entertainment":                    "ARTS",
	"Computer vision & image processing":      "COMPUTER_VISION",
	"Rule-based systems":                      "RULE_BASED",
	"Generative AI":                           "GENERATIVE_AI",
	"Machine learning":                        "MACHINE_LEARNING",
	"Predictive analytics":                    "PREDICTIVE_ANALYTICS",
}

// stopWords are dropped during symbol derivation, except when one is the very
// first token of a display value.
var stopWords = map[string]bool{
	"and": true, "or": true, "the": true, "of": true, "for": true,
	"in": true, "on": true, "at": true, "to": true, "a": true, "an": true,
	"&": true,
}

var (
	tokenDelimiters = regexp.MustCompile(`[,/&\-\s]+`)
	invalidSymbol   = regexp.MustCompile(`[^A-Z0-9_]`)
	digitsOnly      = regexp.MustCompile(`^[0-9]+$`)
)

// unicodeReplacements normalizes common Unicode punctuation to ASCII so symbol
// derivation is stable across input encodings.
var unicodeReplacements = strings.NewReplacer(
	"‑", "-", // non-breaking hyphen
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	" ", " ", // non-breaking space
	"…", "...", // ellipsis
)

// NormalizeUnicode replaces Unicode punctuation with ASCII equivalents.
func NormalizeUnicode(text string) string {
	return unicodeReplacements.Replace(text)
}

// SymbolForValue derives a compact symbolic member name from a human-readable
// enum display value. The override table wins; otherwise tokens are filtered,
// joined with underscores, and upper-cased.
func SymbolForValue(value string) string {
	if symbol, ok := symbolOverrides[value]; ok {
		return symbol
	}

	tokens := tokenDelimiters.Split(value, -1)
	var words []string
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" || stopWords[strings.ToLower(token)] {
			continue
		}
		if digitsOnly.MatchString(token) || len(token) > 2 {
			words = append(words, token)
		} else if len(words) == 0 {
			// The first surviving token is kept even when short.
			words = append(words, token)
		}
	}

	if len(words) == 0 {
		// Retry keeping every non-stop-word token regardless of length.
		for _, token := range tokens {
			token = strings.TrimSpace(token)
			if token != "" && !stopWords[strings.ToLower(token)] {
				words = append(words, token)
			}
		}
	}
	if len(words) == 0 {
		if fields := strings.Fields(value); len(fields) > 0 {
			words = []string{fields[0]}
		} else {
			words = []string{"VALUE"}
		}
	}

	symbol := strings.ToUpper(strings.Join(words, "_"))
	symbol = invalidSymbol.ReplaceAllString(symbol, "")

	if symbol != "" && symbol[0] >= '0' && symbol[0] <= '9' {
		symbol = "OPTION_" + symbol
	}
	if symbol == "" {
		symbol = "OTHER"
	}

	return symbol
}

// splitEnumValues expands a single comma-joined enum string into independent
// values. Known compound categories containing commas are kept intact via
// explicit lookahead rather than generic splitting.
func splitEnumValues(values []string) []string {
	var out []string
	for _, value := range values {
		normalized := NormalizeUnicode(value)

		if !strings.Contains(normalized, ",") || len(values) != 1 {
			out = append(out, normalized)
			continue
		}

		tokens := strings.Split(normalized, ",")
		for i := 0; i < len(tokens); {
			token := strings.TrimSpace(tokens[i])
			switch {
			case strings.EqualFold(token, "transport") && i+2 < len(tokens) &&
				strings.EqualFold(strings.TrimSpace(tokens[i+1]), "mobility") &&
				strings.EqualFold(strings.TrimSpace(tokens[i+2]), "logistics"):
				out = append(out, token+", "+strings.TrimSpace(tokens[i+1])+", "+strings.TrimSpace(tokens[i+2]))
				i += 3
			case strings.HasPrefix(strings.ToLower(token), "business development") && i+1 < len(tokens):
				out = append(out, token+", "+strings.TrimSpace(tokens[i+1]))
				i += 2
			default:
				if token != "" {
					out = append(out, token)
				}
				i++
			}
		}
	}
	return out
}

// enumNameForField derives the enum definition name from a field name, e.g.
// "ai field" becomes "AiField". A trailing "Enum" suffix is dropped.
func enumNameForField(fieldName string) string {
	parts := strings.FieldsFunc(fieldName, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	var sb strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		if len(part) > 1 {
			sb.WriteString(strings.ToLower(part[1:]))
		}
	}
	name := sb.String()
	name = strings.TrimSuffix(name, "Enum")
	if name == "" {
		name = "Value"
	}
	return name
}
