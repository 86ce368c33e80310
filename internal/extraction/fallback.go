package extraction

import "github.com/mkravchenko/knowledge-extractor/internal/schema"

// FallbackRecord builds the defaulted record served when a document cannot be
// extracted: the "n/a" sentinel for string and enum fields, zero values for
// numeric and boolean fields, empty lists for list fields. Every schema field
// is present so batch output keeps a uniform shape.
func FallbackRecord(s *schema.Schema) map[string]any {
	fields := make(map[string]any, len(s.Fields))
	for _, field := range s.Fields {
		switch field.Kind {
		case schema.KindInt:
			fields[field.Name] = 0
		case schema.KindFloat:
			fields[field.Name] = 0.0
		case schema.KindBool:
			fields[field.Name] = false
		case schema.KindStringList, schema.KindEnumList:
			fields[field.Name] = []any{}
		default:
			fields[field.Name] = schema.NotAvailable
		}
	}
	return fields
}
