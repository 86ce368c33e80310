package schema

import (
	"fmt"
	"strings"

	"github.com/mkravchenko/knowledge-extractor/internal/fieldconfig"
)

// Compile converts a field configuration into a Schema. It is pure and
// deterministic and never calls an external service. Duplicate normalized
// field names surface as a ConfigError here, during authoring, not at
// extraction time.
func Compile(cfg *fieldconfig.FieldConfig) (*Schema, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Schema{
		MainModel:   cfg.MainModelName,
		UseCase:     cfg.UseCase,
		Description: cfg.Description,
		Fields:      make([]Field, 0, len(cfg.Fields)),
	}

	seen := make(map[string]string, len(cfg.Fields))
	for _, spec := range cfg.Fields {
		name := NormalizeFieldName(spec.Name)
		if prior, dup := seen[name]; dup {
			return nil, &fieldconfig.ConfigError{
				Field:   spec.Name,
				Message: fmt.Sprintf("normalizes to %q which collides with field %q", name, prior),
			}
		}
		seen[name] = spec.Name

		field := Field{
			Name:        name,
			DisplayName: spec.Name,
			Description: NormalizeUnicode(spec.Description),
			Required:    spec.Required,
			Kind:        resolveKind(spec),
		}

		if field.Kind == KindEnum || field.Kind == KindEnumList {
			field.EnumName = enumNameForField(spec.Name)
			field.Enum = compileEnumMembers(spec.EnumValues)
		}

		s.Fields = append(s.Fields, field)
	}

	return s, nil
}

// NormalizeFieldName lowercases a field name and maps spaces and hyphens to
// underscores. Extracted record keys must equal this exactly.
func NormalizeFieldName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ToLower(name)
}

// resolveKind maps a declared field type to its output kind. A field with enum
// values resolves to an enum kind regardless of the declared primitive.
func resolveKind(spec fieldconfig.FieldSpec) Kind {
	if len(spec.EnumValues) > 0 {
		if spec.Type == fieldconfig.TypeEnumList || spec.Type == fieldconfig.TypeStringList {
			return KindEnumList
		}
		return KindEnum
	}

	switch spec.Type {
	case fieldconfig.TypeInt:
		return KindInt
	case fieldconfig.TypeFloat:
		return KindFloat
	case fieldconfig.TypeBool:
		return KindBool
	case fieldconfig.TypeStringList:
		return KindStringList
	default:
		return KindString
	}
}

// compileEnumMembers expands, normalizes, and names the members of one enum
// field. Symbol collisions within a field get a numeric suffix so no member
// silently overwrites another.
func compileEnumMembers(values []string) []EnumMember {
	expanded := splitEnumValues(values)
	members := make([]EnumMember, 0, len(expanded))
	used := make(map[string]bool, len(expanded))

	for _, value := range expanded {
		symbol := SymbolForValue(value)
		if used[symbol] {
			// The suffixed candidate may itself collide with a derived
			// symbol, so keep counting until one is free.
			base := symbol
			for n := 2; ; n++ {
				symbol = fmt.Sprintf("%s_%d", base, n)
				if !used[symbol] {
					break
				}
			}
		}
		used[symbol] = true
		members = append(members, EnumMember{Symbol: symbol, Value: value})
	}

	return members
}
