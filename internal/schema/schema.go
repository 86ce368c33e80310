// Package schema compiles a field configuration into a typed, validated schema and
// renders it as a portable JSON Schema artifact used to validate extraction output.
package schema

// Kind is the resolved output type of a compiled field.
type Kind int

// Resolved field kinds.
const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStringList
	KindEnum
	KindEnumList
)

// String returns the JSON Schema type keyword for scalar kinds.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindStringList:
		return "array"
	case KindEnum:
		return "enum"
	case KindEnumList:
		return "enum-list"
	default:
		return "unknown"
	}
}

// EnumMember maps a symbolic member name to the display value the document uses.
type EnumMember struct {
	Symbol string
	Value  string
}

// Field is one compiled field: normalized name, resolved kind, and enum members
// when the field is enum-typed.
type Field struct {
	// Name is the normalized snake_case field name. Extracted records must use
	// this exact key.
	Name string
	// DisplayName is the user's original, unnormalized field name.
	DisplayName string
	Kind        Kind
	Description string
	Required    bool
	// EnumName is the definition name for enum kinds, derived from the field name.
	EnumName string
	// Enum holds the resolved members for enum kinds; nil otherwise.
	Enum []EnumMember
}

// Schema is the compiled, immutable view of a field configuration.
// It is recomputed whenever the configuration changes and never mutated in place.
type Schema struct {
	MainModel   string
	UseCase     string
	Description string
	Fields      []Field
}

// Field returns the compiled field with the given normalized name, or nil.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// HasEnums reports whether any field resolved to an enum kind.
func (s *Schema) HasEnums() bool {
	for _, f := range s.Fields {
		if f.Kind == KindEnum || f.Kind == KindEnumList {
			return true
		}
	}
	return false
}
