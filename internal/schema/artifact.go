package schema

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// The schema artifact is a JSON Schema draft-07 document. Its title is the
// configuration's main model name, enum fields reference definitions that
// embed the member table, and x-field-order preserves compile order.

type artifactDoc struct {
	SchemaURI            string                  `json:"$schema"`
	Title                string                  `json:"title"`
	Type                 string                  `json:"type"`
	Description          string                  `json:"description,omitempty"`
	Properties           map[string]*propertyDoc `json:"properties"`
	Required             []string                `json:"required,omitempty"`
	AdditionalProperties bool                    `json:"additionalProperties"`
	FieldOrder           []string                `json:"x-field-order"`
	Definitions          map[string]*enumDoc     `json:"definitions,omitempty"`
}

type propertyDoc struct {
	Ref         string       `json:"$ref,omitempty"`
	Type        string       `json:"type,omitempty"`
	Description string       `json:"description,omitempty"`
	Items       *propertyDoc `json:"items,omitempty"`
}

type enumDoc struct {
	Type    string   `json:"type"`
	Enum    []string `json:"enum"`
	Symbols []string `json:"x-enum-symbols"`
}

const draft7 = "http://json-schema.org/draft-07/schema#"

// RenderArtifact serializes a compiled Schema into the portable artifact text.
// The output is deterministic for identical input schemas, so it can fully
// replace a generatively authored artifact.
func RenderArtifact(s *Schema) (string, error) {
	doc := artifactDoc{
		SchemaURI:            draft7,
		Title:                s.MainModel,
		Type:                 "object",
		Description:          s.Description,
		Properties:           make(map[string]*propertyDoc, len(s.Fields)),
		AdditionalProperties: true,
		FieldOrder:           make([]string, 0, len(s.Fields)),
	}

	for _, field := range s.Fields {
		doc.FieldOrder = append(doc.FieldOrder, field.Name)
		if field.Required {
			doc.Required = append(doc.Required, field.Name)
		}

		prop := &propertyDoc{Description: field.Description}
		switch field.Kind {
		case KindEnum:
			prop.Ref = "#/definitions/" + field.EnumName
			prop.Description = "" // $ref siblings are ignored by draft-07 validators
		case KindEnumList:
			prop.Type = "array"
			prop.Items = &propertyDoc{Ref: "#/definitions/" + field.EnumName}
		case KindStringList:
			prop.Type = "array"
			prop.Items = &propertyDoc{Type: "string"}
		default:
			prop.Type = field.Kind.String()
		}
		doc.Properties[field.Name] = prop

		if field.Kind == KindEnum || field.Kind == KindEnumList {
			if doc.Definitions == nil {
				doc.Definitions = make(map[string]*enumDoc)
			}
			def := &enumDoc{Type: "string"}
			for _, member := range field.Enum {
				def.Enum = append(def.Enum, member.Value)
				def.Symbols = append(def.Symbols, member.Symbol)
			}
			doc.Definitions[field.EnumName] = def
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render schema artifact: %w", err)
	}
	return string(data), nil
}

// Materialized is a schema artifact loaded into a usable validator, bound to
// its declared main model name.
type Materialized struct {
	MainModel string
	compiled  *gojsonschema.Schema
}

// Materialize loads an artifact into a validator and verifies the declared
// main model name is present as the document title.
func Materialize(artifact, mainModel string) (*Materialized, error) {
	var probe struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(artifact), &probe); err != nil {
		return nil, fmt.Errorf("schema artifact is not valid JSON: %w", err)
	}
	if probe.Title != mainModel {
		return nil, fmt.Errorf("schema artifact does not declare main model %q (found %q)", mainModel, probe.Title)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(artifact))
	if err != nil {
		return nil, fmt.Errorf("schema artifact failed to compile: %w", err)
	}

	return &Materialized{MainModel: mainModel, compiled: compiled}, nil
}

// CheckArtifact reports whether an artifact is syntactically well-formed JSON
// Schema, without binding it to a main model name.
func CheckArtifact(artifact string) error {
	var doc map[string]any
	if err := json.Unmarshal([]byte(artifact), &doc); err != nil {
		return fmt.Errorf("artifact is not valid JSON: %w", err)
	}
	if _, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(artifact)); err != nil {
		return fmt.Errorf("artifact is not a valid JSON Schema: %w", err)
	}
	return nil
}
