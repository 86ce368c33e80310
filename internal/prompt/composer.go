// Package prompt renders the prompts the extraction pipeline sends to a
// generative provider: the schema-generation prompt, the reusable extraction
// prompt, and the final per-document prompt.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkravchenko/knowledge-extractor/internal/document"
	"github.com/mkravchenko/knowledge-extractor/internal/fieldconfig"
	"github.com/mkravchenko/knowledge-extractor/internal/prompts"
)

// SchemaGenerationPrompt renders the prompt asking a generative model to
// author the schema artifact for a field configuration. Pure and idempotent.
func SchemaGenerationPrompt(cfg *fieldconfig.FieldConfig) (string, error) {
	configJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize field config: %w", err)
	}

	template := prompts.MustGet("schemagen.json", "generate-schema")
	return prompts.Format(template, map[string]string{
		"UseCase":         orDefault(cfg.UseCase, "Document Analysis"),
		"Description":     orDefault(cfg.Description, "Extract structured information from documents"),
		"FieldConfigJSON": string(configJSON),
		"MainModelName":   cfg.MainModelName,
	}), nil
}

// ExtractionPrompt renders the reusable extraction prompt: the static rule
// block with the schema artifact embedded verbatim. It is not re-derived per
// document and can be persisted and reused across runs.
func ExtractionPrompt(cfg *fieldconfig.FieldConfig, artifact string) string {
	template := prompts.MustGet("extraction.json", "extraction-prompt")
	return prompts.Format(template, map[string]string{
		"UseCase":       orDefault(cfg.UseCase, "Document Analysis"),
		"Description":   orDefault(cfg.Description, "Extract structured information from documents"),
		"Artifact":      artifact,
		"MainModelName": cfg.MainModelName,
	})
}

// Context carries the free-text extraction context rendered ahead of the rule
// block. All fields are optional.
type Context struct {
	Purpose            string
	DocumentType       string
	CustomInstructions string
}

// ContextFromConfig lifts the context fields out of a field configuration.
func ContextFromConfig(cfg *fieldconfig.FieldConfig) Context {
	return Context{
		Purpose:            cfg.PurposeOfExtraction,
		DocumentType:       cfg.DocumentType,
		CustomInstructions: cfg.CustomInstructions,
	}
}

// DocumentPrompt composes the final per-document prompt. Order is significant
// and fixed: extraction context and custom instructions first, then the rule
// block with the embedded schema, then the document's filename and full text
// last, so constraints precede the variable content.
func DocumentPrompt(pctx Context, extractionPrompt string, doc document.Record) string {
	var sb strings.Builder

	sb.WriteString(prompts.MustGet("extraction.json", "document-preamble"))
	sb.WriteString("\n")

	if strings.TrimSpace(pctx.Purpose) != "" || strings.TrimSpace(pctx.DocumentType) != "" {
		sb.WriteString("\n=== EXTRACTION CONTEXT ===\n\n")
		if purpose := strings.TrimSpace(pctx.Purpose); purpose != "" {
			sb.WriteString(fmt.Sprintf("The purpose of the extraction: %s\n", purpose))
		}
		if docType := strings.TrimSpace(pctx.DocumentType); docType != "" {
			sb.WriteString(fmt.Sprintf("Document type: %s.\n", docType))
		}
	}

	if custom := strings.TrimSpace(pctx.CustomInstructions); custom != "" {
		sb.WriteString(fmt.Sprintf("\nCUSTOM/ADDITIONAL EXTRACTION INSTRUCTIONS:\n%s\n", custom))
	}

	sb.WriteString("\n")
	sb.WriteString(extractionPrompt)
	sb.WriteString("\n\nIMPORTANT: Return ONLY the JSON object, no additional text, explanations, or markdown formatting.\n")
	sb.WriteString("\n================================================\n\n")
	sb.WriteString("Document to analyze:\n")
	sb.WriteString(fmt.Sprintf("Filename: %s\n", doc.FileName))
	sb.WriteString("Content:\n")
	sb.WriteString(doc.TextContent)

	return sb.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
