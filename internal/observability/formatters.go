// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mkravchenko/knowledge-extractor/internal/extraction"
	"github.com/mkravchenko/knowledge-extractor/internal/fieldconfig"
	"github.com/mkravchenko/knowledge-extractor/internal/schema"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// summaryElapsedPrecision rounds batch timings for display
	summaryElapsedPrecision = 10 * time.Millisecond
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFieldConfig outputs a human-readable summary of a field configuration.
func (p *Printer) PrintFieldConfig(cfg *fieldconfig.FieldConfig) {
	if cfg == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Use case:   %s\n", cfg.UseCase))
	sb.WriteString(fmt.Sprintf("Main model: %s\n", cfg.MainModelName))
	if cfg.DocumentType != "" {
		sb.WriteString(fmt.Sprintf("Doc type:   %s\n", cfg.DocumentType))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Fields (%d):\n", len(cfg.Fields)))
	count := min(len(cfg.Fields), maxItemsToShow)
	for i := 0; i < count; i++ {
		field := cfg.Fields[i]
		sb.WriteString(fmt.Sprintf("  • %s: %s", field.Name, field.Type))
		if field.Required {
			sb.WriteString(" (required)")
		}
		sb.WriteString("\n")
		if len(field.EnumValues) > 0 {
			values := strings.Join(field.EnumValues, ", ")
			if len(values) > 40 {
				values = values[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    [%s]\n", values))
		}
	}
	if len(cfg.Fields) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cfg.Fields)-maxItemsToShow))
	}

	p.printBox("FIELD CONFIGURATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSchema outputs the compiled schema with field kinds and enum sizes.
func (p *Printer) PrintSchema(s *schema.Schema) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Main model: %s\n\n", s.MainModel))

	count := min(len(s.Fields), maxItemsToShow)
	for i := 0; i < count; i++ {
		field := s.Fields[i]
		sb.WriteString(fmt.Sprintf("• %s: %s", field.Name, field.Kind))
		if field.Required {
			sb.WriteString(" (required)")
		}
		sb.WriteString("\n")
		if len(field.Enum) > 0 {
			sb.WriteString(fmt.Sprintf("  enum %s, %d members\n", field.EnumName, len(field.Enum)))
		}
	}
	if len(s.Fields) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more fields", len(s.Fields)-maxItemsToShow))
	}

	p.printBox("COMPILED SCHEMA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProviders outputs which backend serves each pipeline stage.
func (p *Printer) PrintProviders(schemaBackend, extractionBackend string, azure bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Schema generation: %s\n", schemaBackend))
	sb.WriteString(fmt.Sprintf("Extraction:        %s", extractionBackend))
	if azure {
		sb.WriteString(" (Azure endpoint)")
	}
	p.printBox("PROVIDERS", sb.String())
}

// PrintBatchSummary outputs the outcome counts of a completed batch run.
func (p *Printer) PrintBatchSummary(summary extraction.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run ID:    %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Documents: %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Succeeded: %d\n", summary.Succeeded))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", summary.Failed))
	if summary.Warnings > 0 {
		sb.WriteString(fmt.Sprintf("Warnings:  %d\n", summary.Warnings))
	}
	sb.WriteString(fmt.Sprintf("Elapsed:   %s", summary.Elapsed.Round(summaryElapsedPrecision)))
	p.printBox("BATCH SUMMARY", sb.String())
}
