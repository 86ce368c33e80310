// Package document defines the parsed-document boundary consumed from the external
// PDF/Word parser. This core never reads binary document formats itself.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Record is one parsed document as produced by the external parser.
// It is read-only to the extraction pipeline.
type Record struct {
	FileName      string `json:"file_name"`
	FilePath      string `json:"file_path"`
	TextContent   string `json:"text_content"`
	ContentLength int    `json:"content_length"`
	WordCount     int    `json:"word_count"`
}

// FromText builds a Record from raw text, computing length and word count.
// Used for plain-text inputs that bypass the external parser.
func FromText(filePath, text string) Record {
	return Record{
		FileName:      filepath.Base(filePath),
		FilePath:      filePath,
		TextContent:   text,
		ContentLength: len(text),
		WordCount:     len(strings.Fields(text)),
	}
}

// ReadTextFile reads a plain-text file into a Record.
func ReadTextFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read document file %s: %w", path, err)
	}
	return FromText(path, string(data)), nil
}

// LoadRecords loads parser output from a JSON file containing an array of records.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents file %s: %w", path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse documents JSON: %w", err)
	}

	// Backfill derived fields for records the parser left incomplete
	for i := range records {
		if records[i].ContentLength == 0 && records[i].TextContent != "" {
			records[i].ContentLength = len(records[i].TextContent)
		}
		if records[i].WordCount == 0 && records[i].TextContent != "" {
			records[i].WordCount = len(strings.Fields(records[i].TextContent))
		}
	}

	return records, nil
}

// LoadTextDirectory builds one Record per .txt file in a directory.
// Non-text files are skipped; the external parser owns every other format.
func LoadTextDirectory(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents directory %s: %w", dir, err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		record, err := ReadTextFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
