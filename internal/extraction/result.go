// Package extraction runs schema-guided extraction of structured records from
// parsed documents, one result per document, with fallback defaults when a
// document cannot be extracted.
package extraction

import "encoding/json"

// Metadata describes the source document of one result. It travels with the
// extracted fields so batch output stays self-describing.
type Metadata struct {
	FileName        string `json:"file_name"`
	FilePath        string `json:"file_path,omitempty"`
	ContentLength   int    `json:"content_length"`
	WordCount       int    `json:"word_count"`
	ExtractionError string `json:"extraction_error,omitempty"`
}

// Result is the extraction outcome for a single document. Fields holds the
// extracted record keyed by schema field name. When extraction failed, Fields
// holds the per-kind fallback defaults and ExtractionError carries the cause.
type Result struct {
	Fields   map[string]any
	Metadata Metadata

	// Fallback marks a defaulted record served after an extraction failure.
	Fallback bool

	// Warning carries an advisory schema mismatch. The raw record is kept.
	Warning string
}

// Failed reports whether this result is a fallback record.
func (r Result) Failed() bool { return r.Fallback }

// MarshalJSON flattens the extracted fields to the top level, with document
// metadata nested under a reserved key that cannot collide with schema field
// names.
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+2)
	for key, value := range r.Fields {
		out[key] = value
	}
	out["_document_metadata"] = r.Metadata
	if r.Metadata.ExtractionError != "" {
		out["error"] = r.Metadata.ExtractionError
	}
	return json.Marshal(out)
}
