package schemagen

import "fmt"

// GenerationError means no usable schema artifact could be established: the
// generative path failed and the deterministic fallback failed too. It is
// fatal and aborts the run.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
