package provider

import "fmt"

// Error represents a failure from a generative backend (network, auth, quota).
// Callers recover it per document; it never aborts a batch.
type Error struct {
	Backend Backend
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s", e.Backend, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
