package fieldconfig

import "fmt"

// ConfigError represents a malformed or self-contradictory field configuration.
// It is surfaced at authoring/compile time and never silently repaired.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}
