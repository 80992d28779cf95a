package typesystem

import "fmt"

// ConfigError indicates an invalid type registration: duplicate name,
// unknown parent, or a cycle in the parent graph.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func NewConfigError(format string, a ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, a...)}
}
