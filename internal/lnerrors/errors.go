package lnerrors

import (
	"fmt"
)

// ErrorType classifies construction-time failures of the engine
type ErrorType string

const (
	// Configuration errors
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeValidation ErrorType = "validation"

	// Table-loading errors (hierarchy file, config file)
	ErrorTypeTable ErrorType = "table"
)

// ConfigError represents a configuration problem detected at construction.
// Record-level operations never produce errors; dirty inputs yield degenerate
// outputs instead, so this is the only error surface of the engine.
type ConfigError struct {
	Type       ErrorType
	Section    string
	Field      string
	Underlying error
}

// NewConfigError creates a new configuration error with context
func NewConfigError(section, field string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Section:    section,
		Field:      field,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s error in %s.%s: %v", e.Type, e.Section, e.Field, e.Underlying)
	}
	return fmt.Sprintf("%s error in %s: %v", e.Type, e.Section, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// ValidationError reports a field value outside its allowed range, with the
// expected form spelled out so it can be rendered in CLI output directly.
type ValidationError struct {
	Type     ErrorType
	Field    string
	Value    interface{}
	Expected string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, expected string) *ValidationError {
	return &ValidationError{
		Type:     ErrorTypeValidation,
		Field:    field,
		Value:    value,
		Expected: expected,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: expected %s, got %v", e.Field, e.Expected, e.Value)
}

// TableError represents a failure loading an external mapping table
type TableError struct {
	Type       ErrorType
	Path       string
	Underlying error
}

// NewTableError creates a new table-loading error
func NewTableError(path string, err error) *TableError {
	return &TableError{
		Type:       ErrorTypeTable,
		Path:       path,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *TableError) Error() string {
	return fmt.Sprintf("%s error loading %s: %v", e.Type, e.Path, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *TableError) Unwrap() error {
	return e.Underlying
}
