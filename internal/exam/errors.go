package exam

import "fmt"

// Field names the input that failed validation.
type Field string

const (
	FieldYear  Field = "year"
	FieldMonth Field = "month"
	FieldLevel Field = "level"
)

// ValidationError is returned when raw input cannot be normalized.
type ValidationError struct {
	Field Field
	Value string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("incorrect %s: %q", e.Field, e.Value)
}

// Is allows for error checking with errors.Is().
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

func invalid(field Field, value string) *ValidationError {
	return &ValidationError{Field: field, Value: value}
}
