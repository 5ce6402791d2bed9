package model

import "fmt"

// ValidationError represents an invalid field value at construction or
// mutation time. The target object is never left partially updated.
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// NotFoundError represents a failed lookup by key.
type NotFoundError struct {
	Kind string
	Key  interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Kind, e.Key)
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(kind string, key interface{}) *NotFoundError {
	return &NotFoundError{Kind: kind, Key: key}
}
