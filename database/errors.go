package database

import (
	"fmt"
)

// DBError represents a database operation error with context
type DBError struct {
	Operation string
	Table     string
	Err       error
}

// Error implements the error interface
func (e *DBError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("database error in %s (%s): %v", e.Operation, e.Table, e.Err)
	}
	return fmt.Sprintf("database error in %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *DBError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a query that must produce rows produced none
type NotFoundError struct {
	Resource string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found", e.Resource)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Reason)
}

// WrapDBError wraps a database error with operation and table context.
// A nil error stays nil so it can wrap a call result directly.
func WrapDBError(operation, table string, err error) error {
	if err == nil {
		return nil
	}
	return &DBError{
		Operation: operation,
		Table:     table,
		Err:       err,
	}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, reason string) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
	}
}

// NewValidationErrorWithValue creates a new ValidationError with a value
func NewValidationErrorWithValue(field, reason string, value interface{}) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}
