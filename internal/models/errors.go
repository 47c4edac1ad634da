package models

import (
	"fmt"
	"strings"
)

// FieldError is a single rule violation on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full ordered list of rule violations so
// callers can render per-field errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError signals a storage-level SKU uniqueness violation that the
// advisory validation check did not catch.
type ConflictError struct {
	SKU string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product with SKU %q already exists", e.SKU)
}
