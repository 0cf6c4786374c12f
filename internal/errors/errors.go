// Package errors provides the structured error type used across the build
// pipeline. Every failure is classified by category so the CLI can report a
// single descriptive message and callers can branch on failure class without
// string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category classifies a build error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryResolve    Category = "resolve"
	CategoryContent    Category = "content"
	CategoryRender     Category = "render"
	CategoryOutput     Category = "output"
	CategoryTheme      Category = "theme"
	CategoryInternal   Category = "internal"
)

// ContextFields carries structured context (file path, key path, placeholder
// text) attached to an error so the user can locate the offending input.
type ContextFields map[string]any

// BuildError is a structured error with category and context.
// All build errors are fatal to the current build; there is no retry tier.
type BuildError struct {
	Category Category
	Message  string
	Cause    error
	Context  ContextFields
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *BuildError) Unwrap() error { return e.Cause }

// WithContext attaches a context field and returns the error for chaining.
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a BuildError without a cause.
func New(category Category, message string) *BuildError {
	return &BuildError{Category: category, Message: message}
}

// Newf creates a BuildError with a formatted message.
func Newf(category Category, format string, args ...any) *BuildError {
	return &BuildError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a BuildError wrapping an existing error.
func Wrap(err error, category Category, message string) *BuildError {
	return &BuildError{Category: category, Message: message, Cause: err}
}

// IsCategory reports whether err (or anything it wraps) is a BuildError of
// the given category.
func IsCategory(err error, category Category) bool {
	var be *BuildError
	if stderrors.As(err, &be) {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error chain, defaulting to
// CategoryInternal for plain errors.
func GetCategory(err error) Category {
	var be *BuildError
	if stderrors.As(err, &be) {
		return be.Category
	}
	return CategoryInternal
}
