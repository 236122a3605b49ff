package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryUsage  Category = "usage"
	CategoryRender Category = "render"
	CategoryStream Category = "stream"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// RivuletError is a structured error with a code, category, suggestions,
// and documentation.
type RivuletError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (usage, render, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RivuletError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RivuletError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RivuletError) WithSuggestion(s string) *RivuletError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *RivuletError) WithExample(ex string) *RivuletError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RivuletError) WithDetail(d string) *RivuletError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RivuletError) Wrap(err error) *RivuletError {
	e.Wrapped = err
	return e
}

// New creates a RivuletError from a registered error code.
func New(code string) *RivuletError {
	template, ok := registry[code]
	if !ok {
		return &RivuletError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RivuletError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new RivuletError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RivuletError {
	return &RivuletError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RivuletError.
func FromError(err error, code string) *RivuletError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RivuletError); ok {
		return re
	}
	return New(code).Wrap(err)
}

// IsUsage reports whether err is a usage-category RivuletError. Usage
// errors are defects in the calling code; the buffering core fails fast
// on them and callers should not retry.
func IsUsage(err error) bool {
	re, ok := err.(*RivuletError)
	return ok && re.Category == CategoryUsage
}
