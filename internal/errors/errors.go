// Package errors provides a lightweight structured error type (BlogError)
// for category-based classification of generation and publish failures in the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of an error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Generation pipeline errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryMarkdown   ErrorCategory = "markdown"
	CategoryTemplate   ErrorCategory = "template"
	CategoryBuild      ErrorCategory = "build"

	// External system errors
	CategoryGit ErrorCategory = "git"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// BlogError is a structured error with category, severity and context
type BlogError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BlogError
type ContextFields map[string]any

// Error implements the error interface
func (e *BlogError) Error() string {
	msg := e.Message
	if subject := e.subject(); subject != "" {
		msg = fmt.Sprintf("%s [%s]", msg, subject)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, msg, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, msg)
}

// subject picks the context field that identifies what failed.
func (e *BlogError) subject() string {
	for _, key := range []string{"entity", "path", "field"} {
		if v, ok := e.Context[key]; ok {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BlogError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BlogError) WithContext(key string, value any) *BlogError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BlogError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BlogError {
	return &BlogError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BlogError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BlogError {
	return &BlogError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost BlogError in err's chain.
func As(err error) (*BlogError, bool) {
	var be *BlogError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := As(err); ok {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BlogError
func GetCategory(err error) ErrorCategory {
	if be, ok := As(err); ok {
		return be.Category
	}
	return CategoryInternal
}
