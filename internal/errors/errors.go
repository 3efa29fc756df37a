package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeService    ErrorType = "service"
	ErrorTypeUnexpected ErrorType = "unexpected"
	ErrorTypeShape      ErrorType = "shape"
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeConfig     ErrorType = "config"
)

// Sentinels for errors.Is comparisons against a whole category.
var (
	ErrService    = &AppError{Type: ErrorTypeService}
	ErrUnexpected = &AppError{Type: ErrorTypeUnexpected}
	ErrShape      = &AppError{Type: ErrorTypeShape}
	ErrInput      = &AppError{Type: ErrorTypeInput}
	ErrConfig     = &AppError{Type: ErrorTypeConfig}
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error

	// Fatal marks a service error that makes every further call pointless,
	// e.g. rejected credentials.
	Fatal bool
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewServiceError creates an error for a failing or unreachable upstream service
func NewServiceError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeService,
		Message: message,
		Err:     err,
	}
}

// NewFatalServiceError creates a service error that should abort the whole operation
func NewFatalServiceError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeService,
		Message: message,
		Err:     err,
		Fatal:   true,
	}
}

// NewUnexpectedError creates an error for any other failure in a call path
func NewUnexpectedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnexpected,
		Message: message,
		Err:     err,
	}
}

// NewShapeError creates an error for a request body without any translatable field
func NewShapeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeShape,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates an error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates an error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// IsFatal reports whether err carries a fatal service error.
func IsFatal(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fatal
	}
	return false
}

// IsCanceled reports whether err stems from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "Error: The translation timed out. Try a larger --timeout or a lower --concurrency."
	}
	if errors.Is(err, context.Canceled) {
		return "Error: The translation was canceled."
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeService:
			if appErr.Fatal {
				return fmt.Sprintf("Translation service rejected the request: %s. Check your API key.", appErr.Message)
			}
			return fmt.Sprintf("Translation service error: %s", appErr.Message)
		case ErrorTypeUnexpected:
			return fmt.Sprintf("Unexpected error: %s", appErr.Message)
		case ErrorTypeShape:
			return fmt.Sprintf("Invalid request structure: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	return fmt.Sprintf("Error: %v", err)
}
