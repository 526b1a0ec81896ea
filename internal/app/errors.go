package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// PreconditionFailed indicates the workspace is not in the state the
	// operation requires (file exists, file missing, file locked).
	PreconditionFailed AppErrorType = iota
	// TemplateNotFound indicates the chosen template is not in the catalog.
	TemplateNotFound
	// IOFailed indicates reading or writing the workspace failed.
	IOFailed
	// PromptFailed indicates the selection prompt could not be shown.
	PromptFailed
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case PreconditionFailed:
		return "PreconditionFailed"
	case TemplateNotFound:
		return "TemplateNotFound"
	case IOFailed:
		return "IOFailed"
	case PromptFailed:
		return "PromptFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewPreconditionError creates a precondition error.
func NewPreconditionError(message string, cause error) *AppError {
	return NewAppError(PreconditionFailed, message, cause)
}

// NewTemplateNotFoundError creates a template not found error.
func NewTemplateNotFoundError(name string) *AppError {
	return NewAppError(TemplateNotFound, fmt.Sprintf("template %q not found", name), nil)
}

// NewIOError creates an I/O error.
func NewIOError(message string, cause error) *AppError {
	return NewAppError(IOFailed, message, cause)
}

// NewPromptError creates a prompt error.
func NewPromptError(message string, cause error) *AppError {
	return NewAppError(PromptFailed, message, cause)
}
