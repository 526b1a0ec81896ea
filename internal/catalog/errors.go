package catalog

import "fmt"

// FetchErrorType classifies catalog fetch failures.
type FetchErrorType int

const (
	// FetchFailed indicates the request could not be made or completed.
	FetchFailed FetchErrorType = iota
	// BadStatus indicates the source answered with a non-200 status.
	BadStatus
	// InvalidPayload indicates the response body was not a template list.
	InvalidPayload
)

// String returns the string representation of the error type.
func (t FetchErrorType) String() string {
	switch t {
	case FetchFailed:
		return "FetchFailed"
	case BadStatus:
		return "BadStatus"
	case InvalidPayload:
		return "InvalidPayload"
	default:
		return "Unknown"
	}
}

// FetchError is returned by a Source when the catalog cannot be obtained.
type FetchError struct {
	// Type is the error type classification.
	Type FetchErrorType
	// URL is the source location.
	URL string
	// Message is the human-readable error message.
	Message string
	// StatusCode is the HTTP status for BadStatus errors.
	StatusCode int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog fetch [%s] from '%s': %s (caused by: %v)",
			e.Type, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog fetch [%s] from '%s': %s", e.Type, e.URL, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewFetchError creates a fetch failed error.
func NewFetchError(url string, cause error) *FetchError {
	return &FetchError{Type: FetchFailed, URL: url, Message: "request failed", Cause: cause}
}

// NewStatusError creates an unexpected status error.
func NewStatusError(url string, status int) *FetchError {
	return &FetchError{
		Type:       BadStatus,
		URL:        url,
		Message:    fmt.Sprintf("unexpected status code: %d", status),
		StatusCode: status,
	}
}

// NewPayloadError creates an invalid payload error.
func NewPayloadError(url, message string, cause error) *FetchError {
	return &FetchError{Type: InvalidPayload, URL: url, Message: message, Cause: cause}
}
