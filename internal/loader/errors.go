package loader

import (
	"errors"
	"fmt"
)

// Load errors. ValidationError and TransportError match these with errors.Is.
var (
	// ErrValidation indicates the document was retrieved but does not have
	// the required shape.
	ErrValidation = errors.New("invalid flashcard document")

	// ErrTransport indicates the document could not be retrieved.
	ErrTransport = errors.New("flashcard document unavailable")

	// ErrInvalidFileType is returned for uploads that are not JSON files.
	ErrInvalidFileType = errors.New("please select a JSON file")

	// ErrFilenameRequired is returned when a load is requested without a filename.
	ErrFilenameRequired = errors.New("filename is required")
)

// ValidationError describes a document that failed the document contract.
// Message is suitable for showing to the user.
type ValidationError struct {
	Message string
	Err     error
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(cause error, format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...), Err: cause}
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransportError describes a failure to retrieve a document.
type TransportError struct {
	Message string
	Err     error
}

// NewTransportError creates a TransportError with a formatted message.
func NewTransportError(cause error, format string, args ...any) *TransportError {
	return &TransportError{Message: fmt.Sprintf(format, args...), Err: cause}
}

func (e *TransportError) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *TransportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Error kinds reported by Kind.
const (
	KindValidation = "validation"
	KindTransport  = "transport"
	KindUnknown    = "unknown"
)

// Kind classifies a load error for logging.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}
