package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/catalog"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/loader"
	"github.com/phrazzld/scry-study/internal/session"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge

	// Not found errors
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, domain.ErrSetNotFound):
		return http.StatusNotFound

	// Precondition violations and bad input
	case errors.Is(err, session.ErrIndexOutOfRange),
		errors.Is(err, session.ErrEmptyDeck),
		errors.Is(err, session.ErrUnknownAction),
		errors.Is(err, loader.ErrInvalidFileType),
		errors.Is(err, loader.ErrFilenameRequired),
		errors.Is(err, loader.ErrValidation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Capacity and upstream availability
	case errors.Is(err, session.ErrTooManySessions),
		errors.Is(err, catalog.ErrUnavailable):
		return http.StatusServiceUnavailable

	case errors.Is(err, loader.ErrTransport),
		errors.Is(err, catalog.ErrInvalidCatalog):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *loader.ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit)
	case errors.Is(err, session.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, domain.ErrSetNotFound):
		return "Flashcard set not found"
	case errors.Is(err, session.ErrIndexOutOfRange):
		return "Card index is out of range"
	case errors.Is(err, session.ErrEmptyDeck):
		return "No flashcards to study"
	case errors.Is(err, loader.ErrInvalidFileType):
		return "Please select a JSON file"
	case errors.Is(err, loader.ErrFilenameRequired):
		return "Filename is required"
	case errors.As(err, &validationErr):
		// Validation messages describe the document, not the server.
		return validationErr.Message
	case errors.Is(err, session.ErrTooManySessions):
		return "Too many active sessions, try again later"
	case errors.Is(err, catalog.ErrUnavailable):
		return "Could not load flashcard sets metadata"
	case errors.Is(err, catalog.ErrInvalidCatalog):
		return "Flashcard sets metadata is invalid"
	case errors.Is(err, loader.ErrTransport):
		return "Could not fetch the flashcard set"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrValidation):
		return SanitizeValidationError(err)
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}

	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field, fieldErr.Message)
	}

	return "Invalid request body"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// invalidRequest wraps a request decoding or validation failure so it maps
// to 400.
func invalidRequest(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrValidation, err)
}
