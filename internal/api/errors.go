package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/service"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// Client-facing messages shared by several handlers.
const (
	msgUnauthorized  = "Unauthorized access"
	msgUnexpected    = "An unexpected error occurred"
	msgInvalidTaskID = "Invalid task ID"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Not found errors. A task owned by someone else is reported as missing.
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrTaskOwnerEmpty),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErr):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, service.ErrForbidden):
		return msgUnauthorized

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrInvalidTitle):
		return "Invalid title"

	case errors.Is(err, domain.ErrDescriptionTooLong):
		return "Description too long"

	case errors.Is(err, domain.ErrEmptyEmail):
		return "Email is required"

	case errors.Is(err, domain.ErrTaskOwnerEmpty):
		return msgUnauthorized

	case errors.Is(err, domain.ErrInvalidID):
		return msgInvalidTaskID

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field == "" {
			return validationErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	}

	if errors.Is(err, domain.ErrValidation) {
		return "Validation failed"
	}

	return msgUnexpected
}

// HandleAPIError writes the status and safe message for err. For errors that
// map to 500, defaultMsg (when non-empty) replaces the generic message and
// the redacted error is logged at ERROR.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
