package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
)

// getUserEmailFromContext returns the session email placed in the context by
// the session middleware.
func getUserEmailFromContext(r *http.Request) (string, bool) {
	return shared.UserEmailFromContext(r.Context())
}

// getPathParam returns a required, non-empty URL path parameter. chi matches
// on the escaped path when one is present, so the value is unescaped here.
func getPathParam(r *http.Request, paramName string) (string, error) {
	value, err := url.PathUnescape(chi.URLParam(r, paramName))
	if err != nil {
		return "", domain.NewValidationError(paramName, "is malformed", domain.ErrValidation)
	}
	if value == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return value, nil
}

// handleUserEmailAndPathParam extracts both the session email and a path
// parameter, writing an error response and returning false if either is missing.
func handleUserEmailAndPathParam(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (string, string, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	email, ok := getUserEmailFromContext(r)
	if !ok {
		log.Warn("session email not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return "", "", false
	}

	value, err := getPathParam(r, paramName)
	if err != nil {
		log.Warn("missing path parameter", slog.String("param_name", paramName))
		HandleAPIError(w, r, err, "")
		return "", "", false
	}

	return email, value, true
}
