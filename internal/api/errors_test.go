package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/service"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
	"github.com/phrazzld/taskmate-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrapped bad signature", fmt.Errorf("verify: %w", auth.ErrInvalidSignature), http.StatusUnauthorized},
		{"domain unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid title", domain.ErrInvalidTitle, http.StatusBadRequest},
		{"description too long", domain.ErrDescriptionTooLong, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"empty email", domain.ErrEmptyEmail, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"field validation", domain.NewValidationError("email", "must be valid", nil), http.StatusBadRequest},
		{
			"store error wrapping not found",
			store.NewStoreError("task", "update", "no match", store.ErrTaskNotFound),
			http.StatusNotFound,
		},
		{
			"service error wrapping driver failure",
			service.NewServiceError("task", "create", errors.New("connection refused")),
			http.StatusInternalServerError,
		},
		{"unknown error", errors.New("unknown error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid token", auth.ErrInvalidToken, "Unauthorized access"},
		{"forbidden", service.ErrForbidden, "Unauthorized access"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"generic not found", store.ErrNotFound, "Resource not found"},
		{"duplicate", store.ErrDuplicate, "Resource already exists"},
		{"invalid title", domain.ErrInvalidTitle, "Invalid title"},
		{"description too long", domain.ErrDescriptionTooLong, "Description too long"},
		{"invalid id", domain.ErrInvalidID, "Invalid task ID"},
		{
			"wrapped invalid id",
			domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			"Invalid task ID",
		},
		{"empty email", domain.ErrEmptyEmail, "Email is required"},
		{"bare validation", domain.ErrValidation, "Validation failed"},
		{"field validation", domain.NewValidationError("email", "must be valid", nil), "Invalid email: must be valid"},
		{"validation without field", domain.NewValidationError("", "validation failed", nil), "validation failed"},
		{
			"driver error with details",
			fmt.Errorf("SQL error: %w", errors.New("syntax error at line 42 in SELECT * FROM tasks")),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
			if tt.err != nil && tt.expectedMessage == "An unexpected error occurred" {
				assert.NotContains(t, message, tt.err.Error())
			}
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		defaultMsg      string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "not found ignores default",
			err:             store.ErrTaskNotFound,
			defaultMsg:      "Failed to update task",
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Task not found",
		},
		{
			name:            "server error uses default",
			err:             errors.New("mongo: connection reset"),
			defaultMsg:      "Failed to update task",
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Failed to update task",
		},
		{
			name:            "server error without default",
			err:             errors.New("mongo: connection reset"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/records/x", nil)

			HandleAPIError(rr, req, tc.err, tc.defaultMsg)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tc.expectedMessage, body["error"])
		})
	}
}
