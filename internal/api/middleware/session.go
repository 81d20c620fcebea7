package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/redact"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "token"

	// UnauthorizedMessage is returned for every rejected session.
	UnauthorizedMessage = "Unauthorized access"
)

// SessionMiddleware authenticates requests by the session cookie.
type SessionMiddleware struct {
	tokens auth.TokenService
}

// NewSessionMiddleware creates a SessionMiddleware that verifies cookies with tokens.
func NewSessionMiddleware(tokens auth.TokenService) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid session cookie with 401 and
// otherwise stores the token's email in the request context.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			log.Debug("request without session cookie", slog.String("path", r.URL.Path))
			shared.RespondWithMessage(w, r, http.StatusUnauthorized, UnauthorizedMessage)
			return
		}

		claims, err := m.tokens.VerifyToken(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				log.Debug("rejected session token",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()))
			} else {
				log.Error("failed to verify session token", slog.String("error", redact.Error(err)))
			}
			shared.RespondWithMessage(w, r, http.StatusUnauthorized, UnauthorizedMessage)
			return
		}

		ctx := shared.WithUserEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserEmail returns the verified session email of the request.
// The boolean is false if the request did not pass through Authenticate.
func GetUserEmail(r *http.Request) (string, bool) {
	return shared.UserEmailFromContext(r.Context())
}
