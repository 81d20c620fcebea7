package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskmate-api/internal/api/middleware"
	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	// Secure marks the cookie Secure with SameSite=None. Used in production,
	// where the client is served from another site.
	Secure bool

	// MaxAge is the cookie lifetime. Zero produces a browser-session cookie.
	MaxAge time.Duration
}

// AuthHandler issues and clears session cookies.
type AuthHandler struct {
	tokens  auth.TokenService
	cookies CookieOptions
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(tokens auth.TokenService, cookies CookieOptions, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		tokens:  tokens,
		cookies: cookies,
		logger:  logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /jwt. It signs a token for the submitted email and
// stores it in the session cookie.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid token request body", slog.String("error", err.Error()))
		shared.RespondWithMessage(w, r, http.StatusBadRequest, "Email is required")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithMessage(w, r, http.StatusBadRequest, "Email is required")
		return
	}

	token, err := h.tokens.IssueToken(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrMissingEmail) {
			shared.RespondWithMessage(w, r, http.StatusBadRequest, "Email is required")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	http.SetCookie(w, h.sessionCookie(token))
	log.Info("session issued")

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

// Logout handles GET /logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.clearedCookie())
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookies.MaxAge > 0 {
		cookie.MaxAge = int(h.cookies.MaxAge / time.Second)
	}
	if h.cookies.Secure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func (h *AuthHandler) clearedCookie() *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.cookies.Secure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
