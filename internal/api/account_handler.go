package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/service"
)

// AccountHandler serves account registration and listing.
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "account_handler")),
	}
}

// CreateAccount handles POST /accounts. The body is an arbitrary JSON object
// with an email; the remaining fields are stored as the profile.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var body map[string]any
	if err := shared.DecodeJSON(r, &body); err != nil || body == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	email, _ := body["email"].(string)
	result, err := h.accounts.Register(r.Context(), email, body)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create account")
		return
	}

	if !result.Created {
		log.Debug("account already registered")
		shared.RespondWithJSON(w, r, http.StatusOK, AccountExistsResponse{Message: "User already exists"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AccountCreatedResponse{
		Acknowledged: true,
		InsertedID:   result.ID,
	})
}

// ListAccounts handles GET /accounts.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list accounts")
		return
	}
	if accounts == nil {
		accounts = []*domain.Account{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, accounts)
}
