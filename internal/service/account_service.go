package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/redact"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// RegisterResult reports the outcome of an account registration.
type RegisterResult struct {
	// Created is false when an account with the same email already existed.
	Created bool
	// ID is the generated identifier of the new account, empty when not created.
	ID string
}

// AccountService provides account registration and listing.
type AccountService interface {
	// Register creates an account for email unless one already exists.
	// Returns domain.ErrEmptyEmail if email is empty.
	Register(ctx context.Context, email string, profile map[string]any) (RegisterResult, error)

	// ListAccounts returns every account.
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

type accountServiceImpl struct {
	accounts store.AccountStore
	logger   *slog.Logger
}

var _ AccountService = (*accountServiceImpl)(nil)

// NewAccountService creates a new AccountService
func NewAccountService(accounts store.AccountStore, logger *slog.Logger) (AccountService, error) {
	if accounts == nil {
		return nil, domain.NewValidationError("accounts", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "account_service")),
	}, nil
}

// Register implements AccountService.
func (s *accountServiceImpl) Register(
	ctx context.Context,
	email string,
	profile map[string]any,
) (RegisterResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := domain.NewAccount(email, profile)
	if err != nil {
		return RegisterResult{}, err
	}

	created, id, err := s.accounts.CreateIfAbsent(ctx, account)
	if err != nil {
		log.Error("failed to register account",
			"error", err,
			redact.EmailAttr("email", email))
		return RegisterResult{}, NewServiceError("account", "register", err)
	}

	if created {
		log.Info("account registered", "account_id", id, redact.EmailAttr("email", email))
	} else {
		log.Debug("account already registered", redact.EmailAttr("email", email))
	}

	return RegisterResult{Created: created, ID: id}, nil
}

// ListAccounts implements AccountService.
func (s *accountServiceImpl) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list accounts", "error", err)
		return nil, NewServiceError("account", "list", err)
	}
	return accounts, nil
}
