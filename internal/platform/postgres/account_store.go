package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/redact"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the AccountStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// CreateIfAbsent implements store.AccountStore.CreateIfAbsent.
// The insert and the existence check are one statement; the UNIQUE constraint
// on email resolves concurrent registrations.
func (s *PostgresAccountStore) CreateIfAbsent(
	ctx context.Context,
	account *domain.Account,
) (bool, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if account.Email == "" {
		return false, "", domain.ErrEmptyEmail
	}

	profile, err := json.Marshal(account.Profile)
	if err != nil {
		return false, "", fmt.Errorf("%w: profile is not serializable: %v", store.ErrInvalidEntity, err)
	}
	if account.Profile == nil {
		profile = []byte("{}")
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	id := uuid.New()
	query := `
		INSERT INTO accounts (id, email, profile, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`
	var inserted uuid.UUID
	err = s.db.QueryRowContext(ctx, query, id, account.Email, profile, account.CreatedAt).Scan(&inserted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || IsUniqueViolation(err) {
			log.Debug("account already exists", redact.EmailAttr("email", account.Email))
			return false, "", nil
		}
		log.Error("failed to create account",
			slog.String("error", err.Error()),
			redact.EmailAttr("email", account.Email))
		return false, "", store.NewStoreError("account", "create", "insert failed", MapError(err))
	}

	account.ID = inserted.String()
	log.Info("account created",
		slog.String("account_id", account.ID),
		redact.EmailAttr("email", account.Email))
	return true, account.ID, nil
}

// ListAll implements store.AccountStore.ListAll
func (s *PostgresAccountStore) ListAll(ctx context.Context) ([]*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, email, profile, created_at FROM accounts`)
	if err != nil {
		log.Error("failed to query accounts", slog.String("error", err.Error()))
		return nil, store.NewStoreError("account", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		var (
			id      uuid.UUID
			account domain.Account
			profile []byte
		)
		if err := rows.Scan(&id, &account.Email, &profile, &account.CreatedAt); err != nil {
			return nil, store.NewStoreError("account", "list", "scan failed", err)
		}
		account.ID = id.String()
		if err := json.Unmarshal(profile, &account.Profile); err != nil {
			return nil, store.NewStoreError("account", "list", "profile decode failed", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("account", "list", "row iteration failed", err)
	}

	log.Debug("listed accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}
