package store

import (
	"context"

	"github.com/phrazzld/taskmate-api/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// CreateIfAbsent inserts the account unless one with the same email exists.
	// It reports whether a record was created and, if so, its generated ID.
	// Existing accounts are never modified.
	CreateIfAbsent(ctx context.Context, account *domain.Account) (created bool, id string, err error)

	// ListAll returns every account in no particular order.
	ListAll(ctx context.Context) ([]*domain.Account, error)
}
