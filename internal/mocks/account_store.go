package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// MockAccountStore implements store.AccountStore in memory for testing
type MockAccountStore struct {
	// Function fields for customizable behavior
	CreateIfAbsentFn func(ctx context.Context, account *domain.Account) (bool, string, error)
	ListAllFn        func(ctx context.Context) ([]*domain.Account, error)

	// Errors returned by the default implementation when set
	CreateError error
	ListError   error

	mu       sync.Mutex
	accounts map[string]*domain.Account
	order    []string
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// NewMockAccountStore creates a new mock store with initialized defaults
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// CreateIfAbsent implements the AccountStore interface
func (m *MockAccountStore) CreateIfAbsent(ctx context.Context, account *domain.Account) (bool, string, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, account)
	}
	if m.CreateError != nil {
		return false, "", m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accounts == nil {
		m.accounts = make(map[string]*domain.Account)
	}
	if _, exists := m.accounts[account.Email]; exists {
		return false, "", nil
	}

	account.ID = uuid.NewString()
	stored := *account
	m.accounts[account.Email] = &stored
	m.order = append(m.order, account.Email)
	return true, account.ID, nil
}

// ListAll implements the AccountStore interface
func (m *MockAccountStore) ListAll(ctx context.Context) ([]*domain.Account, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Account, 0, len(m.order))
	for _, email := range m.order {
		acc := *m.accounts[email]
		out = append(out, &acc)
	}
	return out, nil
}

// Count returns the number of stored accounts.
func (m *MockAccountStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}
