package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// MockTaskStore implements store.TaskStore in memory for testing.
// Task IDs are UUIDs; any other ID format is rejected with domain.ErrInvalidID,
// matching the Postgres store.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, task *domain.Task) error
	ListByOwnerFn func(ctx context.Context, ownerEmail string) ([]*domain.Task, error)
	UpdateOwnedFn func(ctx context.Context, id, ownerEmail string, patch domain.TaskPatch) error
	DeleteOwnedFn func(ctx context.Context, id, ownerEmail string) error

	// Errors returned by the default implementation when set
	CreateError error
	ListError   error
	UpdateError error
	DeleteError error

	mu    sync.Mutex
	tasks map[string]*domain.Task
	order []string
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[string]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tasks == nil {
		m.tasks = make(map[string]*domain.Task)
	}
	task.ID = uuid.NewString()
	stored := *task
	m.tasks[task.ID] = &stored
	m.order = append(m.order, task.ID)
	return nil
}

// ListByOwner implements the TaskStore interface
func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerEmail)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Task, 0)
	for _, id := range m.order {
		task, ok := m.tasks[id]
		if !ok || task.UserID != ownerEmail {
			continue
		}
		copied := *task
		out = append(out, &copied)
	}
	return out, nil
}

// UpdateOwned implements the TaskStore interface
func (m *MockTaskStore) UpdateOwned(ctx context.Context, id, ownerEmail string, patch domain.TaskPatch) error {
	if m.UpdateOwnedFn != nil {
		return m.UpdateOwnedFn(ctx, id, ownerEmail, patch)
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}

	task, err := m.findOwned(id, ownerEmail)
	if err != nil {
		return err
	}

	m.mu.Lock()
	patch.Apply(task)
	m.mu.Unlock()
	return nil
}

// DeleteOwned implements the TaskStore interface
func (m *MockTaskStore) DeleteOwned(ctx context.Context, id, ownerEmail string) error {
	if m.DeleteOwnedFn != nil {
		return m.DeleteOwnedFn(ctx, id, ownerEmail)
	}
	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, err := m.findOwned(id, ownerEmail); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the stored task with the given id, ignoring ownership.
// It is a test inspection helper and not part of store.TaskStore.
func (m *MockTaskStore) Get(id string) (*domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, false
	}
	copied := *task
	return &copied, true
}

// Count returns the number of stored tasks.
func (m *MockTaskStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MockTaskStore) findOwned(id, ownerEmail string) (*domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q is not a task id", domain.ErrInvalidID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok || task.UserID != ownerEmail {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}
