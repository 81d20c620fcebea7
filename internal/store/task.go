package store

import (
	"context"

	"github.com/phrazzld/taskmate-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every mutating
// method matches on both the task ID and the owner's email.
type TaskStore interface {
	// Create saves a new task and sets task.ID to the generated identifier.
	Create(ctx context.Context, task *domain.Task) error

	// ListByOwner returns all tasks whose owner is ownerEmail.
	ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.Task, error)

	// UpdateOwned writes the patch to the task matching id and ownerEmail.
	// Returns ErrTaskNotFound if no task matches, and an error wrapping
	// domain.ErrInvalidID if id is not in the store's identifier format.
	UpdateOwned(ctx context.Context, id, ownerEmail string, patch domain.TaskPatch) error

	// DeleteOwned removes the task matching id and ownerEmail.
	// Error semantics are the same as UpdateOwned.
	DeleteOwned(ctx context.Context, id, ownerEmail string) error
}
