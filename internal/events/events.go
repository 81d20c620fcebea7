package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskUpdatedPrefix is prepended to the owner email to form the notification name.
const TaskUpdatedPrefix = "task-updated-"

// Task change kinds.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// TaskChangedEvent signals that one of an account's tasks was mutated.
// It carries no task data; subscribers refetch what they need.
type TaskChangedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// OwnerEmail identifies the account whose tasks changed
	OwnerEmail string `json:"owner_email"`

	// Name is the notification name delivered to clients: "task-updated-<email>"
	Name string `json:"name"`

	// Change is one of ChangeCreated, ChangeUpdated or ChangeDeleted
	Change string `json:"change"`

	// TaskID is the id of the mutated task
	TaskID string `json:"task_id"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskChangedEvent creates a new TaskChangedEvent for the given owner.
func NewTaskChangedEvent(ownerEmail, change, taskID string) *TaskChangedEvent {
	return &TaskChangedEvent{
		ID:         uuid.New(),
		OwnerEmail: ownerEmail,
		Name:       TaskUpdatedPrefix + ownerEmail,
		Change:     change,
		TaskID:     taskID,
		CreatedAt:  time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskChangedEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskChangedEvent) error
}
