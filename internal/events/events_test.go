package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskChangedEvent(t *testing.T) {
	event := NewTaskChangedEvent("a@example.com", ChangeCreated, "task-1")

	require.NotNil(t, event)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "a@example.com", event.OwnerEmail)
	assert.Equal(t, "task-updated-a@example.com", event.Name)
	assert.Equal(t, ChangeCreated, event.Change)
	assert.Equal(t, "task-1", event.TaskID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)
}

func TestNewTaskChangedEventUniqueIDs(t *testing.T) {
	first := NewTaskChangedEvent("a@example.com", ChangeUpdated, "task-1")
	second := NewTaskChangedEvent("a@example.com", ChangeUpdated, "task-1")
	assert.NotEqual(t, first.ID, second.ID)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	mu sync.Mutex
	// The last event received by this handler
	LastEvent *TaskChangedEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskChangedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandler(t *testing.T) {
	handler := &MockEventHandler{}
	event := NewTaskChangedEvent("a@example.com", ChangeDeleted, "task-1")

	err := handler.HandleEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.Equal(t, 1, handler.HandledCount)
	assert.Equal(t, event, handler.LastEvent)

	// Test error case
	expectedErr := errors.New("handler error")
	handler.HandlerError = expectedErr
	err = handler.HandleEvent(context.Background(), event)
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 2, handler.HandledCount)
}
