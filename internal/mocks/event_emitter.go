package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskmate-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// RecordingEventEmitter implements events.EventEmitter by remembering every
// emitted event.
type RecordingEventEmitter struct {
	// Err is returned from EmitEvent after the event is recorded
	Err error

	mu     sync.Mutex
	events []*events.TaskChangedEvent
}

var _ events.EventEmitter = (*RecordingEventEmitter)(nil)

// EmitEvent implements the events.EventEmitter interface
func (r *RecordingEventEmitter) EmitEvent(ctx context.Context, event *events.TaskChangedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.Err
}

// Events returns a copy of the recorded events.
func (r *RecordingEventEmitter) Events() []*events.TaskChangedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*events.TaskChangedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// TestifyMockEventEmitter is a mock of events.EventEmitter for use with testify/mock
type TestifyMockEventEmitter struct {
	mock.Mock
}

var _ events.EventEmitter = (*TestifyMockEventEmitter)(nil)

// EmitEvent is a mock implementation of events.EventEmitter.EmitEvent
func (m *TestifyMockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
