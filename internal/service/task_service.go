package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/events"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/redact"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// CreateTaskInput carries the client-controlled fields of a new task.
// Ownership is never part of the input.
type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
}

// TaskService provides task operations scoped to a verified identity.
type TaskService interface {
	// CreateTask stores a new task owned by ownerEmail.
	// Returns domain.ErrInvalidTitle or domain.ErrDescriptionTooLong for invalid input.
	CreateTask(ctx context.Context, ownerEmail string, input CreateTaskInput) (*domain.Task, error)

	// ListTasks returns the tasks of requestedEmail. The caller may only list
	// its own tasks; any other email yields ErrForbidden.
	ListTasks(ctx context.Context, sessionEmail, requestedEmail string) ([]*domain.Task, error)

	// UpdateTask applies the valid subset of patch to the task id owned by
	// ownerEmail and returns the fields that were written.
	// Returns store.ErrTaskNotFound if no owned task matches and
	// domain.ErrInvalidID if id is malformed.
	UpdateTask(ctx context.Context, ownerEmail, id string, patch domain.TaskPatch) (domain.TaskPatch, error)

	// DeleteTask removes the task id owned by ownerEmail.
	// Error semantics are the same as UpdateTask.
	DeleteTask(ctx context.Context, ownerEmail, id string) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks   store.TaskStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService. The emitter may be nil, in which
// case no change notifications are published.
func NewTaskService(tasks store.TaskStore, emitter events.EventEmitter, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:   tasks,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	ownerEmail string,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerEmail, input.Title, input.Description, input.Category)
	if err != nil {
		log.Debug("rejected task creation",
			"error", err,
			redact.EmailAttr("owner", ownerEmail))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			"error", err,
			redact.EmailAttr("owner", ownerEmail))
		return nil, NewServiceError("task", "create", err)
	}

	log.Info("task created",
		"task_id", task.ID,
		redact.EmailAttr("owner", ownerEmail))

	s.notify(ctx, ownerEmail, events.ChangeCreated, task.ID)
	return task, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	sessionEmail, requestedEmail string,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if requestedEmail != sessionEmail {
		log.Warn("rejected task listing for another account",
			redact.EmailAttr("session_email", sessionEmail),
			redact.EmailAttr("requested_email", requestedEmail))
		return nil, ErrForbidden
	}

	tasks, err := s.tasks.ListByOwner(ctx, sessionEmail)
	if err != nil {
		log.Error("failed to list tasks",
			"error", err,
			redact.EmailAttr("owner", sessionEmail))
		return nil, NewServiceError("task", "list", err)
	}

	log.Debug("listed tasks",
		redact.EmailAttr("owner", sessionEmail),
		"count", len(tasks))
	return tasks, nil
}

// UpdateTask implements TaskService.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	ownerEmail, id string,
	patch domain.TaskPatch,
) (domain.TaskPatch, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	applied := patch.Sanitize()
	if err := s.tasks.UpdateOwned(ctx, id, ownerEmail, applied); err != nil {
		if isExpectedTaskError(err) {
			log.Debug("task update rejected",
				"error", err,
				"task_id", id,
				redact.EmailAttr("owner", ownerEmail))
			return domain.TaskPatch{}, err
		}
		log.Error("failed to update task",
			"error", err,
			"task_id", id,
			redact.EmailAttr("owner", ownerEmail))
		return domain.TaskPatch{}, NewServiceError("task", "update", err)
	}

	log.Info("task updated",
		"task_id", id,
		redact.EmailAttr("owner", ownerEmail),
		"field_count", len(applied.Fields()))

	s.notify(ctx, ownerEmail, events.ChangeUpdated, id)
	return applied, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerEmail, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.DeleteOwned(ctx, id, ownerEmail); err != nil {
		if isExpectedTaskError(err) {
			log.Debug("task deletion rejected",
				"error", err,
				"task_id", id,
				redact.EmailAttr("owner", ownerEmail))
			return err
		}
		log.Error("failed to delete task",
			"error", err,
			"task_id", id,
			redact.EmailAttr("owner", ownerEmail))
		return NewServiceError("task", "delete", err)
	}

	log.Info("task deleted",
		"task_id", id,
		redact.EmailAttr("owner", ownerEmail))

	s.notify(ctx, ownerEmail, events.ChangeDeleted, id)
	return nil
}

// notify publishes a change event. Failures are logged and never returned:
// the mutation has already been committed.
func (s *taskServiceImpl) notify(ctx context.Context, ownerEmail, change, taskID string) {
	if s.emitter == nil {
		return
	}

	event := events.NewTaskChangedEvent(ownerEmail, change, taskID)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to publish task change",
			"error", err,
			"event_id", event.ID,
			redact.EmailAttr("owner", ownerEmail))
	}
}

func isExpectedTaskError(err error) bool {
	return errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, domain.ErrInvalidID)
}
