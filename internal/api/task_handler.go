package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/service"
)

// TaskHandler serves the owner-scoped task routes. Every operation acts on
// behalf of the session email, never on an owner named in the request body.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /records.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	email, ok := getUserEmailFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), email, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ListTasks handles GET /records/{email}. A session may only list its own tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	sessionEmail, requested, ok := handleUserEmailAndPathParam(w, r, "email", h.logger)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), sessionEmail, requested)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, msgUnauthorized, err,
				shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateTask handles PUT /records/{id} and PATCH /tasks/{id}. Both routes
// share this contract: invalid fields in the body are skipped, and the
// response lists the fields that were written.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	email, id, ok := handleUserEmailAndPathParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	var patch domain.TaskPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	applied, err := h.tasks.UpdateTask(r.Context(), email, id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskUpdatedResponse{
		Message:       "Task updated",
		TaskID:        id,
		UpdatedFields: applied.Fields(),
	})
}

// DeleteTask handles DELETE /records/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	email, id, ok := handleUserEmailAndPathParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), email, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted")
}
