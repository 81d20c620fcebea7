package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/redact"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	id := uuid.New()
	query := `
		INSERT INTO tasks (id, user_id, title, description, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		id,
		task.UserID,
		task.Title,
		task.Description,
		task.Category,
		task.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			redact.EmailAttr("owner", task.UserID))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	task.ID = id.String()
	log.Debug("task created", slog.String("task_id", task.ID))
	return nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, category, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			redact.EmailAttr("owner", ownerEmail))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			task domain.Task
		)
		if err := rows.Scan(&id, &task.UserID, &task.Title, &task.Description, &task.Category, &task.CreatedAt); err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		task.ID = id.String()
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "row iteration failed", err)
	}

	return tasks, nil
}

// UpdateOwned implements store.TaskStore.UpdateOwned
func (s *PostgresTaskStore) UpdateOwned(
	ctx context.Context,
	id, ownerEmail string,
	patch domain.TaskPatch,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := parseTaskID(id)
	if err != nil {
		return err
	}

	if patch.IsEmpty() {
		var exists bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)`,
			taskID, ownerEmail,
		).Scan(&exists)
		if err != nil {
			return store.NewStoreError("task", "update", "ownership check failed", MapError(err))
		}
		if !exists {
			return store.ErrTaskNotFound
		}
		return nil
	}

	setClauses := make([]string, 0, 3)
	args := []any{taskID, ownerEmail}
	for _, col := range []struct {
		name  string
		value *string
	}{
		{"title", patch.Title},
		{"description", patch.Description},
		{"category", patch.Category},
	} {
		if col.value == nil {
			continue
		}
		args = append(args, *col.value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col.name, len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = $1 AND user_id = $2`,
		strings.Join(setClauses, ", "),
	)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		return store.NewStoreError("task", "update", "rows affected check failed", err)
	}

	return nil
}

// DeleteOwned implements store.TaskStore.DeleteOwned
func (s *PostgresTaskStore) DeleteOwned(ctx context.Context, id, ownerEmail string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := parseTaskID(id)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, ownerEmail,
	)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		return store.NewStoreError("task", "delete", "rows affected check failed", err)
	}

	return nil
}

func parseTaskID(id string) (uuid.UUID, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a task id", domain.ErrInvalidID, id)
	}
	return taskID, nil
}
