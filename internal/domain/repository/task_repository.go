package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain/entity"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the operations for task persistence.
type TaskRepository interface {
	// FindByID retrieves a single task by its unique ID.
	FindByID(ctx context.Context, id uint64) (*entity.Task, error)

	// Find lists tasks matching the filter, ordered by ID.
	Find(ctx context.Context, filter entity.TaskFilter) ([]*entity.Task, error)

	// Count returns the number of tasks matching the filter.
	Count(ctx context.Context, filter entity.TaskFilter) (int64, error)

	// Create persists a new task and fills in its generated fields.
	Create(ctx context.Context, task *entity.Task) error

	// Update writes every mutable field of an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// UpdateFields applies a partial update to one task.
	UpdateFields(ctx context.Context, id uint64, patch *entity.TaskPatch) error

	// UpdateAll applies a partial update to every task matching the filter and returns the affected count.
	UpdateAll(ctx context.Context, patch *entity.TaskPatch, filter entity.TaskFilter) (int64, error)

	// Delete removes a task.
	Delete(ctx context.Context, id uint64) error
}
