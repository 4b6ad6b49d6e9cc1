package usecase

import (
	"context"

	"taskboard/internal/domain/entity"
)

// UserTaskUsecase manages the tasks owned by one user.
// Writes against a task owned by someone else are ignored without an error.
type UserTaskUsecase interface {
	// Create stores a task owned by the user. The input's owner is overwritten.
	Create(ctx context.Context, userID uint64, input *TaskInput) (*entity.Task, error)
	List(ctx context.Context, userID uint64, filter entity.TaskFilter) ([]*entity.Task, error)
	Get(ctx context.Context, userID, taskID uint64) (*entity.Task, error)
	UpdateByID(ctx context.Context, userID, taskID uint64, patch *entity.TaskPatch) error
	DeleteByID(ctx context.Context, userID, taskID uint64) error
}
