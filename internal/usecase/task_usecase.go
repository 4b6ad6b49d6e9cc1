package usecase

import (
	"context"

	"taskboard/internal/domain/entity"
)

// TaskInput carries every writable task field.
type TaskInput struct {
	Title       string
	Description string
	Completed   bool
	Owner       string
}

// ToEntity builds a new task from the input.
func (in *TaskInput) ToEntity() *entity.Task {
	return &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Owner:       in.Owner,
	}
}

// TaskUsecase defines the unscoped task operations behind the dashboard.
type TaskUsecase interface {
	Create(ctx context.Context, input *TaskInput) (*entity.Task, error)
	Find(ctx context.Context, filter entity.TaskFilter) ([]*entity.Task, error)
	FindByID(ctx context.Context, id uint64) (*entity.Task, error)
	Count(ctx context.Context, filter entity.TaskFilter) (int64, error)
	UpdateAll(ctx context.Context, patch *entity.TaskPatch, filter entity.TaskFilter) (int64, error)
	UpdateByID(ctx context.Context, id uint64, patch *entity.TaskPatch) error
	ReplaceByID(ctx context.Context, id uint64, input *TaskInput) error
	DeleteByID(ctx context.Context, id uint64) error
	// FindOwner resolves the user whose username matches the task's owner.
	FindOwner(ctx context.Context, taskID uint64) (*UserOutput, error)
}
