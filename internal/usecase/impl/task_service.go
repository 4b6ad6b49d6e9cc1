package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

func (srv *taskService) Create(ctx context.Context, input *usecase.TaskInput) (*entity.Task, error) {
	task := input.ToEntity()
	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Info("Task created", slog.Uint64("taskID", task.ID), slog.String("owner", task.Owner))

	return task, nil
}

func (srv *taskService) Find(ctx context.Context, filter entity.TaskFilter) ([]*entity.Task, error) {
	tasks, err := srv.taskRepo.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

func (srv *taskService) FindByID(ctx context.Context, id uint64) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapTaskError(err, "failed to find task")
	}

	return task, nil
}

func (srv *taskService) Count(ctx context.Context, filter entity.TaskFilter) (int64, error) {
	count, err := srv.taskRepo.Count(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count tasks")
	}

	return count, nil
}

func (srv *taskService) UpdateAll(ctx context.Context, patch *entity.TaskPatch, filter entity.TaskFilter) (int64, error) {
	count, err := srv.taskRepo.UpdateAll(ctx, patch, filter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to update tasks")
	}

	return count, nil
}

func (srv *taskService) UpdateByID(ctx context.Context, id uint64, patch *entity.TaskPatch) error {
	if err := srv.taskRepo.UpdateFields(ctx, id, patch); err != nil {
		return mapTaskError(err, "failed to update task")
	}

	return nil
}

func (srv *taskService) ReplaceByID(ctx context.Context, id uint64, input *usecase.TaskInput) error {
	task := input.ToEntity()
	task.ID = id
	if err := srv.taskRepo.Update(ctx, task); err != nil {
		return mapTaskError(err, "failed to replace task")
	}

	return nil
}

func (srv *taskService) DeleteByID(ctx context.Context, id uint64) error {
	if err := srv.taskRepo.Delete(ctx, id); err != nil {
		return mapTaskError(err, "failed to delete task")
	}

	return nil
}

// FindOwner resolves the user owning a task.
func (srv *taskService) FindOwner(ctx context.Context, taskID uint64) (*usecase.UserOutput, error) {
	task, err := srv.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskError(err, "failed to find task")
	}

	owner, err := srv.userRepo.FindByUsername(ctx, task.Owner)
	if err != nil {
		return nil, mapUserError(err, "failed to find task owner")
	}

	return usecase.NewUserOutput(owner), nil
}
