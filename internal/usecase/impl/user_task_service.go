package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userTaskService implements the UserTaskUsecase interface.
type userTaskService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

// UserTaskServiceParams holds dependencies for UserTaskService, injected by Fx.
type UserTaskServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	TaskRepo repository.TaskRepository
	Logger   *slog.Logger
}

// NewUserTaskService is the constructor for userTaskService.
func NewUserTaskService(params UserTaskServiceParams) usecase.UserTaskUsecase {
	return &userTaskService{
		userRepo: params.UserRepo,
		taskRepo: params.TaskRepo,
		logger:   params.Logger,
	}
}

func (srv *userTaskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// Create stores a task owned by the user, whatever owner the input names.
func (srv *userTaskService) Create(ctx context.Context, userID uint64, input *usecase.TaskInput) (*entity.Task, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserError(err, "failed to find user")
	}

	task := input.ToEntity()
	task.Owner = user.Username
	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Info("Task created", slog.Uint64("taskID", task.ID), slog.Uint64("userID", user.ID))

	return task, nil
}

// List returns the user's tasks, narrowed by the completion and paging fields of filter.
func (srv *userTaskService) List(ctx context.Context, userID uint64, filter entity.TaskFilter) ([]*entity.Task, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserError(err, "failed to find user")
	}

	filter.Owner = user.Username
	tasks, err := srv.taskRepo.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

// Get returns one of the user's tasks. A task owned by someone else is reported as missing.
func (srv *userTaskService) Get(ctx context.Context, userID, taskID uint64) (*entity.Task, error) {
	user, task, err := srv.resolve(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(user) {
		return nil, domainerrors.ErrTaskNotFound.WrapMessage("task not owned by user")
	}

	return task, nil
}

// UpdateByID patches the task when the user owns it and does nothing otherwise.
func (srv *userTaskService) UpdateByID(ctx context.Context, userID, taskID uint64, patch *entity.TaskPatch) error {
	user, task, err := srv.resolve(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if !task.IsOwnedBy(user) {
		srv.log(ctx).Info("Ignoring update of task owned by another user",
			slog.Uint64("taskID", taskID), slog.Uint64("userID", userID))

		return nil
	}

	sanitized := *patch
	sanitized.Owner = nil
	if err := srv.taskRepo.UpdateFields(ctx, taskID, &sanitized); err != nil {
		return mapTaskError(err, "failed to update task")
	}

	return nil
}

// DeleteByID removes the task when the user owns it and does nothing otherwise.
func (srv *userTaskService) DeleteByID(ctx context.Context, userID, taskID uint64) error {
	user, task, err := srv.resolve(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if !task.IsOwnedBy(user) {
		srv.log(ctx).Info("Ignoring delete of task owned by another user",
			slog.Uint64("taskID", taskID), slog.Uint64("userID", userID))

		return nil
	}

	if err := srv.taskRepo.Delete(ctx, taskID); err != nil {
		return mapTaskError(err, "failed to delete task")
	}

	return nil
}

func (srv *userTaskService) resolve(ctx context.Context, userID, taskID uint64) (*entity.User, *entity.Task, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, mapUserError(err, "failed to find user")
	}

	task, err := srv.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, mapTaskError(err, "failed to find task")
	}

	return user, task, nil
}
