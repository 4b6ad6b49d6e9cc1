package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// Create stores a user with a hashed password.
func (srv *userService) Create(ctx context.Context, input *usecase.UserInput) (*usecase.UserOutput, error) {
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:   input.Username,
		Email:      input.Email,
		Password:   hashedPassword,
		IsLoggedIn: input.IsLoggedIn,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.Uint64("userID", user.ID))

	return usecase.NewUserOutput(user), nil
}

func (srv *userService) Find(ctx context.Context, filter entity.UserFilter) ([]*usecase.UserOutput, error) {
	users, err := srv.userRepo.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	outputs := make([]*usecase.UserOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, usecase.NewUserOutput(user))
	}

	return outputs, nil
}

func (srv *userService) FindByID(ctx context.Context, id uint64) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err, "failed to find user")
	}

	return usecase.NewUserOutput(user), nil
}

func (srv *userService) Count(ctx context.Context, filter entity.UserFilter) (int64, error) {
	count, err := srv.userRepo.Count(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

// UpdateAll applies patch to every matching user. Passwords are never bulk-updated.
func (srv *userService) UpdateAll(ctx context.Context, patch *entity.UserPatch, filter entity.UserFilter) (int64, error) {
	sanitized := *patch
	if sanitized.Password != nil {
		srv.log(ctx).Warn("Dropping password from bulk user update")
		sanitized.Password = nil
	}

	count, err := srv.userRepo.UpdateAll(ctx, &sanitized, filter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to update users")
	}

	return count, nil
}

// UpdateByID applies patch to one user. A non-empty password is hashed; an empty one is ignored.
func (srv *userService) UpdateByID(ctx context.Context, id uint64, patch *entity.UserPatch) error {
	sanitized := *patch
	if sanitized.Password != nil {
		if *sanitized.Password == "" {
			sanitized.Password = nil
		} else {
			hashedPassword, err := srv.hasher.Hash(*sanitized.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			sanitized.Password = &hashedPassword
		}
	}

	if err := srv.userRepo.UpdateFields(ctx, id, &sanitized); err != nil {
		return mapUserError(err, "failed to update user")
	}

	return nil
}

// ReplaceByID overwrites every mutable field of a user. A password is required.
func (srv *userService) ReplaceByID(ctx context.Context, id uint64, input *usecase.UserInput) error {
	if input.Password == "" {
		return domainerrors.ErrPasswordRequired.WrapMessage("password is required to replace a user")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:         id,
		Username:   input.Username,
		Email:      input.Email,
		Password:   hashedPassword,
		IsLoggedIn: input.IsLoggedIn,
	}
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return mapUserError(err, "failed to replace user")
	}

	return nil
}

// DeleteByID removes a user. The user's tasks are kept.
func (srv *userService) DeleteByID(ctx context.Context, id uint64) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return mapUserError(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Uint64("userID", id))

	return nil
}
