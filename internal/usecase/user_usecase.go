package usecase

import (
	"context"
	"time"

	"taskboard/internal/domain/entity"
)

// UserInput carries every writable user field. It is used for both create and full replace.
type UserInput struct {
	Username   string
	Email      string
	Password   string
	IsLoggedIn bool
}

// UserOutput is the public view of a user. It never carries the password hash.
type UserOutput struct {
	ID         uint64
	Username   string
	Email      string
	IsLoggedIn bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewUserOutput builds the public view of user.
func NewUserOutput(user *entity.User) *UserOutput {
	if user == nil {
		return nil
	}

	return &UserOutput{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		IsLoggedIn: user.IsLoggedIn,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// UserUsecase defines the unscoped user administration operations.
type UserUsecase interface {
	Create(ctx context.Context, input *UserInput) (*UserOutput, error)
	Find(ctx context.Context, filter entity.UserFilter) ([]*UserOutput, error)
	FindByID(ctx context.Context, id uint64) (*UserOutput, error)
	Count(ctx context.Context, filter entity.UserFilter) (int64, error)
	// UpdateAll never changes passwords; a password in the patch is dropped.
	UpdateAll(ctx context.Context, patch *entity.UserPatch, filter entity.UserFilter) (int64, error)
	UpdateByID(ctx context.Context, id uint64, patch *entity.UserPatch) error
	ReplaceByID(ctx context.Context, id uint64, input *UserInput) error
	DeleteByID(ctx context.Context, id uint64) error
}
