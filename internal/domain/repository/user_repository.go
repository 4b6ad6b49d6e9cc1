// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uint64) (*entity.User, error)

	// FindByUsername retrieves a single user by their unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByUsernameOrEmail reports whether any user already holds the username or the email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Find lists users matching the filter, ordered by ID.
	Find(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error)

	// Count returns the number of users matching the filter.
	Count(ctx context.Context, filter entity.UserFilter) (int64, error)

	// Create persists a new user entity and fills in its generated fields.
	Create(ctx context.Context, user *entity.User) error

	// Update writes every mutable field of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// UpdateFields applies a partial update to one user.
	UpdateFields(ctx context.Context, id uint64, patch *entity.UserPatch) error

	// UpdateAll applies a partial update to every user matching the filter and returns the affected count.
	UpdateAll(ctx context.Context, patch *entity.UserPatch, filter entity.UserFilter) (int64, error)

	// Delete removes a user. Tasks owned by the user are left in place.
	Delete(ctx context.Context, id uint64) error
}
