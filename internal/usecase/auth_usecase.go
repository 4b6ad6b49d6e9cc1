// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// Messages returned by the auth flow on success.
const (
	MessageRegistrationSuccessful = "Registration successful"
	MessageLoginSuccessful        = "Login successful"
	MessageLogoutSuccessful       = "Logout successful"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the credentials for a login attempt. Users log in by email.
type LoginInput struct {
	Email    string
	Password string
}

// LogoutInput identifies the user that is logging out.
type LogoutInput struct {
	Username string
}

// --- Output DTOs ---

// AuthOutput is the result of every auth transition.
type AuthOutput struct {
	Message    string
	UserID     uint64
	Username   string
	IsLoggedIn bool
}

// AuthUsecase moves users between the logged-out and logged-in states.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Logout(ctx context.Context, input *LogoutInput) (*AuthOutput, error)
}
