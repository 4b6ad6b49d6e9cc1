// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger

	// dummyHash is checked on unknown emails so both login failures cost one bcrypt compare.
	dummyOnce sync.Once
	dummyHash string
}

const dummyPassword = "taskboard-login-placeholder"

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// Register creates a logged-out user after checking that neither the username nor the email is taken.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	// Hashing stays outside the transaction; it holds no connection while bcrypt runs.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	var registered *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		exists, err := userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check existing users")
		}
		if exists {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already registered")
		}

		user := &entity.User{
			Username:   input.Username,
			Email:      input.Email,
			Password:   hashedPassword,
			IsLoggedIn: false,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}
		registered = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "registration failed")
	}

	srv.log(ctx).Info("User registered", slog.Uint64("userID", registered.ID))

	return &usecase.AuthOutput{
		Message:    usecase.MessageRegistrationSuccessful,
		UserID:     registered.ID,
		Username:   registered.Username,
		IsLoggedIn: registered.IsLoggedIn,
	}, nil
}

// Login verifies the credentials and marks the user as logged in.
// An unknown email and a wrong password produce the same error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown email", slog.String("email", input.Email))
			srv.checkDummy(input.Password)

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.Uint64("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if user.ID == 0 {
		return nil, domainerrors.ErrInternalError.WrapMessage("user record has no id")
	}

	if err := srv.setLoggedIn(ctx, user, true); err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		Message:    usecase.MessageLoginSuccessful,
		UserID:     user.ID,
		Username:   user.Username,
		IsLoggedIn: true,
	}, nil
}

// Logout marks the user as logged out. It succeeds for users that were never logged in.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, mapUserError(err, "failed to find user")
	}

	if err := srv.setLoggedIn(ctx, user, false); err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		Message:    usecase.MessageLogoutSuccessful,
		UserID:     user.ID,
		Username:   user.Username,
		IsLoggedIn: false,
	}, nil
}

func (srv *authService) setLoggedIn(ctx context.Context, user *entity.User, loggedIn bool) error {
	err := srv.userRepo.UpdateFields(ctx, user.ID, &entity.UserPatch{IsLoggedIn: &loggedIn})
	if err != nil {
		return mapUserError(err, "failed to update login state")
	}
	user.IsLoggedIn = loggedIn

	srv.log(ctx).Info("Login state changed", slog.Uint64("userID", user.ID), slog.Bool("isLoggedIn", loggedIn))

	return nil
}

// checkDummy spends the same bcrypt work as a real password check. The placeholder is hashed
// once with the configured hasher so its cost matches stored hashes.
func (srv *authService) checkDummy(password string) {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Error("Failed to prepare placeholder hash", slog.String("error", err.Error()))

			return
		}
		srv.dummyHash = hash
	})

	if srv.dummyHash != "" {
		_ = srv.hasher.Check(password, srv.dummyHash)
	}
}
