package impl

import (
	"context"
	"testing"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	mockRepo "taskboard/internal/mocks/repository"
	mockSvc "taskboard/internal/mocks/service"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service   usecase.AuthUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockSvc.MockPasswordHasher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewAuthService(AuthServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Hasher:    hasher,
		Logger:    newDiscardLogger(),
	})

	return authServiceFixtures{
		service:   service,
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
	}
}

// expectTx runs the transaction body against a factory that hands out txUserRepo.
func (fx authServiceFixtures) expectTx(t *testing.T, ctx context.Context, txUserRepo *mockRepo.MockUserRepository) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFactory.EXPECT().UserRepo().Return(txUserRepo)

			return fn(mockFactory)
		})
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "Secret123"}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.expectTx(t, ctx, txUserRepo)

	txUserRepo.EXPECT().ExistsByUsernameOrEmail(ctx, "alice", "alice@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("Secret123").Return("hashed_password", nil)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "hashed_password", user.Password)
			assert.False(t, user.IsLoggedIn)
			user.ID = 42
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, &usecase.AuthOutput{
		Message:    "Registration successful",
		UserID:     42,
		Username:   "alice",
		IsLoggedIn: false,
	}, output)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.RegisterInput
	}{
		{
			name:  "same username, different email",
			input: &usecase.RegisterInput{Username: "alice", Email: "other@example.com", Password: "pw"},
		},
		{
			name:  "same email, different username",
			input: &usecase.RegisterInput{Username: "bob", Email: "alice@example.com", Password: "pw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()

			fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
			txUserRepo := mockRepo.NewMockUserRepository(t)
			fx.expectTx(t, ctx, txUserRepo)
			txUserRepo.EXPECT().ExistsByUsernameOrEmail(ctx, tt.input.Username, tt.input.Email).Return(true, nil)

			output, err := fx.service.Register(ctx, tt.input)

			require.Error(t, err)
			assert.Nil(t, output)
			assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
		})
	}
}

func TestAuthService_Register_StoreUniqueViolation(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw"}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	fx.expectTx(t, ctx, txUserRepo)
	txUserRepo.EXPECT().ExistsByUsernameOrEmail(ctx, "alice", "alice@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists"))

	_, err := fx.service.Register(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Username: "alice", Email: "alice@example.com"}

	fx.hasher.EXPECT().Hash("").Return("", domainerrors.ErrPasswordRequired)

	_, err := fx.service.Register(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrPasswordRequired))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAuthService_Register_HashesBeforeTransaction(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw"}

	hashed := false
	fx.hasher.EXPECT().Hash("pw").Run(func(string) { hashed = true }).Return("hashed", nil)
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(context.Context, func(repository.RepositoryFactory) error) error {
			assert.True(t, hashed, "password must be hashed before the transaction opens")

			return domainerrors.ErrUserAlreadyExists
		})

	_, err := fx.service.Register(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: 7, Username: "alice", Email: "alice@example.com", Password: "hashed"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("Secret123", "hashed").Return(true)
	fx.userRepo.EXPECT().
		UpdateFields(ctx, uint64(7), &entity.UserPatch{IsLoggedIn: ptr(true)}).
		Return(nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "alice@example.com", Password: "Secret123"})

	require.NoError(t, err)
	assert.Equal(t, "Login successful", output.Message)
	assert.Equal(t, uint64(7), output.UserID)
	assert.Equal(t, "alice", output.Username)
	assert.True(t, output.IsLoggedIn)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()

	unknown := createTestAuthService(t)
	unknown.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)
	unknown.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("placeholder", nil).Once()
	unknown.hasher.EXPECT().Check("pw", "placeholder").Return(false)
	_, unknownErr := unknown.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "pw"})

	wrong := createTestAuthService(t)
	wrong.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.User{ID: 7, Username: "alice", Password: "hashed"}, nil)
	wrong.hasher.EXPECT().Check("bad", "hashed").Return(false)
	_, wrongErr := wrong.service.Login(ctx, &usecase.LoginInput{Email: "alice@example.com", Password: "bad"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, errors.Is(unknownErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(wrongErr, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_Login_ZeroID(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.User{Username: "alice", Password: "hashed"}, nil)
	fx.hasher.EXPECT().Check("pw", "hashed").Return(true)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "alice@example.com", Password: "pw"})

	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Logout(ctx, &usecase.LogoutInput{Username: "ghost"})

		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	for _, loggedIn := range []bool{true, false} {
		t.Run("known user", func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()
			fx.userRepo.EXPECT().
				FindByUsername(ctx, "alice").
				Return(&entity.User{ID: 3, Username: "alice", IsLoggedIn: loggedIn}, nil)
			fx.userRepo.EXPECT().
				UpdateFields(ctx, uint64(3), &entity.UserPatch{IsLoggedIn: ptr(false)}).
				Return(nil)

			output, err := fx.service.Logout(ctx, &usecase.LogoutInput{Username: "alice"})

			require.NoError(t, err)
			assert.Equal(t, "Logout successful", output.Message)
			assert.False(t, output.IsLoggedIn)
		})
	}
}

func TestAuthService_Login_UnknownEmailSpendsOneCheck(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, mock.AnythingOfType("string")).Return(nil, repository.ErrUserNotFound)
	// The placeholder is hashed once and reused for every later miss.
	fx.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("placeholder", nil).Once()
	fx.hasher.EXPECT().Check(mock.AnythingOfType("string"), "placeholder").Return(false).Times(2)

	for _, email := range []string{"ghost@example.com", "nobody@example.com"} {
		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: email, Password: "pw"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	}
}
