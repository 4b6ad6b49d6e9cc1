package postgres

import (
	"context"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by id", "id = ?", id)
}

// FindByUsername retrieves a single user by username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by username", "username = ?", username)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by email", "email = ?", email)
}

func (repo *userRepository) findOne(ctx context.Context, failMsg string, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where(query, args...).First(&userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, failMsg)
	}

	return toUserDomain(&userM), nil
}

// ExistsByUsernameOrEmail reports whether the username or the email is already taken.
func (repo *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check user uniqueness")
	}

	return count > 0, nil
}

// Find lists users matching the filter.
func (repo *userRepository) Find(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Scopes(userFilterScope(filter), paginate(filter.Limit, filter.Offset)).
		Order("id ASC").
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Count returns the number of users matching the filter.
func (repo *userRepository) Count(ctx context.Context, filter entity.UserFilter) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(userFilterScope(filter)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

// Create persists a new user and copies the generated ID and timestamps back onto the entity.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return userWriteErrors.translate(err, domainerrors.ErrUserCreationFailed, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update writes username, email, password and login state of an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{ID: user.ID}).
		Select("username", "email", "password", "is_logged_in", "updated_at").
		Updates(userM)
	if result.Error != nil {
		return userWriteErrors.translate(result.Error, domainerrors.ErrUserUpdateFailed, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateFields applies the non-nil fields of patch to one user.
func (repo *userRepository) UpdateFields(ctx context.Context, id uint64, patch *entity.UserPatch) error {
	if patch.IsEmpty() {
		_, err := repo.FindByID(ctx, id)

		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{ID: id}).
		Updates(userPatchColumns(patch))
	if result.Error != nil {
		return userWriteErrors.translate(result.Error, domainerrors.ErrUserUpdateFailed, "failed to patch user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateAll applies the non-nil fields of patch to every user matching the filter.
func (repo *userRepository) UpdateAll(ctx context.Context, patch *entity.UserPatch, filter entity.UserFilter) (int64, error) {
	if patch.IsEmpty() {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.UserModel{}).
		Scopes(userFilterScope(filter)).
		Updates(userPatchColumns(patch))
	if result.Error != nil {
		return 0, userWriteErrors.translate(result.Error, domainerrors.ErrUserUpdateFailed, "failed to update users")
	}

	return result.RowsAffected, nil
}

// Delete removes a user by ID.
func (repo *userRepository) Delete(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func userFilterScope(filter entity.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Username != "" {
			db = db.Where("username = ?", filter.Username)
		}
		if filter.Email != "" {
			db = db.Where("email = ?", filter.Email)
		}
		if filter.IsLoggedIn != nil {
			db = db.Where("is_logged_in = ?", *filter.IsLoggedIn)
		}

		return db
	}
}

func userPatchColumns(patch *entity.UserPatch) map[string]any {
	columns := make(map[string]any, 4)
	if patch.Username != nil {
		columns["username"] = *patch.Username
	}
	if patch.Email != nil {
		columns["email"] = *patch.Email
	}
	if patch.Password != nil {
		columns["password"] = *patch.Password
	}
	if patch.IsLoggedIn != nil {
		columns["is_logged_in"] = *patch.IsLoggedIn
	}

	return columns
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:         data.ID,
		Username:   data.Username,
		Email:      data.Email,
		Password:   data.Password,
		IsLoggedIn: data.IsLoggedIn,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:         data.ID,
		Username:   data.Username,
		Email:      data.Email,
		Password:   data.Password,
		IsLoggedIn: data.IsLoggedIn,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
