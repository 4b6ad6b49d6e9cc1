package postgres

import (
	"context"
	"testing"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo repository.UserRepository, username, email string) *entity.User {
	t.Helper()

	user := &entity.User{Username: username, Email: email, Password: "hash-" + username}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := seedUser(t, repo, "alice", "alice@example.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "hash-alice", byID.Password)
	assert.False(t, byID.IsLoggedIn)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UniqueUsernameAndEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "alice", "alice@example.com")

	err := repo.Create(ctx, &entity.User{Username: "alice", Email: "other@example.com", Password: "x"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	err = repo.Create(ctx, &entity.User{Username: "bob", Email: "alice@example.com", Password: "x"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "new@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "carol", "carol@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_FindAndCountWithFilter(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	alice := seedUser(t, repo, "alice", "alice@example.com")
	seedUser(t, repo, "bob", "bob@example.com")
	seedUser(t, repo, "carol", "carol@example.com")
	require.NoError(t, repo.UpdateFields(ctx, alice.ID, &entity.UserPatch{IsLoggedIn: boolPtr(true)}))

	all, err := repo.Find(ctx, entity.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "alice", all[0].Username)

	page, err := repo.Find(ctx, entity.UserFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "bob", page[0].Username)

	loggedIn, err := repo.Count(ctx, entity.UserFilter{IsLoggedIn: boolPtr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, loggedIn)

	byEmail, err := repo.Count(ctx, entity.UserFilter{Email: "bob@example.com"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byEmail)
}

func TestUserRepository_UpdateAndPatch(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo, "alice", "alice@example.com")

	user.Email = "alice@new.example.com"
	user.IsLoggedIn = true
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", stored.Email)
	assert.True(t, stored.IsLoggedIn)

	// Update writes false explicitly.
	user.IsLoggedIn = false
	require.NoError(t, repo.Update(ctx, user))
	stored, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsLoggedIn)

	require.NoError(t, repo.UpdateFields(ctx, user.ID, &entity.UserPatch{Username: strPtr("alicia")}))
	stored, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", stored.Username)
	assert.Equal(t, "hash-alice", stored.Password)

	err = repo.UpdateFields(ctx, user.ID+50, &entity.UserPatch{Username: strPtr("ghost")})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.UpdateFields(ctx, user.ID+50, &entity.UserPatch{})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.Update(ctx, &entity.User{ID: user.ID + 50, Username: "ghost", Email: "g@example.com", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdateAll(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "alice", "alice@example.com")
	seedUser(t, repo, "bob", "bob@example.com")

	count, err := repo.UpdateAll(ctx, &entity.UserPatch{IsLoggedIn: boolPtr(true)}, entity.UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.UpdateAll(ctx, &entity.UserPatch{IsLoggedIn: boolPtr(false)}, entity.UserFilter{Username: "bob"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	loggedIn, err := repo.Count(ctx, entity.UserFilter{IsLoggedIn: boolPtr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, loggedIn)

	count, err = repo.UpdateAll(ctx, &entity.UserPatch{}, entity.UserFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo, "alice", "alice@example.com")

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repository.ErrUserNotFound)
}
