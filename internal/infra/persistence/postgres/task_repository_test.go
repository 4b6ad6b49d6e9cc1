package postgres

import (
	"context"
	"testing"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTask(t *testing.T, repo repository.TaskRepository, title, owner string, completed bool) *entity.Task {
	t.Helper()

	task := &entity.Task{Title: title, Description: title + " details", Completed: completed, Owner: owner}
	require.NoError(t, repo.Create(context.Background(), task))

	return task
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	ctx := context.Background()

	task := seedTask(t, repo, "write report", "alice", false)
	assert.NotZero(t, task.ID)

	stored, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "write report", stored.Title)
	assert.Equal(t, "alice", stored.Owner)
	assert.False(t, stored.Completed)

	_, err = repo.FindByID(ctx, task.ID+1)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestTaskRepository_FilterByOwnerAndCompletion(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	ctx := context.Background()

	seedTask(t, repo, "a1", "alice", false)
	seedTask(t, repo, "a2", "alice", true)
	seedTask(t, repo, "b1", "bob", true)

	aliceTasks, err := repo.Find(ctx, entity.TaskFilter{Owner: "alice"})
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)
	assert.Equal(t, "a1", aliceTasks[0].Title)

	done, err := repo.Count(ctx, entity.TaskFilter{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, done)

	aliceDone, err := repo.Find(ctx, entity.TaskFilter{Owner: "alice", Completed: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, aliceDone, 1)
	assert.Equal(t, "a2", aliceDone[0].Title)

	limited, err := repo.Find(ctx, entity.TaskFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestTaskRepository_UpdatePatchAndUpdateAll(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	ctx := context.Background()

	task := seedTask(t, repo, "a1", "alice", true)
	seedTask(t, repo, "a2", "alice", false)

	task.Title = "renamed"
	task.Completed = false
	require.NoError(t, repo.Update(ctx, task))

	stored, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Title)
	assert.False(t, stored.Completed)

	require.NoError(t, repo.UpdateFields(ctx, task.ID, &entity.TaskPatch{Completed: boolPtr(true)}))
	stored, err = repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.Equal(t, "renamed", stored.Title)

	count, err := repo.UpdateAll(ctx, &entity.TaskPatch{Completed: boolPtr(true)}, entity.TaskFilter{Owner: "alice"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	err = repo.UpdateFields(ctx, 9999, &entity.TaskPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestTaskRepository_Delete(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	ctx := context.Background()
	task := seedTask(t, repo, "a1", "alice", false)

	require.NoError(t, repo.Delete(ctx, task.ID))
	assert.ErrorIs(t, repo.Delete(ctx, task.ID), repository.ErrTaskNotFound)
}
