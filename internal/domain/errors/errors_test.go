package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapMessageKeepsIdentity(t *testing.T) {
	err := ErrTaskNotFound.WrapMessage("task 7")

	assert.True(t, stderrors.Is(err, ErrTaskNotFound))
	assert.False(t, stderrors.Is(err, ErrUserNotFound))

	var appErr AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "TASK_NOT_FOUND", appErr.ErrorCode())
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to count tasks")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "failed to count tasks", err.Details())
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}
