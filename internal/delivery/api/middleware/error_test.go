package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/delivery/api/response"
	domainerrors "taskboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	m := NewErrorMiddleware(slog.New(slog.NewJSONHandler(&logs, nil)))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/users/1", nil), rec)

	m.HandleHTTPError(err, c)

	return rec, &logs
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *response.ErrorInfo {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	require.NotNil(t, body.Meta)
	assert.NotEmpty(t, body.Meta.RequestID)

	return body.Error
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	t.Run("wrapped domain error keeps its status", func(t *testing.T) {
		rec, logs := handle(t, errors.WithStack(domainerrors.ErrUserNotFound.WrapMessage("lookup")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "USER_NOT_FOUND", decodeError(t, rec).Code)
		assert.Empty(t, logs.String())
	})

	t.Run("database failure is logged without leaking details", func(t *testing.T) {
		rec, logs := handle(t, domainerrors.NewDatabaseExecuteError(errors.New("conn refused"), "failed to find user"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		info := decodeError(t, rec)
		assert.Equal(t, "DATABASE_EXECUTE_FAILED", info.Code)
		assert.Nil(t, info.Details)
		assert.Contains(t, logs.String(), "conn refused")
	})

	t.Run("echo errors get a named code", func(t *testing.T) {
		rec, _ := handle(t, echo.ErrMethodNotAllowed)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)
	})

	t.Run("unknown errors become an opaque 500", func(t *testing.T) {
		rec, logs := handle(t, errors.New("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		info := decodeError(t, rec)
		assert.Equal(t, "INTERNAL_ERROR", info.Code)
		assert.NotContains(t, info.Message, "secret")
		assert.Contains(t, logs.String(), `"stack"`)
	})
}
