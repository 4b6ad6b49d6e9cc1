package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/config"
	domainerrors "taskboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_RecordsRequests(t *testing.T) {
	m := NewMetricsMiddleware(&config.Config{Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"}})
	require.True(t, m.Enabled())

	e := echo.New()
	e.Use(m.Handle)
	e.GET("/users/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/missing", func(c echo.Context) error {
		return domainerrors.ErrUserNotFound
	})
	e.GET("/metrics", m.Handler())

	for _, path := range []string{"/users/1", "/users/2", "/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `api_taskboard_request_count{method="GET",route="/users/:id",status="200"} 2`)
	assert.Contains(t, body, `api_taskboard_request_count{method="GET",route="/missing",status="404"} 1`)
}

func TestMetricsMiddleware_Disabled(t *testing.T) {
	m := NewMetricsMiddleware(&config.Config{})
	assert.False(t, m.Enabled())

	called := false
	next := func(c echo.Context) error {
		called = true

		return nil
	}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, m.Handle(next)(c))
	assert.True(t, called)
}
