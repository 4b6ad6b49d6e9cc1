package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"taskboard/internal/delivery/api/response"
	deliverycontext "taskboard/internal/delivery/context"
	domainerrors "taskboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// echoErrorCodes names the router and middleware failures echo raises itself.
var echoErrorCodes = map[int]string{
	http.StatusNotFound:              "ROUTE_NOT_FOUND",
	http.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	http.StatusRequestEntityTooLarge: "REQUEST_TOO_LARGE",
	http.StatusUnsupportedMediaType:  "UNSUPPORTED_MEDIA_TYPE",
}

// ErrorMiddleware is the echo HTTPErrorHandler. Handlers return errors and this renders them.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError renders domain errors with their own status, echo errors with a mapped code
// and anything else as an opaque 500. Every 5xx is logged with its stack.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logFailure(c, "request failed", err)
		}
		_ = response.AppError(c, appErr, nil)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code, ok := echoErrorCodes[httpErr.Code]
		if !ok {
			code = "HTTP_ERROR"
		}
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logFailure(c, "request failed", err)
		}
		_ = response.Error(c, httpErr.Code, code, message, nil)

		return
	}

	m.logFailure(c, "unhandled error", err)
	_ = response.AppError(c, domainerrors.ErrInternalError, nil)
}

func (m *ErrorMiddleware) logFailure(c echo.Context, msg string, err error) {
	req := c.Request()
	deliverycontext.LoggerOr(req.Context(), m.logger).Error(msg,
		slog.String("error", err.Error()),
		slog.String("stack", stackOf(err)),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackOf formats the innermost pkg/errors stack, or "" when err carries none.
func stackOf(err error) string {
	var deepest stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st
		}
	}
	if deepest == nil {
		return ""
	}

	return fmt.Sprintf("%+v", deepest.StackTrace())
}
