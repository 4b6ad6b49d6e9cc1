// Package response renders the JSON envelopes shared by every endpoint:
// {data, meta} on success and {error, meta} on failure.
package response

import (
	"net/http"

	deliverycontext "taskboard/internal/delivery/context"
	domainerrors "taskboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo is the client-facing error. Details only appear on 4xx responses other than 401/403.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type MetaInfo struct {
	RequestID string `json:"request_id"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.RequestID(c)}
}

func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

func Error(c echo.Context, statusCode int, errorCode, message string, details any) error {
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{Code: errorCode, Message: message, Details: details},
		Meta:  meta(c),
	})
}

// InvalidBody reports a request body that could not be decoded.
func InvalidBody(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, "INVALID_INPUT", message, nil)
}

// InvalidQuery reports malformed filter or pagination parameters.
func InvalidQuery(c echo.Context, err error) error {
	return Error(c, http.StatusBadRequest, "INVALID_QUERY", err.Error(), nil)
}

// InvalidID reports a path identifier that is not a positive integer.
func InvalidID(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, "INVALID_ID", message, nil)
}

// ValidationError lists the fields that failed validation, keyed by JSON name.
func ValidationError(c echo.Context, details map[string]string) error {
	return AppError(c, domainerrors.ErrValidationFailed, details)
}

// AppError renders a domain error. Explicit details win over the error's own.
func AppError(c echo.Context, appErr domainerrors.AppError, details any) error {
	if details == nil && appErr.Details() != "" {
		details = appErr.Details()
	}

	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
}
