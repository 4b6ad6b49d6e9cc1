package handler

import (
	"log/slog"
	"net/http"
	"time"

	"taskboard/internal/delivery/api/response"
	"taskboard/internal/delivery/api/validator"
	"taskboard/internal/domain/entity"
	"taskboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves the user administration endpoints.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// UserRequest is the body for creating or replacing a user.
// An empty password is rejected by the use case with PASSWORD_REQUIRED.
type UserRequest struct {
	Username   string `json:"username" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

func (r *UserRequest) toInput() *usecase.UserInput {
	return &usecase.UserInput{
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		IsLoggedIn: r.IsLoggedIn,
	}
}

// UserPatchRequest is the body for partial user updates. Omitted fields are left unchanged.
type UserPatchRequest struct {
	Username   *string `json:"username" validate:"omitempty,min=1,max=100"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Password   *string `json:"password"`
	IsLoggedIn *bool   `json:"isLoggedIn"`
}

func (r *UserPatchRequest) toPatch() *entity.UserPatch {
	return &entity.UserPatch{
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		IsLoggedIn: r.IsLoggedIn,
	}
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsLoggedIn bool      `json:"isLoggedIn"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func newUserResponse(output *usecase.UserOutput) *UserResponse {
	return &UserResponse{
		ID:         output.ID,
		Username:   output.Username,
		Email:      output.Email,
		IsLoggedIn: output.IsLoggedIn,
		CreatedAt:  output.CreatedAt,
		UpdatedAt:  output.UpdatedAt,
	}
}

// CountResponse carries the result of count and bulk update endpoints
type CountResponse struct {
	Count int64 `json:"count"`
}

// Create handles POST /users
func (h *UserHandler) Create(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	output, err := h.userUC.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(output))
}

// Find handles GET /users
func (h *UserHandler) Find(c echo.Context) error {
	filter, err := bindUserFilter(c)
	if err != nil {
		return response.InvalidQuery(c, err)
	}

	outputs, err := h.userUC.Find(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	users := make([]*UserResponse, 0, len(outputs))
	for _, output := range outputs {
		users = append(users, newUserResponse(output))
	}

	return response.Success(c, http.StatusOK, users)
}

// Count handles GET /users/count
func (h *UserHandler) Count(c echo.Context) error {
	filter, err := bindUserFilter(c)
	if err != nil {
		return response.InvalidQuery(c, err)
	}

	count, err := h.userUC.Count(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &CountResponse{Count: count})
}

// FindByID handles GET /users/:id
func (h *UserHandler) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid user ID")
	}

	output, err := h.userUC.FindByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(output))
}

// UpdateAll handles PATCH /users. The query string selects the users to update.
func (h *UserHandler) UpdateAll(c echo.Context) error {
	filter, err := bindUserFilter(c)
	if err != nil {
		return response.InvalidQuery(c, err)
	}

	var req UserPatchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	count, err := h.userUC.UpdateAll(c.Request().Context(), req.toPatch(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &CountResponse{Count: count})
}

// UpdateByID handles PATCH /users/:id
func (h *UserHandler) UpdateByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid user ID")
	}

	var req UserPatchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	if err := h.userUC.UpdateByID(c.Request().Context(), id, req.toPatch()); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReplaceByID handles PUT /users/:id
func (h *UserHandler) ReplaceByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid user ID")
	}

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	if err := h.userUC.ReplaceByID(c.Request().Context(), id, req.toInput()); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteByID handles DELETE /users/:id
func (h *UserHandler) DeleteByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid user ID")
	}

	if err := h.userUC.DeleteByID(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
