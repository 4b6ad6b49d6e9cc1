package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/delivery/api/response"
	"taskboard/internal/delivery/api/validator"
	"taskboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserTaskHandlerParams holds dependencies for UserTaskHandler, injected by Fx.
type UserTaskHandlerParams struct {
	fx.In

	UserTaskUC usecase.UserTaskUsecase
	Logger     *slog.Logger
}

// UserTaskHandler serves /users/:userId/dashboard.
type UserTaskHandler struct {
	userTaskUC usecase.UserTaskUsecase
	logger     *slog.Logger
}

// NewUserTaskHandler is the constructor for UserTaskHandler
func NewUserTaskHandler(params UserTaskHandlerParams) *UserTaskHandler {
	return &UserTaskHandler{
		userTaskUC: params.UserTaskUC,
		logger:     params.Logger,
	}
}

// UserTaskRequest is the body for creating a task under a user. Any owner sent is replaced.
type UserTaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Completed   *bool  `json:"completed" validate:"required"`
	Owner       string `json:"owner"`
}

// Create handles POST /users/:userId/dashboard
func (h *UserTaskHandler) Create(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return response.InvalidID(c, "Invalid user ID")
	}

	var req UserTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	task, err := h.userTaskUC.Create(c.Request().Context(), userID, &usecase.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   *req.Completed,
		Owner:       req.Owner,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, task)
}

// List handles GET /users/:userId/dashboard
func (h *UserTaskHandler) List(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return response.InvalidID(c, "Invalid user ID")
	}

	filter, err := bindTaskFilter(c)
	if err != nil {
		return response.InvalidQuery(c, err)
	}

	tasks, err := h.userTaskUC.List(c.Request().Context(), userID, filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tasks)
}

// Get handles GET /users/:userId/dashboard/:id
func (h *UserTaskHandler) Get(c echo.Context) error {
	userID, taskID, ok := h.parseIDs(c)
	if !ok {
		return response.InvalidID(c, "Invalid user or task ID")
	}

	task, err := h.userTaskUC.Get(c.Request().Context(), userID, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task)
}

// UpdateByID handles PATCH /users/:userId/dashboard/:id
func (h *UserTaskHandler) UpdateByID(c echo.Context) error {
	userID, taskID, ok := h.parseIDs(c)
	if !ok {
		return response.InvalidID(c, "Invalid user or task ID")
	}

	var req TaskPatchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	if err := h.userTaskUC.UpdateByID(c.Request().Context(), userID, taskID, req.toPatch()); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteByID handles DELETE /users/:userId/dashboard/:id
func (h *UserTaskHandler) DeleteByID(c echo.Context) error {
	userID, taskID, ok := h.parseIDs(c)
	if !ok {
		return response.InvalidID(c, "Invalid user or task ID")
	}

	if err := h.userTaskUC.DeleteByID(c.Request().Context(), userID, taskID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserTaskHandler) parseIDs(c echo.Context) (uint64, uint64, bool) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return 0, 0, false
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return 0, 0, false
	}

	return userID, taskID, true
}
