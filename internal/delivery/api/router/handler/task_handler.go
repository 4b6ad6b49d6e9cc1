package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/delivery/api/response"
	"taskboard/internal/delivery/api/validator"
	"taskboard/internal/domain/entity"
	"taskboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler serves the unscoped dashboard endpoints.
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// TaskRequest is the body for creating or replacing a task
type TaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Completed   *bool  `json:"completed" validate:"required"`
	Owner       string `json:"owner" validate:"required,max=100"`
}

func (r *TaskRequest) toInput() *usecase.TaskInput {
	return &usecase.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Completed:   *r.Completed,
		Owner:       r.Owner,
	}
}

// TaskPatchRequest is the body for partial task updates
type TaskPatchRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Completed   *bool   `json:"completed"`
	Owner       *string `json:"owner" validate:"omitempty,min=1,max=100"`
}

func (r *TaskPatchRequest) toPatch() *entity.TaskPatch {
	return &entity.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Owner:       r.Owner,
	}
}

// Create handles POST /dashboard
func (h *TaskHandler) Create(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	task, err := h.taskUC.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, task)
}

// Find handles GET /dashboard
func (h *TaskHandler) Find(c echo.Context) error {
	filter, err := bindTaskFilter(c)
	if err != nil {
		return response.InvalidQuery(c, err)
	}

	tasks, err := h.taskUC.Find(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tasks)
}

// Count handles GET /dashboard/count
func (h *TaskHandler) Count(c echo.Context) error {
	filter, err := bindTaskFilter(c)
	if err != nil {
		return response.InvalidQuery(c, err)
	}

	count, err := h.taskUC.Count(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &CountResponse{Count: count})
}

// UpdateAll handles PATCH /dashboard. The query string selects the tasks to update.
func (h *TaskHandler) UpdateAll(c echo.Context) error {
	filter, err := bindTaskFilter(c)
	if err != nil {
		return response.InvalidQuery(c, err)
	}

	var req TaskPatchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	count, err := h.taskUC.UpdateAll(c.Request().Context(), req.toPatch(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &CountResponse{Count: count})
}

// FindByID handles GET /dashboard/:id
func (h *TaskHandler) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid task ID")
	}

	task, err := h.taskUC.FindByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task)
}

// UpdateByID handles PATCH /dashboard/:id
func (h *TaskHandler) UpdateByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid task ID")
	}

	var req TaskPatchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	if err := h.taskUC.UpdateByID(c.Request().Context(), id, req.toPatch()); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReplaceByID handles PUT /dashboard/:id
func (h *TaskHandler) ReplaceByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid task ID")
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	if err := h.taskUC.ReplaceByID(c.Request().Context(), id, req.toInput()); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteByID handles DELETE /dashboard/:id
func (h *TaskHandler) DeleteByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid task ID")
	}

	if err := h.taskUC.DeleteByID(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FindOwner handles GET /tasks/:id/user
func (h *TaskHandler) FindOwner(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.InvalidID(c, "Invalid task ID")
	}

	owner, err := h.taskUC.FindOwner(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(owner))
}
