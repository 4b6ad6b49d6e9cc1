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

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves register, login and logout.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LogoutRequest represents the request body for logging out
type LogoutRequest struct {
	Username string `json:"username" validate:"required,max=100"`
}

// AuthResponse is returned by every auth endpoint
type AuthResponse struct {
	Message    string `json:"message"`
	UserID     uint64 `json:"userId"`
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

func newAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		Message:    output.Message,
		UserID:     output.UserID,
		Username:   output.Username,
		IsLoggedIn: output.IsLoggedIn,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	output, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newAuthResponse(output))
}

// Login handles login by email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

// Logout handles logout by username
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidBody(c, "Invalid logout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Details(err))
	}

	output, err := h.authUC.Logout(c.Request().Context(), &usecase.LogoutInput{Username: req.Username})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}
