// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"

	"jobboard/internal/delivery/api/response"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/errors"
	"jobboard/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	msgUserCreated  = "User created successfully"
	detailMalformed = "request body must be a JSON object"
)

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
	UserType string `json:"userType" validate:"omitempty,oneof=jobseeker employer"`
}

// LoginRequest is the body of POST /api/login. It carries no validation
// tags: empty or missing fields fail like any other wrong credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	UserType string `json:"userType"`
}

// UserHandler holds dependencies for account handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles account registration. No token is issued.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.UserType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, msgUserCreated)
}

// Login exchanges credentials for a bearer token.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		Token:    output.Token,
		UserType: output.Role.String(),
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(detailMalformed)
	}

	return errors.WithStack(c.Validate(req))
}
