package handlers

import (
	"net/http"

	"parkapp/internal/common"
	"parkapp/internal/models"
	"parkapp/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, logins and the current session.
type AuthHandlers struct {
	identity services.IdentityService
}

func NewAuthHandlers(identity services.IdentityService) *AuthHandlers {
	return &AuthHandlers{identity: identity}
}

// LoginRequest is shared by the user and the admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type SessionResponse struct {
	Success bool                  `json:"success"`
	Session *models.SessionClaims `json:"session"`
}

// Register handles POST /api/register. The company is created on the first
// registration for its subdomain.
//
// @Summary Register a user, creating the company on first use
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "registration"
// @Success 200 {object} UserResponse
// @Failure 400,409,500 {object} common.ErrorResponse
// @Router /api/register [post]
func (h *AuthHandlers) Register(c echo.Context) error {
	var req services.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.identity.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

// Login handles POST /api/login.
//
// @Summary Log in as a company user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /api/login [post]
func (h *AuthHandlers) Login(c echo.Context) error {
	req, err := bindLogin(c)
	if err != nil {
		return err
	}

	resp, err := h.identity.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// AdminLogin handles POST /api/admin-login.
//
// @Summary Log in as the operator
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /api/admin-login [post]
func (h *AuthHandlers) AdminLogin(c echo.Context) error {
	req, err := bindLogin(c)
	if err != nil {
		return err
	}

	resp, err := h.identity.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Me returns the claims of the bearer token.
//
// @Summary Claims of the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /api/me [get]
func (h *AuthHandlers) Me(c echo.Context) error {
	claims, ok := common.GetSessionFromContext(c.Request().Context())
	if !ok {
		return common.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, SessionResponse{Success: true, Session: claims})
}

// Empty credentials are sent on to the services so that they fail as
// invalid credentials, not as a validation error.
func bindLogin(c echo.Context) (*LoginRequest, error) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return nil, common.ValidationError("invalid request body")
	}
	return &req, nil
}
