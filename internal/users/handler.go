package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantas/appointments/internal/apperrors"
	"github.com/mantas/appointments/internal/password"
)

const invalidCredentialsMessage = "Invalid username or password"

type Authenticator interface {
	Register(ctx context.Context, username, plaintext, roleInput string) error
	Login(ctx context.Context, username, plaintext string) (string, error)
}

type Handler struct {
	service Authenticator
}

func NewHandler(service Authenticator) *Handler {
	return &Handler{service: service}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

var requestMessages = apperrors.FieldMessages{
	"Username.required": "Username cannot be blank",
	"Password.required": "Password cannot be blank",
	"Role.required":     "Role cannot be blank",
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.BindingError(err, requestMessages))
		return
	}

	err := h.service.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, ErrDuplicateUser):
		apperrors.Respond(c, apperrors.AlreadyExists("Username is already taken"))
		return
	case errors.Is(err, password.ErrTooLong):
		apperrors.Respond(c, apperrors.InvalidInput("password", "password must be at most 72 bytes"))
		return
	case err != nil:
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Blank credentials fail like any other bad login.
		apperrors.Respond(c, apperrors.Unauthorized(invalidCredentialsMessage))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		apperrors.Respond(c, apperrors.Unauthorized(invalidCredentialsMessage))
		return
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/users", h.Register)
	r.POST("/tokens", h.Login)
}
