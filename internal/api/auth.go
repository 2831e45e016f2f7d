package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saborconecta/backend/internal/apperr"
	"github.com/saborconecta/backend/internal/service"
)

// AuthHandler exposes login and registration. Both are stateless: no session
// token is issued, the client persists the returned user record.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, stats, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperr.Fail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    userPayload(user, stats),
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.FailWithDetails(c, http.StatusBadRequest, "Invalid registration data", err.Error())
		return
	}
	if req.Password != req.ConfirmPassword {
		apperr.Fail(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	outcome, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			apperr.Fail(c, http.StatusBadRequest, "Username already in use")
		case errors.Is(err, service.ErrEmailTaken):
			apperr.Fail(c, http.StatusBadRequest, "Email already registered")
		default:
			apperr.Respond(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "User registered successfully",
		"user":          userPayload(outcome.User, service.UserStats{}),
		"imageUploaded": outcome.ImageUploaded,
		"imageUrl":      outcome.ImageURL,
	})
}
