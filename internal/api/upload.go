package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saborconecta/backend/internal/apperr"
	"github.com/saborconecta/backend/internal/service"
)

// UploadHandler exposes the profile image endpoint. Unlike recipe creation,
// upload failures here are surfaced as hard errors and leave the stored image
// unchanged.
type UploadHandler struct {
	profiles *service.ProfileService
	auth     *service.AuthService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(profiles *service.ProfileService, auth *service.AuthService) *UploadHandler {
	return &UploadHandler{profiles: profiles, auth: auth}
}

// UploadProfileImage handles POST /upload/profile-image.
func (h *UploadHandler) UploadProfileImage(c *gin.Context) {
	var req ProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Fail(c, http.StatusBadRequest, "userId and image are required")
		return
	}

	user, err := h.profiles.UpdateProfileImage(c.Request.Context(), req.UserID, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoImage):
			apperr.Fail(c, http.StatusBadRequest, "A valid embedded image is required")
		case errors.Is(err, apperr.ErrPayloadTooLarge):
			apperr.Fail(c, http.StatusBadRequest, "Image exceeds the maximum allowed size")
		default:
			apperr.Respond(c, err)
		}
		return
	}

	stats := h.auth.Stats(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Image uploaded successfully",
		"imageUrl": user.ProfileImageURL,
		"user":     userPayload(user, stats),
	})
}
