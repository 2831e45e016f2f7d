package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saborconecta/backend/internal/apperr"
	"github.com/saborconecta/backend/internal/models"
)

func setupProfileService(t *testing.T) (*ProfileService, *models.User, *stubUploader) {
	t.Helper()
	db := setupTestDB(t)
	user := createTestUser(t, db, "maria")
	uploader := &stubUploader{}
	images := NewImageService(uploader, testPlaceholderURL)
	auth := NewAuthService(db, images)
	return NewProfileService(db, auth, images), user, uploader
}

func TestUpdateProfileImage(t *testing.T) {
	svc, user, _ := setupProfileService(t)

	updated, err := svc.UpdateProfileImage(context.Background(), user.ID.String(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.ProfileImageURL, "https://cdn.test/profiles/profile-"+user.ID.String()))
}

func TestUpdateProfileImage_UnknownUser(t *testing.T) {
	svc, _, uploader := setupProfileService(t)

	_, err := svc.UpdateProfileImage(context.Background(), "00000000-0000-0000-0000-000000000000", "data:image/png;base64,aGVsbG8=")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, uploader.keys)
}

func TestUpdateProfileImage_OversizedLeavesStoredImageUnchanged(t *testing.T) {
	svc, user, _ := setupProfileService(t)

	first, err := svc.UpdateProfileImage(context.Background(), user.ID.String(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)

	_, err = svc.UpdateProfileImage(context.Background(), user.ID.String(), imageDataURI(MaxProfileImageBytes+1))
	assert.ErrorIs(t, err, apperr.ErrPayloadTooLarge)

	current, err := svc.identity.ResolveUser(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first.ProfileImageURL, current.ProfileImageURL)
}

func TestUpdateProfileImage_MissingImage(t *testing.T) {
	svc, user, _ := setupProfileService(t)

	_, err := svc.UpdateProfileImage(context.Background(), user.ID.String(), "")
	assert.ErrorIs(t, err, ErrNoImage)
}
