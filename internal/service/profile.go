package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/saborconecta/backend/internal/models"
)

// ProfileService handles profile image updates. Unlike the recipe write path,
// image failures here are fatal to the whole operation.
type ProfileService struct {
	db       *gorm.DB
	identity IdentityResolver
	images   *ImageService
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *gorm.DB, identity IdentityResolver, images *ImageService) *ProfileService {
	return &ProfileService{db: db, identity: identity, images: images}
}

// UpdateProfileImage resolves the user, ingests the image, and stores the
// resulting URL on the account. Any failure leaves the stored image
// unchanged.
func (s *ProfileService) UpdateProfileImage(ctx context.Context, userID, dataURI string) (*models.User, error) {
	user, err := s.identity.ResolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.images.IngestProfileImage(ctx, dataURI, user.ID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("profile_image_url", url).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store profile image URL: %w", err)
	}

	user.ProfileImageURL = url
	return user, nil
}
