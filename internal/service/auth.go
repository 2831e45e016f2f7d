package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/saborconecta/backend/internal/apperr"
	"github.com/saborconecta/backend/internal/models"
)

var (
	// ErrInvalidCredentials is returned on a failed login. The caller cannot
	// tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// IdentityResolver confirms an opaque user identifier maps to an active
// account.
type IdentityResolver interface {
	ResolveUser(ctx context.Context, userID string) (*models.User, error)
}

// AuthService handles account resolution, login, and registration.
type AuthService struct {
	db     *gorm.DB
	images *ImageService
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *gorm.DB, images *ImageService) *AuthService {
	return &AuthService{db: db, images: images}
}

// ResolveUser looks up an active account by identifier. A missing or inactive
// account yields ErrNotFound, which short-circuits the write path with no
// partial effects.
func (s *AuthService) ResolveUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// UserStats are the per-account counters surfaced on login and registration.
type UserStats struct {
	RecipesCreated  int64
	RecipesFavorite int64
}

// Login verifies the password against the stored hash and returns the account
// with its counters. No session token is issued; the client persists the
// returned user record.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, UserStats, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ? AND active = ?", email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, UserStats{}, ErrInvalidCredentials
		}
		return nil, UserStats{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, UserStats{}, ErrInvalidCredentials
	}

	return &user, s.stats(ctx, user.ID), nil
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Username     string
	Email        string
	FullName     string
	Password     string
	ProfileImage string // optional data URI
}

// RegisterOutcome reports the created account and whether the optional
// profile image made it to object storage.
type RegisterOutcome struct {
	User          *models.User
	ImageUploaded bool
	ImageURL      string
}

// Register creates an account and then uploads the optional profile image
// best-effort: a refused or failed upload leaves the account without an
// image, it never undoes the registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterOutcome, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("username = ?", in.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	outcome := &RegisterOutcome{User: &user}

	if in.ProfileImage != "" {
		url, err := s.images.IngestProfileImage(ctx, in.ProfileImage, user.ID)
		if err != nil {
			log.Printf("[AuthService] profile image upload failed for user %s: %v", user.ID, err)
		} else {
			if err := s.db.WithContext(ctx).Model(&user).Update("profile_image_url", url).Error; err != nil {
				log.Printf("[AuthService] failed to store profile image URL for user %s: %v", user.ID, err)
			} else {
				user.ProfileImageURL = url
				outcome.ImageUploaded = true
				outcome.ImageURL = url
			}
		}
	}

	return outcome, nil
}

// Stats returns the account counters for an already-resolved user.
func (s *AuthService) Stats(ctx context.Context, userID uuid.UUID) UserStats {
	return s.stats(ctx, userID)
}

func (s *AuthService) stats(ctx context.Context, userID uuid.UUID) UserStats {
	var stats UserStats

	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&stats.RecipesCreated).Error
	if err != nil {
		log.Printf("[AuthService] failed to count recipes for user %s: %v", userID, err)
	}

	err = s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ?", userID).
		Count(&stats.RecipesFavorite).Error
	if err != nil {
		log.Printf("[AuthService] failed to count favorites for user %s: %v", userID, err)
	}

	return stats
}
