package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/saborconecta/backend/config"
	"github.com/saborconecta/backend/internal/apperr"
)

// Size ceilings for decoded image payloads. Recipe and profile uploads have
// distinct limits.
const (
	MaxRecipeImageBytes  = 10 << 20
	MaxProfileImageBytes = 5 << 20
)

// ErrNoImage reports that the input was absent or not a recognized embedded
// image. For recipe creation this is not an error condition; the caller falls
// back to the placeholder.
var ErrNoImage = errors.New("no embedded image supplied")

// Uploader persists bytes to object storage and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// S3Uploader stores objects in the application's S3 bucket.
type S3Uploader struct {
	s3Config *config.S3Config
}

// NewS3Uploader creates an S3-backed Uploader.
func NewS3Uploader(s3Config *config.S3Config) *S3Uploader {
	return &S3Uploader{s3Config: s3Config}
}

// Upload puts the object and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := u.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return u.s3Config.PublicURL(key), nil
}

// IngestResult is the outcome of a best-effort image ingest: the URL to store
// on the recipe and whether an upload actually happened.
type IngestResult struct {
	URL      string
	Uploaded bool
}

// ImageService decodes data-URI images, enforces size ceilings, and persists
// them to object storage under a folder-namespaced key carrying the owner's
// id for traceability.
type ImageService struct {
	uploader              Uploader
	defaultRecipeImageURL string
}

// NewImageService creates an ImageService.
func NewImageService(uploader Uploader, defaultRecipeImageURL string) *ImageService {
	return &ImageService{
		uploader:              uploader,
		defaultRecipeImageURL: defaultRecipeImageURL,
	}
}

// DefaultRecipeImageURL returns the placeholder used when a recipe has no image.
func (s *ImageService) DefaultRecipeImageURL() string {
	return s.defaultRecipeImageURL
}

// IngestRecipeImage processes a recipe image best-effort: any failure, from a
// missing payload to a refused upload, degrades to the default placeholder.
// Recipe creation must never fail solely because image processing failed.
func (s *ImageService) IngestRecipeImage(ctx context.Context, dataURI string, ownerID uuid.UUID) IngestResult {
	url, err := s.ingest(ctx, dataURI, "recipes", "recipe", ownerID, MaxRecipeImageBytes)
	if err != nil {
		if !errors.Is(err, ErrNoImage) {
			log.Printf("[ImageService] recipe image ingest failed, using placeholder: %v", err)
		}
		return IngestResult{URL: s.defaultRecipeImageURL}
	}
	return IngestResult{URL: url, Uploaded: true}
}

// IngestProfileImage processes a profile image. Unlike the recipe call site,
// every failure here is surfaced to the caller.
func (s *ImageService) IngestProfileImage(ctx context.Context, dataURI string, ownerID uuid.UUID) (string, error) {
	return s.ingest(ctx, dataURI, "profiles", "profile", ownerID, MaxProfileImageBytes)
}

func (s *ImageService) ingest(ctx context.Context, dataURI, folder, kind string, ownerID uuid.UUID, maxBytes int) (string, error) {
	data, ext, err := decodeImageDataURI(dataURI)
	if err != nil {
		return "", err
	}
	if len(data) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", apperr.ErrPayloadTooLarge, len(data), maxBytes)
	}

	key := fmt.Sprintf("%s/%s-%s-%s.%s", folder, kind, ownerID, uuid.NewString(), ext)
	url, err := s.uploader.Upload(ctx, key, data, contentTypeForExtension(ext))
	if err != nil {
		return "", err
	}
	return url, nil
}

// decodeImageDataURI decodes a "data:image/<type>;base64,<payload>" URI into
// raw bytes and a file extension.
func decodeImageDataURI(dataURI string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return nil, "", ErrNoImage
	}

	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || payload == "" {
		return nil, "", ErrNoImage
	}

	mediaType := strings.TrimPrefix(header, "data:image/")
	mediaType = strings.TrimSuffix(mediaType, ";base64")
	ext := strings.ToLower(mediaType)
	if ext == "jpeg" {
		ext = "jpg"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image payload: %w", err)
	}
	return data, ext, nil
}

func contentTypeForExtension(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
