package config

import (
	"os"

	"github.com/saborconecta/backend/internal/apperr"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT configuration
	JWTSecret string

	// Object storage configuration
	S3Bucket  string
	AWSRegion string

	// Placeholder URLs used when a recipe or profile has no stored image
	DefaultRecipeImageURL string
}

// LoadConfig creates a Config from environment variables. Missing required
// values are reported together as a ConfigurationError, which is fatal at
// startup.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:            getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSSLMode:             getEnv("DB_SSL_MODE", "disable"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		S3Bucket:              getEnv("S3_BUCKET_NAME", "saborconecta-images"),
		AWSRegion:             os.Getenv("AWS_REGION"),
		DefaultRecipeImageURL: getEnv("DEFAULT_RECIPE_IMAGE_URL", "https://saborconecta-images.s3.amazonaws.com/recipes/default-recipe.jpg"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateConfig checks that every required value is present. All missing
// values are collected before returning so operators see the full list at
// once.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}

	var missing []string
	for _, name := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		if required[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &apperr.ConfigurationError{Missing: missing}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
