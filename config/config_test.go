package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saborconecta/backend/internal/apperr"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "saborconecta")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "saborconecta-images", cfg.S3Bucket)
	assert.NotEmpty(t, cfg.DefaultRecipeImageURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("S3_BUCKET_NAME", "custom-bucket")
	t.Setenv("DEFAULT_RECIPE_IMAGE_URL", "https://cdn.example.com/placeholder.jpg")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "custom-bucket", cfg.S3Bucket)
	assert.Equal(t, "https://cdn.example.com/placeholder.jpg", cfg.DefaultRecipeImageURL)
}

func TestLoadConfig_ReportsAllMissingTogether(t *testing.T) {
	for _, name := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		t.Setenv(name, "")
	}

	_, err := LoadConfig()

	var confErr *apperr.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.ElementsMatch(t, []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"}, confErr.Missing)
}

func TestValidateConfig_SingleMissingValue(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "saborconecta",
	}

	err := ValidateConfig(cfg)

	var confErr *apperr.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, []string{"JWT_SECRET"}, confErr.Missing)
}
