package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saborconecta/backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestMigrate_SeedsCategories(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	var categories []models.Category
	require.NoError(t, db.Order("id").Find(&categories).Error)
	require.Len(t, categories, 5)
	assert.Equal(t, "Desayunos", categories[0].Name)
	assert.Equal(t, "Bebidas", categories[4].Name)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}

func TestSeedCategories_PreservesExistingRows(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	// Simulate an operator rename; reseeding must not clobber it
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", 1).Update("name", "Desayunos y brunch").Error)
	require.NoError(t, SeedCategories(db))

	var category models.Category
	require.NoError(t, db.First(&category, "id = ?", 1).Error)
	assert.Equal(t, "Desayunos y brunch", category.Name)
}

func TestHealthCheck(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, HealthCheck(context.Background(), db))
}
