package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saborconecta/backend/internal/models"
)

// setupMockedService wires the recipe service to a mocked SQL connection so a
// test can assert on the exact query shape the reader issues.
func setupMockedService(t *testing.T) (*RecipeService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	images := NewImageService(&stubUploader{}, testPlaceholderURL)
	auth := NewAuthService(db, images)
	svc := NewRecipeService(db, auth, images, models.NewCategorySet(models.DefaultCategories()))
	return svc, mock
}

func joinResultColumns() []string {
	return []string{
		"id", "title", "description", "category", "prep_time", "servings",
		"difficulty", "image_url", "created_at", "updated_at",
		"author", "author_username", "author_image",
	}
}

// The list reader must issue exactly three queries regardless of page size:
// the join plus one batch fetch per child table. Any per-recipe follow-up
// query would show up here as an unmet expectation.
func TestListRecipes_UsesTwoBatchChildQueries(t *testing.T) {
	svc, mock := setupMockedService(t)

	now := time.Now()
	joinRows := sqlmock.NewRows(joinResultColumns()).
		AddRow("rec-des-a", "Pasta", "Simple", "Desayunos", 10, 4, "Fácil",
			testPlaceholderURL, now, now, "Maria", "maria", "").
		AddRow("rec-alm-b", "Tacos", "Quick", "Almuerzos", 15, 2, "Intermedio",
			testPlaceholderURL, now, now, "Luis", "luis", "")

	mock.ExpectQuery(`SELECT .+ FROM "recipes" JOIN users .+ JOIN categories .+ ORDER BY recipes\.created_at DESC`).
		WillReturnRows(joinRows)

	mock.ExpectQuery(`SELECT .+ FROM "recipe_ingredients" WHERE recipe_id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipe_id", "ingredient", "position"}).
			AddRow(1, "rec-des-a", "200g pasta", 1).
			AddRow(2, "rec-alm-b", "4 tortillas", 1))

	mock.ExpectQuery(`SELECT .+ FROM "recipe_instructions" WHERE recipe_id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipe_id", "step_number", "description"}).
			AddRow(1, "rec-des-a", 1, "Boil"))

	views, err := svc.ListRecipes(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, []string{"200g pasta"}, views[0].Ingredients)
	assert.Equal(t, []string{"Boil"}, views[0].Instructions)
	assert.Equal(t, []string{"4 tortillas"}, views[1].Ingredients)
	assert.Equal(t, []string{NoInstructionsPlaceholder}, views[1].Instructions)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecipes_EmptyPageSkipsChildQueries(t *testing.T) {
	svc, mock := setupMockedService(t)

	mock.ExpectQuery(`SELECT .+ FROM "recipes" JOIN users`).
		WillReturnRows(sqlmock.NewRows(joinResultColumns()))

	views, err := svc.ListRecipes(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, views)

	assert.NoError(t, mock.ExpectationsWereMet())
}
