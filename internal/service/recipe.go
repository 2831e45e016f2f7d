package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saborconecta/backend/internal/apperr"
	"github.com/saborconecta/backend/internal/models"
)

// DefaultListLimit caps how many recipes a list request returns.
const DefaultListLimit = 50

// Placeholder strings reported for recipes with no recorded children.
const (
	NoIngredientsPlaceholder  = "Sin ingredientes"
	NoInstructionsPlaceholder = "Sin instrucciones"
)

// RecipeService is the transactional core: it validates recipe payloads,
// resolves category metadata, and performs all-or-nothing writes of a recipe
// row plus its ordered ingredient and instruction child rows. It also
// assembles recipes for display.
type RecipeService struct {
	db         *gorm.DB
	identity   IdentityResolver
	images     *ImageService
	categories *models.CategorySet
}

// NewRecipeService creates a new RecipeService. The category set is injected
// reference data; the writer never consults hardcoded mappings.
func NewRecipeService(db *gorm.DB, identity IdentityResolver, images *ImageService, categories *models.CategorySet) *RecipeService {
	return &RecipeService{
		db:         db,
		identity:   identity,
		images:     images,
		categories: categories,
	}
}

// RecipeInput is a recipe payload as submitted by a caller.
type RecipeInput struct {
	UserID       string
	RecipeID     string // update mode only
	Title        string
	Description  string
	Category     string
	PrepTime     int
	Servings     int
	Difficulty   string
	Ingredients  []string
	Instructions []string
	Images       []string // data URIs; only the first is used
}

// WriteResult reports the outcome of a create or update.
type WriteResult struct {
	RecipeID       string
	ImageURL       string
	ImageProcessed bool
	User           *models.User
}

// Create validates the payload and atomically writes the recipe with its
// child rows. The caller never observes a recipe with a partial child set.
func (s *RecipeService) Create(ctx context.Context, in RecipeInput) (*WriteResult, error) {
	user, err := s.resolveOwner(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	category, _ := s.categories.ByName(in.Category)

	// Best-effort: a failed upload degrades to the placeholder and must
	// never abort the write.
	ingest := s.images.IngestRecipeImage(ctx, firstImage(in.Images), user.ID)

	recipeID := fmt.Sprintf("rec-%s-%s", category.Prefix, uuid.NewString())
	now := time.Now()
	recipe := models.Recipe{
		ID:          recipeID,
		UserID:      user.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  category.ID,
		PrepTime:    in.PrepTime,
		Servings:    servingsOrDefault(in.Servings),
		Difficulty:  in.Difficulty,
		ImageURL:    ingest.URL,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return insertChildren(tx, recipeID, in)
	})
	if err != nil {
		return nil, &apperr.WriteFailedError{Err: err}
	}

	return &WriteResult{
		RecipeID:       recipeID,
		ImageURL:       ingest.URL,
		ImageProcessed: ingest.Uploaded,
		User:           user,
	}, nil
}

// Update verifies ownership of an existing active recipe, then atomically
// rewrites its mutable fields and replaces both child sets wholesale. Child
// rows are never partially patched.
func (s *RecipeService) Update(ctx context.Context, in RecipeInput) (*WriteResult, error) {
	user, err := s.resolveOwner(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	var existing models.Recipe
	err = s.db.WithContext(ctx).Where("id = ? AND active = ?", in.RecipeID, true).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up recipe: %w", err)
	}
	if existing.UserID != user.ID {
		return nil, apperr.ErrForbidden
	}

	category, _ := s.categories.ByName(in.Category)
	ingest := s.images.IngestRecipeImage(ctx, firstImage(in.Images), user.ID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":       strings.TrimSpace(in.Title),
			"description": strings.TrimSpace(in.Description),
			"category_id": category.ID,
			"prep_time":   in.PrepTime,
			"servings":    servingsOrDefault(in.Servings),
			"difficulty":  in.Difficulty,
			"image_url":   ingest.URL,
			"updated_at":  time.Now(),
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", in.RecipeID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", in.RecipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", in.RecipeID).Delete(&models.RecipeInstruction{}).Error; err != nil {
			return err
		}
		return insertChildren(tx, in.RecipeID, in)
	})
	if err != nil {
		return nil, &apperr.WriteFailedError{Err: err}
	}

	return &WriteResult{
		RecipeID:       in.RecipeID,
		ImageURL:       ingest.URL,
		ImageProcessed: ingest.Uploaded,
		User:           user,
	}, nil
}

func (s *RecipeService) resolveOwner(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	return s.identity.ResolveUser(ctx, userID)
}

// validate checks every precondition and reports all violations together, not
// just the first.
func (s *RecipeService) validate(in RecipeInput) error {
	var fields []string

	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, "title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		fields = append(fields, "description is required")
	}
	if in.Category == "" {
		fields = append(fields, "category is required")
	} else if _, ok := s.categories.ByName(in.Category); !ok {
		fields = append(fields, "category is unknown")
	}
	if in.PrepTime <= 0 {
		fields = append(fields, "prepTime must be greater than 0")
	}
	if in.Difficulty == "" {
		fields = append(fields, "difficulty is required")
	} else if !models.ValidDifficulty(in.Difficulty) {
		fields = append(fields, "difficulty is unknown")
	}
	if countNonBlank(in.Ingredients) == 0 {
		fields = append(fields, "at least one ingredient is required")
	}
	if countNonBlank(in.Instructions) == 0 {
		fields = append(fields, "at least one instruction is required")
	}

	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

// insertChildren writes the ingredient and instruction rows with their
// 1-based ordinals, skipping blank entries.
func insertChildren(tx *gorm.DB, recipeID string, in RecipeInput) error {
	position := 0
	for _, raw := range in.Ingredients {
		ingredient := strings.TrimSpace(raw)
		if ingredient == "" {
			continue
		}
		position++
		row := models.RecipeIngredient{
			RecipeID:   recipeID,
			Ingredient: ingredient,
			Position:   position,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	step := 0
	for _, raw := range in.Instructions {
		instruction := strings.TrimSpace(raw)
		if instruction == "" {
			continue
		}
		step++
		row := models.RecipeInstruction{
			RecipeID:    recipeID,
			StepNumber:  step,
			Description: instruction,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

func countNonBlank(entries []string) int {
	n := 0
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			n++
		}
	}
	return n
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

func servingsOrDefault(servings int) int {
	if servings <= 0 {
		return 4
	}
	return servings
}

// RecipeView is a recipe assembled for display, with author and category
// resolved and children attached in order.
type RecipeView struct {
	ID             string    `json:"id"`
	LegacyID       string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	PrepTime       int       `json:"prepTime"`
	Servings       int       `json:"servings"`
	Difficulty     string    `json:"difficulty"`
	Image          []string  `json:"image"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Author         string    `json:"author"`
	AuthorUsername string    `json:"authorUsername"`
	AuthorImage    string    `json:"authorImage"`
	Ingredients    []string  `json:"ingredients"`
	Instructions   []string  `json:"instructions"`
}

// recipeRow is the flat result of the recipe/author/category join.
type recipeRow struct {
	ID             string
	Title          string
	Description    string
	Category       string
	PrepTime       int
	Servings       int
	Difficulty     string
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Author         string
	AuthorUsername string
	AuthorImage    string
}

const recipeJoinColumns = "recipes.id, recipes.title, recipes.description, " +
	"categories.name AS category, recipes.prep_time, recipes.servings, " +
	"recipes.difficulty, recipes.image_url, recipes.created_at, recipes.updated_at, " +
	"users.full_name AS author, users.username AS author_username, " +
	"users.profile_image_url AS author_image"

func (s *RecipeService) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table("recipes").
		Select(recipeJoinColumns).
		Joins("JOIN users ON users.id = recipes.user_id").
		Joins("JOIN categories ON categories.id = recipes.category_id").
		Where("recipes.active = ?", true)
}

// GetRecipe assembles a single recipe: the join row plus its ordered child
// rows.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*RecipeView, error) {
	var rows []recipeRow
	if err := s.joined(ctx).Where("recipes.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}

	var ingredients []models.RecipeIngredient
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("position").
		Find(&ingredients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ingredients: %w", err)
	}

	var instructions []models.RecipeInstruction
	err = s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("step_number").
		Find(&instructions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch instructions: %w", err)
	}

	ingredientTexts := make([]string, 0, len(ingredients))
	for _, row := range ingredients {
		ingredientTexts = append(ingredientTexts, row.Ingredient)
	}
	instructionTexts := make([]string, 0, len(instructions))
	for _, row := range instructions {
		instructionTexts = append(instructionTexts, row.Description)
	}

	view := buildView(rows[0], ingredientTexts, instructionTexts)
	return &view, nil
}

// ListRecipes returns up to limit most-recently-created active recipes with
// full child data. Children for the whole page are fetched in two batch
// queries and grouped by parent id, keeping latency independent of page size.
func (s *RecipeService) ListRecipes(ctx context.Context, limit int) ([]RecipeView, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	var rows []recipeRow
	err := s.joined(ctx).
		Order("recipes.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	if len(rows) == 0 {
		return []RecipeView{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var allIngredients []models.RecipeIngredient
	err = s.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Order("recipe_id, position").
		Find(&allIngredients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ingredients: %w", err)
	}

	var allInstructions []models.RecipeInstruction
	err = s.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Order("recipe_id, step_number").
		Find(&allInstructions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch instructions: %w", err)
	}

	ingredientsByRecipe := make(map[string][]string)
	for _, row := range allIngredients {
		ingredientsByRecipe[row.RecipeID] = append(ingredientsByRecipe[row.RecipeID], row.Ingredient)
	}
	instructionsByRecipe := make(map[string][]string)
	for _, row := range allInstructions {
		instructionsByRecipe[row.RecipeID] = append(instructionsByRecipe[row.RecipeID], row.Description)
	}

	views := make([]RecipeView, 0, len(rows))
	for _, row := range rows {
		views = append(views, buildView(row, ingredientsByRecipe[row.ID], instructionsByRecipe[row.ID]))
	}
	return views, nil
}

func buildView(row recipeRow, ingredients, instructions []string) RecipeView {
	if len(ingredients) == 0 {
		ingredients = []string{NoIngredientsPlaceholder}
	}
	if len(instructions) == 0 {
		instructions = []string{NoInstructionsPlaceholder}
	}
	return RecipeView{
		ID:             row.ID,
		LegacyID:       row.ID,
		Title:          row.Title,
		Description:    row.Description,
		Category:       row.Category,
		PrepTime:       row.PrepTime,
		Servings:       row.Servings,
		Difficulty:     row.Difficulty,
		Image:          []string{row.ImageURL},
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		Author:         row.Author,
		AuthorUsername: row.AuthorUsername,
		AuthorImage:    row.AuthorImage,
		Ingredients:    ingredients,
		Instructions:   instructions,
	}
}

// Favorite marks an active recipe as a favorite of the user. Repeating the
// call is a no-op.
func (s *RecipeService) Favorite(ctx context.Context, userID, recipeID string) error {
	user, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return err
	}

	var recipe models.Recipe
	err = s.db.WithContext(ctx).Where("id = ? AND active = ?", recipeID, true).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to look up recipe: %w", err)
	}

	fav := models.RecipeFavorite{UserID: user.ID, RecipeID: recipe.ID}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
	if err != nil {
		return fmt.Errorf("failed to favorite recipe: %w", err)
	}
	return nil
}

// Unfavorite removes a favorite mark if present.
func (s *RecipeService) Unfavorite(ctx context.Context, userID, recipeID string) error {
	user, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipeID).
		Delete(&models.RecipeFavorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to unfavorite recipe: %w", err)
	}
	return nil
}
