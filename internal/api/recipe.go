package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saborconecta/backend/internal/apperr"
	"github.com/saborconecta/backend/internal/middleware"
	"github.com/saborconecta/backend/internal/service"
)

// RecipeHandler exposes the recipe write and read paths over HTTP.
type RecipeHandler struct {
	recipes *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// CreateRecipe handles POST /recipes.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.FailWithDetails(c, http.StatusBadRequest, "Invalid JSON format", err.Error())
		return
	}

	result, err := h.recipes.Create(c.Request.Context(), recipeInput(c, req))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Recipe created successfully",
		"recipeId":       result.RecipeID,
		"imageUrl":       result.ImageURL,
		"imageProcessed": result.ImageProcessed,
		"user": gin.H{
			"id":   result.User.ID,
			"name": result.User.Username,
		},
	})
}

// UpdateRecipe handles PUT /recipes with recipeId in the body.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.FailWithDetails(c, http.StatusBadRequest, "Invalid JSON format", err.Error())
		return
	}
	if req.RecipeID == "" {
		apperr.Fail(c, http.StatusBadRequest, "recipeId is required for updates")
		return
	}

	result, err := h.recipes.Update(c.Request.Context(), recipeInput(c, req))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Recipe updated successfully",
		"recipeId":       result.RecipeID,
		"imageUrl":       result.ImageURL,
		"imageProcessed": result.ImageProcessed,
	})
}

// GetRecipe handles GET /recipes/:id.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  recipe,
	})
}

// ListRecipes handles GET /recipes: up to 50 most recent active recipes with
// full ingredient and instruction data.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), service.DefaultListLimit)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipes": recipes,
		"total":   len(recipes),
	})
}

// FavoriteRecipe handles POST /recipes/:id/favorite.
func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		apperr.Fail(c, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.recipes.Favorite(c.Request.Context(), userID, c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe favorited successfully",
	})
}

// UnfavoriteRecipe handles DELETE /recipes/:id/favorite.
func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		apperr.Fail(c, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.recipes.Unfavorite(c.Request.Context(), userID, c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe unfavorited successfully",
	})
}

// recipeInput maps the request onto a service input. A token-authenticated
// caller overrides any userId carried in the body.
func recipeInput(c *gin.Context, req RecipeRequest) service.RecipeInput {
	userID := req.UserID
	if authID, ok := middleware.AuthenticatedUserID(c); ok {
		userID = authID
	}
	return service.RecipeInput{
		UserID:       userID,
		RecipeID:     req.RecipeID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PrepTime:     req.PrepTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Images:       req.Images,
	}
}

// callerID extracts the acting user for favorite endpoints: the token
// identity when present, otherwise the body field.
func callerID(c *gin.Context) (string, bool) {
	if authID, ok := middleware.AuthenticatedUserID(c); ok {
		return authID, true
	}
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		return "", false
	}
	return req.UserID, true
}
