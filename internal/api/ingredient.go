package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/types"
)

// IngredientHandler exposes the caller's ingredients
type IngredientHandler struct {
	ingredientService service.IIngredientService
}

func NewIngredientHandler(ingredientService service.IIngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// RegisterRoutes registers ingredient routes on an authenticated group
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
	}
}

// ListIngredients returns the caller's ingredients, name descending.
// assigned_only=1 restricts the list to ingredients used by a recipe.
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	ingredients, err := h.ingredientService.ListIngredients(c.Request.Context(), userID, truthyParam(c.Query("assigned_only")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// CreateIngredient creates an ingredient owned by the caller
func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredientService.CreateIngredient(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}
