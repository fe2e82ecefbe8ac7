package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
)

// IngredientService handles ingredient operations
type IngredientService struct {
	db *gorm.DB
}

var _ IIngredientService = (*IngredientService)(nil)

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns the user's ingredients ordered by name
// descending, optionally restricted to those used by at least one recipe.
func (s *IngredientService) ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		// The join rows of a soft-deleted recipe survive, so the recipe
		// itself must be checked too.
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id AND recipes.deleted_at IS NULL").
			Distinct("ingredients.*")
	}

	var ingredients []models.Ingredient
	if err := query.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient creates an ingredient owned by the given user
func (s *IngredientService) CreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*models.Ingredient, error) {
	ingredient := models.Ingredient{Name: name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
