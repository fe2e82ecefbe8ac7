package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/types"
)

// RecipeFilter narrows a recipe listing. IDs within one list are combined
// with OR, the two lists with AND.
type RecipeFilter struct {
	TagIDs        []uuid.UUID
	IngredientIDs []uuid.UUID
}

// RecipeService handles recipe operations, always scoped to the owner
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

var _ IRecipeService = (*RecipeService)(nil)

func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// ListRecipes returns the user's recipes, most recent first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	err := query.
		Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves one of the user's recipes with its associations.
// Recipes owned by other users surface as record-not-found.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe creates a recipe owned by the given user. Referenced tags
// and ingredients must already exist and belong to the same user.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	tags, err := s.ownedTags(ctx, userID, req.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ownedIngredients(ctx, userID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		UserID:      userID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe fully replaces one of the user's recipes. Omitted tag and
// ingredient lists clear the corresponding associations.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.ownedTags(ctx, userID, req.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ownedIngredients(ctx, userID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe.Title = req.Title
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = req.Price
	recipe.Link = req.Link

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return tx.Model(recipe).Association("Ingredients").Replace(ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, userID, id)
}

// PatchRecipe applies a partial update: only fields present in the request
// change, and a supplied tag or ingredient list replaces just that set.
func (s *RecipeService) PatchRecipe(ctx context.Context, userID, id uuid.UUID, req *types.PatchRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	var tags []models.Tag
	if req.Tags != nil {
		if tags, err = s.ownedTags(ctx, userID, *req.Tags); err != nil {
			return nil, err
		}
	}
	var ingredients []models.Ingredient
	if req.Ingredients != nil {
		if ingredients, err = s.ownedIngredients(ctx, userID, *req.Ingredients); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(recipe).Error; err != nil {
			return err
		}
		if req.Tags != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			return tx.Model(recipe).Association("Ingredients").Replace(ingredients)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, userID, id)
}

// DeleteRecipe deletes one of the user's recipes
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&recipe).Error
}

// UploadImage stores an image for one of the user's recipes and records its
// URL. Non-image payloads are rejected, leaving the stored image unchanged.
func (s *RecipeService) UploadImage(ctx context.Context, userID, id uuid.UUID, filename string, data []byte) (string, error) {
	if s.images == nil {
		return "", ErrImageStoreDisabled
	}

	contentType := sniffContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipe-images/%s%s", uuid.New(), extensionFor(contentType))
	url, err := s.images.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	recipe.ImageURL = url
	if err := s.db.WithContext(ctx).Omit("Tags", "Ingredients").Save(&recipe).Error; err != nil {
		return "", err
	}
	return url, nil
}

// ownedTags resolves tag IDs to rows owned by the user. Any ID that does
// not resolve is an error; callers never attach another user's tags.
func (s *RecipeService) ownedTags(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(dedupe(ids)) {
		return nil, ErrAttributeNotFound
	}
	return tags, nil
}

func (s *RecipeService) ownedIngredients(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if len(ingredients) != len(dedupe(ids)) {
		return nil, ErrAttributeNotFound
	}
	return ingredients, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sniffContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
