package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/types"
)

// IAuthService defines the interface for account and token operations
type IAuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateMeRequest) (*models.User, error)
}

// ITagService defines the interface for tag operations
type ITagService interface {
	ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error)
	CreateTag(ctx context.Context, userID uuid.UUID, name string) (*models.Tag, error)
}

// IIngredientService defines the interface for ingredient operations
type IIngredientService interface {
	ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*models.Ingredient, error)
}

// IRecipeService defines the interface for recipe operations. Every method
// is scoped to the owning user; a recipe owned by someone else behaves as
// if it does not exist.
type IRecipeService interface {
	ListRecipes(ctx context.Context, userID uuid.UUID, filter RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	PatchRecipe(ctx context.Context, userID, id uuid.UUID, req *types.PatchRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	UploadImage(ctx context.Context, userID, id uuid.UUID, filename string, data []byte) (string, error)
}

// ImageStore persists uploaded recipe images and returns their public URL
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}
