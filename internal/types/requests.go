package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/models"
)

// CreateUserRequest represents the request body for registering a user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

// TokenRequest represents the request body for issuing an auth token
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeRequest represents a partial update of the caller's own account
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// UserResponse is the wire representation of a user, password excluded
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// NewUserResponse builds a UserResponse from a user model
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

// CreateAttributeRequest is the request body for creating a tag or ingredient
type CreateAttributeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
// Tag and ingredient IDs must reference entities owned by the caller.
type CreateRecipeRequest struct {
	Title       string      `json:"title" binding:"required"`
	TimeMinutes int         `json:"time_minutes" binding:"min=0"`
	Price       float64     `json:"price" binding:"min=0"`
	Link        string      `json:"link"`
	Tags        []uuid.UUID `json:"tags"`
	Ingredients []uuid.UUID `json:"ingredients"`
}

// UpdateRecipeRequest is the body of a full (PUT) recipe update. Omitted
// tag/ingredient lists clear the associations.
type UpdateRecipeRequest struct {
	Title       string      `json:"title" binding:"required"`
	TimeMinutes int         `json:"time_minutes" binding:"min=0"`
	Price       float64     `json:"price" binding:"min=0"`
	Link        string      `json:"link"`
	Tags        []uuid.UUID `json:"tags"`
	Ingredients []uuid.UUID `json:"ingredients"`
}

// PatchRecipeRequest is the body of a partial (PATCH) recipe update. Only
// non-nil fields are applied.
type PatchRecipeRequest struct {
	Title       *string      `json:"title"`
	TimeMinutes *int         `json:"time_minutes" binding:"omitempty,min=0"`
	Price       *float64     `json:"price" binding:"omitempty,min=0"`
	Link        *string      `json:"link"`
	Tags        *[]uuid.UUID `json:"tags"`
	Ingredients *[]uuid.UUID `json:"ingredients"`
}

// RecipeResponse is the list representation of a recipe: associations are
// reported as ID lists.
type RecipeResponse struct {
	ID          uuid.UUID   `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	Title       string      `json:"title"`
	TimeMinutes int         `json:"time_minutes"`
	Price       float64     `json:"price"`
	Link        string      `json:"link"`
	ImageURL    string      `json:"image_url"`
	Tags        []uuid.UUID `json:"tags"`
	Ingredients []uuid.UUID `json:"ingredients"`
}

// RecipeDetailResponse is the retrieve representation: associations are
// expanded into full objects.
type RecipeDetailResponse struct {
	ID          uuid.UUID           `json:"id"`
	CreatedAt   time.Time           `json:"created_at"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	ImageURL    string              `json:"image_url"`
	Tags        []models.Tag        `json:"tags"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// NewRecipeResponse builds the list representation of a recipe
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Tags:        make([]uuid.UUID, 0, len(r.Tags)),
		Ingredients: make([]uuid.UUID, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		resp.Tags = append(resp.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, i.ID)
	}
	return resp
}

// NewRecipeDetailResponse builds the retrieve representation of a recipe
func NewRecipeDetailResponse(r *models.Recipe) RecipeDetailResponse {
	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return RecipeDetailResponse{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Tags:        tags,
		Ingredients: ingredients,
	}
}
