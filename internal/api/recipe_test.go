package api

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/types"
)

func createTestRecipe(t *testing.T, db *TestDB, userID uuid.UUID, title string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:       title,
		TimeMinutes: 22,
		Price:       5.25,
		UserID:      userID,
	}
	require.NoError(t, db.DB.Create(recipe).Error)
	return recipe
}

func TestListRecipesRequiresAuth(t *testing.T) {
	router, _ := SetupTestRouter(t)

	w := PerformRequest(router, "GET", "/api/v1/recipes", "", nil)
	assert.Equal(t, 401, w.Code)
}

func TestListRecipes(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	createTestRecipe(t, testDB, user.ID, "Sample recipe 1")
	createTestRecipe(t, testDB, user.ID, "Sample recipe 2")

	w := PerformRequest(router, "GET", "/api/v1/recipes", token, nil)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Recipes, 2)
}

func TestListRecipesLimitedToUser(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)
	other, _ := CreateTestUserAndToken(t, testDB)

	createTestRecipe(t, testDB, other.ID, "Other user's recipe")
	mine := createTestRecipe(t, testDB, user.ID, "My recipe")

	w := PerformRequest(router, "GET", "/api/v1/recipes", token, nil)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Recipes, 1)
	assert.Equal(t, mine.ID, response.Recipes[0].ID)
}

func TestGetRecipeDetail(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	tag := models.Tag{Name: "Dinner", UserID: user.ID}
	ingredient := models.Ingredient{Name: "Rice", UserID: user.ID}
	require.NoError(t, testDB.DB.Create(&tag).Error)
	require.NoError(t, testDB.DB.Create(&ingredient).Error)

	recipe := models.Recipe{
		Title:       "Fried rice",
		TimeMinutes: 15,
		Price:       4.5,
		Link:        "https://example.com/fried-rice",
		UserID:      user.ID,
		Tags:        []models.Tag{tag},
		Ingredients: []models.Ingredient{ingredient},
	}
	require.NoError(t, testDB.DB.Create(&recipe).Error)

	w := PerformRequest(router, "GET", "/api/v1/recipes/"+recipe.ID.String(), token, nil)
	assert.Equal(t, 200, w.Code)

	var detail types.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Fried rice", detail.Title)
	assert.Equal(t, "https://example.com/fried-rice", detail.Link)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "Dinner", detail.Tags[0].Name)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Rice", detail.Ingredients[0].Name)
}

func TestGetRecipeOtherUser(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)
	other, _ := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, other.ID, "Not yours")

	w := PerformRequest(router, "GET", "/api/v1/recipes/"+recipe.ID.String(), token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestCreateRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	body := map[string]interface{}{
		"title":        "Chocolate cheesecake",
		"time_minutes": 30,
		"price":        5.99,
		"link":         "https://example.com/cheesecake",
	}
	w := PerformRequest(router, "POST", "/api/v1/recipes", token, body)
	assert.Equal(t, 201, w.Code)

	var created types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	var recipe models.Recipe
	require.NoError(t, testDB.DB.First(&recipe, "id = ?", created.ID).Error)
	assert.Equal(t, "Chocolate cheesecake", recipe.Title)
	assert.Equal(t, 30, recipe.TimeMinutes)
	assert.Equal(t, user.ID, recipe.UserID)
}

func TestCreateRecipeWithTagsAndIngredients(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	tag := models.Tag{Name: "Dessert", UserID: user.ID}
	ingredient := models.Ingredient{Name: "Sugar", UserID: user.ID}
	require.NoError(t, testDB.DB.Create(&tag).Error)
	require.NoError(t, testDB.DB.Create(&ingredient).Error)

	body := map[string]interface{}{
		"title":        "Caramel tart",
		"time_minutes": 60,
		"price":        8.0,
		"tags":         []string{tag.ID.String()},
		"ingredients":  []string{ingredient.ID.String()},
	}
	w := PerformRequest(router, "POST", "/api/v1/recipes", token, body)
	assert.Equal(t, 201, w.Code)

	var created types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, []uuid.UUID{tag.ID}, created.Tags)
	assert.Equal(t, []uuid.UUID{ingredient.ID}, created.Ingredients)
}

func TestCreateRecipeMissingTitle(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/recipes", token, map[string]interface{}{"time_minutes": 10, "price": 1.0})
	assert.Equal(t, 400, w.Code)

	var count int64
	testDB.DB.Model(&models.Recipe{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateRecipeForeignTag(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)
	other, _ := CreateTestUserAndToken(t, testDB)

	foreign := models.Tag{Name: "Private", UserID: other.ID}
	require.NoError(t, testDB.DB.Create(&foreign).Error)

	body := map[string]interface{}{
		"title":        "Sneaky recipe",
		"time_minutes": 5,
		"price":        1.0,
		"tags":         []string{foreign.ID.String()},
	}
	w := PerformRequest(router, "POST", "/api/v1/recipes", token, body)
	assert.Equal(t, 400, w.Code)
}

func TestCreateRecipeUnknownIngredient(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	body := map[string]interface{}{
		"title":        "Mystery soup",
		"time_minutes": 5,
		"price":        1.0,
		"ingredients":  []string{uuid.New().String()},
	}
	w := PerformRequest(router, "POST", "/api/v1/recipes", token, body)
	assert.Equal(t, 400, w.Code)
}

func TestListRecipesFilterByTags(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	vegan := models.Tag{Name: "Vegan", UserID: user.ID}
	vegetarian := models.Tag{Name: "Vegetarian", UserID: user.ID}
	require.NoError(t, testDB.DB.Create(&vegan).Error)
	require.NoError(t, testDB.DB.Create(&vegetarian).Error)

	curry := models.Recipe{Title: "Thai vegetable curry", TimeMinutes: 30, Price: 7, UserID: user.ID, Tags: []models.Tag{vegan}}
	tagine := models.Recipe{Title: "Aubergine tagine", TimeMinutes: 40, Price: 9, UserID: user.ID, Tags: []models.Tag{vegetarian}}
	require.NoError(t, testDB.DB.Create(&curry).Error)
	require.NoError(t, testDB.DB.Create(&tagine).Error)
	createTestRecipe(t, testDB, user.ID, "Fish and chips")

	path := fmt.Sprintf("/api/v1/recipes?tags=%s,%s", vegan.ID, vegetarian.ID)
	w := PerformRequest(router, "GET", path, token, nil)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Recipes, 2)
	for _, r := range response.Recipes {
		assert.NotEqual(t, "Fish and chips", r.Title)
	}
}

func TestListRecipesFilterByIngredients(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	feta := models.Ingredient{Name: "Feta cheese", UserID: user.ID}
	require.NoError(t, testDB.DB.Create(&feta).Error)

	toast := models.Recipe{Title: "Posh beans on toast", TimeMinutes: 10, Price: 3, UserID: user.ID, Ingredients: []models.Ingredient{feta}}
	require.NoError(t, testDB.DB.Create(&toast).Error)
	createTestRecipe(t, testDB, user.ID, "Red lentil dahl")

	w := PerformRequest(router, "GET", "/api/v1/recipes?ingredients="+feta.ID.String(), token, nil)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Recipes, 1)
	assert.Equal(t, "Posh beans on toast", response.Recipes[0].Title)
}

func TestListRecipesFilterCombined(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	tag := models.Tag{Name: "Breakfast", UserID: user.ID}
	ingredient := models.Ingredient{Name: "Oats", UserID: user.ID}
	require.NoError(t, testDB.DB.Create(&tag).Error)
	require.NoError(t, testDB.DB.Create(&ingredient).Error)

	both := models.Recipe{Title: "Overnight oats", TimeMinutes: 5, Price: 2, UserID: user.ID, Tags: []models.Tag{tag}, Ingredients: []models.Ingredient{ingredient}}
	tagOnly := models.Recipe{Title: "Pancakes", TimeMinutes: 20, Price: 4, UserID: user.ID, Tags: []models.Tag{tag}}
	require.NoError(t, testDB.DB.Create(&both).Error)
	require.NoError(t, testDB.DB.Create(&tagOnly).Error)

	path := fmt.Sprintf("/api/v1/recipes?tags=%s&ingredients=%s", tag.ID, ingredient.ID)
	w := PerformRequest(router, "GET", path, token, nil)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Recipes, 1)
	assert.Equal(t, "Overnight oats", response.Recipes[0].Title)
}

func TestListRecipesMalformedFilter(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "GET", "/api/v1/recipes?tags=not-a-uuid", token, nil)
	assert.Equal(t, 400, w.Code)
}

func TestPatchRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	tag := models.Tag{Name: "Lunch", UserID: user.ID}
	require.NoError(t, testDB.DB.Create(&tag).Error)
	recipe := createTestRecipe(t, testDB, user.ID, "Original title")

	body := map[string]interface{}{"tags": []string{tag.ID.String()}}
	w := PerformRequest(router, "PATCH", "/api/v1/recipes/"+recipe.ID.String(), token, body)
	assert.Equal(t, 200, w.Code)

	var detail types.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Original title", detail.Title)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, tag.ID, detail.Tags[0].ID)
}

func TestUpdateRecipeClearsOmittedTags(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	tag := models.Tag{Name: "Supper", UserID: user.ID}
	require.NoError(t, testDB.DB.Create(&tag).Error)
	recipe := models.Recipe{Title: "Stew", TimeMinutes: 90, Price: 10, UserID: user.ID, Tags: []models.Tag{tag}}
	require.NoError(t, testDB.DB.Create(&recipe).Error)

	body := map[string]interface{}{
		"title":        "Slow stew",
		"time_minutes": 120,
		"price":        11.0,
	}
	w := PerformRequest(router, "PUT", "/api/v1/recipes/"+recipe.ID.String(), token, body)
	assert.Equal(t, 200, w.Code)

	var detail types.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Slow stew", detail.Title)
	assert.Empty(t, detail.Tags)

	var count int64
	testDB.DB.Model(&models.Tag{}).Count(&count)
	assert.Equal(t, int64(1), count, "clearing the association must not delete the tag")
}

func TestUpdateRecipeOtherUser(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)
	other, _ := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, other.ID, "Untouchable")

	body := map[string]interface{}{"title": "Hijacked", "time_minutes": 1, "price": 1.0}
	w := PerformRequest(router, "PUT", "/api/v1/recipes/"+recipe.ID.String(), token, body)
	assert.Equal(t, 404, w.Code)

	var unchanged models.Recipe
	require.NoError(t, testDB.DB.First(&unchanged, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Untouchable", unchanged.Title)
}

func TestDeleteRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, user.ID, "Short lived")

	w := PerformRequest(router, "DELETE", "/api/v1/recipes/"+recipe.ID.String(), token, nil)
	assert.Equal(t, 204, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/recipes/"+recipe.ID.String(), token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestDeleteRecipeOtherUser(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)
	other, _ := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, other.ID, "Keep out")

	w := PerformRequest(router, "DELETE", "/api/v1/recipes/"+recipe.ID.String(), token, nil)
	assert.Equal(t, 404, w.Code)

	var count int64
	testDB.DB.Model(&models.Recipe{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 16)...)

func TestUploadImage(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, user.ID, "Photogenic dish")

	w := PerformUpload(router, "/api/v1/recipes/"+recipe.ID.String()+"/upload-image", token, "image", "dish.png", pngBytes)
	assert.Equal(t, 200, w.Code)

	var response struct {
		Image string `json:"image"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Image)

	var updated models.Recipe
	require.NoError(t, testDB.DB.First(&updated, "id = ?", recipe.ID).Error)
	assert.Equal(t, response.Image, updated.ImageURL)
	assert.Len(t, testDB.Images.Objects, 1)
}

func TestUploadImageNotAnImage(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, user.ID, "Still unphotographed")

	w := PerformUpload(router, "/api/v1/recipes/"+recipe.ID.String()+"/upload-image", token, "image", "notes.txt", []byte("just some text"))
	assert.Equal(t, 400, w.Code)

	var updated models.Recipe
	require.NoError(t, testDB.DB.First(&updated, "id = ?", recipe.ID).Error)
	assert.Empty(t, updated.ImageURL)
}

func TestUploadImageMissingFile(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, user.ID, "No photo attached")

	w := PerformRequest(router, "POST", "/api/v1/recipes/"+recipe.ID.String()+"/upload-image", token, nil)
	assert.Equal(t, 400, w.Code)
}

func TestUploadImageOtherUser(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)
	other, _ := CreateTestUserAndToken(t, testDB)

	recipe := createTestRecipe(t, testDB, other.ID, "Private dish")

	w := PerformUpload(router, "/api/v1/recipes/"+recipe.ID.String()+"/upload-image", token, "image", "dish.png", pngBytes)
	assert.Equal(t, 404, w.Code)
}
