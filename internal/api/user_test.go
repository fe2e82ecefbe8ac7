package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebook/backend/internal/models"
)

func TestCreateUser(t *testing.T) {
	router, testDB := SetupTestRouter(t)

	payload := map[string]interface{}{
		"email":    "test@example.com",
		"password": "testpass1234",
		"name":     "Test User",
	}
	w := PerformRequest(router, "POST", "/api/v1/users", "", payload)
	assert.Equal(t, 201, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "test@example.com", response["email"])
	assert.NotContains(t, response, "password")
	assert.NotContains(t, response, "password_hash")

	// Password must be stored hashed
	var user models.User
	require.NoError(t, testDB.DB.Where("email = ?", "test@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("testpass1234")))
}

func TestCreateUserNormalizesEmailDomain(t *testing.T) {
	router, testDB := SetupTestRouter(t)

	payload := map[string]interface{}{
		"email":    "Test@EXAMPLE.Com",
		"password": "testpass1234",
	}
	w := PerformRequest(router, "POST", "/api/v1/users", "", payload)
	assert.Equal(t, 201, w.Code)

	var user models.User
	require.NoError(t, testDB.DB.First(&user).Error)
	assert.Equal(t, "Test@example.com", user.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestUser(t, testDB, "test@example.com", "testpass1234")

	payload := map[string]interface{}{
		"email":    "test@example.com",
		"password": "testpass1234",
	}
	w := PerformRequest(router, "POST", "/api/v1/users", "", payload)
	assert.Equal(t, 400, w.Code)
}

func TestCreateUserShortPassword(t *testing.T) {
	router, testDB := SetupTestRouter(t)

	payload := map[string]interface{}{
		"email":    "test2@example.com",
		"password": "1234",
	}
	w := PerformRequest(router, "POST", "/api/v1/users", "", payload)
	assert.Equal(t, 400, w.Code)

	var count int64
	testDB.DB.Model(&models.User{}).Where("email = ?", "test2@example.com").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateToken(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestUser(t, testDB, "test@example.com", "testpass1234")

	payload := map[string]interface{}{
		"email":    "test@example.com",
		"password": "testpass1234",
	}
	w := PerformRequest(router, "POST", "/api/v1/users/token", "", payload)
	assert.Equal(t, 200, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
}

func TestCreateTokenInvalidCredentials(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestUser(t, testDB, "test@example.com", "testpass1234")

	payload := map[string]interface{}{
		"email":    "test@example.com",
		"password": "wrong",
	}
	w := PerformRequest(router, "POST", "/api/v1/users/token", "", payload)
	assert.Equal(t, 400, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotContains(t, response, "token")
}

func TestCreateTokenNoUser(t *testing.T) {
	router, _ := SetupTestRouter(t)

	payload := map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "testpass1234",
	}
	w := PerformRequest(router, "POST", "/api/v1/users/token", "", payload)
	assert.Equal(t, 400, w.Code)
}

func TestCreateTokenMissingField(t *testing.T) {
	router, _ := SetupTestRouter(t)

	w := PerformRequest(router, "POST", "/api/v1/users/token", "", map[string]interface{}{"email": "test@example.com"})
	assert.Equal(t, 400, w.Code)

	w = PerformRequest(router, "POST", "/api/v1/users/token", "", map[string]interface{}{"password": "testpass1234"})
	assert.Equal(t, 400, w.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	router, _ := SetupTestRouter(t)

	w := PerformRequest(router, "GET", "/api/v1/users/me", "", nil)
	assert.Equal(t, 401, w.Code)
}

func TestGetMe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "GET", "/api/v1/users/me", token, nil)
	assert.Equal(t, 200, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, user.Email, response["email"])
	assert.Equal(t, user.Name, response["name"])
}

func TestUpdateMe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user, token := CreateTestUserAndToken(t, testDB)

	payload := map[string]interface{}{
		"name":     "New Name",
		"password": "newpassword123",
	}
	w := PerformRequest(router, "PATCH", "/api/v1/users/me", token, payload)
	assert.Equal(t, 200, w.Code)

	var updated models.User
	require.NoError(t, testDB.DB.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, "New Name", updated.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword123")))
}

func TestMePostNotAllowed(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, "POST", "/api/v1/users/me", token, map[string]interface{}{"name": "x"})
	assert.Equal(t, 405, w.Code)
}
