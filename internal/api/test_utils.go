package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/service"
)

// TestDB holds the test database and services
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
	Images      *FakeImageStore
}

// FakeImageStore keeps uploaded images in memory
type FakeImageStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{Objects: make(map[string][]byte)}
}

func (f *FakeImageStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[key] = data
	return "https://images.test/" + key, nil
}

// SetupTestDB creates an isolated in-memory database with the full schema
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret"),
		Images:      NewFakeImageStore(),
	}
}

// SetupTestRouter creates the full application router backed by a fresh
// test database
func SetupTestRouter(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	RegisterRoutes(r, testDB.DB, "test-secret", testDB.Images, nil)
	return r, testDB
}

// CreateTestUser creates a user with a bcrypt-hashed password
func CreateTestUser(t *testing.T, db *TestDB, email, password string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateTestUserAndToken creates a test user and returns it with a valid
// bearer token
func CreateTestUserAndToken(t *testing.T, db *TestDB) (*models.User, string) {
	t.Helper()

	user := CreateTestUser(t, db, fmt.Sprintf("testuser+%s@example.com", uuid.New().String()), "testpassword123")
	token, err := db.AuthService.Login(context.Background(), user.Email, "testpassword123")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

// PerformRequest makes a JSON HTTP request against the router
func PerformRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// PerformUpload makes a multipart request with a single file field
func PerformUpload(router *gin.Engine, path, token, field, filename string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		panic(err)
	}
	if _, err := part.Write(data); err != nil {
		panic(err)
	}
	if err := writer.Close(); err != nil {
		panic(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
