package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/service"
)

// HealthCheck reports whether the API and its database are reachable
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "recipebook API is running",
		})
	}
}

// RegisterRoutes builds the services and handlers and registers every API
// route. redisClient and imageStore may be nil; rate limiting and image
// upload storage are then disabled and stubbed respectively.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, jwtSecret string, imageStore service.ImageStore, redisClient *redis.Client) {
	router.GET("/health", HealthCheck(db))

	authService := service.NewAuthService(db, jwtSecret)

	var creationLimiter gin.HandlerFunc
	if redisClient != nil {
		creationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient).Middleware()
	}

	userHandler := NewUserHandler(authService)
	tagHandler := NewTagHandler(service.NewTagService(db))
	ingredientHandler := NewIngredientHandler(service.NewIngredientService(db))
	recipeHandler := NewRecipeHandler(service.NewRecipeService(db, imageStore))

	v1 := router.Group("/api/v1")
	userHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	tagHandler.RegisterRoutes(protected)
	ingredientHandler.RegisterRoutes(protected)
	recipeHandler.RegisterRoutes(protected, creationLimiter)
}

// truthyParam interprets a query flag the way the list endpoints expect:
// absent or zero means false, any positive integer or "true" means true.
func truthyParam(value string) bool {
	if value == "" {
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n != 0
	}
	return strings.EqualFold(value, "true")
}

// parseUUIDList parses a comma separated list of IDs. An empty value yields
// no filter; any malformed entry is an error.
func parseUUIDList(value string) ([]uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
