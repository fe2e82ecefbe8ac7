package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/api"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	db *gorm.DB,
	jwtSecret string,
	imageStore service.ImageStore,
	redisClient *redis.Client,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(allowedOrigins))

	// Unregistered methods on a known path must answer 405, not 404
	router.HandleMethodNotAllowed = true

	api.RegisterRoutes(router, db, jwtSecret, imageStore, redisClient)

	return router
}
