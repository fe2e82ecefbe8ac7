package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/router"
	"github.com/recipebook/backend/internal/server"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

func main() {
	// Local development reads .env; absent file is fine
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	var imageStore service.ImageStore
	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise S3")
		}
		if err := s3Cfg.SetupBucketPolicy(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to apply bucket policy")
		}
		imageStore = service.NewS3ImageStore(s3Cfg)
	} else {
		log.Warn().Msg("S3 bucket not configured, image upload disabled")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
			redisClient = nil
		}
	}

	r := router.SetupRouter(db, cfg.JWTSecret, imageStore, redisClient, cfg.AllowedOrigins)

	srv := server.New(r, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
