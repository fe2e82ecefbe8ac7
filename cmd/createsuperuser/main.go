package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email address of the superuser")
	password := flag.String("password", "", "password of the superuser")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.Get()

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	user, err := authService.CreateSuperuser(ctx, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create superuser")
	}

	log.Info().Str("email", user.Email).Str("id", user.ID.String()).Msg("superuser created")
}
