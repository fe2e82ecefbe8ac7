package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string `env:"SERVER_HOST, default=0.0.0.0"`
	ServerPort string `env:"SERVER_PORT, default=8080"`
	Env        string `env:"ENV, default=development"`
	LogLevel   string `env:"LOG_LEVEL, default=info"`

	// Database configuration
	DBHost     string `env:"DB_HOST, default=localhost"`
	DBPort     string `env:"DB_PORT, default=5432"`
	DBUser     string `env:"DB_USER, default=postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME, default=recipebook"`
	DBSSLMode  string `env:"DB_SSL_MODE, default=disable"`

	// Redis configuration. Rate limiting is skipped when the address is
	// left empty.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB, default=0"`

	// JWT configuration
	JWTSecret string `env:"JWT_SECRET"`

	// CORS configuration: comma separated origins. Empty falls back to the
	// local frontend dev server.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	// Image storage configuration. Uploads are disabled when the bucket
	// is left empty.
	S3Bucket  string `env:"S3_BUCKET_NAME"`
	AWSRegion string `env:"AWS_REGION, default=us-east-1"`
}

// LoadConfig creates a new Config instance from environment variables
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string for the configured database
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
