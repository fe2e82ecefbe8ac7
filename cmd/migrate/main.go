package main

import (
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"

	"github.com/recipebook/backend/pkg/logger"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing .sql migration files")
	flag.Parse()

	log := logger.Get()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() { _ = db.Close() }()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read migrations directory")
	}

	var files []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".sql" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create schema_migrations table")
	}

	for _, name := range files {
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE name = $1`, name).Scan(&count); err != nil {
			log.Fatal().Err(err).Str("migration", name).Msg("failed to check migration status")
		}
		if count > 0 {
			log.Info().Str("migration", name).Msg("already applied, skipping")
			continue
		}

		content, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			log.Fatal().Err(err).Str("migration", name).Msg("failed to read migration file")
		}

		if _, err := db.Exec(string(content)); err != nil {
			log.Fatal().Err(err).Str("migration", name).Msg("failed to execute migration")
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			log.Fatal().Err(err).Str("migration", name).Msg("failed to record migration")
		}

		log.Info().Str("migration", name).Msg("applied")
	}
}
