package database

import (
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
)

// AutoMigrate brings the schema up to date for every model in the system.
// Production deployments run versioned SQL migrations via cmd/migrate; this
// path covers development and the sqlite test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}
