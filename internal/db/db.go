package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go.uber.org/zap"

	"github.com/studycollab/collab-back/internal/models"
)

var DB *gorm.DB

func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.S().Fatalw("failed to connect database", "error", err)
	}

	if err := Migrate(DB); err != nil {
		zap.S().Fatalw("failed to migrate database", "error", err)
	}

	zap.S().Info("database connected and migrated")
}

// Migrate creates or updates the schema. Exposed so tests can run the
// same migrations against an in-memory database.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.StudySession{},
		&models.BookedSession{},
		&models.Material{},
		&models.Note{},
		&models.Review{},
		&models.Payment{},
	)
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
