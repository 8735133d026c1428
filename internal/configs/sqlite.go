package config

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "team-task-hub.com/team-task-hub/internal/models"
)

func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}

// Migrate creates the schema and seeds the singleton nomenclature row.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Task{},
		&model.Profile{},
		&model.UserRole{},
		&model.Comment{},
		&model.ActivityLog{},
		&model.Notification{},
		&model.NomenclatureConfig{},
	)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.NomenclatureConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		now := time.Now().UTC()
		seed := &model.NomenclatureConfig{
			ID:        uuid.NewString(),
			Prefix:    "TSK",
			Separator: "-",
			Padding:   3,
			Counter:   0,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(seed).Error; err != nil {
			return err
		}
	}

	return nil
}
