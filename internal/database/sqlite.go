package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/mymanabox/internal/models"
)

var DB *gorm.DB

// Initialize opens the snapshot database and migrates the schema
func Initialize(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := DB.AutoMigrate(&models.CollectionValueSnapshot{}); err != nil {
		return err
	}

	log.Println("Snapshot database ready")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
