package db

import (
	"log"
	"os"
	"path/filepath"

	"hungerhub/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the sqlite database at dbPath, creating the file and
// its directory when they don't exist yet, and migrates the schema. The
// returned handle is passed to the repositories; there is no package-level
// connection.
func Open(dbPath string) (*gorm.DB, error) {
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		log.Println("Database file does not exist, creating:", dbPath)
		file, err := os.Create(dbPath)
		if err != nil {
			return nil, err
		}
		file.Close()
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Println("Database connected successfully at", dbPath)

	if err := gdb.AutoMigrate(
		&models.MenuItem{}, &models.User{}, &models.Feedback{},
	); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Close releases the underlying sqlite connection.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
