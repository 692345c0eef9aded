package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the experiment-store connection. The store is an embedded
// sqlite file, written by one pipeline run at a time.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if needed) the sqlite experiment store.
func NewDatabase(path string) (*Database, error) {
	return NewDatabaseWithLogger(path, logger.Default.LogMode(logger.Silent))
}

// NewDatabaseWithLogger opens the store with a custom GORM logger.
func NewDatabaseWithLogger(path string, gormLogger logger.Interface) (*Database, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating experiment store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open experiment store %s: %w", path, err)
	}

	if err := db.AutoMigrate(&ExperimentRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate experiment store: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the underlying connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the store is reachable
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}
