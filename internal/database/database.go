// Package database opens the gorm connection backing the mining pool store.
package database

import (
	"fmt"

	"github.com/robsahakyan/mining-pools/internal/config"
	"github.com/robsahakyan/mining-pools/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // registers the pure Go "sqlite" driver
)

// Open connects to the configured database and migrates the schema
func Open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = SQLiteDialector(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logrus.WithField("driver", cfg.Driver).Info("Connected to database")
	return db, nil
}

// SQLiteDialector returns a gorm dialector using the modernc driver, which
// needs no cgo.
func SQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

// Migrate creates or updates the mining_pools table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.MiningPool{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}
}
