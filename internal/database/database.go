// Package database manages the sqlite connection and schema migrations.
package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/config"
	"shopmetrics/internal/orders"
	"shopmetrics/internal/stores"
)

// DBManager owns the gorm connection for the application.
type DBManager struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

// NewDBManager creates a new database manager.
func NewDBManager(cfg *config.Config, log *slog.Logger) *DBManager {
	return &DBManager{cfg: cfg, logger: log}
}

// Init opens the database connection and applies connection settings.
func (dm *DBManager) Init() error {
	if err := os.MkdirAll(filepath.Dir(dm.cfg.DatabaseName), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dm.cfg.DatabaseName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps reads non-blocking while the order collaborator writes.
	db.Exec("PRAGMA journal_mode = WAL")
	db.Exec("PRAGMA busy_timeout = 5000")
	db.Exec("PRAGMA foreign_keys = ON")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(dm.cfg.GetMaxOpenConns())
	sqlDB.SetMaxIdleConns(dm.cfg.GetMaxIdleConns())

	dm.db = db
	dm.logger.Info("Database initialized", slog.String("path", dm.cfg.DatabaseName))
	return nil
}

// GetConnection returns the gorm connection.
func (dm *DBManager) GetConnection() *gorm.DB {
	return dm.db
}

// MigrateDatabase runs schema migrations for all domain models.
func (dm *DBManager) MigrateDatabase() error {
	if dm.db == nil {
		return gorm.ErrInvalidDB
	}

	return dm.db.Transaction(func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&stores.Store{},
			&orders.Order{},
			&orders.LineItem{},
			&catalog.Product{},
		)
	})
}

// Close closes the underlying connection.
func (dm *DBManager) Close() error {
	if dm.db == nil {
		return nil
	}
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
