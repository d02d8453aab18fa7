package config

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-tracker.com/task-tracker/internal/models"
)

var gormLogLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// NewDatabaseClient opens the SQLite store and migrates the tasks and
// sub_tasks tables.
func NewDatabaseClient(dsn, logLevel string) (*gorm.DB, error) {
	level, ok := gormLogLevels[logLevel]
	if !ok {
		level = logger.Warn
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	if err := db.AutoMigrate(&model.Task{}, &model.SubTask{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}
