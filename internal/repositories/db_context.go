package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/jobgyani/job-alerts/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.UserAlertState{})
	if err != nil {
		return fmt.Errorf("failed to migrate UserAlertState entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.SearchHistoryEntry{})
	if err != nil {
		return fmt.Errorf("failed to migrate SearchHistoryEntry entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.StoredDocument{})
	if err != nil {
		return fmt.Errorf("failed to migrate StoredDocument entity: %w", err)
	}

	if err = c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_history_user_id ON search_history_entries (user_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create history index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
