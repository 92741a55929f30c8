package repositories

import (
	"context"

	"github.com/jobgyani/job-alerts/internal/entities"
	"gorm.io/gorm"
)

type History struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *History {
	return &History{db: db}
}

func (repo *History) Append(ctx context.Context, entry entities.SearchHistoryEntry) error {
	return repo.db.WithContext(ctx).Create(&entry).Error
}

func (repo *History) GetByUser(ctx context.Context, userID string, limit int) ([]entities.SearchHistoryEntry, error) {

	var entries []entities.SearchHistoryEntry
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
