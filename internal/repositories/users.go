package repositories

import (
	"context"
	"time"

	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) GetByID(ctx context.Context, userID string) (*entities.UserAlertState, error) {

	var user entities.UserAlertState
	err := repo.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) Upsert(ctx context.Context, user entities.UserAlertState) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&user).Error
}

// AlertSubscribers lists every user currently opted into digest alerts.
func (repo *Users) AlertSubscribers(ctx context.Context) ([]entities.UserAlertState, error) {

	var users []entities.UserAlertState
	if err := repo.db.WithContext(ctx).Find(&users, "alerts_enabled = ?", true).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateLastQuery blindly overwrites the last-query pointer. Creates the row
// if the user has never been seen before, so an anonymous signup followed by
// a search still ends up with a pointer the digest job can use.
func (repo *Users) UpdateLastQuery(ctx context.Context, userID string, query string) error {
	now := time.Now()
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_query_text", "last_query_updated_at", "updated_at"}),
	}).Create(&entities.UserAlertState{
		UserID:             userID,
		LastQueryText:      query,
		LastQueryUpdatedAt: now,
	}).Error
}

func (repo *Users) StampDigestSent(ctx context.Context, userID string, sentAt time.Time) error {
	return repo.db.WithContext(ctx).Model(&entities.UserAlertState{}).Where("user_id = ?", userID).
		Update("last_digest_sent_at", sentAt).Error
}
