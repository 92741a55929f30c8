package repositories

import (
	"context"

	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Documents is the sqlite-backed document store: arbitrary payloads keyed by
// a caller-provided id. Save is a full overwrite, which keeps concurrent
// writers safe under last-writer-wins.
type Documents struct {
	db *gorm.DB
}

func NewDocumentsRepository(db *gorm.DB) *Documents {
	return &Documents{db: db}
}

func (repo *Documents) Save(ctx context.Context, id string, payload []byte) error {
	return repo.db.WithContext(ctx).Save(&entities.StoredDocument{
		ID:    id,
		Value: payload,
	}).Error
}

func (repo *Documents) Load(ctx context.Context, id string) ([]byte, error) {
	doc := &entities.StoredDocument{}
	err := repo.db.WithContext(ctx).First(doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Value, nil
}
