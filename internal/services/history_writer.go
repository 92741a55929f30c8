package services

import (
	"context"

	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/jobgyani/job-alerts/internal/logger"
	log "github.com/sirupsen/logrus"
)

type historyRepository interface {
	Append(ctx context.Context, entry entities.SearchHistoryEntry) error
}

type lastQueryRepository interface {
	UpdateLastQuery(ctx context.Context, userID string, query string) error
}

// HistoryWriter records what a user searched for. Every method is
// best-effort: bookkeeping must never fail or slow down a user-facing
// search, so errors are logged and swallowed.
type HistoryWriter struct {
	history historyRepository
	users   lastQueryRepository
}

func NewHistoryWriter(history historyRepository, users lastQueryRepository) *HistoryWriter {
	return &HistoryWriter{history: history, users: users}
}

func (w *HistoryWriter) Record(ctx context.Context, userID string, query string, resultCount int) {
	err := w.history.Append(ctx, entities.SearchHistoryEntry{
		UserID:      userID,
		Query:       query,
		ResultCount: resultCount,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to append search history for user %v: %v", userID, err)
	}
}

func (w *HistoryWriter) UpdateLastQuery(ctx context.Context, userID string, query string) {
	if err := w.users.UpdateLastQuery(ctx, userID, query); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to update last query for user %v: %v", userID, err)
	}
}
