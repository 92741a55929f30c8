package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/jobgyani/job-alerts/internal/logger"
	log "github.com/sirupsen/logrus"
)

// DocumentStore is the contract the persistent tier needs from a durable
// store: get-by-id and set-by-id with an opaque payload. Load returns
// (nil, nil) when the document does not exist.
type DocumentStore interface {
	Load(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, payload []byte) error
}

// envelope is what actually lands in the store. ExpiresAt is persisted so a
// reader in a different process applies the same staleness rule as the
// writer, instead of re-deriving it from local clocks and configuration.
type envelope struct {
	Query     string               `json:"query"`
	Page      int                  `json:"page"`
	PageCount int                  `json:"page_count"`
	Jobs      []entities.JobRecord `json:"jobs"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Persistent is the durable tier shared by all processes. Store failures are
// never fatal: a failed read degrades to a miss, a failed write is logged and
// dropped, and the caller moves on to the next tier either way.
type Persistent struct {
	store   DocumentStore
	horizon time.Duration
}

func NewPersistent(store DocumentStore, horizon time.Duration) *Persistent {
	return &Persistent{store: store, horizon: horizon}
}

func (p *Persistent) Get(ctx context.Context, key Key) ([]entities.JobRecord, bool) {
	payload, err := p.store.Load(ctx, key.ID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Errorf("persistent cache read failed for %v: %v", key.ID, err)
		return nil, false
	}
	if payload == nil {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Errorf("persistent cache entry %v is unreadable: %v", key.ID, err)
		return nil, false
	}

	if time.Now().After(env.ExpiresAt) {
		return nil, false
	}
	return env.Jobs, true
}

func (p *Persistent) Put(ctx context.Context, key Key, jobs []entities.JobRecord) error {
	now := time.Now()
	payload, err := json.Marshal(envelope{
		Query:     key.Query,
		Page:      key.Page,
		PageCount: key.PageCount,
		Jobs:      jobs,
		CreatedAt: now,
		ExpiresAt: now.Add(p.horizon),
	})
	if err != nil {
		return err
	}

	return p.store.Save(ctx, key.ID, payload)
}
