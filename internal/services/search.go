package services

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobgyani/job-alerts/internal/cache"
	"github.com/jobgyani/job-alerts/internal/clients/jsearch"
	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/jobgyani/job-alerts/internal/events"
	"github.com/jobgyani/job-alerts/internal/logger"
	"github.com/jobgyani/job-alerts/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// Source tells the caller which tier produced a search result.
type Source string

const (
	SourceMemory     Source = "memory"
	SourcePersistent Source = "persistent"
	SourceOrigin     Source = "origin"
)

type originSearcher interface {
	Search(ctx context.Context, parameters jsearch.SearchParameters) ([]entities.JobRecord, error)
}

// SearchOrchestrator coordinates one search request across the cache tiers
// and the origin provider. The tiers are independent: no lock serializes
// access to a key, so concurrent identical misses may each reach the origin.
// That stampede is accepted; every write is a full-entry overwrite and every
// reader applies the same staleness rule, so last-writer-wins is safe.
type SearchOrchestrator struct {
	memory     *cache.Memory
	persistent *cache.Persistent
	origin     originSearcher
	history    *HistoryWriter
	bus        EventBus.Bus
}

func NewSearchOrchestrator(memory *cache.Memory, persistent *cache.Persistent,
	origin originSearcher, history *HistoryWriter, bus EventBus.Bus) *SearchOrchestrator {

	return &SearchOrchestrator{
		memory:     memory,
		persistent: persistent,
		origin:     origin,
		history:    history,
		bus:        bus,
	}
}

// Search resolves one query through memory, then the persistent store, then
// the origin. Origin failure is the only fatal outcome; cache trouble on
// either tier degrades to a miss. When userID is set, the history writes run
// concurrently with each other but are gathered before Search returns, so a
// response never leaves orphaned bookkeeping behind.
func (s *SearchOrchestrator) Search(ctx context.Context, rawQuery string, page, pageCount int,
	userID string) ([]entities.JobRecord, Source, error) {

	start := time.Now()
	key := cache.NewKey(rawQuery, page, pageCount)

	if jobs, found := s.memory.Get(key); found {
		metrics.CacheLookups.WithLabelValues("memory", "hit").Inc()
		log.Debugf("memory hit for %v", key.ID)
		s.finish(ctx, key, userID, jobs, SourceMemory, start)
		return jobs, SourceMemory, nil
	}
	metrics.CacheLookups.WithLabelValues("memory", "miss").Inc()

	if jobs, found := s.persistent.Get(ctx, key); found {
		metrics.CacheLookups.WithLabelValues("persistent", "hit").Inc()
		log.Debugf("persistent hit for %v", key.ID)
		s.memory.Put(key, jobs)
		s.finish(ctx, key, userID, jobs, SourcePersistent, start)
		return jobs, SourcePersistent, nil
	}
	metrics.CacheLookups.WithLabelValues("persistent", "miss").Inc()

	// The origin gets the raw query: its own relevance engine is better at
	// interpreting the user's casing and spacing than our normalizer.
	metrics.OriginRequestsCounter.Inc()
	jobs, err := s.origin.Search(ctx, jsearch.SearchParameters{
		Query:    rawQuery,
		Page:     key.Page,
		NumPages: key.PageCount,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeOriginApi).
			Errorf("origin fetch failed for %v: %v", key.ID, err)
		return nil, "", err
	}

	s.memory.Put(key, jobs)
	if err := s.persistent.Put(ctx, key, jobs); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Errorf("persistent cache write failed for %v: %v", key.ID, err)
	}

	s.finish(ctx, key, userID, jobs, SourceOrigin, start)
	return jobs, SourceOrigin, nil
}

// finish runs the per-request bookkeeping: gathered history writes for an
// identified user and the observability event.
func (s *SearchOrchestrator) finish(ctx context.Context, key cache.Key, userID string,
	jobs []entities.JobRecord, source Source, start time.Time) {

	if userID != "" {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.history.Record(ctx, userID, key.Query, len(jobs))
		}()
		go func() {
			defer wg.Done()
			s.history.UpdateLastQuery(ctx, userID, key.Query)
		}()
		wg.Wait()
	}

	duration := time.Since(start).Seconds()
	metrics.SearchDuration.WithLabelValues(string(source)).Observe(duration)

	if s.bus != nil {
		s.bus.Publish(events.SearchPerformedTopic, events.SearchPerformed{
			Query:       key.Query,
			Source:      string(source),
			ResultCount: len(jobs),
			Duration:    duration,
		})
	}
}
