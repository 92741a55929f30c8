package cache

import (
	"time"

	"github.com/jobgyani/job-alerts/internal/entities"
	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-process tier. It is private to one process, absorbs bursts
// of repeated queries within its short horizon and grows without a hard
// capacity bound; expired entries are detected lazily on read and simply
// overwritten by the next put.
type Memory struct {
	store *gocache.Cache
}

func NewMemory(horizon time.Duration) *Memory {
	return &Memory{store: gocache.New(horizon, 2*horizon)}
}

func (m *Memory) Get(key Key) ([]entities.JobRecord, bool) {
	cached, found := m.store.Get(key.ID)
	if !found {
		return nil, false
	}

	jobs, ok := cached.([]entities.JobRecord)
	if !ok {
		return nil, false
	}
	return jobs, true
}

func (m *Memory) Put(key Key, jobs []entities.JobRecord) {
	m.store.Set(key.ID, jobs, gocache.DefaultExpiration)
}
