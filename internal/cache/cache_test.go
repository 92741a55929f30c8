package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	docs    map[string][]byte
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string][]byte{}}
}

func (s *fakeStore) Load(_ context.Context, id string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.docs[id], nil
}

func (s *fakeStore) Save(_ context.Context, id string, payload []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.docs[id] = payload
	return nil
}

var someJobs = []entities.JobRecord{
	{ID: "1", Title: "Go Developer", Employer: "Acme", ApplyLink: "https://example.com/1"},
	{ID: "2", Title: "Backend Engineer", Employer: "Globex", ApplyLink: "https://example.com/2"},
}

func Test_Memory_PutThenGet(t *testing.T) {

	memory := NewMemory(time.Hour)
	key := NewKey("go developer", 1, 1)

	_, found := memory.Get(key)
	assert.False(t, found)

	memory.Put(key, someJobs)

	jobs, found := memory.Get(key)
	assert.True(t, found)
	assert.Equal(t, someJobs, jobs)
}

func Test_Memory_ExpiredEntryIsAMiss(t *testing.T) {

	memory := NewMemory(time.Millisecond)
	key := NewKey("go developer", 1, 1)

	memory.Put(key, someJobs)
	time.Sleep(5 * time.Millisecond)

	_, found := memory.Get(key)
	assert.False(t, found)
}

func Test_Persistent_PutThenGet(t *testing.T) {

	store := newFakeStore()
	persistent := NewPersistent(store, time.Hour)
	key := NewKey("go developer", 1, 1)

	_, found := persistent.Get(context.Background(), key)
	assert.False(t, found)

	assert.NoError(t, persistent.Put(context.Background(), key, someJobs))

	jobs, found := persistent.Get(context.Background(), key)
	assert.True(t, found)
	assert.Equal(t, someJobs, jobs)
}

func Test_Persistent_ExpiredEntryIsAMiss(t *testing.T) {

	store := newFakeStore()
	key := NewKey("go developer", 1, 1)

	// A writer with a negative horizon produces an already-expired envelope,
	// which any reader must treat as absent.
	expiredWriter := NewPersistent(store, -time.Minute)
	assert.NoError(t, expiredWriter.Put(context.Background(), key, someJobs))

	reader := NewPersistent(store, time.Hour)
	_, found := reader.Get(context.Background(), key)
	assert.False(t, found)
}

func Test_Persistent_ReadFailureDegradesToMiss(t *testing.T) {

	store := newFakeStore()
	persistent := NewPersistent(store, time.Hour)
	key := NewKey("go developer", 1, 1)

	assert.NoError(t, persistent.Put(context.Background(), key, someJobs))

	store.loadErr = errors.New("store unreachable")
	_, found := persistent.Get(context.Background(), key)
	assert.False(t, found)
}

func Test_Persistent_CorruptEntryIsAMiss(t *testing.T) {

	store := newFakeStore()
	persistent := NewPersistent(store, time.Hour)
	key := NewKey("go developer", 1, 1)

	store.docs[key.ID] = []byte("{not json")

	_, found := persistent.Get(context.Background(), key)
	assert.False(t, found)
}

func Test_Persistent_WriteFailureIsReported(t *testing.T) {

	store := newFakeStore()
	store.saveErr = errors.New("store unreachable")
	persistent := NewPersistent(store, time.Hour)

	err := persistent.Put(context.Background(), NewKey("go developer", 1, 1), someJobs)
	assert.Error(t, err)
}
