package services

import (
	"context"
	"sync"
	"time"

	"github.com/jobgyani/job-alerts/internal/clients/jsearch"
	"github.com/jobgyani/job-alerts/internal/entities"
)

type fakeOrigin struct {
	mu         sync.Mutex
	calls      int
	lastParams jsearch.SearchParameters
	jobs       []entities.JobRecord
	err        error
}

func (f *fakeOrigin) Search(_ context.Context, params jsearch.SearchParameters) ([]entities.JobRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

type fakeDocumentStore struct {
	mu      sync.Mutex
	docs    map[string][]byte
	loadErr error
	saveErr error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: map[string][]byte{}}
}

func (s *fakeDocumentStore) Load(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.docs[id], nil
}

func (s *fakeDocumentStore) Save(_ context.Context, id string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.docs[id] = payload
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []entities.SearchHistoryEntry
	err     error
}

func (f *fakeHistoryRepo) Append(_ context.Context, entry entities.SearchHistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeUsersRepo struct {
	mu          sync.Mutex
	users       []entities.UserAlertState
	lastQueries map[string]string
	stamped     map[string]time.Time
	listErr     error
}

func newFakeUsersRepo(users ...entities.UserAlertState) *fakeUsersRepo {
	return &fakeUsersRepo{
		users:       users,
		lastQueries: map[string]string{},
		stamped:     map[string]time.Time{},
	}
}

func (f *fakeUsersRepo) UpdateLastQuery(_ context.Context, userID string, query string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQueries[userID] = query
	return nil
}

func (f *fakeUsersRepo) AlertSubscribers(_ context.Context) ([]entities.UserAlertState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var subscribers []entities.UserAlertState
	for _, user := range f.users {
		if user.AlertsEnabled {
			subscribers = append(subscribers, user)
		}
	}
	return subscribers, nil
}

func (f *fakeUsersRepo) StampDigestSent(_ context.Context, userID string, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stamped[userID] = sentAt
	for i := range f.users {
		if f.users[i].UserID == userID {
			stamp := sentAt
			f.users[i].LastDigestSentAt = &stamp
		}
	}
	return nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	sent       []sentMessage
	failFor    map[string]error
}

type sentMessage struct {
	template  string
	recipient string
	payload   any
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: map[string]error{}}
}

func (f *fakeNotifier) Send(_ context.Context, template string, recipient string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[recipient]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{template: template, recipient: recipient, payload: payload})
	return nil
}
