package tests

import (
	"context"
	"sync"

	"github.com/jobgyani/job-alerts/internal/clients/jsearch"
	"github.com/jobgyani/job-alerts/internal/entities"
)

type mockOrigin struct {
	mu    sync.Mutex
	calls int
	jobs  []entities.JobRecord
	err   error
}

func (m *mockOrigin) Search(_ context.Context, _ jsearch.SearchParameters) ([]entities.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.jobs, nil
}

func (m *mockOrigin) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []string // recipients, in send order
}

func (m *mockNotifier) Send(_ context.Context, _ string, recipient string, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, recipient)
	return nil
}

func (m *mockNotifier) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.sent...)
}
