package tests

import (
	"context"
	"testing"
	"time"

	"github.com/jobgyani/job-alerts/internal/cache"
	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/jobgyani/job-alerts/internal/repositories"
	"github.com/jobgyani/job-alerts/internal/services"
	"github.com/stretchr/testify/assert"
)

var providerJobs = []entities.JobRecord{
	{ID: "1", Title: "Python Developer", Employer: "Acme", ApplyLink: "https://example.com/1"},
	{ID: "2", Title: "Python Engineer", Employer: "Globex", ApplyLink: "https://example.com/2"},
}

func clearDb() {
	dbCtx.DB.Exec("DELETE from search_history_entries WHERE TRUE")
	dbCtx.DB.Exec("DELETE from user_alert_states WHERE TRUE")
	dbCtx.DB.Exec("DELETE from stored_documents WHERE TRUE")
}

func newStack(origin *mockOrigin) *services.SearchOrchestrator {

	users := repositories.NewUsersRepository(dbCtx.DB)
	history := repositories.NewHistoryRepository(dbCtx.DB)
	documents := repositories.NewDocumentsRepository(dbCtx.DB)

	memory := cache.NewMemory(time.Hour)
	persistent := cache.NewPersistent(documents, 7*24*time.Hour)
	writer := services.NewHistoryWriter(history, users)

	return services.NewSearchOrchestrator(memory, persistent, origin, writer, nil)
}

func Test_SearchFlow_OriginThenMemoryThenPersistent(t *testing.T) {

	defer clearDb()

	origin := &mockOrigin{jobs: providerJobs}
	orchestrator := newStack(origin)

	jobs, source, err := orchestrator.Search(context.Background(), "Python Developer", 1, 1, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, services.SourceOrigin, source)
	assert.Equal(t, providerJobs, jobs)

	jobs, source, err = orchestrator.Search(context.Background(), "python developer", 1, 1, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, services.SourceMemory, source)
	assert.Equal(t, providerJobs, jobs)
	assert.Equal(t, 1, origin.callCount())

	// A fresh orchestrator simulates another process: its memory tier is
	// empty but the shared persistent tier still carries the entry.
	restarted := newStack(origin)
	jobs, source, err = restarted.Search(context.Background(), "python developer", 1, 1, "")
	assert.NoError(t, err)
	assert.Equal(t, services.SourcePersistent, source)
	assert.Equal(t, providerJobs, jobs)
	assert.Equal(t, 1, origin.callCount())
}

func Test_SearchFlow_RecordsHistoryAndLastQuery(t *testing.T) {

	defer clearDb()

	origin := &mockOrigin{jobs: providerJobs}
	orchestrator := newStack(origin)

	_, _, err := orchestrator.Search(context.Background(), "React Developer", 1, 1, "user-7")
	assert.NoError(t, err)

	history := repositories.NewHistoryRepository(dbCtx.DB)
	entries, err := history.GetByUser(context.Background(), "user-7", 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "react developer", entries[0].Query)
	assert.Equal(t, len(providerJobs), entries[0].ResultCount)

	users := repositories.NewUsersRepository(dbCtx.DB)
	user, err := users.GetByID(context.Background(), "user-7")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "react developer", user.LastQueryText)
}

func Test_DigestFlow_SearchThenDigestThenSameDayDedup(t *testing.T) {

	defer clearDb()

	users := repositories.NewUsersRepository(dbCtx.DB)
	assert.NoError(t, users.Upsert(context.Background(), entities.UserAlertState{
		UserID:        "user-9",
		Email:         "nine@example.com",
		AlertsEnabled: true,
	}))

	origin := &mockOrigin{jobs: providerJobs}
	orchestrator := newStack(origin)

	_, _, err := orchestrator.Search(context.Background(), "react developer", 1, 1, "user-9")
	assert.NoError(t, err)

	notifier := &mockNotifier{}
	digest := services.NewDigestScheduler(users, origin, notifier, nil, "")

	summary, err := digest.Run(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, services.DigestSummary{Sent: 1}, summary)
	assert.Equal(t, []string{"nine@example.com"}, notifier.recipients())

	user, err := users.GetByID(context.Background(), "user-9")
	assert.NoError(t, err)
	assert.NotNil(t, user.LastDigestSentAt)

	summary, err = digest.Run(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, services.DigestSummary{Skipped: 1}, summary)
	assert.Equal(t, []string{"nine@example.com"}, notifier.recipients(), "no duplicate send on the same day")
}
