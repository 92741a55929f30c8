package services

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobgyani/job-alerts/internal/clients/jsearch"
	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/jobgyani/job-alerts/internal/events"
	"github.com/jobgyani/job-alerts/internal/logger"
	"github.com/jobgyani/job-alerts/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// ErrUnauthorized means the digest trigger was called without the configured
// shared secret.
var ErrUnauthorized = errors.New("digest trigger unauthorized")

const digestTemplate = "job-digest"
const digestJobLimit = 5
const digestWindow = jsearch.DatePosted3Days

type alertStateRepository interface {
	AlertSubscribers(ctx context.Context) ([]entities.UserAlertState, error)
	StampDigestSent(ctx context.Context, userID string, sentAt time.Time) error
}

// Notifier is the outbound delivery boundary.
type Notifier interface {
	Send(ctx context.Context, template string, recipient string, payload any) error
}

// DigestSummary reports what one digest run did. A run always produces a
// summary, even when every single send failed.
type DigestSummary struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type digestPayload struct {
	Query string       `json:"query"`
	Jobs  []digestItem `json:"jobs"`
}

type digestItem struct {
	Title     string `json:"title"`
	Employer  string `json:"employer"`
	Location  string `json:"location,omitempty"`
	ApplyLink string `json:"apply_link"`
}

// DigestScheduler assembles the daily per-user job digests. Each run
// re-searches every subscriber's last query against the origin, bypassing the
// caches, because "posted in the last days" freshness matters more here than
// saving a provider call. The per-user watermark makes the run idempotent
// within one calendar day.
type DigestScheduler struct {
	users    alertStateRepository
	origin   originSearcher
	notifier Notifier
	bus      EventBus.Bus
	secret   string
	cron     *cron.Cron
}

func NewDigestScheduler(users alertStateRepository, origin originSearcher,
	notifier Notifier, bus EventBus.Bus, secret string) *DigestScheduler {

	return &DigestScheduler{
		users:    users,
		origin:   origin,
		notifier: notifier,
		bus:      bus,
		secret:   secret,
	}
}

// StartCron arranges in-process digest runs on the given cron spec, for
// deployments without an external scheduler.
func (d *DigestScheduler) StartCron(spec string) error {

	if d.cron != nil {
		return errors.New("cron already started")
	}

	d.cron = cron.New()
	_, err := d.cron.AddFunc(spec, func() {
		summary, err := d.Run(context.Background(), d.secret)
		if err != nil {
			log.Errorf("scheduled digest run failed: %v", err)
			return
		}
		log.Infof("scheduled digest run finished: sent %v, skipped %v, failed %v",
			summary.Sent, summary.Skipped, summary.Failed)
	})
	if err != nil {
		return err
	}

	d.cron.Start()
	log.Infof("digest cron started with spec %q", spec)
	return nil
}

func (d *DigestScheduler) StopCron() {
	if d.cron != nil {
		d.cron.Stop()
	}
}

// Run executes one digest pass over all alert subscribers. Only authorization
// and the subscriber enumeration itself can fail the run; anything that goes
// wrong for an individual user is counted and the loop moves on.
func (d *DigestScheduler) Run(ctx context.Context, secret string) (DigestSummary, error) {

	// An empty configured secret authorizes every caller. That permissive
	// default keeps ad-hoc scheduling simple and is a deliberate tradeoff.
	if d.secret != "" && subtle.ConstantTimeCompare([]byte(d.secret), []byte(secret)) != 1 {
		return DigestSummary{}, ErrUnauthorized
	}

	start := time.Now()
	log.Info("digest run started")

	users, err := d.users.AlertSubscribers(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to enumerate alert subscribers: %v", err)
		return DigestSummary{}, errors.Wrap(err, "enumerate alert subscribers")
	}

	var summary DigestSummary
	now := time.Now()

	for _, user := range users {
		switch d.processUser(ctx, user, now) {
		case digestSent:
			summary.Sent++
			metrics.DigestUsersCounter.WithLabelValues("sent").Inc()
		case digestSkipped:
			summary.Skipped++
			metrics.DigestUsersCounter.WithLabelValues("skipped").Inc()
		case digestFailed:
			summary.Failed++
			metrics.DigestUsersCounter.WithLabelValues("failed").Inc()
		}
	}

	duration := time.Since(start).Seconds()
	metrics.DigestRunDuration.Observe(duration)
	log.Infof("digest run finished in %.2fs: sent %v, skipped %v, failed %v",
		duration, summary.Sent, summary.Skipped, summary.Failed)

	if d.bus != nil {
		d.bus.Publish(events.DigestCompletedTopic, events.DigestCompleted{
			Sent:     summary.Sent,
			Skipped:  summary.Skipped,
			Failed:   summary.Failed,
			Duration: duration,
		})
	}

	return summary, nil
}

type digestOutcome int

const (
	digestSent digestOutcome = iota
	digestSkipped
	digestFailed
)

func (d *DigestScheduler) processUser(ctx context.Context, user entities.UserAlertState, now time.Time) digestOutcome {

	if user.Email == "" || user.LastQueryText == "" {
		return digestSkipped
	}
	if user.LastDigestSentAt != nil && sameCalendarDay(*user.LastDigestSentAt, now) {
		return digestSkipped
	}

	jobs, err := d.origin.Search(ctx, jsearch.SearchParameters{
		Query:      user.LastQueryText,
		Page:       1,
		NumPages:   1,
		DatePosted: digestWindow,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeOriginApi).
			Errorf("digest fetch failed for user %v: %v", user.UserID, err)
		return digestFailed
	}

	payload := digestPayload{
		Query: user.LastQueryText,
		Jobs: lo.Map(lo.Slice(jobs, 0, digestJobLimit), func(job entities.JobRecord, _ int) digestItem {
			return digestItem{
				Title:     job.Title,
				Employer:  job.Employer,
				Location:  jobLocation(job),
				ApplyLink: job.ApplyLink,
			}
		}),
	}

	if err := d.notifier.Send(ctx, digestTemplate, user.Email, payload); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailer).
			Errorf("digest delivery failed for user %v: %v", user.UserID, err)
		return digestFailed
	}

	if err := d.users.StampDigestSent(ctx, user.UserID, now); err != nil {
		// The mail is already out; a lost watermark only risks one duplicate
		// tomorrow, so this still counts as sent.
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to stamp digest watermark for user %v: %v", user.UserID, err)
	}

	return digestSent
}

// sameCalendarDay compares UTC dates: exact-day dedup, not a rolling window.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func jobLocation(job entities.JobRecord) string {
	if job.City == "" {
		return job.Country
	}
	if job.Country == "" {
		return job.City
	}
	return job.City + ", " + job.Country
}
