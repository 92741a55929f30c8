package entities

import "time"

// UserAlertState holds the per-user bookkeeping behind the daily job digests.
// LastQueryText is a blind overwrite on every identified search, so there is
// no read-modify-write race between concurrent searches of the same user.
type UserAlertState struct {
	UserID             string `gorm:"primaryKey"`
	Email              string
	AlertsEnabled      bool
	LastQueryText      string
	LastQueryUpdatedAt time.Time
	LastDigestSentAt   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SearchHistoryEntry is append-only; entries are never updated or removed.
type SearchHistoryEntry struct {
	ID          int `gorm:"primaryKey"`
	UserID      string
	Query       string
	ResultCount int
	CreatedAt   time.Time
}
