package entities

import "time"

// StoredDocument is a document-style row keyed by a caller-provided id with
// an arbitrary JSON payload. The persistent cache tier lives here when the
// sqlite backend is selected.
type StoredDocument struct {
	ID        string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}
