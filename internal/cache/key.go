package cache

import (
	"fmt"
	"strings"
)

// Key identifies one page of results for a normalized query. Two raw queries
// that normalize to the same text with the same paging always map to the same
// Key, so cache lookups are deterministic across processes.
type Key struct {
	ID        string // storage-safe identifier, [a-z0-9-] only
	Query     string // normalized query text
	Page      int
	PageCount int
}

// NewKey normalizes a raw query and paging values into a Key. Page and
// pageCount default to 1 and are floored at 1; normalization never fails.
func NewKey(rawQuery string, page, pageCount int) Key {
	if page < 1 {
		page = 1
	}
	if pageCount < 1 {
		pageCount = 1
	}

	query := strings.ToLower(strings.TrimSpace(rawQuery))

	return Key{
		ID:        sanitizeID(fmt.Sprintf("%s::p%d::n%d", query, page, pageCount)),
		Query:     query,
		Page:      page,
		PageCount: pageCount,
	}
}

func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, s)
}
