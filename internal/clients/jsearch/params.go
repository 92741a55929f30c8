package jsearch

import (
	"fmt"
	"net/url"
	"strconv"
)

type DatePosted string

const (
	DatePostedAll    DatePosted = "all"
	DatePostedToday  DatePosted = "today"
	DatePosted3Days  DatePosted = "3days"
	DatePostedWeek   DatePosted = "week"
	DatePostedMonth  DatePosted = "month"
)

type SearchParameters struct {
	Query      string
	DatePosted DatePosted
	Page       int
	NumPages   int
}

func (s SearchParameters) Validate() error {

	if s.Query == "" {
		return fmt.Errorf("query must not be empty")
	}

	if s.Page < 1 {
		return fmt.Errorf("page must be positive")
	}

	if s.NumPages < 1 || s.NumPages > 20 {
		return fmt.Errorf("num pages must be between 1 and 20")
	}

	switch s.DatePosted {
	case "", DatePostedAll, DatePostedToday, DatePosted3Days, DatePostedWeek, DatePostedMonth:
	default:
		return fmt.Errorf("invalid date_posted value: %v", s.DatePosted)
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("query", s.Query)
	params.Add("page", strconv.Itoa(s.Page))
	params.Add("num_pages", strconv.Itoa(s.NumPages))

	if s.DatePosted != "" {
		params.Add("date_posted", string(s.DatePosted))
	}

	return params
}
