package entities

import "time"

// JobRecord is the payload returned by the origin provider. The cache layers
// store and return it as-is and never inspect individual fields.
type JobRecord struct {
	ID             string     `json:"job_id"`
	Title          string     `json:"job_title"`
	Employer       string     `json:"employer_name"`
	City           string     `json:"job_city,omitempty"`
	Country        string     `json:"job_country,omitempty"`
	EmploymentType string     `json:"job_employment_type,omitempty"`
	ApplyLink      string     `json:"job_apply_link"`
	Description    string     `json:"job_description,omitempty"`
	PostedAt       *time.Time `json:"job_posted_at_datetime_utc,omitempty"`
}
