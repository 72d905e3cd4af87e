package job

import (
	"strings"
	"time"
)

// Posting is a job listing as returned to clients.
type Posting struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Salary       string   `json:"salary"`
	Type         string   `json:"type"`
	Remote       bool     `json:"remote"`
	PostedDate   string   `json:"posted_date"`
	ApplyURL     string   `json:"apply_url"`
}

// PostedAt parses PostedDate, accepting both RFC3339 timestamps and bare dates.
func (p Posting) PostedAt() (time.Time, bool) {
	raw := strings.TrimSpace(p.PostedDate)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type Recommendation struct {
	Posting
	MatchScore    int      `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
}

// SearchResult is one page of postings. Fallback marks the static list
// served in place of the job API; it is never serialized.
type SearchResult struct {
	Jobs  []Posting `json:"jobs"`
	Page  int       `json:"page"`
	Total int       `json:"total"`

	Fallback bool `json:"-"`
}
