package models

import (
	"strings"
	"time"
)

const (
	DeadlineRolling = "Rolling"
	DeadlineLayout  = "2006-01-02"
)

// Listing is one internship posting.
type Listing struct {
	ID             int    `json:"id"`
	Company        string `json:"company"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	RequiredSkills string `json:"required_skills"`
	Location       string `json:"location"`
	Duration       string `json:"duration"`
	Stipend        string `json:"stipend"`
	// Deadline is a date or "Rolling"; anything unparseable is treated as rolling.
	Deadline  string `json:"deadline"`
	Industry  string `json:"industry"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (l Listing) IsRolling() bool {
	_, ok := l.DeadlineDate()
	return !ok
}

// DeadlineDate returns the parsed deadline, or false for a rolling listing.
func (l Listing) DeadlineDate() (time.Time, bool) {
	d := strings.TrimSpace(l.Deadline)
	if d == "" || strings.EqualFold(d, DeadlineRolling) {
		return time.Time{}, false
	}
	for _, layout := range []string{DeadlineLayout, time.RFC3339} {
		if t, err := time.Parse(layout, d); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsExpired reports whether the deadline fell on a day before now. A listing
// is still open on its deadline day and rolling listings never expire.
func (l Listing) IsExpired(now time.Time) bool {
	dl, ok := l.DeadlineDate()
	if !ok {
		return false
	}
	return calendarDay(dl).Before(calendarDay(now))
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ListingRow is a listing as the admin dashboard shows it.
type ListingRow struct {
	Listing
	Expired bool `json:"expired"`
}

func ListingRows(items []Listing, now time.Time) []ListingRow {
	rows := make([]ListingRow, len(items))
	for i, l := range items {
		rows[i] = ListingRow{Listing: l, Expired: l.IsExpired(now)}
	}
	return rows
}

// ListingsResponse is one page of the listing collection.
type ListingsResponse struct {
	Page               int       `json:"page"`
	PerPage            int       `json:"per_page"`
	TotalPages         int       `json:"total_pages"`
	Internships        []Listing `json:"internships"`
	TotalInternships   int       `json:"total_internships"`
	ActiveInternships  int       `json:"active_internships"`
	ExpiredInternships int       `json:"expired_internships"`
	Count              *int      `json:"count,omitempty"`
}

// TotalCount prefers the page-scoped count and falls back to the global total.
func (r ListingsResponse) TotalCount() int {
	if r.Count != nil {
		return *r.Count
	}
	return r.TotalInternships
}

func (r ListingsResponse) Stats() ListingStats {
	return ListingStats{
		Total:   r.TotalInternships,
		Active:  r.ActiveInternships,
		Expired: r.ExpiredInternships,
	}
}

// ListingStats are the collection-wide counters shown on the admin dashboard.
type ListingStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}

// ListingCreate is the payload for a new listing.
type ListingCreate struct {
	Company        string `json:"company"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	RequiredSkills string `json:"required_skills"`
	Location       string `json:"location"`
	Duration       string `json:"duration,omitempty"`
	Stipend        string `json:"stipend,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	Industry       string `json:"industry,omitempty"`
}

type DeleteExpiredResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}
