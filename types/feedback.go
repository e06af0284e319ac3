package types

import (
	"strings"
	"time"
)

// Feedback is a stored feedback record. JSON field names follow the wire
// format consumed by the existing front end (camelCase).
type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedbackCreate is the request body for submitting feedback. IP and
// user-agent are never part of the payload; they are derived from the request.
type FeedbackCreate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// RequestMeta carries the server-derived fields attached to a submission.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// FeedbackUpdate is a partial update. Nil fields are left untouched.
type FeedbackUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Message *string `json:"message"`
}

// IsEmpty reports whether the update carries no recognized field.
func (u *FeedbackUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Message == nil
}

// FeedbackFilter narrows a listing query. All fields are optional; a zero
// filter matches every record.
type FeedbackFilter struct {
	// Search matches when name, email or message contains it as a
	// case-insensitive substring.
	Search string
	// DateFrom and DateTo are inclusive bounds on CreatedAt.
	DateFrom *time.Time
	DateTo   *time.Time
}

// Matches evaluates the filter against a record. The non-SQL backends use it
// directly; it is also the reference predicate the tests check the SQL
// backend against.
func (f *FeedbackFilter) Matches(fb *Feedback) bool {
	if f.Search != "" && !containsFold(fb.Name, f.Search) &&
		!containsFold(fb.Email, f.Search) && !containsFold(fb.Message, f.Search) {
		return false
	}
	if f.DateFrom != nil && fb.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && fb.CreatedAt.After(*f.DateTo) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Pagination is a validated page/limit pair.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of records to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit), or 0 when total is 0.
func (p Pagination) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// ListFeedbackQuery holds the raw, unvalidated listing parameters as they
// arrive on the query string.
type ListFeedbackQuery struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Search   string `form:"search"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// FeedbackPage is the shaped result of a listing query.
type FeedbackPage struct {
	Items      []*Feedback `json:"items"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}
