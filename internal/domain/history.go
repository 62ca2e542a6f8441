package domain

import "time"

const (
	// DefaultHistoryLimit is used when the caller supplies no usable limit.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit caps a single history page.
	MaxHistoryLimit = 200
	// StatusFilterAll disables status filtering.
	StatusFilterAll = "all"
)

// HistoryFilter is the declarative description of a history query.
// The repo turns each non-zero field into one bound predicate; predicates
// are combined with AND.
type HistoryFilter struct {
	// Status restricts results to one status. Empty means no restriction.
	Status Status
	// Search is matched case-insensitively as a substring of name,
	// company, or host name.
	Search string
	// Since, when set, keeps only visits checked in at or after it.
	Since *time.Time
	// Today asks the service to set Since to the start of the current day
	// in the configured time zone.
	Today bool
	// Limit is the maximum number of records to return.
	Limit int
	// Offset is the number of matching records to skip.
	Offset int
}

// NewHistoryFilter builds a HistoryFilter from optional caller input.
// Nil or out-of-range limit/offset values fall back to defaults and limit is
// capped at MaxHistoryLimit. status is left raw here; the service validates it.
func NewHistoryFilter(limit, offset *int, status, search string) HistoryFilter {
	f := HistoryFilter{Limit: DefaultHistoryLimit, Search: search}
	if limit != nil && *limit >= 1 {
		f.Limit = min(*limit, MaxHistoryLimit)
	}
	if offset != nil && *offset > 0 {
		f.Offset = *offset
	}
	if status != "" && status != StatusFilterAll {
		f.Status = Status(status)
	}
	return f
}

// HistoryPage is one page of history results plus pagination metadata.
// Total counts every matching record regardless of Limit and Offset.
type HistoryPage struct {
	Records []Visit `json:"data"`
	Total   int64   `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}
