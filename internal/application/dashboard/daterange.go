package dashboard

import (
	"net/url"
	"time"
)

// dateLayout is the calendar-date format accepted on the query string
const dateLayout = "2006-01-02"

// DateRange is an optional pair of calendar dates bounding a query. Either
// side may be empty.
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// QueryParams renders the range as created_at bounds for resource fetches:
// start of day UTC for the lower bound, end of day UTC for the upper bound.
// Absent bounds are omitted.
func (r DateRange) QueryParams() url.Values {
	params := url.Values{}
	if r.Start != "" {
		params.Set("created_at_min", r.Start+"T00:00:00-00:00")
	}
	if r.End != "" {
		params.Set("created_at_max", r.End+"T23:59:59-00:00")
	}
	return params
}

// ReportParams renders the range as the plain date bounds the analytics
// report endpoints take
func (r DateRange) ReportParams() url.Values {
	params := url.Values{}
	if r.Start != "" {
		params.Set("date_min", r.Start)
	}
	if r.End != "" {
		params.Set("date_max", r.End)
	}
	return params
}

// Contains reports whether a record timestamp falls inside the range.
// The timestamp must parse as RFC 3339; records without a parseable
// timestamp are excluded. Comparison is by UTC calendar date, both
// bounds inclusive.
func (r DateRange) Contains(created string) bool {
	if created == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return false
	}
	day := t.UTC().Truncate(24 * time.Hour)
	if r.Start != "" {
		if start, err := time.Parse(dateLayout, r.Start); err == nil && day.Before(start) {
			return false
		}
	}
	if r.End != "" {
		if end, err := time.Parse(dateLayout, r.End); err == nil && day.After(end) {
			return false
		}
	}
	return true
}
