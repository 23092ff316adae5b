package models

import (
	"errors"
	"time"
)

const (
	DefaultLimit = 50
	DefaultPage  = 1

	// DateLayout is the upstream date format.
	DateLayout = "2006-01-02"
)

// ErrDateFromRequired reports a missing DateFrom for a dated resource.
var ErrDateFromRequired = errors.New("dateFrom is required")

// QueryFilter carries the caller-supplied date and paging constraints of a
// fetch. Zero values mean "not supplied": empty dates are not sent and a zero
// Limit or Page takes the default. Nothing else is validated.
type QueryFilter struct {
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Page     int    `json:"page,omitempty"`
}

// WithDefaults returns a copy with Limit and Page defaulted.
func (f QueryFilter) WithDefaults() QueryFilter {
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	return f
}

// For returns the filter as the given resource sees it: defaults applied and
// DateTo cleared for resources that do not accept it.
func (f QueryFilter) For(r Resource) QueryFilter {
	f = f.WithDefaults()
	if !r.AcceptsDateTo() {
		f.DateTo = ""
	}
	return f
}

// ResolveDateFrom fills an empty DateFrom with today's UTC date when every
// resource in rs is a snapshot (stocks). Any dated resource, or an empty rs,
// makes a missing DateFrom an error.
func (f QueryFilter) ResolveDateFrom(rs []Resource, now time.Time) (QueryFilter, error) {
	if f.DateFrom != "" {
		return f, nil
	}
	if len(rs) == 0 {
		return f, ErrDateFromRequired
	}
	for _, r := range rs {
		if r.AcceptsDateTo() {
			return f, ErrDateFromRequired
		}
	}
	f.DateFrom = now.UTC().Format(DateLayout)
	return f, nil
}
