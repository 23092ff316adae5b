package models

import (
	"fmt"
	"strings"
)

// Resource is one of the marketplace data kinds shown by the dashboard.
type Resource string

const (
	Orders  Resource = "orders"
	Sales   Resource = "sales"
	Incomes Resource = "incomes"
	Stocks  Resource = "stocks"
)

// AllResources lists every resource in dashboard order.
var AllResources = []Resource{Orders, Sales, Incomes, Stocks}

// Path returns the upstream endpoint path, e.g. "/orders".
func (r Resource) Path() string { return "/" + string(r) }

// AcceptsDateTo reports whether the upstream endpoint takes a dateTo
// parameter. Stocks are a same-day snapshot and only accept dateFrom.
func (r Resource) AcceptsDateTo() bool { return r != Stocks }

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	for _, known := range AllResources {
		if r == known {
			return true
		}
	}
	return false
}

// ParseResource converts a case-insensitive name into a Resource.
func ParseResource(s string) (Resource, error) {
	r := Resource(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown resource %q", s)
	}
	return r, nil
}

// ParseResources parses a comma-separated list. An empty string selects all
// resources; duplicates are dropped.
func ParseResources(s string) ([]Resource, error) {
	if strings.TrimSpace(s) == "" {
		return append([]Resource(nil), AllResources...), nil
	}
	seen := make(map[Resource]bool)
	var out []Resource
	for _, part := range strings.Split(s, ",") {
		r, err := ParseResource(part)
		if err != nil {
			return nil, err
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out, nil
}
