// Package normalize extracts the list of records from a marketplace API
// response whose shape is not fixed.
package normalize

import "github.com/guttosm/mpdash/internal/jsonvalue"

// candidatePaths are tried in order; the first one holding an array wins.
var candidatePaths = [][]string{
	{"data"},
	{"items"},
	{"rows"},
	{"orders"},
	{"sales"},
	{"incomes"},
	{"stocks"},
	{"data", "orders"},
	{"data", "sales"},
	{"data", "incomes"},
	{"data", "stocks"},
}

// ToList returns the "best" array of records found in data:
//
//  1. data itself when it is an array;
//  2. the first candidate path holding an array;
//  3. the first top-level member (in document order) holding an array;
//  4. an empty slice.
//
// It never fails and never returns nil.
func ToList(data jsonvalue.Value) []jsonvalue.Value {
	if items, ok := data.Items(); ok {
		return items
	}

	for _, path := range candidatePaths {
		if c, ok := data.Path(path...); ok {
			if items, ok := c.Items(); ok {
				return items
			}
		}
	}

	if members, ok := data.Members(); ok {
		for _, m := range members {
			if items, ok := m.Value.Items(); ok {
				return items
			}
		}
	}

	return []jsonvalue.Value{}
}
