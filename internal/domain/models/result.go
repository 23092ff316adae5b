package models

import "github.com/guttosm/mpdash/internal/jsonvalue"

// Result is the outcome of one fetch: the decoded body as received and the
// list of records extracted from it. List is never nil.
type Result struct {
	Raw  jsonvalue.Value   `json:"raw"`
	List []jsonvalue.Value `json:"list"`
}

// Overview holds the per-resource record counts of one dashboard refresh.
type Overview struct {
	Filter QueryFilter      `json:"filter"`
	Counts map[Resource]int `json:"counts"`
}
