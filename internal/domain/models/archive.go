package models

import (
	"fmt"
	"time"
)

// SyncKey identifies one archived page of a resource.
type SyncKey struct {
	Resource Resource
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}

// String joins the key fields; it names the page for locking and logs.
func (k SyncKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", k.Resource, k.DateFrom, k.DateTo, k.Page, k.Limit)
}

// KeyFor builds the sync key for fetching r with f.
func KeyFor(r Resource, f QueryFilter) SyncKey {
	f = f.For(r)
	return SyncKey{Resource: r, DateFrom: f.DateFrom, DateTo: f.DateTo, Page: f.Page, Limit: f.Limit}
}

// Record is one normalized list element persisted in the archive.
//
// Payload holds the element's JSON encoding; Position is its index in the
// fetched list.
type Record struct {
	Key       SyncKey
	Position  int
	Payload   []byte
	FetchedAt time.Time
}

// SyncEntry is one row of the sync log.
type SyncEntry struct {
	Resource Resource  `json:"resource" example:"orders"`
	DateFrom string    `json:"dateFrom" example:"2024-01-01"`
	DateTo   string    `json:"dateTo,omitempty" example:"2024-01-31"`
	Page     int       `json:"page" example:"1"`
	Limit    int       `json:"limit" example:"50"`
	RowCount int       `json:"rowCount" example:"50"`
	SyncedAt time.Time `json:"syncedAt"`
}

// SyncReport summarises the sync of one resource.
type SyncReport struct {
	Resource Resource `json:"resource" example:"orders"`
	Rows     int      `json:"rows" example:"50"`
	Skipped  bool     `json:"skipped"`
}
