package dto

import "github.com/guttosm/mpdash/internal/domain/models"

// OverviewResponse is returned by GET /api/v1/overview.
type OverviewResponse struct {
	DateFrom string                  `json:"dateFrom" example:"2024-01-01"`
	DateTo   string                  `json:"dateTo,omitempty" example:"2024-01-31"`
	Counts   map[models.Resource]int `json:"counts"`
	Total    int                     `json:"total" example:"120"`
}

// NewOverviewResponse flattens an overview into its response shape.
func NewOverviewResponse(ov *models.Overview) OverviewResponse {
	out := OverviewResponse{
		DateFrom: ov.Filter.DateFrom,
		DateTo:   ov.Filter.DateTo,
		Counts:   ov.Counts,
	}
	for _, n := range ov.Counts {
		out.Total += n
	}
	return out
}
