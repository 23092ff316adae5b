package dto

import (
	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/jsonvalue"
)

// ListResponse is returned by GET /api/v1/{resource}.
//
// List is the normalized record list; Raw is the upstream body as received and
// is omitted when the caller asks for raw=false.
type ListResponse struct {
	Resource models.Resource   `json:"resource" example:"orders"`
	Count    int               `json:"count" example:"2"`
	List     []jsonvalue.Value `json:"list" swaggertype:"array,object"`
	Raw      *jsonvalue.Value  `json:"raw,omitempty" swaggertype:"object"`
}

// NewListResponse builds a ListResponse from a fetch result.
func NewListResponse(r models.Resource, res *models.Result, withRaw bool) ListResponse {
	out := ListResponse{Resource: r, Count: len(res.List), List: res.List}
	if withRaw {
		raw := res.Raw
		out.Raw = &raw
	}
	return out
}
