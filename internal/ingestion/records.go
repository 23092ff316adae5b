package ingestion

import (
	"fmt"
	"time"

	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/jsonvalue"
)

// toRecords turns a normalized list into archive rows, one per element, keeping
// each element's position in the list.
func toRecords(key models.SyncKey, list []jsonvalue.Value, fetchedAt time.Time) ([]models.Record, error) {
	out := make([]models.Record, 0, len(list))
	for i, item := range list {
		payload, err := item.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode item %d: %w", i, err)
		}
		out = append(out, models.Record{
			Key:       key,
			Position:  i,
			Payload:   payload,
			FetchedAt: fetchedAt,
		})
	}
	return out, nil
}
