package indicator

import (
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// Indicator is a named derived metric. The name is the upsert key:
// writing a value for an existing name replaces the value and refreshes
// the last-updated timestamp instead of adding a row.
type Indicator struct {
	ID          types.ID  `json:"id"`
	Name        string    `json:"indicator_name"`
	Value       float64   `json:"indicator_value"`
	LastUpdated time.Time `json:"last_updated"`
}

// UpsertIndicatorRequest is the request to write an indicator value
type UpsertIndicatorRequest struct {
	Value float64 `json:"indicator_value"`
}
