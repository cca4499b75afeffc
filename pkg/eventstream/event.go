package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeFactsHarvested is emitted after a provider's facts are stored.
	EventTypeFactsHarvested = "cultura.facts.harvested"
)

// HarvestEvent is a transport-neutral event payload for one provider harvest.
type HarvestEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`
	ProviderID    string    `json:"provider_id"`
	Fetched       int       `json:"fetched"`
	Stored        int       `json:"stored"`
	Failed        int       `json:"failed"`
}

// NewHarvestEvent stamps a new event for providerID.
func NewHarvestEvent(providerID string, fetched, stored, failed int) *HarvestEvent {
	return &HarvestEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeFactsHarvested,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		ProviderID:    providerID,
		Fetched:       fetched,
		Stored:        stored,
		Failed:        failed,
	}
}
