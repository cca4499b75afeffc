// Package fact defines the fact record shared by storage, the harvesting
// pipeline and the output formatter.
package fact

import "time"

// Fact is a single harvested fact as persisted by a storage.Driver.
type Fact struct {
	// ID is an opaque identifier assigned on insert. It is never reused.
	ID string `json:"id"`

	// Text is the normalized fact content. It is unique across the store.
	Text string `json:"text"`

	// ProviderID names the source that produced the fact (e.g. "til").
	ProviderID string `json:"provider_id"`

	// Displayed is set once the fact has been handed to a reader.
	Displayed bool `json:"displayed"`

	// CreatedAt is the insertion time, used for most-recent-first selection.
	CreatedAt time.Time `json:"created_at"`
}

// State returns the lifecycle state of a stored fact.
// A nil fact has not been written yet.
func (f *Fact) State() State {
	switch {
	case f == nil:
		return StateUnwritten
	case f.Displayed:
		return StateRead
	default:
		return StateUnread
	}
}
