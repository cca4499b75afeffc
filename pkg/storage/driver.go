// Package storage defines the durable fact store used by the harvesting
// pipeline and the fact printer.
package storage

import (
	"context"

	"github.com/papercomputeco/cultura/pkg/fact"
)

// Driver defines the interface for persisting and selecting facts in a
// storage backend. Implementations must serialize writes within a process.
type Driver interface {
	// Insert stores each text as a new unread fact attributed to providerID.
	// The returned slice has one entry per input text: nil on success or when
	// the text is already stored (duplicates are a no-op, not an error).
	// A failing item never aborts the rest of the batch.
	Insert(ctx context.Context, providerID string, texts []string) []error

	// NextUnread returns the most recently inserted fact that has not been
	// displayed, or nil when every fact has been read. It does not mark the
	// fact as read.
	NextUnread(ctx context.Context) (*fact.Fact, error)

	// MarkAsRead flags the fact as displayed. Marking an already read or an
	// unknown id is a no-op.
	MarkAsRead(ctx context.Context, id string) error

	// List returns stored facts, most recent first.
	List(ctx context.Context, opts ListOptions) ([]*fact.Fact, error)

	// Stats returns counters over the whole store.
	Stats(ctx context.Context) (*Stats, error)

	// Reset deletes every fact.
	Reset(ctx context.Context) error

	// Close closes the store and releases any resources.
	Close() error
}

// ListOptions filters List results.
type ListOptions struct {
	// UnreadOnly restricts the listing to facts not yet displayed.
	UnreadOnly bool

	// Limit caps the number of facts returned. Zero means no limit.
	Limit int
}

// Stats summarizes the content of a store.
type Stats struct {
	Total      int            `json:"total"`
	Unread     int            `json:"unread"`
	Read       int            `json:"read"`
	ByProvider map[string]int `json:"by_provider"`
}

// NewStats returns zeroed Stats with an allocated provider map.
func NewStats() *Stats {
	return &Stats{ByProvider: map[string]int{}}
}

// Add records count facts for a provider in the given displayed state.
func (s *Stats) Add(providerID string, displayed bool, count int) {
	s.Total += count
	if displayed {
		s.Read += count
	} else {
		s.Unread += count
	}
	s.ByProvider[providerID] += count
}
