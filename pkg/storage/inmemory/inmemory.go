// Package inmemory provides a map-backed fact storage driver for tests and
// ephemeral runs.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/papercomputeco/cultura/pkg/fact"
	"github.com/papercomputeco/cultura/pkg/storage"
)

type record struct {
	fact fact.Fact
	seq  int64
}

// Driver implements storage.Driver using in-memory maps.
type Driver struct {
	// mu is a read write sync mutex for locking the fact maps
	mu sync.RWMutex

	// byID holds every stored fact keyed by its id
	byID map[string]*record

	// byText indexes facts by their text for deduplication
	byText map[string]*record

	seq int64
	now func() time.Time
}

// NewDriver creates a new in-memory fact store.
func NewDriver() *Driver {
	return &Driver{
		byID:   make(map[string]*record),
		byText: make(map[string]*record),
		now:    time.Now,
	}
}

// Insert implements storage.Driver.
func (d *Driver) Insert(_ context.Context, providerID string, texts []string) []error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(texts) == 0 {
		return nil
	}

	errs := make([]error, len(texts))
	for i, text := range texts {
		if err := storage.ValidText(text); err != nil {
			errs[i] = err
			continue
		}

		// Idempotent insert - deduplication by text
		if _, ok := d.byText[text]; ok {
			continue
		}

		d.seq++
		r := &record{
			seq: d.seq,
			fact: fact.Fact{
				ID:         storage.NewID(),
				Text:       text,
				ProviderID: providerID,
				CreatedAt:  d.now().UTC(),
			},
		}
		d.byID[r.fact.ID] = r
		d.byText[text] = r
	}

	return errs
}

// NextUnread implements storage.Driver.
func (d *Driver) NextUnread(_ context.Context) (*fact.Fact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var best *record
	for _, r := range d.byID {
		if r.fact.Displayed {
			continue
		}
		if best == nil || newer(r, best) {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}

	f := best.fact
	return &f, nil
}

// MarkAsRead implements storage.Driver.
func (d *Driver) MarkAsRead(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if r, ok := d.byID[id]; ok {
		r.fact.Displayed = true
	}
	return nil
}

// List implements storage.Driver.
func (d *Driver) List(_ context.Context, opts storage.ListOptions) ([]*fact.Fact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	records := make([]*record, 0, len(d.byID))
	for _, r := range d.byID {
		if opts.UnreadOnly && r.fact.Displayed {
			continue
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return newer(records[i], records[j])
	})

	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	facts := make([]*fact.Fact, 0, len(records))
	for _, r := range records {
		f := r.fact
		facts = append(facts, &f)
	}
	return facts, nil
}

// Stats implements storage.Driver.
func (d *Driver) Stats(_ context.Context) (*storage.Stats, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := storage.NewStats()
	for _, r := range d.byID {
		stats.Add(r.fact.ProviderID, r.fact.Displayed, 1)
	}
	return stats, nil
}

// Reset implements storage.Driver.
func (d *Driver) Reset(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.byID = make(map[string]*record)
	d.byText = make(map[string]*record)
	return nil
}

// Close implements storage.Driver.
func (d *Driver) Close() error {
	return nil
}

func newer(a, b *record) bool {
	if !a.fact.CreatedAt.Equal(b.fact.CreatedAt) {
		return a.fact.CreatedAt.After(b.fact.CreatedAt)
	}
	return a.seq > b.seq
}
