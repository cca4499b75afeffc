package facts_test

import (
	"context"
	"sync"

	"github.com/papercomputeco/cultura/pkg/eventstream"
	"github.com/papercomputeco/cultura/pkg/fact"
	"github.com/papercomputeco/cultura/pkg/storage"
	"github.com/papercomputeco/cultura/pkg/storage/inmemory"
)

// faultyDriver wraps an in-memory driver and injects failures.
type faultyDriver struct {
	*inmemory.Driver

	insertErr     error
	nextUnreadErr error
	markErr       error
}

func (d *faultyDriver) Insert(ctx context.Context, providerID string, texts []string) []error {
	if d.insertErr != nil {
		return storage.Errs(len(texts), storage.Wrap("insert", d.insertErr))
	}
	return d.Driver.Insert(ctx, providerID, texts)
}

func (d *faultyDriver) NextUnread(ctx context.Context) (*fact.Fact, error) {
	if d.nextUnreadErr != nil {
		return nil, storage.Wrap("next unread", d.nextUnreadErr)
	}
	return d.Driver.NextUnread(ctx)
}

func (d *faultyDriver) MarkAsRead(ctx context.Context, id string) error {
	if d.markErr != nil {
		return storage.Wrap("mark as read", d.markErr)
	}
	return d.Driver.MarkAsRead(ctx, id)
}

type failingProvider struct {
	id  string
	err error
}

func (f failingProvider) ID() string { return f.id }

func (f failingProvider) Facts(context.Context) ([]string, error) { return nil, f.err }

type recordingPublisher struct {
	mu     sync.Mutex
	events []*eventstream.HarvestEvent
	err    error
}

func (p *recordingPublisher) PublishHarvest(_ context.Context, e *eventstream.HarvestEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) providers() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.ProviderID)
	}
	return out
}
