package nop

import (
	"context"

	"github.com/papercomputeco/cultura/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishHarvest validates input and otherwise does nothing.
func (p *Publisher) PublishHarvest(_ context.Context, event *eventstream.HarvestEvent) error {
	if event == nil {
		return eventstream.ErrNilHarvestEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
