package eventstream

import "context"

// Publisher publishes harvest events to an event stream backend.
type Publisher interface {
	PublishHarvest(ctx context.Context, event *HarvestEvent) error
	Close() error
}
