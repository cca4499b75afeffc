package eventstreamutils

import (
	"fmt"

	"github.com/papercomputeco/cultura/pkg/eventstream"
	"github.com/papercomputeco/cultura/pkg/eventstream/kafka"
	"github.com/papercomputeco/cultura/pkg/eventstream/nop"
)

type NewPublisherOpts struct {
	ProviderType string
	Brokers      []string
	Topic        string
}

// NewPublisher builds the publisher named by o.ProviderType. An empty
// provider type disables publishing.
func NewPublisher(o *NewPublisherOpts) (eventstream.Publisher, error) {
	switch o.ProviderType {
	case "", "nop", "none":
		return nop.NewPublisher(), nil
	case "kafka":
		return kafka.NewPublisher(kafka.Config{
			Brokers: o.Brokers,
			Topic:   o.Topic,
		})
	default:
		return nil, fmt.Errorf("unsupported event stream provider: %s", o.ProviderType)
	}
}
