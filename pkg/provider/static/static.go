// Package static serves a fixed list of facts. It needs no network and backs
// offline setups and tests.
package static

import "context"

// DefaultFacts is served by the registered "static" provider.
var DefaultFacts = []string{
	"Honey never spoils; edible honey has been found in ancient Egyptian tombs.",
	"Octopuses have three hearts and blue blood.",
	"A day on Venus is longer than its year.",
	"Bananas are berries, but strawberries are not.",
	"The Eiffel Tower can be about 15 cm taller during hot summer days.",
}

type Provider struct {
	id    string
	facts []string
}

// New returns a provider that always yields facts.
func New(id string, facts ...string) *Provider {
	return &Provider{
		id:    id,
		facts: append([]string(nil), facts...),
	}
}

// ID returns the id given to New.
func (p *Provider) ID() string {
	return p.id
}

func (p *Provider) Facts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), p.facts...), nil
}
