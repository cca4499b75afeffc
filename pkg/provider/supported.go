package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/papercomputeco/cultura/pkg/provider/reddit"
	"github.com/papercomputeco/cultura/pkg/provider/static"
	"github.com/papercomputeco/cultura/pkg/provider/wikipedia"
)

// Supported provider identifiers
const (
	TIL    = "til"
	DYK    = "dyk"
	Static = "static"
)

// Factory builds a provider from options.
type Factory func(opts Options) Provider

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		TIL: func(o Options) Provider {
			return reddit.New(reddit.Config{ID: TIL, Client: o.HTTPClient, UserAgent: o.UserAgent})
		},
		DYK: func(o Options) Provider {
			return wikipedia.New(wikipedia.Config{ID: DYK, Client: o.HTTPClient, UserAgent: o.UserAgent})
		},
		Static: func(_ Options) Provider {
			return static.New(Static, static.DefaultFacts...)
		},
	}
)

// Register adds or replaces the factory for id.
func Register(id string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = f
}

// Available returns every registered provider identifier, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsAvailable reports whether id names a registered provider.
func IsAvailable(id string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[id]
	return ok
}

// New creates a new Provider instance for the given identifier.
// Returns an error if the identifier is not recognized.
func New(id string, opts Options) (Provider, error) {
	registryMu.RLock()
	f, ok := registry[id]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider: %q (supported: %v)", id, Available())
	}
	return f(opts.withDefaults()), nil
}

// Validate returns an InvalidError naming every unknown identifier in ids.
func Validate(ids []string) error {
	var invalid []string
	for _, id := range ids {
		if !IsAvailable(id) {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return InvalidError{IDs: invalid}
	}
	return nil
}

// Resolve builds providers for ids in order, skipping repeats. An empty list
// resolves to every available provider except the offline static source.
func Resolve(ids []string, opts Options) ([]Provider, error) {
	if len(ids) == 0 {
		for _, id := range Available() {
			if id != Static {
				ids = append(ids, id)
			}
		}
	}

	if err := Validate(ids); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(ids))
	providers := make([]Provider, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		p, err := New(id, opts)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
