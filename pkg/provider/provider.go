// Package provider defines fact sources and the registry that maps provider
// identifiers to their implementations.
package provider

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single provider fetch when no client is supplied.
const DefaultTimeout = 15 * time.Second

// Provider is a source of raw fact strings.
type Provider interface {
	// ID returns the stable provider identifier (e.g., "til", "dyk").
	ID() string

	// Facts fetches the current batch of raw, un-normalized fact strings.
	// Returns an error if the source cannot be reached or parsed.
	Facts(ctx context.Context) ([]string, error)
}

// Options configures provider construction.
type Options struct {
	// HTTPClient is used by network providers. Defaults to a client with
	// DefaultTimeout.
	HTTPClient *http.Client

	// UserAgent is sent with outbound requests.
	UserAgent string
}

func (o Options) withDefaults() Options {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if o.UserAgent == "" {
		o.UserAgent = "cultura/1.0 (+https://github.com/papercomputeco/cultura)"
	}
	return o
}
