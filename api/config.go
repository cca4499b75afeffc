// Package api provides the HTTP API served by the cultura daemon.
package api

import "github.com/papercomputeco/cultura/pkg/provider"

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., "127.0.0.1:0")
	ListenAddr string

	// Providers are harvested by POST /facts/update.
	Providers []provider.Provider

	// DisableMCP leaves /mcp unmounted.
	DisableMCP bool
}
