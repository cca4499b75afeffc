package storageutils

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/cultura/pkg/storage"
	"github.com/papercomputeco/cultura/pkg/storage/inmemory"
	"github.com/papercomputeco/cultura/pkg/storage/postgres"
	"github.com/papercomputeco/cultura/pkg/storage/sqlite"
)

const (
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
	ProviderMemory   = "memory"
)

type NewDriverOpts struct {
	ProviderType string
	SQLitePath   string
	PostgresDSN  string
	Logger       *slog.Logger
}

// NewDriver opens the storage driver named by o.ProviderType.
// An empty provider type selects sqlite.
func NewDriver(ctx context.Context, o *NewDriverOpts) (storage.Driver, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch o.ProviderType {
	case "", ProviderSQLite:
		if o.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite storage requires a database path")
		}
		logger.Debug("opening sqlite storage", "path", o.SQLitePath)
		return sqlite.NewDriver(ctx, o.SQLitePath)
	case ProviderPostgres:
		if o.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires a connection string")
		}
		logger.Debug("opening postgres storage")
		return postgres.NewDriver(ctx, o.PostgresDSN)
	case ProviderMemory:
		logger.Debug("opening in-memory storage")
		return inmemory.NewDriver(), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", o.ProviderType)
	}
}

// SupportedProviders returns the storage provider names NewDriver accepts.
func SupportedProviders() []string {
	return []string{ProviderSQLite, ProviderPostgres, ProviderMemory}
}
