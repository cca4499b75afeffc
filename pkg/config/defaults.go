package config

import (
	"time"

	"github.com/papercomputeco/cultura/pkg/formatter"
)

const (
	// SQLiteFile is the database file name inside the cultura directory.
	SQLiteFile = "cultura.db"

	defaultStorageProvider = "sqlite"

	defaultDaemonInterval = 5 * time.Minute
	defaultDaemonWorkers  = 3

	defaultEventsProvider = "nop"
	defaultEventsTopic    = "cultura.facts"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Provider: defaultStorageProvider,
		},
		Facts: FactsConfig{
			Template: formatter.DefaultTemplate,
		},
		Daemon: DaemonConfig{
			Interval: defaultDaemonInterval.String(),
			Workers:  defaultDaemonWorkers,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Topic:    defaultEventsTopic,
		},
	}
}
