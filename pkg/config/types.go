package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/papercomputeco/cultura/pkg/provider"
)

// Config represents the persistent cultura configuration stored as
// config.toml in the cultura directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Storage StorageConfig `toml:"storage"`
	Facts   FactsConfig   `toml:"facts"`
	Daemon  DaemonConfig  `toml:"daemon"`
	Events  EventsConfig  `toml:"events"`
}

// StorageConfig selects and configures the fact store.
type StorageConfig struct {
	// Provider is one of "sqlite", "postgres" or "memory".
	Provider string `toml:"provider,omitempty"`

	// SQLitePath defaults to cultura.db inside the cultura directory.
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// FactsConfig holds harvesting and rendering settings.
type FactsConfig struct {
	Template string `toml:"template,omitempty"`

	// Providers lists enabled provider ids. Empty enables every network
	// provider.
	Providers []string `toml:"providers,omitempty"`
}

// DaemonConfig holds background scheduler settings.
type DaemonConfig struct {
	// Interval is a Go duration string, e.g. "5m".
	Interval string `toml:"interval,omitempty"`
	Workers  uint   `toml:"workers,omitempty"`
}

// EventsConfig holds harvest event publishing settings.
type EventsConfig struct {
	// Provider is "nop" or "kafka".
	Provider string   `toml:"provider,omitempty"`
	Brokers  []string `toml:"brokers,omitempty"`
	Topic    string   `toml:"topic,omitempty"`
}

// IntervalDuration parses Interval, falling back to the default interval
// when it is empty or invalid.
func (d DaemonConfig) IntervalDuration() time.Duration {
	interval, err := time.ParseDuration(d.Interval)
	if err != nil || interval <= 0 {
		return defaultDaemonInterval
	}
	return interval
}

// configKey maps a user-facing dotted key name to a getter and setter on *Config.
type configKey struct {
	name string
	get  func(c *Config) string
	set  func(c *Config, v string) error
}

// configKeys lists every supported key in TOML section order.
var configKeys = []configKey{
	{
		name: "storage.provider",
		get:  func(c *Config) string { return c.Storage.Provider },
		set:  func(c *Config, v string) error {
			switch v {
			case "sqlite", "postgres", "memory":
				c.Storage.Provider = v
				return nil
			default:
				return fmt.Errorf("invalid value for storage.provider: %q (supported: sqlite, postgres, memory)", v)
			}
		},
	},
	{
		name: "storage.sqlite_path",
		get:  func(c *Config) string { return c.Storage.SQLitePath },
		set:  func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	{
		name: "storage.postgres_dsn",
		get:  func(c *Config) string { return c.Storage.PostgresDSN },
		set:  func(c *Config, v string) error { c.Storage.PostgresDSN = v; return nil },
	},
	{
		name: "facts.template",
		get:  func(c *Config) string { return c.Facts.Template },
		set:  func(c *Config, v string) error { c.Facts.Template = v; return nil },
	},
	{
		name: "facts.providers",
		get:  func(c *Config) string { return strings.Join(c.Facts.Providers, ",") },
		set:  func(c *Config, v string) error {
			ids := SplitList(v)
			if err := provider.Validate(ids); err != nil {
				return err
			}
			c.Facts.Providers = ids
			return nil
		},
	},
	{
		name: "daemon.interval",
		get:  func(c *Config) string { return c.Daemon.Interval },
		set:  func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid value for daemon.interval: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("invalid value for daemon.interval: must be positive")
			}
			c.Daemon.Interval = v
			return nil
		},
	},
	{
		name: "daemon.workers",
		get:  func(c *Config) string {
			if c.Daemon.Workers == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Daemon.Workers), 10)
		},
		set:  func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for daemon.workers: %w", err)
			}
			c.Daemon.Workers = uint(n)
			return nil
		},
	},
	{
		name: "events.provider",
		get:  func(c *Config) string { return c.Events.Provider },
		set:  func(c *Config, v string) error {
			switch v {
			case "nop", "kafka":
				c.Events.Provider = v
				return nil
			default:
				return fmt.Errorf("invalid value for events.provider: %q (supported: nop, kafka)", v)
			}
		},
	},
	{
		name: "events.brokers",
		get:  func(c *Config) string { return strings.Join(c.Events.Brokers, ",") },
		set:  func(c *Config, v string) error { c.Events.Brokers = SplitList(v); return nil },
	},
	{
		name: "events.topic",
		get:  func(c *Config) string { return c.Events.Topic },
		set:  func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
}

func lookupKey(name string) (configKey, bool) {
	for _, k := range configKeys {
		if k.name == name {
			return k, true
		}
	}
	return configKey{}, false
}

// SplitList splits a comma or whitespace separated list, dropping empty
// entries.
func SplitList(v string) []string {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}
