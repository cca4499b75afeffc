// Package app wires configuration, storage and the fact service for cultura
// commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/pkg/config"
	"github.com/papercomputeco/cultura/pkg/dotdir"
	"github.com/papercomputeco/cultura/pkg/eventstream"
	eventstreamutils "github.com/papercomputeco/cultura/pkg/eventstream/utils"
	"github.com/papercomputeco/cultura/pkg/facts"
	"github.com/papercomputeco/cultura/pkg/formatter"
	"github.com/papercomputeco/cultura/pkg/logger"
	"github.com/papercomputeco/cultura/pkg/provider"
	"github.com/papercomputeco/cultura/pkg/storage"
	storageutils "github.com/papercomputeco/cultura/pkg/storage/utils"
	"github.com/papercomputeco/cultura/pkg/utils"
)

// Binding pairs a FlagSet with the registry keys a command registered from it.
type Binding struct {
	Set  config.FlagSet
	Keys []string
}

// Globals are the persistent root flags.
type Globals struct {
	Debug     bool
	ConfigDir string
}

// GlobalFlags reads the persistent root flags. Missing flags read as zero
// values so subcommands can run without the root command.
func GlobalFlags(cmd *cobra.Command) Globals {
	debug, _ := cmd.Flags().GetBool("debug")
	configDir, _ := cmd.Flags().GetString("config-dir")
	return Globals{Debug: debug, ConfigDir: configDir}
}

// LoadConfig merges defaults, config.toml, CULTURA_ environment variables and
// the bound flags. It returns the merged config and the cultura directory.
// An unset SQLite path resolves to cultura.db inside that directory.
func LoadConfig(cmd *cobra.Command, bindings ...Binding) (*config.Config, string, error) {
	g := GlobalFlags(cmd)

	v, err := config.InitViper(g.ConfigDir)
	if err != nil {
		return nil, "", err
	}
	for _, b := range bindings {
		config.BindRegisteredFlags(v, cmd, b.Set, b.Keys)
	}

	dir, err := dotdir.NewManager().Target(g.ConfigDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving cultura dir: %w", err)
	}

	cfg := config.FromViper(v)
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(dir, config.SQLiteFile)
	}

	if err := provider.Validate(cfg.Facts.Providers); err != nil {
		return nil, "", err
	}

	return cfg, dir, nil
}

// NewLogger returns the pretty stderr logger used by interactive commands.
// Debug mode also reports the caller.
func NewLogger(debug bool) *slog.Logger {
	return logger.New(
		logger.WithDebug(debug),
		logger.WithSource(debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)
}

// Env is an opened fact service and the resources behind it.
type Env struct {
	Service   *facts.Service
	Driver    storage.Driver
	Publisher eventstream.Publisher
}

// Close releases the publisher and the storage driver.
func (e *Env) Close() error {
	return errors.Join(e.Publisher.Close(), e.Driver.Close())
}

// EnvOpts configures Open.
type EnvOpts struct {
	Config *config.Config
	Logger *slog.Logger

	// Profile is the formatter color profile. Defaults to the profile
	// detected from the environment.
	Profile *termenv.Profile
}

// Open connects storage and the event publisher and builds the fact service.
func Open(ctx context.Context, o EnvOpts) (*Env, error) {
	cfg := o.Config
	log := o.Logger
	if log == nil {
		log = logger.Nop()
	}

	driver, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{
		ProviderType: cfg.Storage.Provider,
		SQLitePath:   cfg.Storage.SQLitePath,
		PostgresDSN:  cfg.Storage.PostgresDSN,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	publisher, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
		ProviderType: cfg.Events.Provider,
		Brokers:      cfg.Events.Brokers,
		Topic:        cfg.Events.Topic,
	})
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("creating event publisher: %w", err)
	}

	profile := termenv.EnvColorProfile()
	if o.Profile != nil {
		profile = *o.Profile
	}

	service, err := facts.NewService(facts.Config{
		Driver:    driver,
		Formatter: formatter.New(cfg.Facts.Template, formatter.WithProfile(profile)),
		Logger:    log,
		Publisher: publisher,
		Workers:   cfg.Daemon.Workers,
	})
	if err != nil {
		_ = publisher.Close()
		_ = driver.Close()
		return nil, err
	}

	return &Env{Service: service, Driver: driver, Publisher: publisher}, nil
}

// Providers resolves the configured provider ids. An empty list selects
// every network provider.
func Providers(cfg *config.Config) ([]provider.Provider, error) {
	return provider.Resolve(cfg.Facts.Providers, provider.Options{
		UserAgent: "cultura/" + utils.Version,
	})
}
