// Package daemoncmder provides the daemon command for running the background
// fact harvester.
package daemoncmder

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/config"
)

const daemonLongDesc string = `Run the background fact harvester.

The daemon harvests facts from the enabled providers immediately and then on
every interval. It also serves a local API used for health checks and by MCP
clients.

Examples:
  cultura daemon start
  cultura daemon status
  cultura daemon logs
  cultura daemon stop
  cultura daemon run --interval 1m`

const daemonShortDesc string = "Run the background fact harvester"

func NewDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: daemonShortDesc,
		Long:  daemonLongDesc,
	}

	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}

// serviceFlags are the config flags accepted by commands that run the
// harvester.
type serviceFlags struct {
	storageProvider string
	sqlitePath      string
	postgresDSN     string
	providers       []string
	workers         uint
	interval        string
	eventsProvider  string
	eventsBrokers   []string
	eventsTopic     string
}

func (f *serviceFlags) register(cmd *cobra.Command) {
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagStorageProvider, &f.storageProvider)
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagSQLite, &f.sqlitePath)
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagPostgresDSN, &f.postgresDSN)
	config.AddStringSliceFlag(cmd, config.HarvestFlags, config.FlagProviders, &f.providers)
	config.AddUintFlag(cmd, config.HarvestFlags, config.FlagWorkers, &f.workers)
	config.AddStringFlag(cmd, config.HarvestFlags, config.FlagEventsProvider, &f.eventsProvider)
	config.AddStringSliceFlag(cmd, config.HarvestFlags, config.FlagEventsBrokers, &f.eventsBrokers)
	config.AddStringFlag(cmd, config.HarvestFlags, config.FlagEventsTopic, &f.eventsTopic)
	config.AddStringFlag(cmd, config.DaemonFlags, config.FlagInterval, &f.interval)
}

// forward returns the flags the user changed, for re-invoking the binary.
func (f *serviceFlags) forward(cmd *cobra.Command) []string {
	var args []string
	for _, name := range []string{
		config.FlagStorageProvider, config.FlagSQLite, config.FlagPostgresDSN,
		config.FlagProviders, config.FlagWorkers, config.FlagInterval,
		config.FlagEventsProvider, config.FlagEventsBrokers, config.FlagEventsTopic,
	} {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		value := flag.Value.String()
		if sv, ok := flag.Value.(interface{ GetSlice() []string }); ok {
			value = strings.Join(sv.GetSlice(), ",")
		}
		args = append(args, "--"+name, value)
	}
	return args
}

func bindings() []app.Binding {
	return []app.Binding{
		{Set: config.StorageFlags, Keys: []string{config.FlagStorageProvider, config.FlagSQLite, config.FlagPostgresDSN}},
		{Set: config.HarvestFlags, Keys: []string{
			config.FlagProviders, config.FlagWorkers,
			config.FlagEventsProvider, config.FlagEventsBrokers, config.FlagEventsTopic,
		}},
		{Set: config.DaemonFlags, Keys: []string{config.FlagInterval}},
	}
}
