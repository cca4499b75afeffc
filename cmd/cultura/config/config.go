// Package configcmder provides the config command for managing persistent
// cultura configuration.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent cultura configuration.

Configuration is stored as config.toml in the cultura directory
(./.cultura, $XDG_CONFIG_HOME/cultura or ~/.config/cultura) and provides
default values for command flags. CLI flags and CULTURA_ environment
variables take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  storage.provider, storage.sqlite_path, storage.postgres_dsn,
  facts.template, facts.providers,
  daemon.interval, daemon.workers,
  events.provider, events.brokers, events.topic

Use subcommands to get, set, or list configuration values:
  cultura config set <key> <value>    Set a configuration value
  cultura config get <key>            Get a configuration value
  cultura config list                 List all configuration values
  cultura config template <template>  Set the output template
  cultura config providers <id>...    Set the enabled providers

Examples:
  cultura config set daemon.interval 10m
  cultura config template '__Cultura__:magenta:bold $fact:yellow'
  cultura config providers til dyk
  cultura config list`

const configShortDesc string = "Manage persistent cultura configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newProvidersCmd())

	return cmd
}
