// Package factcmder provides the fact command for printing, harvesting and
// inspecting stored facts.
package factcmder

import (
	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/config"
)

const factLongDesc string = `Print, harvest and inspect fun facts.

Facts are harvested from providers into the local store and shown newest
first. A printed fact is marked as read and never shown again.

Examples:
  cultura fact random
  cultura fact update --providers til
  cultura fact list --unread
  cultura fact stats`

const factShortDesc string = "Print, harvest and inspect fun facts"

var storageKeys = []string{config.FlagStorageProvider, config.FlagSQLite, config.FlagPostgresDSN}

func NewFactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fact",
		Short: factShortDesc,
		Long:  factLongDesc,
	}

	cmd.AddCommand(newRandomCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newStatsCmd())

	return cmd
}

// addStorageFlags registers the shared storage flags and returns their
// binding.
func addStorageFlags(cmd *cobra.Command) app.Binding {
	var provider, sqlite, dsn string
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagStorageProvider, &provider)
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagSQLite, &sqlite)
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagPostgresDSN, &dsn)
	return app.Binding{Set: config.StorageFlags, Keys: storageKeys}
}
