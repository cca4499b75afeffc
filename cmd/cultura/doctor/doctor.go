// Package doctorcmder provides maintenance commands for the local fact store.
package doctorcmder

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/config"
	"github.com/papercomputeco/cultura/pkg/dotdir"
)

const resetLongDesc string = `Delete every stored fact.

With --all the whole cultura directory is removed as well, including
config.toml and the daemon state. Stop the daemon first.

Examples:
  cultura doctor reset
  cultura doctor reset --yes --all`

func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Repair or reset local cultura state",
	}

	cmd.AddCommand(newResetCmd())
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes, all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored fact",
		Long:  resetLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := confirm(cmd, all)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			return runReset(cmd, all)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&all, "all", false, "Also remove the cultura directory")
	var provider, sqlite, dsn string
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagStorageProvider, &provider)
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagSQLite, &sqlite)
	config.AddStringFlag(cmd, config.StorageFlags, config.FlagPostgresDSN, &dsn)

	return cmd
}

func confirm(cmd *cobra.Command, all bool) (bool, error) {
	prompt := "Delete all stored facts? [y/N] "
	if all {
		prompt = "Delete all stored facts and the cultura directory? [y/N] "
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func runReset(cmd *cobra.Command, all bool) error {
	cfg, _, err := app.LoadConfig(cmd, app.Binding{
		Set:  config.StorageFlags,
		Keys: []string{config.FlagStorageProvider, config.FlagSQLite, config.FlagPostgresDSN},
	})
	if err != nil {
		return err
	}

	g := app.GlobalFlags(cmd)
	env, err := app.Open(cmd.Context(), app.EnvOpts{Config: cfg, Logger: app.NewLogger(g.Debug)})
	if err != nil {
		return err
	}

	err = env.Service.Reset(cmd.Context())
	if cerr := env.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("resetting facts: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted all stored facts.")

	if !all {
		return nil
	}

	dir, err := dotdir.NewManager().Clear(g.ConfigDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", dir)
	return nil
}
