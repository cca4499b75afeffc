// Package initcmder provides the init command for initializing a local
// .cultura directory in the current working directory.
package initcmder

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/pkg/config"
	"github.com/papercomputeco/cultura/pkg/dotdir"
)

const initLongDesc string = `Initialize a new .cultura/ directory in the current working directory.

Creates a local .cultura/ directory that takes precedence over the default
~/.config/cultura/ directory for configuration, the fact database and the
daemon state.

Use --preset to write a starter config.toml. Presets: default, offline, server.

Examples:
  cultura init
  cultura init --preset offline`

const initShortDesc string = "Initialize a local .cultura/ directory"

func NewInitCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, preset)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Write a starter config from a preset")

	return cmd
}

func runInit(cmd *cobra.Command, preset string) error {
	var cfg *config.Config
	if preset != "" {
		var err error
		cfg, err = config.PresetConfig(preset)
		if err != nil {
			return err
		}
	}

	dir, err := dotdir.NewManager().InitLocal()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized cultura directory: %s\n", dir)

	if cfg == nil {
		return nil
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return err
	}

	_, err = os.Stat(cfger.GetTarget())
	switch {
	case err == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists, preset not applied: %s\n", cfger.GetTarget())
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("checking config: %w", err)
	}

	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s preset: %s\n", preset, cfger.GetTarget())
	return nil
}
