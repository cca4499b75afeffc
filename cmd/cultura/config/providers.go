package configcmder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/config"
	"github.com/papercomputeco/cultura/pkg/provider"
)

const providersLongDesc string = `Show or set the enabled fact providers.

Without arguments, lists every available provider and marks the enabled
ones. With arguments, replaces the enabled list. Nothing is saved when any
id is unknown. An empty list enables every network provider.

Examples:
  cultura config providers
  cultura config providers til dyk
  cultura config providers static`

const providersShortDesc string = "Show or set the enabled providers"

func newProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers [id...]",
		Short: providersShortDesc,
		Long:  providersLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if len(args) > 0 {
				var ids []string
				for _, arg := range args {
					ids = append(ids, config.SplitList(arg)...)
				}
				if err := cfger.SetProviders(ids); err != nil {
					return err
				}
				printSaved(cmd, cfger, "facts.providers", strings.Join(ids, ","))
				return nil
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return err
			}
			printProviders(cmd, cfg.Facts.Providers)
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return provider.Available(), cobra.ShellCompDirectiveNoFileComp
		},
	}

	return cmd
}

func printProviders(cmd *cobra.Command, enabled []string) {
	out := cmd.OutOrStdout()
	for _, id := range provider.Available() {
		on := slices.Contains(enabled, id) || (len(enabled) == 0 && id != provider.Static)
		mark := cliui.DimStyle.Render("○")
		if on {
			mark = cliui.SuccessMark
		}
		fmt.Fprintf(out, "  %s %s\n", mark, id)
	}
}
