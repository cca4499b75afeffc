package factcmder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/config"
	"github.com/papercomputeco/cultura/pkg/facts"
)

const updateLongDesc string = `Harvest new facts from the enabled providers.

Every provider is fetched, even when another one fails. Facts already in the
store are skipped. The command exits non-zero when any provider or insert
failed, after printing every failure.

Examples:
  cultura fact update
  cultura fact update --providers til,dyk`

const updateShortDesc string = "Harvest new facts from providers"

type updateCommander struct {
	providers      []string
	workers        uint
	eventsProvider string
	eventsBrokers  []string
	eventsTopic    string
}

func newUpdateCmd() *cobra.Command {
	cmder := &updateCommander{}
	var storage app.Binding

	cmd := &cobra.Command{
		Use:   "update",
		Short: updateShortDesc,
		Long:  updateLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd, storage)
		},
	}

	storage = addStorageFlags(cmd)
	config.AddStringSliceFlag(cmd, config.HarvestFlags, config.FlagProviders, &cmder.providers)
	config.AddUintFlag(cmd, config.HarvestFlags, config.FlagWorkers, &cmder.workers)
	config.AddStringFlag(cmd, config.HarvestFlags, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringSliceFlag(cmd, config.HarvestFlags, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, config.HarvestFlags, config.FlagEventsTopic, &cmder.eventsTopic)

	return cmd
}

func (c *updateCommander) run(cmd *cobra.Command, storage app.Binding) error {
	cfg, _, err := app.LoadConfig(cmd, storage, app.Binding{
		Set: config.HarvestFlags,
		Keys: []string{
			config.FlagProviders,
			config.FlagWorkers,
			config.FlagEventsProvider,
			config.FlagEventsBrokers,
			config.FlagEventsTopic,
		},
	})
	if err != nil {
		return err
	}

	providers, err := app.Providers(cfg)
	if err != nil {
		return err
	}

	env, err := app.Open(cmd.Context(), app.EnvOpts{
		Config: cfg,
		Logger: app.NewLogger(app.GlobalFlags(cmd).Debug),
	})
	if err != nil {
		return err
	}
	defer env.Close()

	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	updateErr := cliui.Step(out, "Harvesting facts from "+strings.Join(ids, ", "), func() error {
		return env.Service.Update(cmd.Context(), providers)
	})

	var aggregated *facts.UpdateError
	if errors.As(updateErr, &aggregated) {
		for _, e := range aggregated.Errors {
			fmt.Fprintf(out, "    %s %s\n", cliui.FailMark, cliui.DimStyle.Render(e.Error()))
		}
	}

	stats, err := env.Service.Stats(cmd.Context())
	if err != nil {
		return errors.Join(updateErr, err)
	}
	fmt.Fprintf(out, "\n  %s %s\n\n",
		cliui.KeyStyle.Render("Unread facts:"),
		cliui.ValueStyle.Render(fmt.Sprintf("%d of %d", stats.Unread, stats.Total)),
	)

	return updateErr
}
