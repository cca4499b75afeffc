package factcmder

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/storage"
)

const statsShortDesc string = "Show fact counts"

func newStatsCmd() *cobra.Command {
	var asJSON bool
	var storageBinding app.Binding

	cmd := &cobra.Command{
		Use:   "stats",
		Short: statsShortDesc,
		Long:  "Show how many facts are stored, read and unread, per provider.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := app.LoadConfig(cmd, storageBinding)
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

			stats, err := env.Service.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			printStats(cmd, stats)
			return nil
		},
	}

	storageBinding = addStorageFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print stats as JSON")

	return cmd
}

func printStats(cmd *cobra.Command, stats *storage.Stats) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	cliui.KeyValue(out, "Total:", strconv.Itoa(stats.Total), 7)
	cliui.KeyValue(out, "Unread:", strconv.Itoa(stats.Unread), 7)
	cliui.KeyValue(out, "Read:", strconv.Itoa(stats.Read), 7)

	if len(stats.ByProvider) == 0 {
		fmt.Fprintln(out)
		return
	}

	ids := make([]string, 0, len(stats.ByProvider))
	for id := range stats.ByProvider {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Fprintf(out, "\n  %s\n", cliui.HeaderStyle.Render("By provider"))
	for _, id := range ids {
		fmt.Fprintf(out, "    %-8s %s\n", id, cliui.DimStyle.Render(strconv.Itoa(stats.ByProvider[id])))
	}
	fmt.Fprintln(out)
}
