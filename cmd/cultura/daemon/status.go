package daemoncmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/daemon"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the background harvester status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := daemon.NewManager(app.GlobalFlags(cmd).ConfigDir)
			if err != nil {
				return err
			}

			state, err := loadState(manager)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !stateHealthy(cmd.Context(), state) {
				fmt.Fprintf(out, "  %s Daemon is not running.\n", cliui.DimStyle.Render("●"))
				return nil
			}

			rows := [][2]string{
				{"PID:", fmt.Sprint(state.PID)},
				{"API:", state.APIURL},
				{"Started:", state.StartedAt.Format(time.RFC3339)},
				{"Interval:", state.Interval},
				{"Log file:", state.LogPath},
				{"Last update:", lastUpdate(state)},
			}

			fmt.Fprintf(out, "\n  %s Daemon is running.\n\n", cliui.SuccessMark)
			for _, row := range rows {
				cliui.KeyValue(out, row[0], row[1], 12)
			}
			if state.LastUpdateError != "" {
				fmt.Fprintf(out, "  %s %s\n", cliui.KeyStyle.Render(fmt.Sprintf("%-12s", "Last error:")), cliui.DimStyle.Render(state.LastUpdateError))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	return cmd
}

func lastUpdate(state *daemon.State) string {
	if state.LastUpdateAt.IsZero() {
		return "never"
	}
	return state.LastUpdateAt.Format(time.RFC3339)
}
