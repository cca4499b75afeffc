package daemoncmder

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/daemon"
)

const stopTimeout = 10 * time.Second

var errNotRunning = errors.New("daemon is not running")

func newStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the background harvester",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := daemon.NewManager(app.GlobalFlags(cmd).ConfigDir)
			if err != nil {
				return err
			}

			pid, err := stopDaemon(manager)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Daemon stopped %s\n",
				cliui.SuccessMark,
				cliui.DimStyle.Render(fmt.Sprintf("(pid %d)", pid)),
			)
			return nil
		},
	}

	return cmd
}

// stopDaemon sends SIGTERM to the recorded daemon and waits for it to exit.
// Stale state left by a dead process is cleared.
func stopDaemon(manager *daemon.Manager) (int, error) {
	state, err := loadState(manager)
	if err != nil {
		return 0, err
	}
	if state == nil || !daemon.ProcessAlive(state.PID) {
		if state != nil {
			_ = manager.ClearState()
		}
		return 0, errNotRunning
	}

	proc, err := os.FindProcess(state.PID)
	if err != nil {
		return 0, fmt.Errorf("finding daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return 0, fmt.Errorf("signalling daemon: %w", err)
	}

	deadline := time.Now().Add(stopTimeout)
	for daemon.ProcessAlive(state.PID) {
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("daemon (pid %d) did not exit within %s", state.PID, stopTimeout)
		}
		time.Sleep(100 * time.Millisecond)
	}

	return state.PID, nil
}
