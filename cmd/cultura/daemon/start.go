package daemoncmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/cliui"
	"github.com/papercomputeco/cultura/pkg/daemon"
)

const startLongDesc string = `Start the harvester in the background.

Does nothing when a healthy daemon is already running, so it is safe to call
from a shell startup file.

Examples:
  cultura daemon start
  cultura daemon start --interval 10m`

const startShortDesc string = "Start the harvester in the background"

const startTimeout = 15 * time.Second

func newStartCmd() *cobra.Command {
	flags := &serviceFlags{}
	var foreground bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: startShortDesc,
		Long:  startLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if foreground {
				return runForeground(cmd, false)
			}
			return runStart(cmd, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&foreground, "foreground", false, "Run the daemon process (internal)")
	_ = cmd.Flags().MarkHidden("foreground")

	return cmd
}

func runStart(cmd *cobra.Command, flags *serviceFlags) error {
	ctx := cmd.Context()
	g := app.GlobalFlags(cmd)

	manager, err := daemon.NewManager(g.ConfigDir)
	if err != nil {
		return err
	}

	state, err := loadState(manager)
	if err != nil {
		return err
	}
	if stateHealthy(ctx, state) {
		return nil
	}

	if err := spawnDaemon(manager, g, flags.forward(cmd)); err != nil {
		return err
	}

	state, err = waitForDaemon(ctx, manager)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s Daemon started %s\n",
		cliui.SuccessMark,
		cliui.DimStyle.Render(fmt.Sprintf("(pid %d, every %s)", state.PID, state.Interval)),
	)
	return nil
}

func spawnDaemon(manager *daemon.Manager, g app.Globals, extra []string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving executable: %w", err)
	}

	logFile, err := os.OpenFile(manager.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	args := []string{"daemon", "start", "--foreground", "--config-dir", manager.Dir}
	if g.Debug {
		args = append(args, "--debug")
	}
	args = append(args, extra...)

	// #nosec G204 -- re-executes this binary.
	cmd := exec.Command(execPath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return fmt.Errorf("starting daemon: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return logFile.Close()
}

func waitForDaemon(ctx context.Context, manager *daemon.Manager) (*daemon.State, error) {
	deadline := time.After(startTimeout)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, errors.New("timed out waiting for daemon")
		default:
		}

		state, err := loadState(manager)
		if err != nil {
			return nil, err
		}
		if stateHealthy(ctx, state) {
			return state, nil
		}
		time.Sleep(300 * time.Millisecond)
	}
}
