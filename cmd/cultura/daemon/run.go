package daemoncmder

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cultura/api"
	"github.com/papercomputeco/cultura/cmd/cultura/app"
	"github.com/papercomputeco/cultura/pkg/daemon"
	"github.com/papercomputeco/cultura/pkg/logger"
)

const runLongDesc string = `Run the harvester in the foreground.

Logs are written to the terminal and to daemon.log in the cultura directory.
Stop with Ctrl-C.

Examples:
  cultura daemon run
  cultura daemon run --interval 30s --providers til`

const runShortDesc string = "Run the harvester in the foreground"

func newRunCmd() *cobra.Command {
	flags := &serviceFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: runShortDesc,
		Long:  runLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForeground(cmd, true)
		},
	}

	flags.register(cmd)
	return cmd
}

// runForeground runs the daemon in this process. With toTerminal the log is
// mirrored to stderr; a detached daemon logs to its file only.
func runForeground(cmd *cobra.Command, toTerminal bool) error {
	g := app.GlobalFlags(cmd)

	manager, err := daemon.NewManager(g.ConfigDir)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(manager.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	log := logger.New(
		logger.WithDebug(g.Debug),
		logger.WithJSON(true),
		logger.WithWriter(logFile),
		logger.WithComponent("daemon"),
	)
	if toTerminal {
		log = logger.Multi(log, app.NewLogger(g.Debug))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runServices(ctx, cmd, manager, log)
}

func runServices(ctx context.Context, cmd *cobra.Command, manager *daemon.Manager, log *slog.Logger) error {
	cfg, _, err := app.LoadConfig(cmd, bindings()...)
	if err != nil {
		return err
	}

	providers, err := app.Providers(cfg)
	if err != nil {
		return err
	}

	lock, err := manager.Lock()
	if err != nil {
		return err
	}
	existing, err := manager.LoadState()
	if err != nil {
		_ = lock.Release()
		return err
	}
	if existing != nil && existing.PID != os.Getpid() && stateHealthy(ctx, existing) {
		_ = lock.Release()
		return fmt.Errorf("daemon already running (pid %d)", existing.PID)
	}

	listenerConfig := &net.ListenConfig{}
	apiListener, err := listenerConfig.Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		_ = lock.Release()
		return fmt.Errorf("creating api listener: %w", err)
	}

	interval := cfg.Daemon.IntervalDuration()
	state := &daemon.State{
		PID:       os.Getpid(),
		APIURL:    "http://" + apiListener.Addr().String(),
		StartedAt: time.Now(),
		Interval:  interval.String(),
		LogPath:   manager.LogPath,
	}
	if err := manager.SaveState(state); err != nil {
		_ = lock.Release()
		return err
	}
	if err := lock.Release(); err != nil {
		return err
	}
	defer func() { _ = manager.ClearState() }()

	env, err := app.Open(ctx, app.EnvOpts{Config: cfg, Logger: log})
	if err != nil {
		return err
	}
	defer env.Close()

	apiServer, err := api.NewServer(api.Config{
		ListenAddr: apiListener.Addr().String(),
		Providers:  providers,
	}, env.Service, log)
	if err != nil {
		return fmt.Errorf("creating api server: %w", err)
	}
	defer func() { _ = apiServer.Shutdown() }()

	errChan := make(chan error, 1)
	go func() {
		if err := apiServer.Serve(apiListener); err != nil {
			errChan <- fmt.Errorf("api error: %w", err)
		}
	}()

	scheduler := &daemon.Scheduler{
		Interval: interval,
		Logger:   log,
		Update: func(ctx context.Context) error {
			return env.Service.Update(ctx, providers)
		},
		OnResult: func(at time.Time, updateErr error) {
			if err := recordUpdate(manager, at, updateErr); err != nil {
				log.Warn("failed to record update", slog.Any("error", err))
			}
		},
	}

	log.Info("daemon started",
		slog.Int("pid", state.PID),
		slog.String("api", state.APIURL),
		slog.String("interval", state.Interval),
	)

	schedCtx, cancel := context.WithCancel(ctx)
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		_ = scheduler.Run(schedCtx)
	}()

	// The scheduler must stop before the deferred state clear and store close.
	defer func() {
		cancel()
		<-schedDone
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info("daemon stopping")
		return nil
	}
}

func recordUpdate(manager *daemon.Manager, at time.Time, updateErr error) error {
	lock, err := manager.Lock()
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()
	return manager.RecordUpdate(at, updateErr)
}
