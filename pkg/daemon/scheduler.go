package daemon

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// UpdateFunc performs one harvest.
type UpdateFunc func(ctx context.Context) error

// Scheduler runs an update immediately and then on every tick of Interval
// until its context is cancelled. Runs never overlap.
type Scheduler struct {
	Interval time.Duration
	Update   UpdateFunc
	Logger   *slog.Logger

	// OnResult, when set, is called after every run with the run's start
	// time and error.
	OnResult func(at time.Time, err error)
}

// Run blocks until ctx is done. It returns an error only for an invalid
// scheduler.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Update == nil {
		return errors.New("scheduler has no update func")
	}
	if s.Interval <= 0 {
		return errors.New("scheduler interval must be positive")
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Info("scheduler started", slog.String("interval", s.Interval.String()))

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.runOnce(ctx, logger)

		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, logger *slog.Logger) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	err := s.Update(ctx)
	if err != nil {
		logger.Warn("scheduled update finished with errors",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)),
		)
	} else {
		logger.Info("scheduled update finished", slog.Duration("elapsed", time.Since(start)))
	}

	if s.OnResult != nil {
		s.OnResult(start, err)
	}
}
