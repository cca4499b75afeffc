// Package facts implements the fact lifecycle: harvest from providers,
// select the newest unread fact and mark it as read.
package facts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/papercomputeco/cultura/pkg/eventstream"
	"github.com/papercomputeco/cultura/pkg/eventstream/nop"
	"github.com/papercomputeco/cultura/pkg/fact"
	"github.com/papercomputeco/cultura/pkg/formatter"
	"github.com/papercomputeco/cultura/pkg/provider"
	"github.com/papercomputeco/cultura/pkg/storage"
	"github.com/papercomputeco/cultura/pkg/worker"
)

// Config is the configuration for a Service.
type Config struct {
	// Driver is the fact store. Required.
	Driver storage.Driver

	// Formatter renders facts for PrintRandom. Defaults to the default template.
	Formatter *formatter.Formatter

	Logger *slog.Logger

	// Publisher receives one event per successful provider harvest.
	// Defaults to a no-op publisher.
	Publisher eventstream.Publisher

	// Workers bounds how many providers are fetched concurrently.
	Workers uint
}

// Service harvests and serves facts.
type Service struct {
	driver    storage.Driver
	formatter *formatter.Formatter
	logger    *slog.Logger
	publisher eventstream.Publisher
	workers   uint

	// serveMu makes select and mark one step so concurrent callers never
	// get the same fact.
	serveMu sync.Mutex
}

// NewService creates a Service from c.
func NewService(c Config) (*Service, error) {
	if c.Driver == nil {
		return nil, fmt.Errorf("fact service requires a storage driver")
	}
	if c.Formatter == nil {
		c.Formatter = formatter.New(formatter.DefaultTemplate)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Publisher == nil {
		c.Publisher = nop.NewPublisher()
	}

	return &Service{
		driver:    c.Driver,
		formatter: c.Formatter,
		logger:    c.Logger,
		publisher: c.Publisher,
		workers:   c.Workers,
	}, nil
}

// Update fetches every provider concurrently, normalizes the results and
// stores them. It never stops at the first failure: every provider error
// and every failed insert is collected into a single *UpdateError, returned
// only after all providers were attempted.
func (s *Service) Update(ctx context.Context, providers []provider.Provider) error {
	if len(providers) == 0 {
		return nil
	}

	pool, err := worker.NewPool(ctx, &worker.Config{
		Driver:     s.driver,
		NumWorkers: s.workers,
		QueueSize:  uint(len(providers)),
		Logger:     s.logger,
	})
	if err != nil {
		return err
	}

	errs := enqueueAll(pool, providers)
	pool.Close()

	for result := range pool.Results() {
		errs = append(errs, result.Errors...)

		if result.Failed() && result.Fetched == 0 {
			continue
		}

		event := eventstream.NewHarvestEvent(result.ProviderID, result.Fetched, result.Stored, len(result.Errors))
		if err := s.publisher.PublishHarvest(ctx, event); err != nil {
			s.logger.Warn("failed to publish harvest event",
				slog.String("provider", result.ProviderID),
				slog.Any("error", err),
			)
		}
	}

	if len(errs) > 0 {
		return &UpdateError{Errors: errs}
	}
	return nil
}

// enqueueAll schedules every provider and returns a provider.Error for each
// one the pool refused.
func enqueueAll(pool *worker.Pool, providers []provider.Provider) []error {
	var errs []error
	for _, p := range providers {
		if !pool.Enqueue(worker.Job{Provider: p}) {
			errs = append(errs, provider.Error{ProviderID: p.ID(), Err: ErrNotQueued})
		}
	}
	return errs
}

// GenerateRandom returns the newest unread fact and marks it as read.
// ok is false when every fact has been read. If marking fails the fact is
// not returned and stays unread for the next call.
func (s *Service) GenerateRandom(ctx context.Context) (string, bool, error) {
	s.serveMu.Lock()
	defer s.serveMu.Unlock()

	f, err := s.driver.NextUnread(ctx)
	if err != nil {
		return "", false, err
	}
	if f == nil {
		return "", false, nil
	}

	if err := s.driver.MarkAsRead(ctx, f.ID); err != nil {
		return "", false, err
	}

	s.logger.Debug("fact served", slog.String("id", f.ID), slog.String("provider", f.ProviderID))
	return f.Text, true, nil
}

// PrintRandom renders the next unread fact to w followed by a newline.
// Nothing is written when no unread fact is left.
func (s *Service) PrintRandom(ctx context.Context, w io.Writer) error {
	text, ok, err := s.GenerateRandom(ctx)
	if err != nil || !ok {
		return err
	}

	_, err = fmt.Fprintln(w, s.formatter.Render(text))
	return err
}

// Stats returns store counters.
func (s *Service) Stats(ctx context.Context) (*storage.Stats, error) {
	return s.driver.Stats(ctx)
}

// List returns stored facts, most recent first.
func (s *Service) List(ctx context.Context, opts storage.ListOptions) ([]*fact.Fact, error) {
	return s.driver.List(ctx, opts)
}

// Reset deletes every stored fact.
func (s *Service) Reset(ctx context.Context) error {
	return s.driver.Reset(ctx)
}
