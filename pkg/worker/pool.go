// Package worker provides a bounded worker pool that harvests facts from
// providers concurrently and persists them using the provided storage.Driver.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/papercomputeco/cultura/pkg/fact"
	"github.com/papercomputeco/cultura/pkg/provider"
	"github.com/papercomputeco/cultura/pkg/storage"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// Job is a unit of work for the worker pool to execute against.
type Job struct {
	Provider provider.Provider
}

// Result reports the outcome of one harvest job.
type Result struct {
	ProviderID string

	// Fetched is the number of non-empty facts after normalization.
	Fetched int

	// Stored is the number of facts accepted by storage, duplicates included.
	Stored int

	// Errors holds the provider failure or each failed insert.
	Errors []error
}

// Failed reports whether the job produced any error.
func (r Result) Failed() bool {
	return len(r.Errors) > 0
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Driver is the storage backend for persisting facts.
	Driver storage.Driver

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job and result channels
	// (defaults to 256).
	QueueSize uint

	Logger *slog.Logger
}

// Pool harvests providers asynchronously via a worker pool.
type Pool struct {
	ctx     context.Context
	config  *Config
	queue   chan Job
	results chan Result
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// NewPool creates a new Pool and starts its worker goroutines. Jobs run
// under ctx.
func NewPool(ctx context.Context, c *Config) (*Pool, error) {
	if c.Driver == nil {
		return nil, fmt.Errorf("worker pool requires a storage driver")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	wp := &Pool{
		ctx:     ctx,
		config:  c,
		queue:   make(chan Job, c.QueueSize),
		results: make(chan Result, c.QueueSize),
		logger:  logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for processing by the worker pool.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("job queued", slog.String("provider", job.Provider.ID()))
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped",
			slog.String("provider", job.Provider.ID()),
		)
		return false
	}
}

// Results returns the channel results are delivered on. It is closed once
// Close has drained every job. Callers enqueueing more than QueueSize jobs
// must consume results concurrently.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close signals workers to stop and waits for in-flight jobs to drain.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
	close(p.results)
}

// worker is the inner worker thread that continuously pulls jobs off the jobs queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", slog.Uint64("worker_id", uint64(id)))

	for job := range p.queue {
		p.results <- p.processJob(job)
	}

	p.logger.Debug("worker stopped", slog.Uint64("worker_id", uint64(id)))
}

// processJob fetches, normalizes and stores the facts of one provider.
func (p *Pool) processJob(job Job) Result {
	id := job.Provider.ID()
	result := Result{ProviderID: id}

	raw, err := job.Provider.Facts(p.ctx)
	if err != nil {
		p.logger.Warn("provider fetch failed",
			slog.String("provider", id),
			slog.Any("error", err),
		)
		result.Errors = append(result.Errors, provider.Error{ProviderID: id, Err: err})
		return result
	}

	texts := fact.NormalizeAll(raw)
	result.Fetched = len(texts)

	for i, err := range p.config.Driver.Insert(p.ctx, id, texts) {
		if err != nil {
			p.logger.Debug("fact insert failed",
				slog.String("provider", id),
				slog.String("text", texts[i]),
				slog.Any("error", err),
			)
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Stored++
	}

	p.logger.Info("provider harvested",
		slog.String("provider", id),
		slog.Int("fetched", result.Fetched),
		slog.Int("stored", result.Stored),
		slog.Int("failed", len(result.Errors)),
	)

	return result
}
