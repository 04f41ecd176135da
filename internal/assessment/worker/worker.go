// Package worker runs the background recheck loop: every interval it asks
// the assessment store which drivers have passed their NextCheckDue and runs
// a fresh compliance check for each, with bounded concurrency.
package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"driveguard/internal/assessment"
	"driveguard/internal/assessment/ports"
	id "driveguard/pkg/domain"
)

const defaultBatchSize = 100

// CheckRunner runs a single compliance check. Satisfied by the assessment
// service.
type CheckRunner interface {
	RunCheck(ctx context.Context, driverID id.DriverID, trigger string) (*assessment.RiskAssessment, error)
}

// TriggerRecheck marks checks started by this worker in metrics and audit.
const TriggerRecheck = "recheck"

// Worker periodically rechecks overdue drivers.
type Worker struct {
	runner      CheckRunner
	lister      ports.RecheckLister
	interval    time.Duration
	concurrency int
	batchSize   int
	logger      *slog.Logger
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithBatchSize caps how many overdue drivers one sweep picks up.
func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func New(runner CheckRunner, lister ports.RecheckLister, interval time.Duration, concurrency int, opts ...Option) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	w := &Worker{
		runner:      runner,
		lister:      lister,
		interval:    interval,
		concurrency: concurrency,
		batchSize:   defaultBatchSize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run sweeps immediately, then on every tick, until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// sweep runs one recheck pass. Individual check failures are logged and do
// not stop the rest of the batch; the registry may be down for one driver's
// lookup and fine for the next.
func (w *Worker) sweep(ctx context.Context) {
	start := time.Now()

	due, err := w.lister.ListDueForRecheck(ctx, start, w.batchSize)
	if err != nil {
		if w.logger != nil {
			w.logger.ErrorContext(ctx, "recheck sweep failed to list due drivers", "error", err)
		}
		return
	}
	if len(due) == 0 {
		return
	}

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for _, driverID := range due {
		g.Go(func() error {
			if _, err := w.runner.RunCheck(gctx, driverID, TriggerRecheck); err != nil {
				failed.Add(1)
				if w.logger != nil {
					w.logger.WarnContext(gctx, "recheck failed",
						"driver_id", driverID,
						"error", err,
					)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if w.logger != nil {
		w.logger.InfoContext(ctx, "recheck sweep completed",
			"due", len(due),
			"failed", failed.Load(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
