// Package worker decouples audit emission from request latency: services
// emit into a bounded channel and the worker drains it into the store and,
// when configured, the Kafka publisher.
package worker

import (
	"context"
	"log/slog"

	audit "driveguard/pkg/platform/audit"
)

type Worker struct {
	store     audit.Store
	publisher audit.Emitter
	inbox     chan audit.Event
	logger    *slog.Logger
}

type Option func(*Worker)

func WithPublisher(publisher audit.Emitter) Option {
	return func(w *Worker) {
		w.publisher = publisher
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithBuffer(size int) Option {
	return func(w *Worker) {
		w.inbox = make(chan audit.Event, size)
	}
}

func New(store audit.Store, opts ...Option) *Worker {
	w := &Worker{
		store: store,
		inbox: make(chan audit.Event, 256),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Emit queues an event without blocking the caller. When the buffer is full
// the event is dropped and counted against the log; audit emission must
// never stall a compliance check.
func (w *Worker) Emit(ctx context.Context, event audit.Event) error {
	select {
	case w.inbox <- event:
		return nil
	default:
		if w.logger != nil {
			w.logger.WarnContext(ctx, "audit buffer full, event dropped",
				"action", event.Action,
			)
		}
		return nil
	}
}

// Run drains the inbox until the context is cancelled. Store failures are
// logged and skipped so one bad event cannot wedge the queue.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			w.process(ctx, event)
		}
	}
}

func (w *Worker) process(ctx context.Context, event audit.Event) {
	if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
		w.logger.ErrorContext(ctx, "audit store append failed",
			"action", event.Action,
			"error", err,
		)
	}
	if w.publisher == nil {
		return
	}
	if err := w.publisher.Emit(ctx, event); err != nil && w.logger != nil {
		w.logger.ErrorContext(ctx, "audit publish failed",
			"action", event.Action,
			"error", err,
		)
	}
}
