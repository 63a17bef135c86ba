// Package worker drains a publisher inbox into a durable audit store.
package worker

import (
	"context"
	"log/slog"
	"time"

	"intake/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. Persistence
// failures are logged and the event is dropped; the worker keeps running so a
// flaky store cannot wedge the inbox.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func New(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			event = audit.Normalize(event, time.Now())
			if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.WarnContext(ctx, "audit append failed",
					"event", event.Name,
					"error", err.Error(),
				)
			}
		}
	}
}
