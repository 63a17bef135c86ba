// Package sinks provides audit.Sink implementations. The console sink is the
// dev default; the kafka sink feeds a durable pipeline. Both honor the
// fire-and-forget contract: nothing propagates back to the emitting caller.
package sinks

import (
	"context"
	"log/slog"

	"intake/pkg/platform/audit"
)

// Console writes audit events to the structured logger. This is the default
// sink for local development.
type Console struct {
	logger *slog.Logger
}

func NewConsole(logger *slog.Logger) *Console {
	return &Console{logger: logger}
}

func (c *Console) Emit(ctx context.Context, event audit.Event) {
	if c.logger == nil {
		return
	}
	args := []any{
		"log_type", "audit",
		"event_id", event.ID.String(),
	}
	if event.RequestID != "" {
		args = append(args, "request_id", event.RequestID)
	}
	if event.ClientContext != "" {
		args = append(args, "client_context", event.ClientContext)
	}
	for k, v := range event.Detail {
		args = append(args, k, v)
	}
	c.logger.InfoContext(ctx, event.Name, args...)
}
