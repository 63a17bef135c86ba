package audit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Publisher decouples emission from persistence with a bounded inbox. Emit
// never blocks: when the inbox is full the event is dropped and counted, which
// keeps audit logging off the caller's critical path. Pair it with a
// worker.Worker draining Inbox into a durable Store.
type Publisher struct {
	inbox   chan Event
	dropped atomic.Int64
	logger  *slog.Logger
}

const defaultInboxCapacity = 1024

// NewPublisher creates a publisher with the given inbox capacity.
// Capacity <= 0 uses the default.
func NewPublisher(capacity int, logger *slog.Logger) *Publisher {
	if capacity <= 0 {
		capacity = defaultInboxCapacity
	}
	return &Publisher{
		inbox:  make(chan Event, capacity),
		logger: logger,
	}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	select {
	case p.inbox <- event:
	default:
		p.dropped.Add(1)
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit inbox full, event dropped",
				"event", event.Name,
				"dropped_total", p.dropped.Load(),
			)
		}
	}
}

// Inbox exposes the event channel for a draining worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Dropped returns the number of events discarded because the inbox was full.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}
