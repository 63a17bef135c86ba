package audit

import "context"

// Fanout emits each event to every configured sink in order. A slow or broken
// sink only affects itself; each Emit already carries the fire-and-forget
// contract.
type Fanout []Sink

func (f Fanout) Emit(ctx context.Context, event Event) {
	for _, sink := range f {
		sink.Emit(ctx, event)
	}
}
