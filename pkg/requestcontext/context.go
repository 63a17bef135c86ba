// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services and stores only read them. Keeping
// the package free of net/http lets domain code import it without pulling in
// transport concerns.
//
// Usage in services (read values):
//
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithClientContext(ctx, "Chrome 120 on Windows")
package requestcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Context key types (unexported for encapsulation).
type (
	requestIDKey     struct{}
	requestTimeKey   struct{}
	sessionIDKey     struct{}
	clientContextKey struct{}
)

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// SessionID retrieves the authenticated form session ID from the context.
// Returns uuid.Nil if not set.
func SessionID(ctx context.Context) uuid.UUID {
	if sessionID, ok := ctx.Value(sessionIDKey{}).(uuid.UUID); ok {
		return sessionID
	}
	return uuid.Nil
}

// WithSessionID injects a form session ID into the context.
func WithSessionID(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// ClientContext retrieves the human-readable client description (browser and
// OS, derived from the User-Agent header) used to annotate audit events.
func ClientContext(ctx context.Context) string {
	if cc, ok := ctx.Value(clientContextKey{}).(string); ok {
		return cc
	}
	return ""
}

// WithClientContext injects a client description into the context.
func WithClientContext(ctx context.Context, clientContext string) context.Context {
	return context.WithValue(ctx, clientContextKey{}, clientContext)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like workers,
// CLI, tests that don't care about time).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for tests that
// exercise TTL expiry and future-date validation deterministically.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
