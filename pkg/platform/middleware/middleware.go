// Package middleware provides the chi middleware chain shared by the enquiry
// API: panic recovery, request IDs, request time pinning, and client-context
// derivation for audit events.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"intake/pkg/requestcontext"
)

// Recovery converts handler panics into 500 responses instead of tearing down
// the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if logger != nil {
						logger.ErrorContext(r.Context(), "handler panic",
							"panic", rec,
							"path", r.URL.Path,
						)
					}
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID assigns each request a UUID (or adopts the caller's X-Request-ID)
// and echoes it back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime pins a single observation of the clock to the request context so
// validation and TTL checks within one request agree on "now".
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientContext derives a short human-readable browser/OS description from the
// User-Agent header. Audit events carry it as their client context; it is
// descriptive only and never used for decisions.
func ClientContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.UserAgent()
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		ua := useragent.New(raw)
		name, version := ua.Browser()
		desc := name
		if version != "" {
			desc += " " + version
		}
		if os := ua.OS(); os != "" {
			desc += " on " + os
		}
		ctx := requestcontext.WithClientContext(r.Context(), desc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
