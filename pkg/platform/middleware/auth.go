package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"intake/pkg/requestcontext"
)

// SessionTokenValidator checks a bearer token and returns the form session it
// was issued for.
type SessionTokenValidator interface {
	Validate(token string) (uuid.UUID, error)
}

// RequireSession validates the bearer token and ensures it matches the
// sessionID path parameter, so one form's token cannot drive another form.
func RequireSession(validator SessionTokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			sessionID, err := validator.Validate(token)
			if err != nil {
				if logger != nil {
					logger.WarnContext(r.Context(), "session token rejected",
						"request_id", requestcontext.RequestID(r.Context()),
						"error", err.Error(),
					)
				}
				http.Error(w, "invalid session token", http.StatusUnauthorized)
				return
			}

			if pathID := chi.URLParam(r, "sessionID"); pathID != "" && pathID != sessionID.String() {
				http.Error(w, "token does not match session", http.StatusForbidden)
				return
			}

			ctx := requestcontext.WithSessionID(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
