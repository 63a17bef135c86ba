package onboarding

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake/pkg/platform/httputil"
)

// Handler exposes the prefill read to the onboarding UI shell.
type Handler struct {
	prefiller *Prefiller
}

func NewHandler(prefiller *Prefiller) *Handler {
	return &Handler{prefiller: prefiller}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/onboarding/prefill", h.handlePrefill)
}

// handlePrefill returns the mapped draft, or 204 when there is no handoff
// record to start from.
func (h *Handler) handlePrefill(w http.ResponseWriter, r *http.Request) {
	draft, err := h.prefiller.Prefill(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if draft == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, draft)
}
