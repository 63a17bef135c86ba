// Package handler exposes the enquiry form over HTTP for the UI shell. The
// handler is a thin shell: field parsing, step movement and submission all
// live in the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"intake/internal/enquiry/service"
	"intake/internal/enquiry/sessions"
	"intake/internal/sessiontoken"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/platform/middleware"
	"intake/pkg/platform/sentinel"
	"intake/pkg/requestcontext"
)

type Handler struct {
	logger   *slog.Logger
	pipeline *service.Service
	sessions *sessions.Store
	tokens   *sessiontoken.Service
}

func New(pipeline *service.Service, store *sessions.Store, tokens *sessiontoken.Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		pipeline: pipeline,
		sessions: store,
		tokens:   tokens,
	}
}

// Register mounts the enquiry routes on the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/enquiries", h.handleCreateSession)

	r.Route("/v1/enquiries/{sessionID}", func(r chi.Router) {
		r.Use(middleware.RequireSession(h.tokens, h.logger))
		r.Get("/", h.handleGetState)
		r.Patch("/fields", h.handleUpdateFields)
		r.Post("/next", h.handleNext)
		r.Post("/back", h.handleBack)
		r.Post("/submit", h.handleSubmit)
		r.Delete("/", h.handleClose)
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form := h.pipeline.NewForm(ctx)
	sessionID := h.sessions.Create(form)

	token, err := h.tokens.Generate(sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "session token generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		h.sessions.Delete(sessionID)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "could not open enquiry session"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, newSessionResponse(sessionID, token, form))
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	sessionID, form, ok := h.form(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sessionID, "", form))
}

func (h *Handler) handleUpdateFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, form, ok := h.form(w, r)
	if !ok {
		return
	}

	var req updateFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	for _, update := range req.Fields {
		if err := form.SetField(ctx, update.Name, update.Value); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sessionID, "", form))
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, form, ok := h.form(w, r)
	if !ok {
		return
	}

	// A blocked advance is not an HTTP error: the state carries the field
	// errors for inline rendering.
	form.Next(ctx)
	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sessionID, "", form))
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, form, ok := h.form(w, r)
	if !ok {
		return
	}

	form.Back(ctx)
	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sessionID, "", form))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, form, ok := h.form(w, r)
	if !ok {
		return
	}

	_, err := form.Submit(ctx)
	if err != nil {
		var validationErr *service.ValidationError
		var submissionErr *service.SubmissionError
		switch {
		case errors.As(err, &validationErr):
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, newSessionResponse(sessionID, "", form))
		case errors.As(err, &submissionErr):
			httputil.WriteJSON(w, http.StatusBadGateway, newSessionResponse(sessionID, "", form))
		default:
			httputil.WriteError(w, err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sessionID, "", form))
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, form, ok := h.form(w, r)
	if !ok {
		return
	}

	form.Close(ctx)
	h.sessions.Delete(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// form resolves the session from the URL, writing the error response itself
// when the session is unknown.
func (h *Handler) form(w http.ResponseWriter, r *http.Request) (uuid.UUID, *service.Form, bool) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed session id"))
		return uuid.Nil, nil, false
	}

	form, err := h.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "enquiry session not found"))
			return uuid.Nil, nil, false
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "could not load enquiry session"))
		return uuid.Nil, nil, false
	}
	return sessionID, form, true
}
