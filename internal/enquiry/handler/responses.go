package handler

import (
	"github.com/google/uuid"

	"intake/internal/enquiry/service"
)

type sessionResponse struct {
	SessionID uuid.UUID         `json:"session_id"`
	Token     string            `json:"token,omitempty"`
	State     service.FormState `json:"state"`
}

func newSessionResponse(id uuid.UUID, token string, form *service.Form) sessionResponse {
	return sessionResponse{
		SessionID: id,
		Token:     token,
		State:     form.State(),
	}
}
