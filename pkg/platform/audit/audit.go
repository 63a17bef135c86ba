// Package audit provides the append-only audit event model and the pluggable
// sink contract used by the enquiry flow to record state transitions.
//
// Emission call sites stay stable while the sink behind them (console, kafka,
// durable store) is swapped by wiring. Sinks are fire-and-forget: Emit never
// returns an error and must never panic back into the caller, so audit failure
// cannot fail the operation being audited.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a single append-only audit record. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Timestamp     time.Time      `json:"timestamp"`
	Detail        map[string]any `json:"detail,omitempty"`
	ClientContext string         `json:"client_context,omitempty"`
	RequestID     string         `json:"request_id,omitempty"`
}

// Audit event names emitted by the enquiry subsystem.
const (
	EventFormOpened          = "enquiry_form_opened"
	EventFormClosed          = "enquiry_form_closed"
	EventStepAdvanced        = "enquiry_step_advanced"
	EventStepReturned        = "enquiry_step_returned"
	EventSubmissionAttempted = "enquiry_submission_attempted"
	EventValidationFailed    = "enquiry_validation_failed"
	EventSubmissionFailed    = "enquiry_submission_failed"
	EventSubmissionSucceeded = "enquiry_submission_succeeded"
	EventConsentGranted      = "difca_consent_granted"
	EventConsentDeclined     = "difca_consent_declined"
	EventHandoffSaveFailed   = "enquiry_handoff_save_failed"
	EventHandoffConsumed     = "enquiry_handoff_consumed"
)

// Sink consumes audit events. Implementations must swallow their own failures;
// a sink error is never the caller's problem.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// Store persists audit events for later inspection. Append-only by contract:
// there is no delete operation.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Normalize fills the identity fields an emitter usually leaves blank.
func Normalize(event Event, now time.Time) Event {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	return event
}
