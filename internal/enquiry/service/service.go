// Package service orchestrates the enquiry form: the submission pipeline
// (validation, reference and team assignment, handoff persistence, audit
// trail) and the form controller that drives the step machine.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"intake/internal/enquiry/handoff"
	"intake/internal/enquiry/metrics"
	"intake/internal/enquiry/models"
	"intake/internal/enquiry/validation"
	"intake/pkg/platform/audit"
	"intake/pkg/requestcontext"
)

// Service is the submission pipeline. It owns no record state; forms hand it
// a complete record and it runs the submit algorithm to completion.
type Service struct {
	transport Transport
	handoff   handoff.Store
	refs      ReferenceSequence
	sink      audit.Sink
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAudit(sink audit.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithReferenceSequence(refs ReferenceSequence) Option {
	return func(s *Service) { s.refs = refs }
}

func New(transport Transport, store handoff.Store, opts ...Option) *Service {
	s := &Service{
		transport: transport,
		handoff:   store,
		refs:      TimeSequence{},
		tracer:    otel.Tracer("intake/enquiry"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs the full pipeline for a finished record:
//
//  1. audit the attempt (non-sensitive identifying fields only)
//  2. validate the entire record; abort with ValidationError on any finding
//  3. deliver to the downstream transport; its failures surface verbatim
//  4. derive the reference number and assigned team
//  5. write the handoff record (best effort; failures never surface)
//  6. audit the consent decision and the overall success
//
// Validation failures never reach the transport, and nothing is persisted on
// any failure path. The pipeline does not retry.
func (s *Service) Submit(ctx context.Context, record models.EnquiryRecord) (models.SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "enquiry.submit")
	defer span.End()

	now := requestcontext.Now(ctx)

	s.emit(ctx, audit.EventSubmissionAttempted, map[string]any{
		"company_name":  record.CompanyName,
		"activity_type": record.ActivityType.String(),
	})

	if errs := validation.All(record, now); len(errs) > 0 {
		s.emit(ctx, audit.EventValidationFailed, map[string]any{
			"fields": errs.Fields(),
		})
		s.metrics.IncSubmission(metrics.OutcomeValidationFailed)
		return models.SubmissionResult{}, &ValidationError{Errors: errs}
	}

	result, err := s.transport.SubmitEnquiry(ctx, record)
	if err != nil {
		span.RecordError(err)
		s.emit(ctx, audit.EventSubmissionFailed, map[string]any{"error": err.Error()})
		s.metrics.IncSubmission(metrics.OutcomeTransportFailed)
		return models.SubmissionResult{}, &SubmissionError{Message: err.Error()}
	}
	if !result.Success {
		s.emit(ctx, audit.EventSubmissionFailed, map[string]any{"error": result.Message})
		s.metrics.IncSubmission(metrics.OutcomeTransportFailed)
		return models.SubmissionResult{}, &SubmissionError{Message: result.Message}
	}

	reference := s.refs.Next(now)
	team := models.TeamForActivity(record.ActivityType)

	if err := s.handoff.Save(ctx, handoff.Record{EnquiryRecord: record, SubmittedAt: now}); err != nil {
		// Best effort: the onboarding prefill degrades to an empty form.
		if s.logger != nil {
			s.logger.WarnContext(ctx, "handoff save failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err.Error(),
			)
		}
		s.emit(ctx, audit.EventHandoffSaveFailed, map[string]any{"error": err.Error()})
	}

	consentEvent := audit.EventConsentDeclined
	if record.DIFCAConsent != nil && *record.DIFCAConsent {
		consentEvent = audit.EventConsentGranted
	}
	s.emit(ctx, consentEvent, map[string]any{"company_name": record.CompanyName})

	s.emit(ctx, audit.EventSubmissionSucceeded, map[string]any{
		"reference_number": reference,
		"assigned_team":    string(team),
	})
	s.metrics.IncSubmission(metrics.OutcomeSucceeded)
	span.SetAttributes(
		attribute.String("enquiry.reference_number", reference),
		attribute.String("enquiry.assigned_team", string(team)),
	)

	return models.SubmissionResult{
		ReferenceNumber: reference,
		AssignedTeam:    team,
		SubmittedAt:     now,
		Success:         true,
	}, nil
}

// emit sends one audit event enriched with request-scoped context. Emission is
// fire-and-forget; sinks own their failures.
func (s *Service) emit(ctx context.Context, name string, detail map[string]any) {
	if s.sink == nil {
		return
	}
	s.sink.Emit(ctx, audit.Event{
		ID:            uuid.New(),
		Name:          name,
		Timestamp:     requestcontext.Now(ctx),
		Detail:        detail,
		ClientContext: requestcontext.ClientContext(ctx),
		RequestID:     requestcontext.RequestID(ctx),
	})
}
