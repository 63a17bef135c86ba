// Package onboarding is the downstream consumer of the enquiry handoff. It
// maps the handoff record onto its own broader application draft; the mapping
// lives here, not in the handoff store, because the draft shape belongs to
// this flow.
package onboarding

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"intake/internal/enquiry/handoff"
	"intake/internal/enquiry/models"
	"intake/pkg/platform/audit"
	"intake/pkg/requestcontext"
)

// ApplicationDraft is the pre-filled starting point of an onboarding
// application. Most of its fields are collected later in that flow; the
// enquiry handoff only seeds the identification block and the pathway.
type ApplicationDraft struct {
	FirmName           string              `json:"firm_name"`
	ContactName        string              `json:"contact_name"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone"`
	Pathway            Pathway             `json:"pathway"`
	ActivityType       models.ActivityType `json:"activity_type"`
	EntityType         models.EntityType   `json:"entity_type"`
	EntityTypeOther    string              `json:"entity_type_other,omitempty"`
	CurrentlyRegulated *bool               `json:"currently_regulated,omitempty"`
	EnquirySubmittedAt time.Time           `json:"enquiry_submitted_at"`
}

// Prefiller reads the handoff record once and turns it into a draft.
type Prefiller struct {
	store  handoff.Store
	logger *slog.Logger
	sink   audit.Sink
}

func NewPrefiller(store handoff.Store, logger *slog.Logger, sink audit.Sink) *Prefiller {
	return &Prefiller{store: store, logger: logger, sink: sink}
}

// Prefill consumes the handoff record: load, map, clear. Returns (nil, nil)
// when there is nothing usable to prefill from — absent, expired and corrupt
// records all land there, and store failures degrade to the same answer
// rather than failing the onboarding flow.
func (p *Prefiller) Prefill(ctx context.Context) (*ApplicationDraft, error) {
	record, err := p.store.Load(ctx)
	if err != nil {
		if p.logger != nil {
			p.logger.WarnContext(ctx, "handoff load failed, starting onboarding empty",
				"request_id", requestcontext.RequestID(ctx),
				"error", err.Error(),
			)
		}
		return nil, nil
	}
	if record == nil {
		return nil, nil
	}

	pathway, _ := PathwayForActivity(record.ActivityType)
	draft := &ApplicationDraft{
		FirmName:           record.CompanyName,
		ContactName:        record.ContactName,
		Email:              record.Email,
		Phone:              record.Phone,
		Pathway:            pathway,
		ActivityType:       record.ActivityType,
		EntityType:         record.EntityType,
		EntityTypeOther:    record.EntityTypeOther,
		CurrentlyRegulated: record.CurrentlyRegulated,
		EnquirySubmittedAt: record.SubmittedAt,
	}

	// Consumed records are cleared so a second onboarding start does not
	// silently reuse stale enquiry data. Clear failure is best effort; the
	// TTL bounds how long a leftover record can linger.
	_ = p.store.Clear(ctx)

	if p.sink != nil {
		p.sink.Emit(ctx, audit.Event{
			ID:        uuid.New(),
			Name:      audit.EventHandoffConsumed,
			Timestamp: requestcontext.Now(ctx),
			Detail: map[string]any{
				"pathway":       string(pathway),
				"activity_type": record.ActivityType.String(),
			},
			ClientContext: requestcontext.ClientContext(ctx),
			RequestID:     requestcontext.RequestID(ctx),
		})
	}

	return draft, nil
}
