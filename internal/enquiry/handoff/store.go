// Package handoff carries a submitted enquiry into the separate onboarding
// flow. One record, one key, explicit TTL on read: the expiry and
// corruption-tolerance rules live here so no call site has to re-implement
// them.
package handoff

import (
	"context"
	"time"

	"intake/internal/enquiry/models"
)

// RecordTTL is the window after which a persisted handoff record is treated
// as stale and discarded on read.
const RecordTTL = 24 * time.Hour

// Record is the enquiry data handed to the onboarding flow, stamped with the
// submission time that anchors the TTL.
type Record struct {
	models.EnquiryRecord
	SubmittedAt time.Time `json:"submitted_at"`
}

// Expired reports whether the record is older than the TTL at the given time.
func (r Record) Expired(now time.Time) bool {
	return now.Sub(r.SubmittedAt) > RecordTTL
}

// Store persists at most one handoff record under a fixed key.
//
// Load returns (nil, nil) for absent data, for a record past its TTL (which is
// implicitly cleared) and for corrupt stored data (also cleared) — stale or
// unreadable state is never surfaced to the caller. Save stamps SubmittedAt
// with the request time when the caller left it zero.
type Store interface {
	Save(ctx context.Context, record Record) error
	Load(ctx context.Context) (*Record, error)
	Clear(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
}
