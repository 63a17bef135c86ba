package service

import (
	"context"
	"time"

	"intake/internal/enquiry/models"
)

// TransportResult is the downstream endpoint's answer to a submitted enquiry.
// ReferenceNumber and AssignedTeam are optional in the contract; the pipeline
// derives both itself and does not read them.
type TransportResult struct {
	Success         bool   `json:"success"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	AssignedTeam    string `json:"assigned_team,omitempty"`
	Message         string `json:"message,omitempty"`
}

// Transport delivers the validated enquiry to the authority's endpoint. The
// pipeline treats any Success=false result as a submission failure carrying
// the transport's message verbatim.
type Transport interface {
	SubmitEnquiry(ctx context.Context, record models.EnquiryRecord) (TransportResult, error)
}

// ReferenceSequence produces enquiry reference numbers in the
// ENQ-{year}-{5 digits} format. Implementations only guarantee format
// compliance, not global uniqueness; a real sequence generator can be swapped
// in without touching the pipeline.
type ReferenceSequence interface {
	Next(now time.Time) string
}
