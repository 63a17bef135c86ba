// Package models holds the enquiry domain types. The EnquiryRecord is the
// working data of the multi-step regulatory enquiry form; it is owned by one
// form controller at a time and crosses package boundaries by value.
package models

import (
	"time"

	dErrors "intake/pkg/domain-errors"
)

// ActivityType is the regulated activity the enquirer intends to carry on.
//
// Usage: construct via ParseActivityType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ActivityType string

const (
	ActivityFinancialServices      ActivityType = "FINANCIAL_SERVICES"
	ActivityDNFBP                  ActivityType = "DNFBP"
	ActivityRegisteredAuditor      ActivityType = "REGISTERED_AUDITOR"
	ActivityCryptoToken            ActivityType = "CRYPTO_TOKEN"
	ActivityCryptoTokenRecognition ActivityType = "CRYPTO_TOKEN_RECOGNITION"
)

// validActivityTypes is the single source of truth for supported activities.
var validActivityTypes = map[ActivityType]bool{
	ActivityFinancialServices:      true,
	ActivityDNFBP:                  true,
	ActivityRegisteredAuditor:      true,
	ActivityCryptoToken:            true,
	ActivityCryptoTokenRecognition: true,
}

// ParseActivityType constructs an ActivityType from external input.
func ParseActivityType(s string) (ActivityType, error) {
	a := ActivityType(s)
	if !a.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid activity type")
	}
	return a, nil
}

// IsValid checks if the activity is one of the supported enum values.
func (a ActivityType) IsValid() bool {
	return validActivityTypes[a]
}

func (a ActivityType) String() string {
	return string(a)
}

// EntityType describes the legal form the enquirer intends to operate under.
type EntityType string

const (
	EntityDIFCIncorporation EntityType = "DIFC_INCORPORATION"
	EntityOtherJurisdiction EntityType = "OTHER_JURISDICTION"
	EntityOther             EntityType = "OTHER"
)

var validEntityTypes = map[EntityType]bool{
	EntityDIFCIncorporation: true,
	EntityOtherJurisdiction: true,
	EntityOther:             true,
}

// ParseEntityType constructs an EntityType from external input.
func ParseEntityType(s string) (EntityType, error) {
	e := EntityType(s)
	if !e.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid entity type")
	}
	return e, nil
}

// IsValid checks if the entity type is one of the supported enum values.
func (e EntityType) IsValid() bool {
	return validEntityTypes[e]
}

func (e EntityType) String() string {
	return string(e)
}

// AssignedTeam is the internal reviewing group determined solely by activity
// type.
type AssignedTeam string

const (
	TeamAuthorisation     AssignedTeam = "AUTHORISATION_TEAM"
	TeamDNFBPRegistration AssignedTeam = "DNFBP_REGISTRATION_TEAM"
	TeamAuditRegistration AssignedTeam = "AUDIT_REGISTRATION_TEAM"
	TeamCryptoInnovation  AssignedTeam = "CRYPTO_INNOVATION_TEAM"
)

// TeamForActivity maps an activity type to its reviewing team. The mapping is
// total over the supported activity enum; unknown activities (which cannot
// survive validation) map to the empty team.
func TeamForActivity(activity ActivityType) AssignedTeam {
	switch activity {
	case ActivityFinancialServices:
		return TeamAuthorisation
	case ActivityDNFBP:
		return TeamDNFBPRegistration
	case ActivityRegisteredAuditor:
		return TeamAuditRegistration
	case ActivityCryptoToken, ActivityCryptoTokenRecognition:
		return TeamCryptoInnovation
	default:
		return ""
	}
}

// Wire names of EnquiryRecord fields. Validation rules, step ownership, error
// sets and the PATCH field API all key on these, so they live with the record.
const (
	FieldCompanyName        = "company_name"
	FieldContactName        = "contact_name"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldSuggestedDate      = "suggested_date"
	FieldActivityType       = "activity_type"
	FieldEntityType         = "entity_type"
	FieldEntityTypeOther    = "entity_type_other"
	FieldCurrentlyRegulated = "currently_regulated"
	FieldDIFCAConsent       = "difca_consent"
)

// EnquiryRecord is the form's working data.
//
// Invariants:
//   - EntityTypeOther is required exactly when EntityType is OTHER
//   - CurrentlyRegulated is required exactly when ActivityType is
//     FINANCIAL_SERVICES; it is tri-state (nil means unanswered)
//   - DIFCAConsent has no default; nil means the question was not answered,
//     and validation rejects submission until it is
//
// Both conditional requirements are enforced by the validation rule table, not
// scattered through the UI layer.
type EnquiryRecord struct {
	CompanyName        string       `json:"company_name"`
	ContactName        string       `json:"contact_name"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	SuggestedDate      *time.Time   `json:"suggested_date,omitempty"`
	ActivityType       ActivityType `json:"activity_type"`
	EntityType         EntityType   `json:"entity_type"`
	EntityTypeOther    string       `json:"entity_type_other,omitempty"`
	CurrentlyRegulated *bool        `json:"currently_regulated,omitempty"`
	DIFCAConsent       *bool        `json:"difca_consent,omitempty"`
}

// SubmissionResult is returned by the submission pipeline on success.
type SubmissionResult struct {
	ReferenceNumber string       `json:"reference_number"`
	AssignedTeam    AssignedTeam `json:"assigned_team"`
	SubmittedAt     time.Time    `json:"submitted_at"`
	Success         bool         `json:"success"`
}
