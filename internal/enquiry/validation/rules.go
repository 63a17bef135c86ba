package validation

import (
	"regexp"

	"intake/internal/enquiry/models"
)

// Constraint is a declarative bundle of checks applied to one field value.
// Zero-valued checks are skipped, so a zero Constraint accepts anything.
type Constraint struct {
	Required        bool
	RequiredMessage string // overrides the generated "<label> is required"
	MinLen          int
	MaxLen          int
	Pattern         *regexp.Regexp
	PatternMessage  string
	FutureDate      bool
	OneOf           []string
}

// Condition selects between two constraints based on another field's value,
// read from the same record. This keeps "required iff" rules as table data
// instead of branches scattered across callers.
type Condition struct {
	On     string
	Equals string
	Then   Constraint
	Else   Constraint
}

// Rule binds a field to its constraint. When is nil for unconditional rules;
// when set, Then/Else replace Base entirely.
type Rule struct {
	Field string
	Label string
	Base  Constraint
	When  *Condition
}

var (
	// Pattern match only; mailbox existence is out of scope.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// E.164: leading +, 8 to 15 digits, no separators.
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

func activityTypeValues() []string {
	return []string{
		string(models.ActivityFinancialServices),
		string(models.ActivityDNFBP),
		string(models.ActivityRegisteredAuditor),
		string(models.ActivityCryptoToken),
		string(models.ActivityCryptoTokenRecognition),
	}
}

func entityTypeValues() []string {
	return []string{
		string(models.EntityDIFCIncorporation),
		string(models.EntityOtherJurisdiction),
		string(models.EntityOther),
	}
}

// rules is the whole validation schema for the enquiry record. Evaluation
// order is irrelevant: every rule reads the full record as read-only context
// and only ever writes an error under its own field.
var rules = []Rule{
	{
		Field: models.FieldCompanyName,
		Label: "Company name",
		Base:  Constraint{Required: true, MinLen: 2, MaxLen: 200},
	},
	{
		Field: models.FieldContactName,
		Label: "Contact name",
		Base:  Constraint{Required: true, MinLen: 2, MaxLen: 100},
	},
	{
		Field: models.FieldEmail,
		Label: "Email",
		Base: Constraint{
			Required:       true,
			Pattern:        emailPattern,
			PatternMessage: "Enter a valid email address",
		},
	},
	{
		Field: models.FieldPhone,
		Label: "Phone",
		Base: Constraint{
			Required:       true,
			Pattern:        phonePattern,
			PatternMessage: "Enter a valid phone number in international format, e.g. +971501234567",
		},
	},
	{
		Field: models.FieldSuggestedDate,
		Label: "Suggested date",
		Base:  Constraint{FutureDate: true},
	},
	{
		Field: models.FieldActivityType,
		Label: "Activity type",
		Base: Constraint{
			Required: true,
			OneOf:    activityTypeValues(),
		},
	},
	{
		Field: models.FieldEntityType,
		Label: "Entity type",
		Base: Constraint{
			Required: true,
			OneOf:    entityTypeValues(),
		},
	},
	{
		Field: models.FieldEntityTypeOther,
		Label: "Entity type description",
		When: &Condition{
			On:     models.FieldEntityType,
			Equals: string(models.EntityOther),
			Then: Constraint{
				Required:        true,
				RequiredMessage: "Describe the entity type",
				MinLen:          2,
				MaxLen:          200,
			},
		},
	},
	{
		Field: models.FieldCurrentlyRegulated,
		Label: "Current regulatory status",
		When: &Condition{
			On:     models.FieldActivityType,
			Equals: string(models.ActivityFinancialServices),
			Then: Constraint{
				Required:        true,
				RequiredMessage: "Indicate whether the firm is currently regulated elsewhere",
			},
		},
	},
	{
		Field: models.FieldDIFCAConsent,
		Label: "DIFCA data sharing decision",
		Base: Constraint{
			Required:        true,
			RequiredMessage: "Choose whether your details may be shared with DIFCA",
		},
	},
}

// fieldValue extracts the value a rule evaluates, typed as one of string,
// *time.Time or *bool. Enums are flattened to strings so conditions can
// compare them.
func fieldValue(record models.EnquiryRecord, field string) any {
	switch field {
	case models.FieldCompanyName:
		return record.CompanyName
	case models.FieldContactName:
		return record.ContactName
	case models.FieldEmail:
		return record.Email
	case models.FieldPhone:
		return record.Phone
	case models.FieldSuggestedDate:
		return record.SuggestedDate
	case models.FieldActivityType:
		return string(record.ActivityType)
	case models.FieldEntityType:
		return string(record.EntityType)
	case models.FieldEntityTypeOther:
		return record.EntityTypeOther
	case models.FieldCurrentlyRegulated:
		return record.CurrentlyRegulated
	case models.FieldDIFCAConsent:
		return record.DIFCAConsent
	default:
		return nil
	}
}
