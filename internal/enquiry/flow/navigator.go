// Package flow is the step state machine of the enquiry form: five logical
// steps, one conditionally skipped, plus the field-to-step ownership table.
// Everything here is pure and reads the record as context, which keeps the
// machine testable independent of rendering.
package flow

import (
	"intake/internal/enquiry/models"
	"intake/internal/enquiry/validation"
)

// Step is the internal state of the form. The internal value is stable even
// when display numbering compresses around the skipped step; validation and
// navigation always use the internal value.
type Step int

const (
	StepContact Step = iota + 1
	StepActivityType
	StepEntityType
	StepRegulatoryStatus
	StepDataConsent
)

const (
	FirstStep = StepContact
	FinalStep = StepDataConsent
)

var stepTitles = map[Step]string{
	StepContact:          "Contact Details",
	StepActivityType:     "Activity Type",
	StepEntityType:       "Entity Type",
	StepRegulatoryStatus: "Regulatory Status",
	StepDataConsent:      "Data Consent",
}

// stepFields maps each step to the record fields it owns, in display order.
// The order matters: FirstErrorStep breaks ties within a step by it.
var stepFields = map[Step][]string{
	StepContact: {
		models.FieldCompanyName,
		models.FieldContactName,
		models.FieldEmail,
		models.FieldPhone,
		models.FieldSuggestedDate,
	},
	StepActivityType:     {models.FieldActivityType},
	StepEntityType:       {models.FieldEntityType, models.FieldEntityTypeOther},
	StepRegulatoryStatus: {models.FieldCurrentlyRegulated},
	StepDataConsent:      {models.FieldDIFCAConsent},
}

func (s Step) String() string {
	if title, ok := stepTitles[s]; ok {
		return title
	}
	return "Unknown"
}

// Title returns the human-readable step title.
func Title(s Step) string {
	return s.String()
}

// Fields returns a copy of the fields owned by the step.
func Fields(s Step) []string {
	owned := stepFields[s]
	out := make([]string, len(owned))
	copy(out, owned)
	return out
}

// StepOf returns the step owning the given field.
func StepOf(field string) (Step, bool) {
	for s := FirstStep; s <= FinalStep; s++ {
		for _, owned := range stepFields[s] {
			if owned == field {
				return s, true
			}
		}
	}
	return 0, false
}

// SkipRegulatoryStatus reports whether the regulatory status step is hidden
// for this record. Only firms declaring financial services activity answer it.
func SkipRegulatoryStatus(record models.EnquiryRecord) bool {
	return record.ActivityType != models.ActivityFinancialServices
}

// Next computes the step after current, applying the skip rule and capping at
// the terminal step.
func Next(current Step, record models.EnquiryRecord) Step {
	if current == StepEntityType && SkipRegulatoryStatus(record) {
		return StepDataConsent
	}
	if current >= FinalStep {
		return FinalStep
	}
	return current + 1
}

// Prev computes the step before current, applying the skip rule and flooring
// at the first step.
func Prev(current Step, record models.EnquiryRecord) Step {
	if current == StepDataConsent && SkipRegulatoryStatus(record) {
		return StepEntityType
	}
	if current <= FirstStep {
		return FirstStep
	}
	return current - 1
}

// TotalVisible is the number of steps shown to the user for this record.
func TotalVisible(record models.EnquiryRecord) int {
	if SkipRegulatoryStatus(record) {
		return 4
	}
	return 5
}

// DisplayNumber remaps the internal step to the number shown in the progress
// indicator. Purely cosmetic: when the regulatory status step is skipped the
// consent step displays as 4 while remaining internal step 5.
func DisplayNumber(s Step, record models.EnquiryRecord) int {
	if s > StepRegulatoryStatus && SkipRegulatoryStatus(record) {
		return int(s) - 1
	}
	return int(s)
}

// FirstErrorStep returns the earliest step owning an erroring field, used to
// reroute the user after full-record validation fails. Ties within a step
// resolve by the step's field order.
func FirstErrorStep(errs validation.ErrorSet) (Step, bool) {
	for s := FirstStep; s <= FinalStep; s++ {
		for _, field := range stepFields[s] {
			if errs.Has(field) {
				return s, true
			}
		}
	}
	return 0, false
}
