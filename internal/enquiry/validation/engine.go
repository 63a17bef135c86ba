// Package validation evaluates the declarative rule schema for the enquiry
// record. Rules are data (see rules.go); this file is the small interpreter
// that applies them.
package validation

import (
	"fmt"
	"time"

	"intake/internal/enquiry/models"
)

// Field evaluates the single rule owning the named field against the whole
// record and returns a message, or "" when the field is valid. Unknown fields
// have no rules and are always valid.
func Field(name string, record models.EnquiryRecord, now time.Time) string {
	for _, rule := range rules {
		if rule.Field == name {
			return evaluate(rule, record, now)
		}
	}
	return ""
}

// Step evaluates only the rules for the given fields, typically one step's
// ownership set. The record is full read-only context either way, so
// conditional rules see their trigger fields.
func Step(fields []string, record models.EnquiryRecord, now time.Time) ErrorSet {
	errs := ErrorSet{}
	for _, field := range fields {
		if message := Field(field, record, now); message != "" {
			errs.Add(field, message)
		}
	}
	return errs
}

// All evaluates every rule and returns the union of field errors, not just
// the first. Rule order is irrelevant; each rule only keys its own field.
func All(record models.EnquiryRecord, now time.Time) ErrorSet {
	errs := ErrorSet{}
	for _, rule := range rules {
		if message := evaluate(rule, record, now); message != "" {
			errs.Add(rule.Field, message)
		}
	}
	return errs
}

func evaluate(rule Rule, record models.EnquiryRecord, now time.Time) string {
	constraint := rule.Base
	if rule.When != nil {
		trigger, _ := fieldValue(record, rule.When.On).(string)
		if trigger == rule.When.Equals {
			constraint = rule.When.Then
		} else {
			constraint = rule.When.Else
		}
	}
	return check(rule.Label, constraint, fieldValue(record, rule.Field), now)
}

func check(label string, c Constraint, value any, now time.Time) string {
	switch v := value.(type) {
	case string:
		return checkString(label, c, v)
	case *time.Time:
		return checkDate(label, c, v, now)
	case *bool:
		if c.Required && v == nil {
			return requiredMessage(label, c)
		}
		return ""
	default:
		return ""
	}
}

func checkString(label string, c Constraint, v string) string {
	if v == "" {
		if c.Required {
			return requiredMessage(label, c)
		}
		return ""
	}
	if c.MinLen > 0 && len([]rune(v)) < c.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", label, c.MinLen)
	}
	if c.MaxLen > 0 && len([]rune(v)) > c.MaxLen {
		return fmt.Sprintf("%s must be %d characters or less", label, c.MaxLen)
	}
	if c.Pattern != nil && !c.Pattern.MatchString(v) {
		if c.PatternMessage != "" {
			return c.PatternMessage
		}
		return fmt.Sprintf("%s has an invalid format", label)
	}
	if len(c.OneOf) > 0 && !contains(c.OneOf, v) {
		return fmt.Sprintf("%s is not a supported option", label)
	}
	return ""
}

// checkDate treats a nil date as absent: the field is optional unless
// Required is set, and the future check uses the clock at the validation call.
func checkDate(label string, c Constraint, v *time.Time, now time.Time) string {
	if v == nil {
		if c.Required {
			return requiredMessage(label, c)
		}
		return ""
	}
	if c.FutureDate && !v.After(now) {
		return fmt.Sprintf("%s must be in the future", label)
	}
	return ""
}

func requiredMessage(label string, c Constraint) string {
	if c.RequiredMessage != "" {
		return c.RequiredMessage
	}
	return fmt.Sprintf("%s is required", label)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
