package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake/internal/enquiry/models"
)

func boolPtr(v bool) *bool { return &v }

func validRecord() models.EnquiryRecord {
	return models.EnquiryRecord{
		CompanyName:  "Acme DIFC",
		ContactName:  "J Doe",
		Email:        "j@acme.com",
		Phone:        "+971501234567",
		ActivityType: models.ActivityDNFBP,
		EntityType:   models.EntityDIFCIncorporation,
		DIFCAConsent: boolPtr(true),
	}
}

func TestAllAcceptsValidRecord(t *testing.T) {
	errs := All(validRecord(), time.Now())
	assert.Empty(t, errs)
}

func TestAllReturnsUnionOfErrors(t *testing.T) {
	errs := All(models.EnquiryRecord{}, time.Now())

	// Every unconditionally required field reports, not just the first.
	for _, field := range []string{
		models.FieldCompanyName,
		models.FieldContactName,
		models.FieldEmail,
		models.FieldPhone,
		models.FieldActivityType,
		models.FieldEntityType,
		models.FieldDIFCAConsent,
	} {
		assert.True(t, errs.Has(field), "expected error for %s", field)
	}
	// Conditional fields stay quiet when their trigger is not set.
	assert.False(t, errs.Has(models.FieldEntityTypeOther))
	assert.False(t, errs.Has(models.FieldCurrentlyRegulated))
}

func TestEntityTypeOtherConditional(t *testing.T) {
	now := time.Now()

	t.Run("never required when entity type is not OTHER", func(t *testing.T) {
		for _, entity := range []models.EntityType{
			models.EntityDIFCIncorporation,
			models.EntityOtherJurisdiction,
		} {
			record := validRecord()
			record.EntityType = entity
			record.EntityTypeOther = ""
			assert.False(t, All(record, now).Has(models.FieldEntityTypeOther),
				"entity type %s should not require the description", entity)
		}
	})

	t.Run("required and length-checked when entity type is OTHER", func(t *testing.T) {
		record := validRecord()
		record.EntityType = models.EntityOther

		record.EntityTypeOther = ""
		assert.True(t, All(record, now).Has(models.FieldEntityTypeOther))

		record.EntityTypeOther = "x"
		assert.True(t, All(record, now).Has(models.FieldEntityTypeOther))

		record.EntityTypeOther = "Foundation"
		assert.False(t, All(record, now).Has(models.FieldEntityTypeOther))
	})
}

func TestCurrentlyRegulatedConditional(t *testing.T) {
	now := time.Now()

	record := validRecord()
	record.ActivityType = models.ActivityFinancialServices
	record.CurrentlyRegulated = nil
	assert.True(t, All(record, now).Has(models.FieldCurrentlyRegulated))

	// Either answer satisfies the rule; only unset fails.
	record.CurrentlyRegulated = boolPtr(false)
	assert.False(t, All(record, now).Has(models.FieldCurrentlyRegulated))

	record.ActivityType = models.ActivityCryptoToken
	record.CurrentlyRegulated = nil
	assert.False(t, All(record, now).Has(models.FieldCurrentlyRegulated))
}

func TestSuggestedDateOptionalButStrictlyFuture(t *testing.T) {
	now := time.Now()

	record := validRecord()
	record.SuggestedDate = nil
	assert.False(t, All(record, now).Has(models.FieldSuggestedDate), "omitted date is valid")

	yesterday := now.Add(-24 * time.Hour)
	record.SuggestedDate = &yesterday
	assert.True(t, All(record, now).Has(models.FieldSuggestedDate))

	record.SuggestedDate = &now
	assert.True(t, All(record, now).Has(models.FieldSuggestedDate), "now is not strictly future")

	tomorrow := now.Add(24 * time.Hour)
	record.SuggestedDate = &tomorrow
	assert.False(t, All(record, now).Has(models.FieldSuggestedDate))
}

func TestLengthBounds(t *testing.T) {
	now := time.Now()

	record := validRecord()
	record.CompanyName = "A"
	errs := All(record, now)
	require.True(t, errs.Has(models.FieldCompanyName))
	assert.Contains(t, errs[models.FieldCompanyName], "at least 2")

	record.CompanyName = strings.Repeat("a", 201)
	errs = All(record, now)
	require.True(t, errs.Has(models.FieldCompanyName))
	assert.Contains(t, errs[models.FieldCompanyName], "200 characters or less")

	record = validRecord()
	record.ContactName = strings.Repeat("b", 101)
	assert.True(t, All(record, now).Has(models.FieldContactName))
}

func TestFormatChecks(t *testing.T) {
	now := time.Now()

	for _, email := range []string{"not-an-email", "a@b", "a b@c.com"} {
		record := validRecord()
		record.Email = email
		assert.True(t, All(record, now).Has(models.FieldEmail), "email %q should fail", email)
	}

	for _, phone := range []string{"0501234567", "+0501234567", "+971 50 123", "12345"} {
		record := validRecord()
		record.Phone = phone
		assert.True(t, All(record, now).Has(models.FieldPhone), "phone %q should fail", phone)
	}

	record := validRecord()
	record.Phone = "+442071234567"
	assert.False(t, All(record, now).Has(models.FieldPhone))
}

func TestEnumMembership(t *testing.T) {
	now := time.Now()

	record := validRecord()
	record.ActivityType = "SOMETHING_ELSE"
	assert.True(t, All(record, now).Has(models.FieldActivityType))

	record = validRecord()
	record.EntityType = "LLC"
	assert.True(t, All(record, now).Has(models.FieldEntityType))
}

func TestStepValidatesOnlyGivenFields(t *testing.T) {
	now := time.Now()

	// Empty record: the contact fields fail, but nothing about later steps.
	errs := Step([]string{models.FieldCompanyName, models.FieldEmail}, models.EnquiryRecord{}, now)
	assert.True(t, errs.Has(models.FieldCompanyName))
	assert.True(t, errs.Has(models.FieldEmail))
	assert.False(t, errs.Has(models.FieldDIFCAConsent))
}

func TestFieldUnknownNameIsValid(t *testing.T) {
	assert.Empty(t, Field("no_such_field", validRecord(), time.Now()))
}
