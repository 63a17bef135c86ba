package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake/internal/enquiry/flow"
	"intake/internal/enquiry/handoff"
	"intake/internal/enquiry/models"
	"intake/internal/enquiry/service"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/audit"
)

func newForm(t *testing.T, transport service.Transport, opts ...service.Option) (*service.Form, context.Context) {
	t.Helper()
	ctx, _ := pinnedContext(t)
	svc := service.New(transport, handoff.NewInMemoryStore(), opts...)
	return svc.NewForm(ctx), ctx
}

// setFields applies updates in order; order matters for dependent fields.
func setFields(t *testing.T, ctx context.Context, form *service.Form, pairs [][2]string) {
	t.Helper()
	for _, pair := range pairs {
		require.NoError(t, form.SetField(ctx, pair[0], pair[1]))
	}
}

func dnfbpFields() [][2]string {
	return [][2]string{
		{models.FieldCompanyName, "Acme DIFC"},
		{models.FieldContactName, "J Doe"},
		{models.FieldEmail, "j@acme.com"},
		{models.FieldPhone, "+971501234567"},
		{models.FieldActivityType, "DNFBP"},
		{models.FieldEntityType, "DIFC_INCORPORATION"},
		{models.FieldDIFCAConsent, "true"},
	}
}

func advance(t *testing.T, ctx context.Context, form *service.Form) flow.Step {
	t.Helper()
	step, errs := form.Next(ctx)
	require.Empty(t, errs)
	return step
}

func TestFormSkipsRegulatoryStatusForNonFinancialServices(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})
	fields := dnfbpFields()
	fields[4] = [2]string{models.FieldActivityType, "CRYPTO_TOKEN"}
	setFields(t, ctx, form, fields)

	assert.Equal(t, 4, form.State().TotalSteps)

	assert.Equal(t, flow.StepActivityType, advance(t, ctx, form))
	assert.Equal(t, flow.StepEntityType, advance(t, ctx, form))
	assert.Equal(t, flow.StepDataConsent, advance(t, ctx, form))

	state := form.State()
	assert.Equal(t, int(flow.StepDataConsent), state.Step)
	assert.Equal(t, 4, state.DisplayStep)
	assert.Equal(t, "Data Consent", state.Title)
}

func TestFormFinancialServicesVisitsEveryStep(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})
	fields := dnfbpFields()
	fields[4] = [2]string{models.FieldActivityType, "FINANCIAL_SERVICES"}
	setFields(t, ctx, form, fields)
	require.NoError(t, form.SetField(ctx, models.FieldCurrentlyRegulated, "true"))

	assert.Equal(t, 5, form.State().TotalSteps)

	assert.Equal(t, flow.StepActivityType, advance(t, ctx, form))
	assert.Equal(t, flow.StepEntityType, advance(t, ctx, form))
	assert.Equal(t, flow.StepRegulatoryStatus, advance(t, ctx, form))
	assert.Equal(t, flow.StepDataConsent, advance(t, ctx, form))
}

func TestFormNextBlockedByCurrentStepErrors(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})

	step, errs := form.Next(ctx)
	assert.Equal(t, flow.StepContact, step)
	assert.Contains(t, errs, models.FieldCompanyName)
	assert.Contains(t, errs, models.FieldEmail)
	// Later steps are not validated on a step advance.
	assert.NotContains(t, errs, models.FieldActivityType)
	assert.NotContains(t, errs, models.FieldDIFCAConsent)

	assert.Equal(t, int(flow.StepContact), form.State().Step)
}

func TestFormBackFloorsAtFirstStep(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})
	assert.Equal(t, flow.StepContact, form.Back(ctx))
}

func TestFormBackSkipsRegulatoryStatus(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})
	setFields(t, ctx, form, dnfbpFields())

	advance(t, ctx, form)
	advance(t, ctx, form)
	require.Equal(t, flow.StepDataConsent, advance(t, ctx, form))

	assert.Equal(t, flow.StepEntityType, form.Back(ctx))
}

func TestSetFieldClearsDependentFields(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})

	setFields(t, ctx, form, [][2]string{
		{models.FieldEntityType, "OTHER"},
		{models.FieldEntityTypeOther, "Family office"},
		{models.FieldEntityType, "DIFC_INCORPORATION"},
	})
	assert.Empty(t, form.State().Record.EntityTypeOther)

	setFields(t, ctx, form, [][2]string{
		{models.FieldActivityType, "FINANCIAL_SERVICES"},
		{models.FieldCurrentlyRegulated, "true"},
		{models.FieldActivityType, "DNFBP"},
	})
	assert.Nil(t, form.State().Record.CurrentlyRegulated)
}

func TestSetFieldRejectsBadInput(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})

	err := form.SetField(ctx, models.FieldSuggestedDate, "next tuesday")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	err = form.SetField(ctx, models.FieldDIFCAConsent, "yes")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	err = form.SetField(ctx, "favourite_colour", "blue")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestFormSubmitEndToEnd(t *testing.T) {
	recorder := audit.NewRecorder()
	form, ctx := newForm(t, service.MockTransport{}, service.WithAudit(recorder))
	setFields(t, ctx, form, dnfbpFields())

	advance(t, ctx, form)
	advance(t, ctx, form)
	advance(t, ctx, form)

	result, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.TeamDNFBPRegistration, result.AssignedTeam)
	assert.Regexp(t, referencePattern, result.ReferenceNumber)

	state := form.State()
	require.NotNil(t, state.Result)
	assert.Empty(t, state.Banner)
	assert.False(t, state.Submitting)

	// A full successful session leaves a trail: open, three advances, the
	// attempt, the consent decision, and the success.
	events := recorder.Events()
	assert.GreaterOrEqual(t, len(events), 4)
	assert.Len(t, recorder.Named(audit.EventFormOpened), 1)
	assert.Len(t, recorder.Named(audit.EventStepAdvanced), 3)
	assert.Len(t, recorder.Named(audit.EventSubmissionAttempted), 1)
	assert.Len(t, recorder.Named(audit.EventConsentGranted), 1)
	assert.Len(t, recorder.Named(audit.EventSubmissionSucceeded), 1)
}

func TestFormSubmitReroutesToFirstErrorStep(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})
	fields := dnfbpFields()
	fields[4] = [2]string{models.FieldActivityType, "FINANCIAL_SERVICES"}
	setFields(t, ctx, form, fields)
	require.NoError(t, form.SetField(ctx, models.FieldCurrentlyRegulated, "true"))

	advance(t, ctx, form)
	advance(t, ctx, form)
	advance(t, ctx, form)
	require.Equal(t, flow.StepDataConsent, advance(t, ctx, form))

	// The answer is cleared after its step was passed, so only the final
	// whole-record validation can catch it.
	require.NoError(t, form.SetField(ctx, models.FieldCurrentlyRegulated, ""))

	_, err := form.Submit(ctx)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)

	state := form.State()
	assert.Equal(t, int(flow.StepRegulatoryStatus), state.Step)
	assert.Contains(t, state.Errors, models.FieldCurrentlyRegulated)
	assert.Equal(t, "Please review the Regulatory Status step before submitting.", state.Banner)
}

func TestFormSubmitTransportFailureShowsMessageVerbatim(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{Fail: true, Message: "downstream maintenance window"})
	setFields(t, ctx, form, dnfbpFields())

	advance(t, ctx, form)
	advance(t, ctx, form)
	advance(t, ctx, form)

	_, err := form.Submit(ctx)
	var serr *service.SubmissionError
	require.ErrorAs(t, err, &serr)

	state := form.State()
	assert.Equal(t, "downstream maintenance window", state.Banner)
	assert.Equal(t, int(flow.StepDataConsent), state.Step, "transport failure keeps the step")
	assert.Nil(t, state.Result)
}

func TestFormCloseResetsEverything(t *testing.T) {
	form, ctx := newForm(t, service.MockTransport{})
	fields := dnfbpFields()
	setFields(t, ctx, form, fields[:len(fields)-1]) // consent left unanswered
	advance(t, ctx, form)
	_, err := form.Submit(ctx) // fails validation, leaves errors and a banner
	require.Error(t, err)

	form.Close(ctx)

	state := form.State()
	assert.Equal(t, models.EnquiryRecord{}, state.Record)
	assert.Equal(t, int(flow.StepContact), state.Step)
	assert.Empty(t, state.Errors)
	assert.Empty(t, state.Banner)
	assert.Nil(t, state.Result)

	// Closing again is a no-op on an already pristine form.
	form.Close(ctx)
	assert.Equal(t, models.EnquiryRecord{}, form.State().Record)
}

type blockingTransport struct {
	started chan struct{}
	release chan struct{}
}

func (t *blockingTransport) SubmitEnquiry(context.Context, models.EnquiryRecord) (service.TransportResult, error) {
	close(t.started)
	<-t.release
	return service.TransportResult{Success: true}, nil
}

func TestFormRejectsConcurrentSubmit(t *testing.T) {
	transport := &blockingTransport{started: make(chan struct{}), release: make(chan struct{})}
	form, ctx := newForm(t, transport)
	setFields(t, ctx, form, dnfbpFields())
	advance(t, ctx, form)
	advance(t, ctx, form)
	advance(t, ctx, form)

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(ctx)
		done <- err
	}()
	<-transport.started

	_, err := form.Submit(ctx)
	assert.ErrorIs(t, err, service.ErrSubmitInProgress)
	assert.ErrorIs(t, form.SetField(ctx, models.FieldCompanyName, "changed mid-flight"), service.ErrSubmitInProgress)
	assert.True(t, form.State().Submitting)

	close(transport.release)
	require.NoError(t, <-done)
	assert.False(t, form.State().Submitting)
}
