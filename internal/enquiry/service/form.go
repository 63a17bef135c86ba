package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"intake/internal/enquiry/flow"
	"intake/internal/enquiry/models"
	"intake/internal/enquiry/validation"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/audit"
	"intake/pkg/requestcontext"
)

// Form is the controller for one enquiry form instance. It holds the live
// record and current step, drives the step machine, and delegates submission
// to the pipeline. One logical actor per form: every public method holds the
// form mutex, so two "Next" calls never interleave.
type Form struct {
	mu         sync.Mutex
	pipeline   *Service
	record     models.EnquiryRecord
	step       flow.Step
	errors     validation.ErrorSet
	banner     string
	submitting bool
	result     *models.SubmissionResult
}

// NewForm opens a fresh form at the first step.
func (s *Service) NewForm(ctx context.Context) *Form {
	f := &Form{
		pipeline: s,
		step:     flow.FirstStep,
		errors:   validation.ErrorSet{},
	}
	s.emit(ctx, audit.EventFormOpened, nil)
	return f
}

// FormState is a read-only snapshot for the presentation layer.
type FormState struct {
	Step        int                      `json:"step"`
	DisplayStep int                      `json:"display_step"`
	TotalSteps  int                      `json:"total_steps"`
	Title       string                   `json:"title"`
	Record      models.EnquiryRecord     `json:"record"`
	Errors      validation.ErrorSet      `json:"errors,omitempty"`
	Banner      string                   `json:"banner,omitempty"`
	Submitting  bool                     `json:"submitting"`
	Result      *models.SubmissionResult `json:"result,omitempty"`
}

// State snapshots the form for rendering.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := validation.ErrorSet{}
	errs.Merge(f.errors)

	return FormState{
		Step:        int(f.step),
		DisplayStep: flow.DisplayNumber(f.step, f.record),
		TotalSteps:  flow.TotalVisible(f.record),
		Title:       flow.Title(f.step),
		Record:      f.record,
		Errors:      errs,
		Banner:      f.banner,
		Submitting:  f.submitting,
		Result:      f.result,
	}
}

// SetField updates one record field from its wire representation and clears
// any existing error for it. Changing entity type away from OTHER clears the
// free-text description; changing activity type away from FINANCIAL_SERVICES
// clears the regulatory status answer — hidden fields never silently retain
// stale values.
func (f *Form) SetField(_ context.Context, name, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrSubmitInProgress
	}

	switch name {
	case models.FieldCompanyName:
		f.record.CompanyName = strings.TrimSpace(raw)
	case models.FieldContactName:
		f.record.ContactName = strings.TrimSpace(raw)
	case models.FieldEmail:
		f.record.Email = strings.TrimSpace(raw)
	case models.FieldPhone:
		f.record.Phone = strings.TrimSpace(raw)
	case models.FieldSuggestedDate:
		if raw == "" {
			f.record.SuggestedDate = nil
			break
		}
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return dErrors.New(dErrors.CodeInvalidInput, "suggested date must be an ISO date (YYYY-MM-DD)")
		}
		f.record.SuggestedDate = &date
	case models.FieldActivityType:
		f.record.ActivityType = models.ActivityType(raw)
		if f.record.ActivityType != models.ActivityFinancialServices {
			f.record.CurrentlyRegulated = nil
			delete(f.errors, models.FieldCurrentlyRegulated)
		}
	case models.FieldEntityType:
		f.record.EntityType = models.EntityType(raw)
		if f.record.EntityType != models.EntityOther {
			f.record.EntityTypeOther = ""
			delete(f.errors, models.FieldEntityTypeOther)
		}
	case models.FieldEntityTypeOther:
		f.record.EntityTypeOther = strings.TrimSpace(raw)
	case models.FieldCurrentlyRegulated:
		value, err := parseTriState(raw)
		if err != nil {
			return err
		}
		f.record.CurrentlyRegulated = value
	case models.FieldDIFCAConsent:
		value, err := parseTriState(raw)
		if err != nil {
			return err
		}
		f.record.DIFCAConsent = value
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+name)
	}

	delete(f.errors, name)
	return nil
}

// Next validates only the current step's fields and advances on zero errors.
// The returned error set is what blocked the advance, if anything.
func (f *Form) Next(ctx context.Context) (flow.Step, validation.ErrorSet) {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := validation.Step(flow.Fields(f.step), f.record, requestcontext.Now(ctx))
	if len(errs) > 0 {
		f.errors.Merge(errs)
		return f.step, errs
	}

	from := f.step
	f.step = flow.Next(f.step, f.record)
	if f.step != from {
		f.pipeline.emit(ctx, audit.EventStepAdvanced, map[string]any{
			"from": int(from),
			"to":   int(f.step),
		})
	}
	return f.step, nil
}

// Back moves to the previous visible step. No validation: going back never
// loses or checks data.
func (f *Form) Back(ctx context.Context) flow.Step {
	f.mu.Lock()
	defer f.mu.Unlock()

	from := f.step
	f.step = flow.Prev(f.step, f.record)
	if f.step != from {
		f.pipeline.emit(ctx, audit.EventStepReturned, map[string]any{
			"from": int(from),
			"to":   int(f.step),
		})
	}
	return f.step
}

// Submit delegates to the pipeline. On validation failure the form jumps to
// the first erroring step with a banner naming it; on transport failure the
// step is kept and the transport message shows verbatim. While a submission
// is outstanding further submits are rejected — that flag is the only
// double-submit protection there is.
func (f *Form) Submit(ctx context.Context) (models.SubmissionResult, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return models.SubmissionResult{}, ErrSubmitInProgress
	}
	f.submitting = true
	record := f.record
	f.mu.Unlock()

	result, err := f.pipeline.Submit(ctx, record)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		var validationErr *ValidationError
		var submissionErr *SubmissionError
		switch {
		case errors.As(err, &validationErr):
			f.errors = validation.ErrorSet{}
			f.errors.Merge(validationErr.Errors)
			if step, ok := flow.FirstErrorStep(validationErr.Errors); ok {
				f.step = step
				f.banner = fmt.Sprintf("Please review the %s step before submitting.", flow.Title(step))
			}
		case errors.As(err, &submissionErr):
			f.banner = submissionErr.Message
		}
		return models.SubmissionResult{}, err
	}

	f.result = &result
	f.banner = ""
	return result, nil
}

// Close tears the form down: record back to empty defaults, step back to the
// first step, no retained errors. Closing and reopening yields a pristine
// form.
func (f *Form) Close(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record = models.EnquiryRecord{}
	f.step = flow.FirstStep
	f.errors = validation.ErrorSet{}
	f.banner = ""
	f.submitting = false
	f.result = nil
	f.pipeline.emit(ctx, audit.EventFormClosed, nil)
}

func parseTriState(raw string) (*bool, error) {
	switch raw {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, `expected "true", "false" or empty`)
	}
}
