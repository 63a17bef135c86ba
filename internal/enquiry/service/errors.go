package service

import (
	"fmt"

	"intake/internal/enquiry/validation"
	dErrors "intake/pkg/domain-errors"
)

// ErrSubmitInProgress guards against repeat submission while one is
// outstanding. There is no pipeline-level deduplication behind it; the guard
// is the in-flight flag alone.
var ErrSubmitInProgress = dErrors.New(dErrors.CodeInvalidState, "a submission is already in progress")

// ValidationError aggregates field errors found by full-record validation at
// submit time. The caller reroutes the user to the earliest erroring step.
type ValidationError struct {
	Errors validation.ErrorSet
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("enquiry validation failed for %d field(s)", len(e.Errors))
}

// SubmissionError carries the downstream transport's failure message verbatim.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}
