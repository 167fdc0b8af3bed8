// Package form holds the state of a startup-profile entry session: the raw
// record, the displayed field errors, the active section and the submission
// lifecycle. It has no knowledge of how the form is rendered.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/investorlens/investorlens/internal/analysis"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/validation"
)

var (
	// ErrSubmitting is returned for any mutation attempted while a
	// submission is in flight.
	ErrSubmitting = errors.New("a submission is already in progress")
	// ErrNotFinalStep is returned when submitting before the last section.
	ErrNotFinalStep = errors.New("submission is only possible from the last section")
	// ErrInvalid is returned when the record fails whole-record validation.
	ErrInvalid = errors.New("record is invalid")
)

// Status is the submission lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Submission describes the last submission attempt.
type Submission struct {
	Status  Status
	Result  *analysis.Result
	Failure *analysis.Failure
}

// Message returns the user-facing failure message, or "" when the last
// attempt did not fail.
func (s Submission) Message() string {
	if s.Status != StatusFailed || s.Failure == nil {
		return ""
	}
	return s.Failure.Error()
}

// Analyzer sends a decoded record to the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, v profile.Values) (*analysis.Result, error)
}

// Form is a single entry session. It is not safe for concurrent use; the
// caller serializes access (the TUI event loop does so naturally).
type Form struct {
	schema      *validation.Schema
	input       *profile.Input
	competitors *List
	errors      validation.FieldErrors
	stepper     Stepper
	submission  Submission
}

// New returns a form populated with defaults and the startup schema.
func New() *Form {
	return NewWith(validation.Default(), profile.NewInput())
}

// NewWith returns a form over a copy of in, validated by schema.
func NewWith(schema *validation.Schema, in *profile.Input) *Form {
	in = in.Clone()
	return &Form{
		schema:      schema,
		input:       in,
		competitors: NewList(in.List(profile.Competitors)),
		errors:      validation.FieldErrors{},
	}
}

// Input returns a copy of the raw record.
func (f *Form) Input() *profile.Input { return f.input.Clone() }

// Value returns the raw value of a field.
func (f *Form) Value(key profile.Key) any { return f.input.Get(key) }

// Text returns a field formatted for an editor.
func (f *Form) Text(key profile.Key) string { return f.input.Text(key) }

// Competitors returns the current competitor names.
func (f *Form) Competitors() []string { return f.competitors.Items() }

// Errors returns a copy of the displayed field errors.
func (f *Form) Errors() validation.FieldErrors {
	out := make(validation.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the displayed error for key, if any.
func (f *Form) Error(key profile.Key) string { return f.errors[key] }

// Step returns the active section index.
func (f *Form) Step() int { return f.stepper.Current() }

// Section returns the active section.
func (f *Form) Section() profile.Section { return f.stepper.Section() }

// IsFirst reports whether the first section is active.
func (f *Form) IsFirst() bool { return f.stepper.IsFirst() }

// IsLast reports whether the last section is active.
func (f *Form) IsLast() bool { return f.stepper.IsLast() }

// Submission returns the state of the last submission attempt.
func (f *Form) Submission() Submission { return f.submission }

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool { return f.submission.Status == StatusSubmitting }

// SetField stores a raw value and clears the displayed error for that field.
func (f *Form) SetField(key profile.Key, v any) error {
	if f.Submitting() {
		return ErrSubmitting
	}
	if err := f.input.Set(key, v); err != nil {
		return err
	}
	if key == profile.Competitors {
		f.competitors = NewList(f.input.List(profile.Competitors))
	}
	delete(f.errors, key)
	return nil
}

// Next validates the active section and advances when it passes. Displayed
// errors are replaced by the section's errors.
func (f *Form) Next() (bool, error) {
	if f.Submitting() {
		return false, ErrSubmitting
	}
	f.clearFeedback()
	errs, ok := f.stepper.Advance(func(sec profile.Section) validation.FieldErrors {
		return f.schema.ValidateSection(sec, f.input)
	})
	if !ok {
		f.errors = errs
	}
	return ok, nil
}

// Back moves to the previous section without validating.
func (f *Form) Back() (bool, error) {
	if f.Submitting() {
		return false, ErrSubmitting
	}
	f.clearFeedback()
	return f.stepper.Retreat(), nil
}

// AddCompetitor appends a trimmed name and re-validates the competitors
// field only. Blank names are ignored.
func (f *Form) AddCompetitor(name string) (bool, error) {
	if f.Submitting() {
		return false, ErrSubmitting
	}
	if !f.competitors.Insert(name) {
		return false, nil
	}
	f.syncCompetitors()
	return true, nil
}

// RemoveCompetitor deletes the name at index i and re-validates the
// competitors field only. Out of range indices are ignored.
func (f *Form) RemoveCompetitor(i int) (bool, error) {
	if f.Submitting() {
		return false, ErrSubmitting
	}
	if !f.competitors.Remove(i) {
		return false, nil
	}
	f.syncCompetitors()
	return true, nil
}

func (f *Form) syncCompetitors() {
	_ = f.input.Set(profile.Competitors, f.competitors.Items())
	delete(f.errors, profile.Competitors)
	for k, msg := range f.schema.ValidateField(profile.Competitors, f.input) {
		f.errors[k] = msg
	}
}

// BeginSubmit validates the whole record and, when it passes, enters the
// submitting state and returns the decoded record. On validation failure the
// field errors become the displayed errors and the error wraps both ErrInvalid
// and *validation.Error.
func (f *Form) BeginSubmit() (profile.Values, error) {
	if f.Submitting() {
		return profile.Values{}, ErrSubmitting
	}
	if !f.stepper.IsLast() {
		return profile.Values{}, ErrNotFinalStep
	}

	f.clearFeedback()
	v, err := f.schema.Decode(f.input)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			f.errors = verr.Fields
		}
		return profile.Values{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	f.submission = Submission{Status: StatusSubmitting}
	return v, nil
}

// FinishSubmit records the outcome of the in-flight submission. It reports
// false and changes nothing when no submission is in flight.
func (f *Form) FinishSubmit(res *analysis.Result, err error) bool {
	if !f.Submitting() {
		return false
	}
	if err != nil {
		f.submission = Submission{Status: StatusFailed, Failure: analysis.AsFailure(err)}
		return true
	}
	f.submission = Submission{Status: StatusSucceeded, Result: res}
	return true
}

// Abandon drops an in-flight submission, returning to idle. Used when the
// session is torn down before the response arrives.
func (f *Form) Abandon() bool {
	if !f.Submitting() {
		return false
	}
	f.submission = Submission{}
	return true
}

// Submit runs BeginSubmit, the analyzer and FinishSubmit in sequence.
// The analyzer is never called when validation fails.
func (f *Form) Submit(ctx context.Context, a Analyzer) (*analysis.Result, error) {
	v, err := f.BeginSubmit()
	if err != nil {
		return nil, err
	}
	res, err := a.Analyze(ctx, v)
	f.FinishSubmit(res, err)
	if err != nil {
		return nil, f.submission.Failure
	}
	return res, nil
}

// clearFeedback removes displayed field errors and a previous failure
// message.
func (f *Form) clearFeedback() {
	f.errors = validation.FieldErrors{}
	if f.submission.Status == StatusFailed {
		f.submission = Submission{}
	}
}
