package form

import (
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/validation"
)

// Stepper tracks the active section. Moving forward is gated by a section
// check; moving back never is.
type Stepper struct {
	current int
}

// Advance runs check on the active section and moves to the next one only
// when it reports no errors. On the last section a passing check leaves the
// index unchanged.
func (s *Stepper) Advance(check func(profile.Section) validation.FieldErrors) (validation.FieldErrors, bool) {
	if errs := check(s.Section()); len(errs) > 0 {
		return errs, false
	}
	if s.current < profile.SectionCount-1 {
		s.current++
	}
	return nil, true
}

// Retreat moves to the previous section. It reports false on the first one.
func (s *Stepper) Retreat() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Current returns the active section index.
func (s *Stepper) Current() int { return s.current }

// Section returns the active section.
func (s *Stepper) Section() profile.Section { return profile.SectionAt(s.current) }

// IsFirst reports whether the first section is active.
func (s *Stepper) IsFirst() bool { return s.current == 0 }

// IsLast reports whether the last section is active.
func (s *Stepper) IsLast() bool { return s.current == profile.SectionCount-1 }
