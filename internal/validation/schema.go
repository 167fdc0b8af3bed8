// Package validation checks startup-profile records. A Schema is composed of
// independent field rules and cross-field rules and can validate the whole
// record, a single section or a single field.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/investorlens/investorlens/internal/profile"
)

// FieldErrors maps a field key to its human readable error message. An empty
// map means the checked fields are valid.
type FieldErrors map[profile.Key]string

// Keys returns the keys with errors in wire order.
func (e FieldErrors) Keys() []profile.Key {
	order := make(map[profile.Key]int)
	for i, k := range profile.Keys() {
		order[k] = i
	}
	keys := make([]profile.Key, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return order[keys[i]] < order[keys[j]] })
	return keys
}

// Only returns the subset of errors whose key is in keys.
func (e FieldErrors) Only(keys ...profile.Key) FieldErrors {
	out := FieldErrors{}
	for _, k := range keys {
		if msg, ok := e[k]; ok {
			out[k] = msg
		}
	}
	return out
}

// Error is returned by Decode when the record does not validate.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Schema is a set of field rules (at most one per key) and cross-field rules.
type Schema struct {
	fields map[profile.Key]FieldRule
	cross  []CrossRule
}

// NewSchema builds a schema. Every key of the record must have exactly one
// field rule.
func NewSchema(fields []FieldRule, cross ...CrossRule) (*Schema, error) {
	s := &Schema{fields: make(map[profile.Key]FieldRule, len(fields)), cross: cross}
	for _, r := range fields {
		if _, dup := s.fields[r.Key]; dup {
			return nil, fmt.Errorf("duplicate rule for %s", r.Key)
		}
		s.fields[r.Key] = r
	}
	for _, k := range profile.Keys() {
		if _, ok := s.fields[k]; !ok {
			return nil, fmt.Errorf("missing rule for %s", k)
		}
	}
	for _, c := range cross {
		if _, ok := s.fields[c.Target]; !ok {
			return nil, fmt.Errorf("cross rule targets unknown field %s", c.Target)
		}
	}
	return s, nil
}

// Validate checks the whole record: every field rule, then every cross rule.
func (s *Schema) Validate(in *profile.Input) FieldErrors {
	errs, _ := s.run(in, profile.Keys(), func(CrossRule) bool { return true })
	return errs
}

// ValidateSection checks the fields owned by sec together with the cross
// rules that target one of them.
func (s *Schema) ValidateSection(sec profile.Section, in *profile.Input) FieldErrors {
	errs, _ := s.run(in, sec.Keys, func(c CrossRule) bool { return sec.Owns(c.Target) })
	return errs
}

// ValidateField checks a single field rule. Cross rules are not evaluated.
func (s *Schema) ValidateField(key profile.Key, in *profile.Input) FieldErrors {
	errs, _ := s.run(in, []profile.Key{key}, func(CrossRule) bool { return false })
	return errs
}

// Decode validates the whole record and converts it into typed values.
// It returns *Error when any rule fails.
func (s *Schema) Decode(in *profile.Input) (profile.Values, error) {
	errs, decoded := s.run(in, profile.Keys(), func(CrossRule) bool { return true })
	if len(errs) > 0 {
		return profile.Values{}, &Error{Fields: errs}
	}
	v := profile.Defaults()
	for _, k := range profile.Keys() {
		if err := v.Assign(k, decoded[k]); err != nil {
			return profile.Values{}, fmt.Errorf("decoding %s: %w", k, err)
		}
	}
	return v, nil
}

func (s *Schema) run(in *profile.Input, keys []profile.Key, useCross func(CrossRule) bool) (FieldErrors, map[profile.Key]any) {
	errs := FieldErrors{}
	decoded := make(map[profile.Key]any, len(keys))
	failed := make(map[profile.Key]bool)

	// Keys outside the requested set may be decoded to feed a cross rule,
	// but their errors are not reported.
	check := func(k profile.Key) bool {
		if _, ok := decoded[k]; ok {
			return true
		}
		if failed[k] {
			return false
		}
		rule, known := s.fields[k]
		if !known {
			return false
		}
		val, msg := rule.Check(in.Get(k))
		if msg != "" {
			failed[k] = true
			if contains(keys, k) {
				errs[k] = msg
			}
			return false
		}
		decoded[k] = val
		return true
	}
	for _, k := range keys {
		check(k)
	}

	for _, c := range s.cross {
		if !useCross(c) {
			continue
		}
		if _, taken := errs[c.Target]; taken {
			continue
		}
		ok := true
		for _, k := range c.Inputs {
			if !check(k) {
				ok = false
			}
		}
		if !ok {
			continue
		}
		if msg := c.Check(decoded); msg != "" {
			errs[c.Target] = msg
		}
	}
	return errs, decoded
}

func contains(keys []profile.Key, k profile.Key) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}
