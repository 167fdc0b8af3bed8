package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/investorlens/investorlens/internal/profile"
)

// CheckFunc decodes a raw field value. It returns the decoded value and an
// empty message on success, or a human readable message on failure.
type CheckFunc func(raw any) (decoded any, msg string)

// FieldRule validates a single field in isolation.
type FieldRule struct {
	Key   profile.Key
	Check CheckFunc
}

// CrossRule validates a relationship between decoded fields. It only runs
// when every input decoded cleanly, and attaches its message to Target.
type CrossRule struct {
	Target profile.Key
	Inputs []profile.Key
	Check  func(decoded map[profile.Key]any) string
}

// Required accepts any non-empty text.
func Required(key profile.Key, msg string) FieldRule {
	return FieldRule{Key: key, Check: func(raw any) (any, string) {
		s := toText(raw)
		if s == "" {
			return s, msg
		}
		return s, ""
	}}
}

// MinLength accepts text of at least n characters.
func MinLength(key profile.Key, n int, msg string) FieldRule {
	return FieldRule{Key: key, Check: func(raw any) (any, string) {
		s := toText(raw)
		if utf8.RuneCountInString(s) < n {
			return s, msg
		}
		return s, ""
	}}
}

// Positive accepts numbers strictly greater than zero.
func Positive(key profile.Key, msg string) FieldRule {
	return FieldRule{Key: key, Check: func(raw any) (any, string) {
		f, ok := toNumber(raw)
		if !ok {
			return nil, notANumber(key)
		}
		if f <= 0 {
			return f, msg
		}
		return f, ""
	}}
}

// NonNegative accepts numbers greater than or equal to zero.
func NonNegative(key profile.Key, msg string) FieldRule {
	return FieldRule{Key: key, Check: func(raw any) (any, string) {
		f, ok := toNumber(raw)
		if !ok {
			return nil, notANumber(key)
		}
		if f < 0 {
			return f, msg
		}
		return f, ""
	}}
}

// WholeNumber accepts integers greater than or equal to min.
func WholeNumber(key profile.Key, min int, wholeMsg, minMsg string) FieldRule {
	return FieldRule{Key: key, Check: func(raw any) (any, string) {
		f, ok := toNumber(raw)
		if !ok {
			return nil, notANumber(key)
		}
		if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return nil, wholeMsg
		}
		n := int(f)
		if n < min {
			return n, minMsg
		}
		return n, ""
	}}
}

// Boolean coerces any input to a boolean and never fails.
func Boolean(key profile.Key) FieldRule {
	return FieldRule{Key: key, Check: func(raw any) (any, string) {
		return toBool(raw), ""
	}}
}

// TextList accepts a list whose elements are all non-empty after trimming.
// Empty lists are valid.
func TextList(key profile.Key, msg string) FieldRule {
	return FieldRule{Key: key, Check: func(raw any) (any, string) {
		list, ok := raw.([]string)
		if !ok && raw != nil {
			return nil, fmt.Sprintf("%s must be a list", key.Label())
		}
		out := make([]string, len(list))
		copy(out, list)
		for _, item := range out {
			if strings.TrimSpace(item) == "" {
				return out, msg
			}
		}
		return out, ""
	}}
}

// NotGreaterThan flags target when it exceeds limit.
func NotGreaterThan(target, limit profile.Key, msg string) CrossRule {
	return CrossRule{
		Target: target,
		Inputs: []profile.Key{target, limit},
		Check: func(decoded map[profile.Key]any) string {
			a, _ := decoded[target].(float64)
			b, _ := decoded[limit].(float64)
			if a > b {
				return msg
			}
			return ""
		},
	}
}

func notANumber(key profile.Key) string {
	return fmt.Sprintf("%s must be a number", key.Label())
}
