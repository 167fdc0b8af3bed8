package validation

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// falsy lists the string spellings coerced to false. Any other non-empty
// string is true.
var falsy = map[string]bool{
	"":      true,
	"0":     true,
	"f":     true,
	"false": true,
	"n":     true,
	"no":    true,
	"off":   true,
}

// toNumber coerces a raw value to a finite float64. Blank strings coerce to 0.
func toNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, true
		}
		v = s
	}
	if v == nil {
		return 0, true
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toBool coerces any value to a boolean. It never fails.
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	case string:
		return !falsy[strings.ToLower(strings.TrimSpace(b))]
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return true
	}
	return b
}

// toText coerces a raw value to a string.
func toText(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// Truthy reports how a raw boolean field value will be decoded.
func Truthy(v any) bool {
	return toBool(v)
}
