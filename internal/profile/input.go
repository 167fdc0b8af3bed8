package profile

import (
	"fmt"
	"strconv"
)

// Input is the record as entered by the user, before coercion. Every key is
// always present. Text fields hold strings, numeric fields hold either a number
// or the raw string typed by the user, the boolean holds any value and the
// competitors field holds a []string.
type Input struct {
	raw map[Key]any
}

// NewInput returns an input record populated with Defaults.
func NewInput() *Input {
	return FromValues(Defaults())
}

// FromValues builds an input record from a typed record.
func FromValues(v Values) *Input {
	in := &Input{raw: make(map[Key]any, len(fields))}
	for _, f := range fields {
		in.raw[f.Key] = v.Get(f.Key)
	}
	return in
}

// FromMap builds an input record from a decoded YAML or JSON document.
// Keys missing from m keep their default; unknown keys are an error.
func FromMap(m map[string]any) (*Input, error) {
	in := NewInput()
	for k, v := range m {
		key, err := ParseKey(k)
		if err != nil {
			return nil, err
		}
		if err := in.Set(key, v); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Get returns the raw value stored for key.
func (in *Input) Get(key Key) any {
	v := in.raw[key]
	if list, ok := v.([]string); ok {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}
	return v
}

// Set stores a raw value for key. The competitors field only accepts lists
// of strings; every other field accepts any scalar and is coerced later.
func (in *Input) Set(key Key, v any) error {
	f, ok := fieldIndex[key]
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	if f.Kind == KindTextList {
		list, err := toStringList(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		in.raw[key] = list
		return nil
	}
	if v == nil {
		v = Defaults().Get(key)
	}
	in.raw[key] = v
	return nil
}

// List returns a copy of a list-valued field.
func (in *Input) List(key Key) []string {
	list, _ := in.raw[key].([]string)
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Text returns the raw value of key formatted for an input widget.
func (in *Input) Text(key Key) string {
	switch v := in.raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Clone returns an independent copy of the record.
func (in *Input) Clone() *Input {
	out := &Input{raw: make(map[Key]any, len(in.raw))}
	for k := range in.raw {
		out.raw[k] = in.Get(k)
	}
	return out
}

func toStringList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, want string", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}
