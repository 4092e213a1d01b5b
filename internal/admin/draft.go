package admin

import (
	"fmt"
	"strconv"
)

// Draft is an in-progress, client-only record. It exists from form mount to
// successful submit (or cancel) and is never the source of truth for anything
// persisted.
type Draft map[string]any

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return Draft{}
}

// SeedDraft copies a record's current values into a fresh draft, restricted
// to the fields the schema edits. Foreign-key values are preserved verbatim:
// a reference to a record missing from a truncated lookup list must survive
// the round trip, not silently reset to empty.
func SeedDraft(s *Schema, target map[string]any) Draft {
	d := NewDraft()
	for _, f := range s.Fields {
		v, ok := target[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Kind {
		case FieldImages:
			d[f.Name] = toStrings(v)
		default:
			d[f.Name] = stringify(v)
		}
	}
	return d
}

// Set stores a field value.
func (d Draft) Set(name string, value any) {
	d[name] = value
}

// String returns a field as its string form; numbers seeded from JSON come
// back formatted, everything else empty.
func (d Draft) String(name string) string {
	v, ok := d[name]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// Strings returns a field as a string slice (image URL lists).
func (d Draft) Strings(name string) []string {
	v, ok := d[name]
	if !ok || v == nil {
		return nil
	}
	return toStrings(v)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integers without a dot.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
