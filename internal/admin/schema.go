package admin

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

// FieldKind determines how a field is parsed and validated.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldEmail
	FieldURL
	FieldInt
	FieldFloat
	// FieldRef holds a foreign key. The form renders it as a selectable
	// option list but the raw value is preserved even when the referenced
	// record is missing from the fetched lookup page.
	FieldRef
	// FieldImages holds uploaded asset URLs.
	FieldImages
)

// Field describes one editable attribute of a resource.
type Field struct {
	Name     string // payload key, e.g. "contact_email"
	Label    string
	Kind     FieldKind
	Required bool
	// Min bounds numeric fields (quantity >= 1, price >= 0).
	Min *float64
	// Ref names the collection a FieldRef points at.
	Ref api.ResourceType
}

// Column describes one table column of the list view.
type Column struct {
	Key   string
	Title string
	Width int
}

// Schema binds a resource type to its table columns and form fields. One
// schema instantiates the whole list+modal workflow for that resource.
type Schema struct {
	Resource api.ResourceType
	Title    string
	Columns  []Column
	Fields   []Field
}

// FieldNames returns the payload keys the form edits, in order. Commits send
// exactly these keys and nothing else.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by payload key.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks a draft against the schema. Validation is synchronous and
// client-side only; the backend may still reject a valid draft.
func (s *Schema) Validate(d Draft) errors.FieldErrors {
	errs := errors.FieldErrors{}
	for _, f := range s.Fields {
		raw := strings.TrimSpace(d.String(f.Name))
		if raw == "" {
			if f.Required {
				errs[f.Name] = "is required"
			}
			continue
		}
		switch f.Kind {
		case FieldEmail:
			if _, err := mail.ParseAddress(raw); err != nil {
				errs[f.Name] = "must be a valid email address"
			}
		case FieldURL:
			u, err := url.Parse(raw)
			if err != nil || u.Scheme == "" || u.Host == "" {
				errs[f.Name] = "must be a valid URL"
			}
		case FieldInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs[f.Name] = "must be a whole number"
			} else if f.Min != nil && float64(n) < *f.Min {
				errs[f.Name] = fmt.Sprintf("must be at least %d", int(*f.Min))
			}
		case FieldFloat:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs[f.Name] = "must be a number"
			} else if f.Min != nil && n < *f.Min {
				errs[f.Name] = fmt.Sprintf("must be at least %g", *f.Min)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Payload converts a draft into the typed payload the backend expects,
// restricted to the schema's fields. Optional empty fields are omitted.
func (s *Schema) Payload(d Draft) map[string]any {
	payload := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		raw := strings.TrimSpace(d.String(f.Name))
		if raw == "" && f.Kind != FieldImages {
			continue
		}
		switch f.Kind {
		case FieldInt:
			if n, err := strconv.Atoi(raw); err == nil {
				payload[f.Name] = n
			}
		case FieldFloat:
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				payload[f.Name] = n
			}
		case FieldImages:
			if urls := d.Strings(f.Name); len(urls) > 0 {
				payload[f.Name] = urls
			}
		default:
			payload[f.Name] = raw
		}
	}
	return payload
}

func minValue(v float64) *float64 {
	return &v
}
