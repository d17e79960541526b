// Package validation checks inbound JSON payloads against per-endpoint
// schemas. Keys are checked in schema order and the first violation wins;
// messages follow the wording the frontend already displays
// (`"title" is required`).
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ISOLayout is the canonical timestamp format used across the API.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Error is a client-correctable validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(key, format string, args ...any) *Error {
	return &Error{Field: key, Message: fmt.Sprintf(`"%s" `+format, append([]any{key}, args...)...)}
}

// IsValidation reports whether err is (or wraps) a validation Error.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Rule checks one present value and returns its normalized form.
type Rule interface {
	check(key string, v any) (any, *Error)
}

type field struct {
	key      string
	required bool
	rule     Rule
}

// Schema is an ordered set of keys. Undeclared keys are rejected.
type Schema struct {
	fields []field
}

func NewSchema() *Schema {
	return &Schema{}
}

func (s *Schema) Required(key string, r Rule) *Schema {
	s.fields = append(s.fields, field{key: key, required: true, rule: r})
	return s
}

func (s *Schema) Optional(key string, r Rule) *Schema {
	s.fields = append(s.fields, field{key: key, rule: r})
	return s
}

// Validate returns a copy of payload holding only declared keys in their
// normalized form.
func (s *Schema) Validate(payload map[string]any) (Values, error) {
	out := make(Values, len(s.fields))
	declared := make(map[string]struct{}, len(s.fields))

	for _, f := range s.fields {
		declared[f.key] = struct{}{}
		v, ok := payload[f.key]
		if !ok {
			if f.required {
				return nil, fail(f.key, "is required")
			}
			continue
		}
		norm, err := f.rule.check(f.key, v)
		if err != nil {
			return nil, err
		}
		out[f.key] = norm
	}

	for _, key := range sortedKeys(payload) {
		if _, ok := declared[key]; !ok {
			return nil, fail(key, "is not allowed")
		}
	}

	return out, nil
}

// String accepts JSON strings. Min defaults to 1, so empty strings fail.
type String struct {
	Min     int
	Max     int
	OneOf   []string
	URI     bool
	ISODate bool
}

func (r String) check(key string, v any) (any, *Error) {
	s, ok := v.(string)
	if !ok {
		return nil, fail(key, "must be a string")
	}
	if s == "" {
		return nil, fail(key, "is not allowed to be empty")
	}

	if len(r.OneOf) > 0 {
		for _, allowed := range r.OneOf {
			if s == allowed {
				return s, nil
			}
		}
		return nil, fail(key, "must be one of [%s]", strings.Join(r.OneOf, ", "))
	}

	n := utf8.RuneCountInString(s)
	if r.Min > 1 && n < r.Min {
		return nil, fail(key, "length must be at least %d characters long", r.Min)
	}
	if r.Max > 0 && n > r.Max {
		return nil, fail(key, "length must be less than or equal to %d characters long", r.Max)
	}

	if r.URI && !isURI(s) {
		return nil, fail(key, "must be a valid uri")
	}

	if r.ISODate {
		t, err := ParseISO(s)
		if err != nil {
			return nil, fail(key, "must be in ISO 8601 date format")
		}
		return t.UTC().Format(ISOLayout), nil
	}

	return s, nil
}

// Number accepts JSON numbers and numeric strings.
type Number struct {
	Min *float64
	Max *float64
}

// Range is shorthand for a bounded Number.
func Range(min, max float64) Number {
	return Number{Min: &min, Max: &max}
}

func (r Number) check(key string, v any) (any, *Error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, fail(key, "must be a number")
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || strings.TrimSpace(n) == "" {
			return nil, fail(key, "must be a number")
		}
		f = parsed
	default:
		return nil, fail(key, "must be a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fail(key, "must be a number")
	}
	if r.Min != nil && f < *r.Min {
		return nil, fail(key, "must be greater than or equal to %s", formatNumber(*r.Min))
	}
	if r.Max != nil && f > *r.Max {
		return nil, fail(key, "must be less than or equal to %s", formatNumber(*r.Max))
	}
	return f, nil
}

// Object accepts any JSON object; arrays and scalars are rejected.
type Object struct{}

func (Object) check(key string, v any) (any, *Error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fail(key, "must be of type object")
	}
	return m, nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO parses the ISO 8601 forms the API accepts. Values without a zone
// are read as UTC.
func ParseISO(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 date: %q", s)
}

func isURI(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp", "ws", "wss":
		return u.Host != ""
	}
	return u.Opaque != "" || u.Host != "" || u.Path != ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
