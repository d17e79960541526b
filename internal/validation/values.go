package validation

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Values is a validated, normalized payload.
type Values map[string]any

func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// OptionalString reports whether key was supplied.
func (v Values) OptionalString(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

func (v Values) Float(key string) float64 {
	f, _ := v[key].(float64)
	return f
}

func (v Values) Object(key string) map[string]any {
	m, _ := v[key].(map[string]any)
	return m
}

// DecodeObject parses a request body. An empty body is an empty object; a
// body that is not a JSON object fails validation.
func DecodeObject(body []byte) (map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Field: "value", Message: "Invalid JSON payload"}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &Error{Field: "value", Message: `"value" must be of type object`}
	}
	return obj, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
