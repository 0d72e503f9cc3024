package schema

import (
	"fmt"
	"strings"
	"time"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
)

// Field is a named, typed slot in a request or response schema. A field
// belongs to exactly one rule document and one schema role; handles given
// to callers are back-references by key, never independent copies.
type Field struct {
	Key         string    // Unique key within the schema role
	Name        string    // Display label
	Type        FieldType // Data type (immutable once declared)
	Description string    // Human-readable description
	Default     any       // Default value, normalized, matching Type
	Show        bool      // Whether editors should display the field
}

// NewField declares a field, validating and normalizing the default value
// against the declared type. An empty label is derived from the key.
func NewField(key, label string, t FieldType, description string, def any) (*Field, error) {
	if label == "" {
		label = Labelize(key)
	}

	normalized, err := NormalizeValue(t, def)
	if err != nil {
		return nil, forgeErrors.New(forgeErrors.KindInvalidDefault,
			"default for field %q does not match type %s: %v", key, t, err).WithField(key)
	}

	return &Field{
		Key:         key,
		Name:        label,
		Type:        t,
		Description: description,
		Default:     normalized,
		Show:        true,
	}, nil
}

// Labelize derives a display label from a field key: underscores become
// spaces and each word is capitalized ("purchase_count" -> "Purchase Count").
func Labelize(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CheckValue verifies that a value's shape matches the field type.
// Dates accept RFC 3339 timestamps, plain dates (2006-01-02), or time.Time.
// A nil value is only legal for date and list fields, mirroring their
// "no default" declaration forms.
func CheckValue(t FieldType, v any) error {
	switch t {
	case Boolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", v)
		}
	case Number:
		if !isNumeric(v) {
			return fmt.Errorf("expected number, got %T", v)
		}
	case String:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
	case Date:
		if v == nil {
			return nil
		}
		if _, ok := v.(time.Time); ok {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected ISO-8601 date string or time.Time, got %T", v)
		}
		if _, err := ParseDate(s); err != nil {
			return fmt.Errorf("expected ISO-8601 date, got %q", s)
		}
	case List:
		if v == nil {
			return nil
		}
		if !isList(v) {
			return fmt.Errorf("expected list, got %T", v)
		}
	default:
		return fmt.Errorf("unknown field type %q", t)
	}
	return nil
}

// NormalizeValue checks a value against the field type and returns its
// canonical in-memory form: numbers as float64, dates as RFC 3339 strings,
// lists as []any with normalized elements. Canonical forms guarantee that
// a document and its serialize-deserialize image compare structurally equal.
func NormalizeValue(t FieldType, v any) (any, error) {
	if err := CheckValue(t, v); err != nil {
		return nil, err
	}

	switch t {
	case Number:
		return toFloat(v), nil
	case Date:
		switch d := v.(type) {
		case nil:
			return nil, nil
		case time.Time:
			return d.UTC().Format(time.RFC3339), nil
		case string:
			return d, nil
		}
	case List:
		if v == nil {
			return []any{}, nil
		}
		return normalizeAny(v), nil
	}
	return v, nil
}

// ParseDate parses a date operand: RFC 3339 first, then a plain calendar
// date.
func ParseDate(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", s)
}

// normalizeAny recursively converts integers to float64, time.Time to
// RFC 3339 strings, and typed slices to []any, producing the canonical
// form values take after a JSON round trip.
func normalizeAny(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeAny(item)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = item
		}
		return out
	case []float64:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = item
		}
		return out
	case []int:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = float64(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalizeAny(item)
		}
		return out
	}
	return v
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func isList(v any) bool {
	switch v.(type) {
	case []any, []string, []float64, []int:
		return true
	}
	return false
}
