package schema

import (
	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
)

// FieldType identifies the kind of data a field holds. It is immutable
// once a field is declared and is encoded as a stable string tag.
type FieldType string

const (
	Boolean FieldType = "boolean"
	Number  FieldType = "number"
	String  FieldType = "string"
	Date    FieldType = "date"
	List    FieldType = "list"
)

// FieldTypes returns all field types in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{Boolean, Number, String, Date, List}
}

// ParseFieldType resolves a serialized type tag. Unknown tags fail with an
// unknown_tag error rather than being silently dropped.
func ParseFieldType(tag string) (FieldType, error) {
	switch FieldType(tag) {
	case Boolean, Number, String, Date, List:
		return FieldType(tag), nil
	}

	valid := make([]string, 0, 5)
	for _, t := range FieldTypes() {
		valid = append(valid, string(t))
	}
	return "", forgeErrors.New(forgeErrors.KindUnknownTag, "unknown field type tag %q", tag).
		WithSuggestion(forgeErrors.SuggestTag(tag, valid))
}
