package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes an authoring error.
type Kind string

const (
	KindDuplicateField   Kind = "duplicate_field"    // Field key already declared in the schema
	KindInvalidDefault   Kind = "invalid_default"    // Default value does not match the field type
	KindUnknownField     Kind = "unknown_field"      // Clause or response references an undeclared field
	KindOperatorMismatch Kind = "operator_mismatch"  // Operator is not in the field type's catalog
	KindOperand          Kind = "operand"            // Operand count or shape is wrong for the operator
	KindTypeMismatch     Kind = "type_mismatch"      // Response value shape does not match the field type
	KindEmptyName        Kind = "empty_name"         // Rule name is blank
	KindInvalidAlias     Kind = "invalid_alias"      // Rule alias is too short or contains illegal characters
	KindSchedule         Kind = "schedule"           // Condition schedule entry is not a valid cron expression
	KindDeserialization  Kind = "deserialization"    // Reconstructed document violates rule invariants
	KindUnknownTag       Kind = "unknown_tag"        // Serialized type or operator tag is not recognized
	KindIO               Kind = "io"                 // File read/write failure
)

// Error is a rich authoring error carrying the violation kind, the
// offending field key (when one exists), and an optional suggested fix.
type Error struct {
	Kind       Kind   // Category of error
	Message    string // Error message
	Field      string // Offending field key (optional)
	Suggestion string // Suggested fix (optional)
}

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithField attaches the offending field key.
func (e *Error) WithField(key string) *Error {
	e.Field = key
	return e
}

// WithSuggestion attaches a suggested fix.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf("\n  --> field %q", e.Field))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}
	return sb.String()
}

// KindOf returns the kind of an authoring error, or the empty string if
// err is not an *Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}

// ErrorList accumulates violations so callers reviewing a large rule see
// one comprehensive report instead of fixing errors one at a time.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(kind Kind, message string) {
	el.Add(&Error{Kind: kind, Message: message})
}

// Merge appends all errors from another list or a single *Error.
// Other error values are wrapped as io-kind errors.
func (el *ErrorList) Merge(err error) {
	switch v := err.(type) {
	case nil:
	case *ErrorList:
		el.Errors = append(el.Errors, v.Errors...)
	case *Error:
		el.Add(v)
	default:
		el.AddError(KindIO, v.Error())
	}
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// HasKind returns true if the list contains at least one error of the given kind.
func (el *ErrorList) HasKind(kind Kind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// ByKind returns all errors of the given kind.
func (el *ErrorList) ByKind(kind Kind) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d violation(s):\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// AsList returns the error as an *ErrorList if it is one. A single *Error
// is wrapped into a one-element list.
func AsList(err error) (*ErrorList, bool) {
	switch v := err.(type) {
	case *ErrorList:
		return v, true
	case *Error:
		el := NewErrorList()
		el.Add(v)
		return el, true
	}
	return nil, false
}

// DeserializationError reports that a reconstructed rule document violates
// the document invariants. It carries the full violation list.
type DeserializationError struct {
	Violations *ErrorList
}

// NewDeserializationError wraps a violation list.
func NewDeserializationError(violations *ErrorList) *DeserializationError {
	return &DeserializationError{Violations: violations}
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("[%s] document failed validation after reconstruction: %s",
		KindDeserialization, e.Violations.Error())
}

// Unwrap exposes the underlying violation list.
func (e *DeserializationError) Unwrap() error {
	return e.Violations
}
