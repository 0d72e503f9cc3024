package rule

import (
	"time"

	"rulesmith-hq/forge/pkg/forge/schema"
)

// Clause is a pending constraint: a request field key, an operator tag,
// and raw operands. Clauses are inert values; validation happens when a
// condition adopts them.
type Clause struct {
	Field string
	Op    schema.Operator
	Args  []any
}

// Assignment is a pending response value for a response field.
type Assignment struct {
	Field string
	Value any
}

// fieldRef is a handle back into the owning rule. Handles never copy
// field state; they name a key that the rule resolves on use.
type fieldRef struct {
	rule *Rule
	key  string
}

// Key returns the field key the handle refers to.
func (f fieldRef) Key() string { return f.key }

func (f fieldRef) clause(op schema.Operator, args ...any) Clause {
	return Clause{Field: f.key, Op: op, Args: args}
}

// BooleanField is a typed handle to a boolean field.
type BooleanField struct{ fieldRef }

// Any matches any value.
func (f BooleanField) Any() Clause { return f.clause(schema.OpAny) }

// IsTrue matches true.
func (f BooleanField) IsTrue() Clause { return f.clause(schema.OpIsTrue) }

// IsFalse matches false.
func (f BooleanField) IsFalse() Clause { return f.clause(schema.OpIsFalse) }

// Equals matches the given boolean value.
func (f BooleanField) Equals(v bool) Clause {
	if v {
		return f.clause(schema.OpIsTrue)
	}
	return f.clause(schema.OpIsFalse)
}

// Assign sets the field's response value.
func (f BooleanField) Assign(v bool) Assignment { return Assignment{Field: f.key, Value: v} }

// NumberField is a typed handle to a numeric field.
type NumberField struct{ fieldRef }

func (f NumberField) Any() Clause { return f.clause(schema.OpAny) }
func (f NumberField) Equals(v float64) Clause { return f.clause(schema.OpEquals, v) }
func (f NumberField) DoesNotEqual(v float64) Clause { return f.clause(schema.OpDoesNotEqual, v) }
func (f NumberField) GreaterThan(v float64) Clause { return f.clause(schema.OpGreaterThan, v) }
func (f NumberField) LessThan(v float64) Clause { return f.clause(schema.OpLessThan, v) }
func (f NumberField) GreaterThanOrEqual(v float64) Clause {
	return f.clause(schema.OpGreaterThanOrEqual, v)
}
func (f NumberField) LessThanOrEqual(v float64) Clause { return f.clause(schema.OpLessThanOrEqual, v) }
func (f NumberField) Between(start, end float64) Clause {
	return f.clause(schema.OpBetween, start, end)
}
func (f NumberField) NotBetween(start, end float64) Clause {
	return f.clause(schema.OpNotBetween, start, end)
}
func (f NumberField) IsEven() Clause { return f.clause(schema.OpIsEven) }
func (f NumberField) IsOdd() Clause { return f.clause(schema.OpIsOdd) }
func (f NumberField) IsPositive() Clause { return f.clause(schema.OpIsPositive) }
func (f NumberField) IsNegative() Clause { return f.clause(schema.OpIsNegative) }
func (f NumberField) IsZero() Clause { return f.clause(schema.OpIsZero) }
func (f NumberField) IsNotZero() Clause { return f.clause(schema.OpIsNotZero) }
func (f NumberField) IsMultipleOf(v float64) Clause { return f.clause(schema.OpIsMultipleOf, v) }
func (f NumberField) IsNotMultipleOf(v float64) Clause { return f.clause(schema.OpIsNotMultipleOf, v) }
func (f NumberField) IsPowerOf(base float64) Clause { return f.clause(schema.OpIsPowerOf, base) }
func (f NumberField) Assign(v float64) Assignment { return Assignment{Field: f.key, Value: v} }

// StringField is a typed handle to a string field.
type StringField struct{ fieldRef }

func (f StringField) Any() Clause { return f.clause(schema.OpAny) }
func (f StringField) Contains(s string) Clause { return f.clause(schema.OpContains, s) }
func (f StringField) DoesNotContain(s string) Clause {
	return f.clause(schema.OpDoesNotContain, s)
}
func (f StringField) Equals(s string) Clause { return f.clause(schema.OpEquals, s) }
func (f StringField) DoesNotEqual(s string) Clause { return f.clause(schema.OpDoesNotEqual, s) }
func (f StringField) IsEmpty() Clause { return f.clause(schema.OpIsEmpty) }
func (f StringField) IsNotEmpty() Clause { return f.clause(schema.OpIsNotEmpty) }
func (f StringField) StartsWith(s string) Clause { return f.clause(schema.OpStartsWith, s) }
func (f StringField) EndsWith(s string) Clause { return f.clause(schema.OpEndsWith, s) }
func (f StringField) IsIncludedIn(values []string) Clause {
	return f.clause(schema.OpIsIncludedIn, values)
}
func (f StringField) IsNotIncludedIn(values []string) Clause {
	return f.clause(schema.OpIsNotIncludedIn, values)
}
func (f StringField) ContainsAnyOf(values []string) Clause {
	return f.clause(schema.OpContainsAnyOf, values)
}
func (f StringField) DoesNotContainAnyOf(values []string) Clause {
	return f.clause(schema.OpDoesNotContainAnyOf, values)
}
func (f StringField) MatchesRegex(pattern string) Clause {
	return f.clause(schema.OpMatchesRegex, pattern)
}
func (f StringField) DoesNotMatchRegex(pattern string) Clause {
	return f.clause(schema.OpDoesNotMatchRegex, pattern)
}
func (f StringField) IsValidEmail() Clause { return f.clause(schema.OpIsValidEmail) }
func (f StringField) IsNotValidEmail() Clause { return f.clause(schema.OpIsNotValidEmail) }
func (f StringField) IsValidURL() Clause { return f.clause(schema.OpIsValidURL) }
func (f StringField) IsNotValidURL() Clause { return f.clause(schema.OpIsNotValidURL) }
func (f StringField) IsValidIP() Clause { return f.clause(schema.OpIsValidIP) }
func (f StringField) IsNotValidIP() Clause { return f.clause(schema.OpIsNotValidIP) }
func (f StringField) IsUppercase() Clause { return f.clause(schema.OpIsUppercase) }
func (f StringField) IsLowercase() Clause { return f.clause(schema.OpIsLowercase) }
func (f StringField) IsNumeric() Clause { return f.clause(schema.OpIsNumeric) }
func (f StringField) Assign(s string) Assignment {
	return Assignment{Field: f.key, Value: s}
}

// DateField is a typed handle to a date field. Operands are time.Time and
// are normalized to RFC 3339 strings when the clause is adopted.
type DateField struct{ fieldRef }

func (f DateField) Any() Clause { return f.clause(schema.OpAny) }
func (f DateField) IsPast() Clause { return f.clause(schema.OpIsPast) }
func (f DateField) IsFuture() Clause { return f.clause(schema.OpIsFuture) }
func (f DateField) DaysAgo(days int) Clause {
	return f.clause(schema.OpDaysAgo, days)
}
func (f DateField) LessThanDaysAgo(days int) Clause {
	return f.clause(schema.OpLessThanDaysAgo, days)
}
func (f DateField) MoreThanDaysAgo(days int) Clause {
	return f.clause(schema.OpMoreThanDaysAgo, days)
}
func (f DateField) DaysFromNow(days int) Clause {
	return f.clause(schema.OpDaysFromNow, days)
}
func (f DateField) LessThanDaysFromNow(days int) Clause {
	return f.clause(schema.OpLessThanDaysFromNow, days)
}
func (f DateField) MoreThanDaysFromNow(days int) Clause {
	return f.clause(schema.OpMoreThanDaysFromNow, days)
}
func (f DateField) IsToday() Clause { return f.clause(schema.OpIsToday) }
func (f DateField) IsThisWeek() Clause { return f.clause(schema.OpIsThisWeek) }
func (f DateField) IsThisMonth() Clause { return f.clause(schema.OpIsThisMonth) }
func (f DateField) IsThisYear() Clause { return f.clause(schema.OpIsThisYear) }
func (f DateField) IsNextWeek() Clause { return f.clause(schema.OpIsNextWeek) }
func (f DateField) IsNextMonth() Clause { return f.clause(schema.OpIsNextMonth) }
func (f DateField) IsNextYear() Clause { return f.clause(schema.OpIsNextYear) }
func (f DateField) IsLastWeek() Clause { return f.clause(schema.OpIsLastWeek) }
func (f DateField) IsLastMonth() Clause { return f.clause(schema.OpIsLastMonth) }
func (f DateField) IsLastYear() Clause { return f.clause(schema.OpIsLastYear) }
func (f DateField) After(t time.Time) Clause {
	return f.clause(schema.OpAfter, t)
}
func (f DateField) OnOrAfter(t time.Time) Clause {
	return f.clause(schema.OpOnOrAfter, t)
}
func (f DateField) Before(t time.Time) Clause {
	return f.clause(schema.OpBefore, t)
}
func (f DateField) OnOrBefore(t time.Time) Clause {
	return f.clause(schema.OpOnOrBefore, t)
}
func (f DateField) Between(start, end time.Time) Clause {
	return f.clause(schema.OpBetween, start, end)
}
func (f DateField) NotBetween(start, end time.Time) Clause {
	return f.clause(schema.OpNotBetween, start, end)
}
func (f DateField) Assign(t time.Time) Assignment {
	return Assignment{Field: f.key, Value: t}
}

// ListField is a typed handle to a list field.
type ListField struct{ fieldRef }

func (f ListField) Any() Clause { return f.clause(schema.OpAny) }
func (f ListField) Contains(v any) Clause { return f.clause(schema.OpContains, v) }
func (f ListField) DoesNotContain(v any) Clause {
	return f.clause(schema.OpDoesNotContain, v)
}
func (f ListField) IsEmpty() Clause { return f.clause(schema.OpIsEmpty) }
func (f ListField) IsNotEmpty() Clause { return f.clause(schema.OpIsNotEmpty) }
func (f ListField) IsOfLength(n int) Clause {
	return f.clause(schema.OpIsOfLength, n)
}
func (f ListField) IsNotOfLength(n int) Clause {
	return f.clause(schema.OpIsNotOfLength, n)
}
func (f ListField) IsLongerThan(n int) Clause {
	return f.clause(schema.OpIsLongerThan, n)
}
func (f ListField) IsShorterThan(n int) Clause {
	return f.clause(schema.OpIsShorterThan, n)
}
func (f ListField) ContainsAllOf(values []any) Clause {
	return f.clause(schema.OpContainsAllOf, values)
}
func (f ListField) ContainsAnyOf(values []any) Clause {
	return f.clause(schema.OpContainsAnyOf, values)
}
func (f ListField) ContainsNoneOf(values []any) Clause {
	return f.clause(schema.OpContainsNoneOf, values)
}
func (f ListField) IsEqualTo(values []any) Clause {
	return f.clause(schema.OpIsEqualTo, values)
}
func (f ListField) IsNotEqualTo(values []any) Clause {
	return f.clause(schema.OpIsNotEqualTo, values)
}
func (f ListField) ContainsDuplicates() Clause {
	return f.clause(schema.OpContainsDuplicates)
}
func (f ListField) NoDuplicates() Clause {
	return f.clause(schema.OpNoDuplicates)
}
func (f ListField) HasUniqueElements() Clause {
	return f.clause(schema.OpHasUniqueElements)
}
func (f ListField) ContainsKeyValue(key string, value any) Clause {
	return f.clause(schema.OpContainsKeyValue, key, value)
}
func (f ListField) IsSublistOf(values []any) Clause {
	return f.clause(schema.OpIsSublistOf, values)
}
func (f ListField) IsSuperlistOf(values []any) Clause {
	return f.clause(schema.OpIsSuperlistOf, values)
}
func (f ListField) Assign(values []any) Assignment {
	return Assignment{Field: f.key, Value: values}
}
