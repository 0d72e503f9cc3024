package schema

import (
	"fmt"
	"math"
	"regexp"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
)

// Operator is the stable string tag for a comparison operator. Tags, not
// positional indices, are what serialization records, so catalogs can be
// reordered without breaking stored documents.
type Operator string

// Operator tags shared across field types.
const (
	OpAny            Operator = "any"
	OpEquals         Operator = "equals"
	OpDoesNotEqual   Operator = "does not equal"
	OpContains       Operator = "contains"
	OpDoesNotContain Operator = "does not contain"
	OpIsEmpty        Operator = "is empty"
	OpIsNotEmpty     Operator = "is not empty"
	OpBetween        Operator = "between"
	OpNotBetween     Operator = "not between"
	OpContainsAnyOf  Operator = "contains any of"
)

// Boolean operator tags.
const (
	OpIsTrue  Operator = "is true"
	OpIsFalse Operator = "is false"
)

// Number operator tags.
const (
	OpGreaterThan        Operator = "greater than"
	OpLessThan           Operator = "less than"
	OpGreaterThanOrEqual Operator = "greater than or equal to"
	OpLessThanOrEqual    Operator = "less than or equal to"
	OpIsEven             Operator = "is even"
	OpIsOdd              Operator = "is odd"
	OpIsPositive         Operator = "is positive"
	OpIsNegative         Operator = "is negative"
	OpIsZero             Operator = "is zero"
	OpIsNotZero          Operator = "is not zero"
	OpIsMultipleOf       Operator = "is a multiple of"
	OpIsNotMultipleOf    Operator = "is not a multiple of"
	OpIsPowerOf          Operator = "is a power of"
)

// String operator tags.
const (
	OpStartsWith           Operator = "starts with"
	OpEndsWith             Operator = "ends with"
	OpIsIncludedIn         Operator = "is included in"
	OpIsNotIncludedIn      Operator = "is not included in"
	OpDoesNotContainAnyOf  Operator = "does not contain any of"
	OpMatchesRegex         Operator = "matches RegEx"
	OpDoesNotMatchRegex    Operator = "does not match RegEx"
	OpIsValidEmail         Operator = "is a valid email address"
	OpIsNotValidEmail      Operator = "is not a valid email address"
	OpIsValidURL           Operator = "is a valid URL"
	OpIsNotValidURL        Operator = "is not a valid URL"
	OpIsValidIP            Operator = "is a valid IP address"
	OpIsNotValidIP         Operator = "is not a valid IP address"
	OpIsUppercase          Operator = "is uppercase"
	OpIsLowercase          Operator = "is lowercase"
	OpIsNumeric            Operator = "is numeric"
)

// Date operator tags.
const (
	OpIsPast              Operator = "is in the past"
	OpIsFuture            Operator = "is in the future"
	OpDaysAgo             Operator = "days ago"
	OpLessThanDaysAgo     Operator = "is less than N days ago"
	OpMoreThanDaysAgo     Operator = "is more than N days ago"
	OpDaysFromNow         Operator = "days from now"
	OpLessThanDaysFromNow Operator = "is less than N days from now"
	OpMoreThanDaysFromNow Operator = "is more than N days from now"
	OpIsToday             Operator = "is today"
	OpIsThisWeek          Operator = "is this week"
	OpIsThisMonth         Operator = "is this month"
	OpIsThisYear          Operator = "is this year"
	OpIsNextWeek          Operator = "is next week"
	OpIsNextMonth         Operator = "is next month"
	OpIsNextYear          Operator = "is next year"
	OpIsLastWeek          Operator = "is last week"
	OpIsLastMonth         Operator = "is last month"
	OpIsLastYear          Operator = "is last year"
	OpAfter               Operator = "after"
	OpOnOrAfter           Operator = "on or after"
	OpBefore              Operator = "before"
	OpOnOrBefore          Operator = "on or before"
)

// List operator tags.
const (
	OpIsOfLength           Operator = "is of length"
	OpIsNotOfLength        Operator = "is not of length"
	OpIsLongerThan         Operator = "is longer than"
	OpIsShorterThan        Operator = "is shorter than"
	OpContainsAllOf        Operator = "contains all of"
	OpContainsNoneOf       Operator = "contains none of"
	OpIsEqualTo            Operator = "is equal to"
	OpIsNotEqualTo         Operator = "is not equal to"
	OpContainsDuplicates   Operator = "contains duplicates"
	OpNoDuplicates         Operator = "does not contain duplicates"
	OpHasUniqueElements    Operator = "has unique elements"
	OpContainsKeyValue     Operator = "contains object with key & value"
	OpIsSublistOf          Operator = "is a sublist of"
	OpIsSuperlistOf        Operator = "is a superlist of"
)

// ArgKind is the expected shape of a single operand.
type ArgKind string

const (
	ArgNumber  ArgKind = "number"
	ArgString  ArgKind = "string"
	ArgDate    ArgKind = "date"
	ArgList    ArgKind = "list"
	ArgGeneric ArgKind = "generic"
)

// ArgSpec describes one operand of an operator.
type ArgSpec struct {
	Name        string
	Kind        ArgKind
	Description string
	Check       func(v any) error // Optional per-operand check, run after the shape check
}

// OperatorDef defines an operator: its stable tag, operand specs, and an
// optional cross-operand check. Arity is the number of operand specs.
type OperatorDef struct {
	Op          Operator
	Args        []ArgSpec
	Description string
	Check       func(args []any) error // Optional cross-operand check, run on normalized operands
}

// Arity returns the number of operands the operator takes.
func (d OperatorDef) Arity() int {
	return len(d.Args)
}

// ValidateOperands checks an operand list against an operator definition:
// count against arity, each value against its operand spec, then the
// cross-operand check. It returns the operands in canonical form.
func ValidateOperands(def OperatorDef, args []any) ([]any, error) {
	if len(args) != def.Arity() {
		return nil, forgeErrors.New(forgeErrors.KindOperand,
			"operator %q takes %d operand(s), got %d", def.Op, def.Arity(), len(args))
	}

	normalized := make([]any, len(args))
	for i, spec := range def.Args {
		v, err := normalizeArg(spec.Kind, args[i])
		if err != nil {
			return nil, forgeErrors.New(forgeErrors.KindOperand,
				"operand %q of %q: %v", spec.Name, def.Op, err)
		}
		if spec.Check != nil {
			if err := spec.Check(v); err != nil {
				return nil, forgeErrors.New(forgeErrors.KindOperand,
					"operand %q of %q: %v", spec.Name, def.Op, err)
			}
		}
		normalized[i] = v
	}

	if def.Check != nil {
		if err := def.Check(normalized); err != nil {
			return nil, forgeErrors.New(forgeErrors.KindOperand,
				"operands of %q: %v", def.Op, err)
		}
	}

	return normalized, nil
}

// normalizeArg checks one operand against its expected shape and returns
// its canonical form.
func normalizeArg(kind ArgKind, v any) (any, error) {
	switch kind {
	case ArgNumber:
		if !isNumeric(v) {
			return nil, fmt.Errorf("expected number, got %T", v)
		}
		return toFloat(v), nil
	case ArgString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case ArgDate:
		if v == nil {
			return nil, fmt.Errorf("expected date, got nil")
		}
		return NormalizeValue(Date, v)
	case ArgList:
		if !isList(v) {
			return nil, fmt.Errorf("expected list, got %T", v)
		}
		return normalizeAny(v), nil
	case ArgGeneric:
		return normalizeAny(v), nil
	}
	return nil, fmt.Errorf("unknown operand kind %q", kind)
}

// nonEmptyString rejects empty string operands (substring and pattern
// operators are meaningless on the empty string).
func nonEmptyString(v any) error {
	if v.(string) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

// nonEmptyList rejects empty list operands.
func nonEmptyList(v any) error {
	if len(v.([]any)) == 0 {
		return fmt.Errorf("list must not be empty")
	}
	return nil
}

// validPattern requires a syntactically valid regular expression.
func validPattern(v any) error {
	s := v.(string)
	if s == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if _, err := regexp.Compile(s); err != nil {
		return fmt.Errorf("invalid pattern: %v", err)
	}
	return nil
}

// nonNegativeInteger requires a whole number >= 0 (list length operands).
func nonNegativeInteger(v any) error {
	n := v.(float64)
	if n < 0 || n != math.Trunc(n) {
		return fmt.Errorf("must be a non-negative integer, got %v", n)
	}
	return nil
}

// orderedRange requires start <= end on a two-operand range.
func orderedRange(args []any) error {
	start := args[0].(float64)
	end := args[1].(float64)
	if start > end {
		return fmt.Errorf("start (%v) must be less than or equal to end (%v)", start, end)
	}
	return nil
}

// orderedDateRange requires start <= end on a two-operand date range.
func orderedDateRange(args []any) error {
	start, err := ParseDate(args[0].(string))
	if err != nil {
		return err
	}
	end, err := ParseDate(args[1].(string))
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("start (%v) must not be after end (%v)", args[0], args[1])
	}
	return nil
}

// positiveNumber requires a value > 0 (power-of base).
func positiveNumber(v any) error {
	if v.(float64) <= 0 {
		return fmt.Errorf("must be positive, got %v", v)
	}
	return nil
}
