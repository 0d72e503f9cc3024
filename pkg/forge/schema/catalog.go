package schema

// Each field type owns a closed catalog of legal operators. Catalogs are
// declared as ordered tables; the declaration order is the presentation
// order and never carries meaning on the wire.

var booleanCatalog = []OperatorDef{
	{Op: OpAny, Description: "Match any boolean value"},
	{Op: OpIsTrue, Description: "Check if value is true"},
	{Op: OpIsFalse, Description: "Check if value is false"},
}

var numberCatalog = []OperatorDef{
	{Op: OpAny, Description: "Match any numeric value"},
	{Op: OpEquals, Args: []ArgSpec{{Name: "value", Kind: ArgNumber, Description: "Number that value must equal"}}},
	{Op: OpDoesNotEqual, Args: []ArgSpec{{Name: "value", Kind: ArgNumber, Description: "Number that value must not equal"}}},
	{Op: OpGreaterThan, Args: []ArgSpec{{Name: "bound", Kind: ArgNumber, Description: "Number that value must be greater than"}}},
	{Op: OpLessThan, Args: []ArgSpec{{Name: "bound", Kind: ArgNumber, Description: "Number that value must be less than"}}},
	{Op: OpGreaterThanOrEqual, Args: []ArgSpec{{Name: "bound", Kind: ArgNumber, Description: "Number that value must be greater than or equal to"}}},
	{Op: OpLessThanOrEqual, Args: []ArgSpec{{Name: "bound", Kind: ArgNumber, Description: "Number that value must be less than or equal to"}}},
	{
		Op: OpBetween,
		Args: []ArgSpec{
			{Name: "start", Kind: ArgNumber, Description: "Number that value must be greater than or equal to"},
			{Name: "end", Kind: ArgNumber, Description: "Number that value must be less than or equal to"},
		},
		Check: orderedRange,
	},
	{
		Op: OpNotBetween,
		Args: []ArgSpec{
			{Name: "start", Kind: ArgNumber, Description: "Number that value must be less than"},
			{Name: "end", Kind: ArgNumber, Description: "Number that value must be greater than"},
		},
		Check: orderedRange,
	},
	{Op: OpIsEven, Description: "Check if value is even"},
	{Op: OpIsOdd, Description: "Check if value is odd"},
	{Op: OpIsPositive, Description: "Check if value is greater than zero"},
	{Op: OpIsNegative, Description: "Check if value is less than zero"},
	{Op: OpIsZero, Description: "Check if value equals zero"},
	{Op: OpIsNotZero, Description: "Check if value does not equal zero"},
	{Op: OpIsMultipleOf, Args: []ArgSpec{{Name: "multiple", Kind: ArgNumber, Description: "Number that value must be a multiple of"}}},
	{Op: OpIsNotMultipleOf, Args: []ArgSpec{{Name: "multiple", Kind: ArgNumber, Description: "Number that value must not be a multiple of"}}},
	{Op: OpIsPowerOf, Args: []ArgSpec{{Name: "base", Kind: ArgNumber, Description: "The base number", Check: positiveNumber}}},
}

var stringCatalog = []OperatorDef{
	{Op: OpAny, Description: "Match any string value"},
	{Op: OpContains, Args: []ArgSpec{{Name: "value", Kind: ArgString, Description: "The value to search for within the string", Check: nonEmptyString}}},
	{Op: OpDoesNotContain, Args: []ArgSpec{{Name: "value", Kind: ArgString, Description: "The value to search for within the string", Check: nonEmptyString}}},
	{Op: OpEquals, Args: []ArgSpec{{Name: "value", Kind: ArgString, Description: "The value to compare against"}}},
	{Op: OpDoesNotEqual, Args: []ArgSpec{{Name: "value", Kind: ArgString, Description: "The value to compare against"}}},
	{Op: OpIsEmpty, Description: "Check if string is empty"},
	{Op: OpIsNotEmpty, Description: "Check if string is not empty"},
	{Op: OpStartsWith, Args: []ArgSpec{{Name: "value", Kind: ArgString, Description: "The value the string should start with", Check: nonEmptyString}}},
	{Op: OpEndsWith, Args: []ArgSpec{{Name: "value", Kind: ArgString, Description: "The value the string should end with", Check: nonEmptyString}}},
	{Op: OpIsIncludedIn, Args: []ArgSpec{{Name: "values", Kind: ArgList, Description: "A list of values the string should be in", Check: nonEmptyList}}},
	{Op: OpIsNotIncludedIn, Args: []ArgSpec{{Name: "values", Kind: ArgList, Description: "A list of values the string should not be in", Check: nonEmptyList}}},
	{Op: OpContainsAnyOf, Args: []ArgSpec{{Name: "values", Kind: ArgList, Description: "A list of values the string should contain at least one of", Check: nonEmptyList}}},
	{Op: OpDoesNotContainAnyOf, Args: []ArgSpec{{Name: "values", Kind: ArgList, Description: "A list of values the string should not contain", Check: nonEmptyList}}},
	{Op: OpMatchesRegex, Args: []ArgSpec{{Name: "pattern", Kind: ArgString, Description: "The pattern the string should match", Check: validPattern}}},
	{Op: OpDoesNotMatchRegex, Args: []ArgSpec{{Name: "pattern", Kind: ArgString, Description: "The pattern the string should not match", Check: validPattern}}},
	{Op: OpIsValidEmail, Description: "Check if string is a valid email address"},
	{Op: OpIsNotValidEmail, Description: "Check if string is not a valid email address"},
	{Op: OpIsValidURL, Description: "Check if string is a valid URL"},
	{Op: OpIsNotValidURL, Description: "Check if string is not a valid URL"},
	{Op: OpIsValidIP, Description: "Check if string is a valid IP address"},
	{Op: OpIsNotValidIP, Description: "Check if string is not a valid IP address"},
	{Op: OpIsUppercase, Description: "Check if string is all uppercase"},
	{Op: OpIsLowercase, Description: "Check if string is all lowercase"},
	{Op: OpIsNumeric, Description: "Check if string contains only numeric characters"},
}

var dateCatalog = []OperatorDef{
	{Op: OpAny, Description: "Match any date value"},
	{Op: OpIsPast, Description: "Date is in the past"},
	{Op: OpIsFuture, Description: "Date is in the future"},
	{Op: OpDaysAgo, Args: []ArgSpec{{Name: "days", Kind: ArgNumber, Description: "Number of days ago that the date is equal to", Check: nonNegativeInteger}}},
	{Op: OpLessThanDaysAgo, Args: []ArgSpec{{Name: "days", Kind: ArgNumber, Description: "Number of days ago that the date is less than or equal to", Check: nonNegativeInteger}}},
	{Op: OpMoreThanDaysAgo, Args: []ArgSpec{{Name: "days", Kind: ArgNumber, Description: "Number of days ago that the date is more than or equal to", Check: nonNegativeInteger}}},
	{Op: OpDaysFromNow, Args: []ArgSpec{{Name: "days", Kind: ArgNumber, Description: "Number of days from now that the date is equal to", Check: nonNegativeInteger}}},
	{Op: OpLessThanDaysFromNow, Args: []ArgSpec{{Name: "days", Kind: ArgNumber, Description: "Number of days from now that the date is less than or equal to", Check: nonNegativeInteger}}},
	{Op: OpMoreThanDaysFromNow, Args: []ArgSpec{{Name: "days", Kind: ArgNumber, Description: "Number of days from now that the date is more than or equal to", Check: nonNegativeInteger}}},
	{Op: OpIsToday, Description: "Date is today"},
	{Op: OpIsThisWeek, Description: "Date is in the current week"},
	{Op: OpIsThisMonth, Description: "Date is in the current month"},
	{Op: OpIsThisYear, Description: "Date is in the current year"},
	{Op: OpIsNextWeek, Description: "Date is in the next week"},
	{Op: OpIsNextMonth, Description: "Date is in the next month"},
	{Op: OpIsNextYear, Description: "Date is in the next year"},
	{Op: OpIsLastWeek, Description: "Date is in the previous week"},
	{Op: OpIsLastMonth, Description: "Date is in the previous month"},
	{Op: OpIsLastYear, Description: "Date is in the previous year"},
	{Op: OpAfter, Args: []ArgSpec{{Name: "date", Kind: ArgDate, Description: "Date that value must be after"}}},
	{Op: OpOnOrAfter, Args: []ArgSpec{{Name: "date", Kind: ArgDate, Description: "Date that value must be on or after"}}},
	{Op: OpBefore, Args: []ArgSpec{{Name: "date", Kind: ArgDate, Description: "Date that value must be before"}}},
	{Op: OpOnOrBefore, Args: []ArgSpec{{Name: "date", Kind: ArgDate, Description: "Date that value must be on or before"}}},
	{
		Op: OpBetween,
		Args: []ArgSpec{
			{Name: "start", Kind: ArgDate, Description: "Date that value must be on or after"},
			{Name: "end", Kind: ArgDate, Description: "Date that value must be on or before"},
		},
		Check: orderedDateRange,
	},
	{
		Op: OpNotBetween,
		Args: []ArgSpec{
			{Name: "start", Kind: ArgDate, Description: "Date that value must be before"},
			{Name: "end", Kind: ArgDate, Description: "Date that value must be after"},
		},
		Check: orderedDateRange,
	},
}

var listCatalog = []OperatorDef{
	{Op: OpAny, Description: "Match any list value"},
	{Op: OpContains, Args: []ArgSpec{{Name: "value", Kind: ArgGeneric, Description: "Value that must be contained in the list"}}},
	{Op: OpDoesNotContain, Args: []ArgSpec{{Name: "value", Kind: ArgGeneric, Description: "Value that must not be contained in the list"}}},
	{Op: OpIsEmpty, Description: "Check if list is empty"},
	{Op: OpIsNotEmpty, Description: "Check if list is not empty"},
	{Op: OpIsOfLength, Args: []ArgSpec{{Name: "length", Kind: ArgNumber, Description: "Length that the list must be", Check: nonNegativeInteger}}},
	{Op: OpIsNotOfLength, Args: []ArgSpec{{Name: "length", Kind: ArgNumber, Description: "Length that the list must not be", Check: nonNegativeInteger}}},
	{Op: OpIsLongerThan, Args: []ArgSpec{{Name: "length", Kind: ArgNumber, Description: "Length that the list must be longer than", Check: nonNegativeInteger}}},
	{Op: OpIsShorterThan, Args: []ArgSpec{{Name: "length", Kind: ArgNumber, Description: "Length that the list must be shorter than", Check: nonNegativeInteger}}},
	{Op: OpContainsAllOf, Args: []ArgSpec{{Name: "values", Kind: ArgList, Description: "List of values that must be contained in the list", Check: nonEmptyList}}},
	{Op: OpContainsAnyOf, Args: []ArgSpec{{Name: "values", Kind: ArgList, Description: "List of values that might be contained in the list", Check: nonEmptyList}}},
	{Op: OpContainsNoneOf, Args: []ArgSpec{{Name: "values", Kind: ArgList, Description: "List of values that must not be contained in the list", Check: nonEmptyList}}},
	{Op: OpIsEqualTo, Args: []ArgSpec{{Name: "list", Kind: ArgList, Description: "Value that the list must be equal to"}}},
	{Op: OpIsNotEqualTo, Args: []ArgSpec{{Name: "list", Kind: ArgList, Description: "Value that the list must not be equal to"}}},
	{Op: OpContainsDuplicates, Description: "Check if list contains duplicate values"},
	{Op: OpNoDuplicates, Description: "Check if list does not contain duplicate values"},
	{Op: OpHasUniqueElements, Description: "Check if all elements in the list are unique"},
	{
		Op: OpContainsKeyValue,
		Args: []ArgSpec{
			{Name: "key", Kind: ArgString, Description: "Key of any object contained in the list"},
			{Name: "value", Kind: ArgGeneric, Description: "Value that the key must be equal to"},
		},
	},
	{Op: OpIsSublistOf, Args: []ArgSpec{{Name: "superlist", Kind: ArgList, Description: "List that must contain this list as a sublist"}}},
	{Op: OpIsSuperlistOf, Args: []ArgSpec{{Name: "sublist", Kind: ArgList, Description: "List that must be contained as a sublist within this list"}}},
}

var catalogs = map[FieldType][]OperatorDef{
	Boolean: booleanCatalog,
	Number:  numberCatalog,
	String:  stringCatalog,
	Date:    dateCatalog,
	List:    listCatalog,
}

// Catalog returns the closed operator catalog for a field type, in
// declaration order. The lookup is total over the five field types.
func Catalog(t FieldType) []OperatorDef {
	return catalogs[t]
}

// Lookup finds an operator definition in a field type's catalog.
func Lookup(t FieldType, op Operator) (OperatorDef, bool) {
	for _, def := range catalogs[t] {
		if def.Op == op {
			return def, true
		}
	}
	return OperatorDef{}, false
}

// Operators returns the operator tags legal for a field type, in catalog
// order.
func Operators(t FieldType) []Operator {
	defs := catalogs[t]
	ops := make([]Operator, len(defs))
	for i, def := range defs {
		ops[i] = def.Op
	}
	return ops
}

// OperatorStrings returns the operator tags for a field type as strings,
// for use in error suggestions.
func OperatorStrings(t FieldType) []string {
	defs := catalogs[t]
	ops := make([]string, len(defs))
	for i, def := range defs {
		ops[i] = string(def.Op)
	}
	return ops
}

// KnownOperator reports whether a serialized operator tag belongs to any
// field type's catalog.
func KnownOperator(op Operator) bool {
	for _, defs := range catalogs {
		for _, def := range defs {
			if def.Op == op {
				return true
			}
		}
	}
	return false
}

// AllOperatorStrings returns the union of every catalog's operator tags,
// deduplicated, in catalog order per type. Used for unknown-tag
// suggestions.
func AllOperatorStrings() []string {
	seen := make(map[Operator]bool)
	var out []string
	for _, t := range FieldTypes() {
		for _, def := range catalogs[t] {
			if !seen[def.Op] {
				seen[def.Op] = true
				out = append(out, string(def.Op))
			}
		}
	}
	return out
}
