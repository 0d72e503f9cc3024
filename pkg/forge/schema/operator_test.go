package schema

import (
	"reflect"
	"testing"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
)

func TestCatalogMembership(t *testing.T) {
	tests := []struct {
		t  FieldType
		op Operator
		in bool
	}{
		{Boolean, OpIsTrue, true},
		{Boolean, OpGreaterThan, false},
		{Number, OpBetween, true},
		{Number, OpIsTrue, false},
		{String, OpMatchesRegex, true},
		{String, OpIsEven, false},
		{Date, OpIsPast, true},
		{Date, OpStartsWith, false},
		{List, OpContainsKeyValue, true},
		{List, OpIsFuture, false},
	}
	for _, tt := range tests {
		if _, ok := Lookup(tt.t, tt.op); ok != tt.in {
			t.Errorf("Lookup(%s, %q) = %v, want %v", tt.t, tt.op, ok, tt.in)
		}
	}
}

func TestEveryTypeHasAny(t *testing.T) {
	for _, ft := range FieldTypes() {
		def, ok := Lookup(ft, OpAny)
		if !ok {
			t.Errorf("%s catalog missing %q", ft, OpAny)
			continue
		}
		if def.Arity() != 0 {
			t.Errorf("%s %q arity = %d, want 0", ft, OpAny, def.Arity())
		}
	}
}

func TestKnownOperator(t *testing.T) {
	if !KnownOperator(OpMatchesRegex) {
		t.Error("matches RegEx not known")
	}
	if KnownOperator(Operator("sounds like")) {
		t.Error("invented operator reported as known")
	}
}

func TestOperatorsOrderStable(t *testing.T) {
	a := Operators(Number)
	b := Operators(Number)
	if !reflect.DeepEqual(a, b) {
		t.Error("catalog order differs between calls")
	}
	if a[0] != OpAny {
		t.Errorf("first number operator = %q, want %q", a[0], OpAny)
	}
}

func TestValidateOperands(t *testing.T) {
	numBetween, _ := Lookup(Number, OpBetween)
	numGT, _ := Lookup(Number, OpGreaterThan)
	strRegex, _ := Lookup(String, OpMatchesRegex)
	strIncluded, _ := Lookup(String, OpIsIncludedIn)
	listLen, _ := Lookup(List, OpIsOfLength)
	dateBetween, _ := Lookup(Date, OpBetween)
	powerOf, _ := Lookup(Number, OpIsPowerOf)

	tests := []struct {
		name    string
		def     OperatorDef
		args    []any
		want    []any
		wantErr bool
	}{
		{name: "greater than int normalized", def: numGT, args: []any{10}, want: []any{float64(10)}},
		{name: "greater than wrong arity", def: numGT, args: []any{}, wantErr: true},
		{name: "greater than extra operand", def: numGT, args: []any{1, 2}, wantErr: true},
		{name: "greater than wrong shape", def: numGT, args: []any{"10"}, wantErr: true},
		{name: "between ordered", def: numBetween, args: []any{1, 5}, want: []any{float64(1), float64(5)}},
		{name: "between equal bounds", def: numBetween, args: []any{5, 5}, want: []any{float64(5), float64(5)}},
		{name: "between reversed", def: numBetween, args: []any{5, 1}, wantErr: true},
		{name: "regex valid", def: strRegex, args: []any{"^a+$"}, want: []any{"^a+$"}},
		{name: "regex invalid", def: strRegex, args: []any{"("}, wantErr: true},
		{name: "regex empty", def: strRegex, args: []any{""}, wantErr: true},
		{name: "included in list", def: strIncluded, args: []any{[]string{"a", "b"}}, want: []any{[]any{"a", "b"}}},
		{name: "included in empty list", def: strIncluded, args: []any{[]string{}}, wantErr: true},
		{name: "length non-negative", def: listLen, args: []any{3}, want: []any{float64(3)}},
		{name: "length negative", def: listLen, args: []any{-1}, wantErr: true},
		{name: "length fractional", def: listLen, args: []any{2.5}, wantErr: true},
		{name: "date range ordered", def: dateBetween, args: []any{"2026-01-01", "2026-06-01"}, want: []any{"2026-01-01", "2026-06-01"}},
		{name: "date range reversed", def: dateBetween, args: []any{"2026-06-01", "2026-01-01"}, wantErr: true},
		{name: "power of positive", def: powerOf, args: []any{2}, want: []any{float64(2)}},
		{name: "power of zero", def: powerOf, args: []any{0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateOperands(tt.def, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if forgeErrors.KindOf(err) != forgeErrors.KindOperand {
					t.Errorf("kind = %q, want operand", forgeErrors.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateOperands failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("operands = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestAllOperatorStringsDeduplicated(t *testing.T) {
	all := AllOperatorStrings()
	seen := make(map[string]bool)
	for _, op := range all {
		if seen[op] {
			t.Errorf("operator %q appears twice", op)
		}
		seen[op] = true
	}
	if !seen[string(OpBetween)] {
		t.Error("shared operator missing from union")
	}
}
