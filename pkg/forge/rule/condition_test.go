package rule

import (
	"reflect"
	"strings"
	"testing"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/schema"
)

func discountRule(t *testing.T) *Rule {
	t.Helper()
	r := New()
	if err := r.SetName("Customer Discount"); err != nil {
		t.Fatal(err)
	}
	mustAdd := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	_, err := r.AddNumberField("purchase_count", "", 0)
	mustAdd(err)
	_, err = r.AddBooleanField("is_subscribed", "", false)
	mustAdd(err)
	_, err = r.AddStringField("customer_type", "", "regular")
	mustAdd(err)
	_, err = r.AddBooleanResponse("discount_eligible", "", false)
	mustAdd(err)
	_, err = r.AddNumberResponse("discount_percentage", "", 0)
	mustAdd(err)
	return r
}

func TestSetClause(t *testing.T) {
	r := discountRule(t)
	c := r.NewCondition()

	if err := c.SetClause("purchase_count", schema.OpGreaterThanOrEqual, 10); err != nil {
		t.Fatalf("SetClause failed: %v", err)
	}

	cl, ok := c.Clause("purchase_count")
	if !ok {
		t.Fatal("clause not stored")
	}
	if cl.Op != schema.OpGreaterThanOrEqual {
		t.Errorf("op = %q", cl.Op)
	}
	if !reflect.DeepEqual(cl.Args, []any{float64(10)}) {
		t.Errorf("args not normalized: %#v", cl.Args)
	}
}

func TestSetClauseLastWriteWins(t *testing.T) {
	r := discountRule(t)
	c := r.NewCondition()

	if err := c.SetClause("purchase_count", schema.OpGreaterThan, 5); err != nil {
		t.Fatal(err)
	}
	if err := c.SetClause("purchase_count", schema.OpLessThan, 100); err != nil {
		t.Fatal(err)
	}

	cl, _ := c.Clause("purchase_count")
	if cl.Op != schema.OpLessThan {
		t.Errorf("op = %q, want the later clause", cl.Op)
	}
}

func TestSetClauseErrors(t *testing.T) {
	r := discountRule(t)
	c := r.NewCondition()

	tests := []struct {
		name     string
		field    string
		op       schema.Operator
		args     []any
		wantKind forgeErrors.Kind
	}{
		{
			name:     "unknown field",
			field:    "purchse_count",
			op:       schema.OpGreaterThan,
			args:     []any{1},
			wantKind: forgeErrors.KindUnknownField,
		},
		{
			name:     "operator outside catalog",
			field:    "is_subscribed",
			op:       schema.OpGreaterThan,
			args:     []any{1},
			wantKind: forgeErrors.KindOperatorMismatch,
		},
		{
			name:     "wrong operand count",
			field:    "purchase_count",
			op:       schema.OpBetween,
			args:     []any{1},
			wantKind: forgeErrors.KindOperand,
		},
		{
			name:     "wrong operand shape",
			field:    "purchase_count",
			op:       schema.OpGreaterThan,
			args:     []any{"ten"},
			wantKind: forgeErrors.KindOperand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetClause(tt.field, tt.op, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := forgeErrors.KindOf(err); got != tt.wantKind {
				t.Errorf("kind = %q, want %q", got, tt.wantKind)
			}
			if _, stored := c.Clause(tt.field); stored {
				t.Error("failed clause was stored")
			}
		})
	}
}

func TestSetClauseUnknownFieldSuggests(t *testing.T) {
	r := discountRule(t)
	c := r.NewCondition()

	err := c.SetClause("purchse_count", schema.OpGreaterThan, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `did you mean "purchase_count"?`) {
		t.Errorf("missing suggestion in %q", err.Error())
	}
}

func TestSetResponse(t *testing.T) {
	r := discountRule(t)
	c := r.NewCondition()

	if err := c.SetResponse("discount_percentage", 5); err != nil {
		t.Fatalf("SetResponse failed: %v", err)
	}
	v, ok := c.Response("discount_percentage")
	if !ok || v != float64(5) {
		t.Errorf("response = (%#v, %v)", v, ok)
	}

	err := c.SetResponse("discount_eligible", "yes")
	if err == nil {
		t.Fatal("wrong-shape response accepted")
	}
	if forgeErrors.KindOf(err) != forgeErrors.KindTypeMismatch {
		t.Errorf("kind = %q, want type_mismatch", forgeErrors.KindOf(err))
	}

	err = c.SetResponse("discount", true)
	if forgeErrors.KindOf(err) != forgeErrors.KindUnknownField {
		t.Errorf("kind = %q, want unknown_field", forgeErrors.KindOf(err))
	}
}

func TestConditionKeysFollowSchemaOrder(t *testing.T) {
	r := discountRule(t)
	c := r.NewCondition()

	// Set in reverse declaration order.
	if err := c.SetClause("customer_type", schema.OpEquals, "regular"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetClause("purchase_count", schema.OpGreaterThan, 1); err != nil {
		t.Fatal(err)
	}

	want := []string{"purchase_count", "customer_type"}
	if got := c.ClauseKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("ClauseKeys = %v, want %v", got, want)
	}
}

func TestConditionSettings(t *testing.T) {
	r := discountRule(t)
	c := r.NewCondition()

	if !c.Settings.Enabled {
		t.Error("new condition not enabled")
	}

	c.Disable().SetPriority(3).SetGroup("tier-1").SetSchedule("0 9 * * MON-FRI")
	if c.Settings.Enabled || c.Settings.Priority != 3 || c.Settings.GroupID != "tier-1" {
		t.Errorf("settings = %+v", c.Settings)
	}
	if len(c.Settings.Schedule) != 1 {
		t.Errorf("schedule = %v", c.Settings.Schedule)
	}
}

func TestConditionAt(t *testing.T) {
	r := discountRule(t)
	first := r.NewCondition()
	second := r.NewCondition()

	got, err := r.ConditionAt(0)
	if err != nil || got != first {
		t.Errorf("ConditionAt(0) = (%v, %v), want first condition", got, err)
	}
	got, err = r.ConditionAt(1)
	if err != nil || got != second {
		t.Errorf("ConditionAt(1) = (%v, %v), want second condition", got, err)
	}

	if _, err := r.ConditionAt(2); err == nil {
		t.Error("index past end accepted")
	}
	if _, err := r.ConditionAt(-1); err == nil {
		t.Error("negative index accepted")
	}
}

func TestFindConditions(t *testing.T) {
	r := discountRule(t)
	tier, err := r.GetStringField("customer_type")
	if err != nil {
		t.Fatal(err)
	}
	count, err := r.GetNumberField("purchase_count")
	if err != nil {
		t.Fatal(err)
	}

	c1 := r.NewCondition()
	if err := c1.SetClause("customer_type", schema.OpEquals, "premium"); err != nil {
		t.Fatal(err)
	}
	if err := c1.SetClause("purchase_count", schema.OpGreaterThanOrEqual, 10); err != nil {
		t.Fatal(err)
	}
	c2 := r.NewCondition()
	if err := c2.SetClause("customer_type", schema.OpEquals, "regular"); err != nil {
		t.Fatal(err)
	}

	matched := r.FindConditions(tier.Equals("premium"))
	if len(matched) != 1 || matched[0] != c1 {
		t.Errorf("single-clause search matched %d condition(s)", len(matched))
	}

	matched = r.FindConditions(tier.Equals("premium"), count.GreaterThanOrEqual(10))
	if len(matched) != 1 || matched[0] != c1 {
		t.Errorf("two-clause search matched %d condition(s)", len(matched))
	}

	// Raw operands compare against stored ones in canonical form.
	matched = r.FindConditions(Clause{Field: "purchase_count", Op: schema.OpGreaterThanOrEqual, Args: []any{10}})
	if len(matched) != 1 || matched[0] != c1 {
		t.Errorf("integer operand search matched %d condition(s)", len(matched))
	}

	if matched := r.FindConditions(tier.Equals("gold")); len(matched) != 0 {
		t.Errorf("non-matching search matched %d condition(s)", len(matched))
	}
}

func TestConditionDelete(t *testing.T) {
	r := discountRule(t)
	c1 := r.NewCondition()
	c2 := r.NewCondition()

	c1.Delete()
	if got := r.Conditions(); len(got) != 1 || got[0] != c2 {
		t.Fatalf("conditions after delete = %d", len(got))
	}

	c1.Delete() // already gone
	if len(r.Conditions()) != 1 {
		t.Error("repeated delete removed another condition")
	}
}
