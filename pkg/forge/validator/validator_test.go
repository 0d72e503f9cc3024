package validator

import (
	"testing"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/schema"
)

func validRule(t *testing.T) *rule.Rule {
	t.Helper()
	r := rule.New()
	if err := r.SetName("Customer Discount"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddNumberField("purchase_count", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddStringField("customer_type", "", "regular"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddBooleanResponse("discount_eligible", "", false); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestValidateAcceptsValidRule(t *testing.T) {
	r := validRule(t)
	c := r.NewCondition()
	if err := c.SetClause("purchase_count", schema.OpGreaterThan, 5); err != nil {
		t.Fatal(err)
	}
	if err := c.SetResponse("discount_eligible", true); err != nil {
		t.Fatal(err)
	}

	if err := Validate(r); err != nil {
		t.Errorf("valid rule rejected: %v", err)
	}
}

func TestValidateAcceptsZeroConditions(t *testing.T) {
	if err := Validate(validRule(t)); err != nil {
		t.Errorf("vacuous rule rejected: %v", err)
	}
}

func TestValidateAggregatesViolations(t *testing.T) {
	r := validRule(t)
	c := r.NewCondition()
	// Inject two independent violations through the unvalidated path.
	c.PutClause("ghost_field", schema.OpGreaterThan, []any{float64(1)})
	c.PutClause("customer_type", schema.OpGreaterThan, []any{float64(1)})

	err := Validate(r)
	if err == nil {
		t.Fatal("invalid rule accepted")
	}
	el, ok := forgeErrors.AsList(err)
	if !ok {
		t.Fatalf("error is not a list: %T", err)
	}
	if el.Count() != 2 {
		t.Fatalf("violations = %d, want 2:\n%v", el.Count(), el)
	}
	if !el.HasKind(forgeErrors.KindUnknownField) {
		t.Error("missing unknown_field violation")
	}
	if !el.HasKind(forgeErrors.KindOperatorMismatch) {
		t.Error("missing operator_mismatch violation")
	}
}

func TestValidateStructuralGatesReferences(t *testing.T) {
	r := validRule(t)
	r.Name = ""
	c := r.NewCondition()
	c.PutClause("ghost_field", schema.OpGreaterThan, []any{float64(1)})

	err := Validate(r)
	el, ok := forgeErrors.AsList(err)
	if !ok {
		t.Fatalf("error is not a list: %T", err)
	}
	if !el.HasKind(forgeErrors.KindEmptyName) {
		t.Error("missing empty_name violation")
	}
	// Reference checks are skipped while the structure is broken.
	if el.HasKind(forgeErrors.KindUnknownField) {
		t.Error("reference violations reported despite structural failure")
	}
}

func TestValidateDuplicateRestoredFields(t *testing.T) {
	r := validRule(t)
	f, err := schema.NewField("purchase_count", "", schema.Number, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	r.RestoreRequestField(f)

	verr := Validate(r)
	el, ok := forgeErrors.AsList(verr)
	if !ok || !el.HasKind(forgeErrors.KindDuplicateField) {
		t.Fatalf("duplicate restored field not flagged: %v", verr)
	}
}

func TestValidateOperandViolation(t *testing.T) {
	r := validRule(t)
	c := r.NewCondition()
	c.PutClause("purchase_count", schema.OpBetween, []any{float64(9), float64(2)})

	err := Validate(r)
	el, ok := forgeErrors.AsList(err)
	if !ok || !el.HasKind(forgeErrors.KindOperand) {
		t.Fatalf("reversed range not flagged: %v", err)
	}
}

func TestValidateSchedule(t *testing.T) {
	r := validRule(t)
	c := r.NewCondition()
	c.SetSchedule("0 9 * * MON-FRI")
	if err := Validate(r); err != nil {
		t.Errorf("valid schedule rejected: %v", err)
	}

	c.SetSchedule("every tuesday")
	err := Validate(r)
	el, ok := forgeErrors.AsList(err)
	if !ok || !el.HasKind(forgeErrors.KindSchedule) {
		t.Fatalf("invalid schedule not flagged: %v", err)
	}
}
