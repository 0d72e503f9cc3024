package table

import (
	"strings"
	"testing"
	"unicode/utf8"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/schema"
)

func discountRule(t *testing.T) *rule.Rule {
	t.Helper()
	r := rule.New()
	if err := r.SetName("Customer Discount"); err != nil {
		t.Fatal(err)
	}

	count, err := r.AddNumberField("purchase_count", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	subscribed, err := r.AddBooleanField("is_subscribed", "", false)
	if err != nil {
		t.Fatal(err)
	}
	tier, err := r.AddStringField("customer_type", "", "regular")
	if err != nil {
		t.Fatal(err)
	}
	eligible, err := r.AddBooleanResponse("discount_eligible", "", false)
	if err != nil {
		t.Fatal(err)
	}
	percentage, err := r.AddNumberResponse("discount_percentage", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.When(
		count.GreaterThanOrEqual(10),
		subscribed.Equals(true),
		tier.Equals("regular"),
	).Then(eligible.Assign(true), percentage.Assign(5)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.When(
		tier.Equals("premium"),
	).Then(eligible.Assign(true), percentage.Assign(10)); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRenderGrid(t *testing.T) {
	out, err := NewRenderer().Render(discountRule(t))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, header := range []string{"purchase_count", "is_subscribed", "customer_type", "discount_eligible", "discount_percentage"} {
		if !strings.Contains(out, header) {
			t.Errorf("missing header %q in:\n%s", header, out)
		}
	}

	if !strings.Contains(out, "greater than or equal to") {
		t.Errorf("missing operator tag in:\n%s", out)
	}
	if !strings.Contains(out, "(10)") {
		t.Errorf("missing operand line in:\n%s", out)
	}
	// Whole numbers render without a decimal point.
	if strings.Contains(out, "10.000000") {
		t.Errorf("float noise in:\n%s", out)
	}

	// Header separator uses a double rule, row separators a single one.
	if !strings.Contains(out, "+=") {
		t.Errorf("missing header rule in:\n%s", out)
	}

	// Two data rows: C1 and C2 in authoring order.
	lines := strings.Split(out, "\n")
	var dataRows int
	for _, line := range lines {
		if strings.HasPrefix(line, "|") {
			dataRows++
		}
	}
	if dataRows < 3 {
		t.Errorf("expected header plus at least two data rows, got %d content lines:\n%s", dataRows, out)
	}
}

func TestRenderPlaceholders(t *testing.T) {
	r := discountRule(t)
	out, err := NewRenderer().RenderCondition(r, 1)
	if err != nil {
		t.Fatalf("RenderCondition failed: %v", err)
	}

	// C2 constrains only customer_type; the other request columns show
	// placeholders.
	row := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") && strings.Contains(line, "premium") {
			row = line
			break
		}
	}
	if row == "" {
		t.Fatalf("C2 row not found in:\n%s", out)
	}
	cells := strings.Split(row, "|")
	// cells[1] = purchase_count, cells[2] = is_subscribed
	if strings.TrimSpace(cells[1]) != "-" || strings.TrimSpace(cells[2]) != "-" {
		t.Errorf("unconstrained columns not placeholders in row %q", row)
	}
}

func TestRenderConditionOutOfRange(t *testing.T) {
	r := discountRule(t)
	if _, err := NewRenderer().RenderCondition(r, 5); err == nil {
		t.Error("out-of-range index accepted")
	}
}

func TestRenderRejectsInvalidRule(t *testing.T) {
	r := discountRule(t)
	r.Conditions()[0].PutClause("ghost", schema.OpIsTrue, []any{})

	_, err := NewRenderer().Render(r)
	if err == nil {
		t.Fatal("invalid rule rendered")
	}
	if el, ok := forgeErrors.AsList(err); !ok || !el.HasKind(forgeErrors.KindUnknownField) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWrapCell(t *testing.T) {
	lines := wrapCell("contains any of\n(alpha beta gamma delta epsilon)", 12)
	for _, line := range lines {
		if len(line) > 12 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func TestWrapCellCountsRunes(t *testing.T) {
	lines := wrapCell("préférences références déclarées", 12)
	for _, line := range lines {
		if !utf8.ValidString(line) {
			t.Errorf("line %q cut mid-rune", line)
		}
		if n := utf8.RuneCountInString(line); n > 12 {
			t.Errorf("line %q is %d runes wide", line, n)
		}
	}
}

func TestRenderAlignsNonASCII(t *testing.T) {
	r := rule.New()
	if err := r.SetName("Tarif Régional"); err != nil {
		t.Fatal(err)
	}
	ville, err := r.AddStringField("ville", "", "")
	if err != nil {
		t.Fatal(err)
	}
	eligible, err := r.AddBooleanResponse("éligible", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.When(ville.Equals("Besançon")).Then(eligible.Assign(true)); err != nil {
		t.Fatal(err)
	}

	out, err := NewRenderer().Render(r)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := utf8.RuneCountInString(lines[0])
	for _, line := range lines {
		if utf8.RuneCountInString(line) != width {
			t.Fatalf("misaligned line %q (%d runes, want %d) in:\n%s",
				line, utf8.RuneCountInString(line), width, out)
		}
	}
}
