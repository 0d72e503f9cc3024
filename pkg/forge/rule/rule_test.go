package rule

import (
	"testing"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/schema"
)

func TestNewRuleIdentity(t *testing.T) {
	a := New()
	b := New()
	if a.ID == "" || a.Slug == "" {
		t.Fatal("new rule missing ID or slug")
	}
	if a.ID == b.ID || a.Slug == b.Slug {
		t.Error("two new rules share identity")
	}
	if len(a.Slug) != 10 {
		t.Errorf("slug length = %d, want 10", len(a.Slug))
	}
	if a.CreatedAt == "" || a.UpdatedAt == "" {
		t.Error("timestamps not set")
	}
}

func TestSetName(t *testing.T) {
	r := New()
	if err := r.SetName("  "); err == nil {
		t.Fatal("blank name accepted")
	} else if forgeErrors.KindOf(err) != forgeErrors.KindEmptyName {
		t.Errorf("kind = %q, want empty_name", forgeErrors.KindOf(err))
	}

	if err := r.SetName("Discount"); err != nil {
		t.Fatalf("SetName failed: %v", err)
	}
	if r.Name != "Discount" {
		t.Errorf("Name = %q", r.Name)
	}
}

func TestSetAlias(t *testing.T) {
	r := New()
	tests := []struct {
		alias   string
		wantErr bool
	}{
		{"discount-v2", false},
		{"ab", true},
		{"has space", true},
		{"has/slash", true},
		{"ok_alias", false},
	}
	for _, tt := range tests {
		err := r.SetAlias(tt.alias)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetAlias(%q) error = %v, wantErr %v", tt.alias, err, tt.wantErr)
		}
		if err != nil && forgeErrors.KindOf(err) != forgeErrors.KindInvalidAlias {
			t.Errorf("SetAlias(%q) kind = %q", tt.alias, forgeErrors.KindOf(err))
		}
	}
}

func TestAddFieldDeclaration(t *testing.T) {
	r := New()

	f, err := r.AddNumberField("purchase_count", "total purchases", 0)
	if err != nil {
		t.Fatalf("AddNumberField failed: %v", err)
	}
	if f.Key() != "purchase_count" {
		t.Errorf("handle key = %q", f.Key())
	}

	declared, ok := r.RequestField("purchase_count")
	if !ok {
		t.Fatal("field not in request schema")
	}
	if declared.Name != "Purchase Count" {
		t.Errorf("derived label = %q", declared.Name)
	}
	if declared.Type != schema.Number {
		t.Errorf("type = %q", declared.Type)
	}
}

func TestAddFieldDuplicateIsAtomic(t *testing.T) {
	r := New()
	if _, err := r.AddStringField("customer_type", "", "regular"); err != nil {
		t.Fatalf("first declaration failed: %v", err)
	}

	_, err := r.AddStringField("customer_type", "", "premium")
	if err == nil {
		t.Fatal("duplicate key accepted")
	}
	if forgeErrors.KindOf(err) != forgeErrors.KindDuplicateField {
		t.Errorf("kind = %q, want duplicate_field", forgeErrors.KindOf(err))
	}

	if len(r.RequestSchema()) != 1 {
		t.Errorf("schema length = %d after failed declaration, want 1", len(r.RequestSchema()))
	}
	f, _ := r.RequestField("customer_type")
	if f.Default != "regular" {
		t.Errorf("original default clobbered: %v", f.Default)
	}
}

func TestRequestAndResponseNamespacesIndependent(t *testing.T) {
	r := New()
	if _, err := r.AddBooleanField("eligible", "", false); err != nil {
		t.Fatalf("request declaration failed: %v", err)
	}
	if _, err := r.AddBooleanResponse("eligible", "", false); err != nil {
		t.Errorf("same key in response role rejected: %v", err)
	}
}

func TestGetTypedField(t *testing.T) {
	r := New()
	if _, err := r.AddNumberField("age", "", 0); err != nil {
		t.Fatal(err)
	}

	if _, err := r.GetNumberField("age"); err != nil {
		t.Errorf("GetNumberField failed: %v", err)
	}

	_, err := r.GetStringField("age")
	if err == nil {
		t.Fatal("wrong-type lookup accepted")
	}
	if forgeErrors.KindOf(err) != forgeErrors.KindTypeMismatch {
		t.Errorf("kind = %q, want type_mismatch", forgeErrors.KindOf(err))
	}

	_, err = r.GetNumberField("agee")
	if err == nil {
		t.Fatal("unknown key lookup accepted")
	}
	if forgeErrors.KindOf(err) != forgeErrors.KindUnknownField {
		t.Errorf("kind = %q, want unknown_field", forgeErrors.KindOf(err))
	}
}

func TestSettingsEnablers(t *testing.T) {
	r := New()
	r.EnableTesting().EnableSchemaValidation().RequireAllProperties().LockSchema()
	s := r.Settings
	if !s.Testing || !s.SchemaValidation || !s.AllProperties || !s.LockSchema {
		t.Errorf("settings not all enabled: %+v", s)
	}
}

func TestTestSuite(t *testing.T) {
	r := New()
	tc := NewTest().SetName("premium gets 10").Expect(
		map[string]any{"customer_type": "premium"},
		map[string]any{"discount_percentage": 10},
	).IsCritical()
	r.AddTest(tc)

	if len(r.Tests()) != 1 {
		t.Fatalf("suite length = %d", len(r.Tests()))
	}
	found, ok := r.FindTestByName("premium gets 10")
	if !ok || !found.Critical {
		t.Fatalf("FindTestByName = (%v, %v)", found, ok)
	}

	if !r.RemoveTest(tc.ID) {
		t.Error("RemoveTest did not find the test")
	}
	if r.RemoveTest(tc.ID) {
		t.Error("RemoveTest removed twice")
	}
	if len(r.Tests()) != 0 {
		t.Errorf("suite length after removal = %d", len(r.Tests()))
	}
}
