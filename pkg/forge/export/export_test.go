package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rulesmith-hq/forge/pkg/forge/codec"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/telemetry/metrics"
)

func sampleRule(t *testing.T) *rule.Rule {
	t.Helper()
	r := rule.New()
	if err := r.SetName("Tier Pricing: v2/final"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddNumberField("quantity", "", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddNumberResponse("unit_price", "", 0); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Customer Discount", "Customer_Discount-Generated.rbx"},
		{"Tier Pricing: v2/final", "Tier_Pricing__v2_final-Generated.rbx"},
		{"", "Untitled-Generated.rbx"},
		{"simple", "simple-Generated.rbx"},
	}
	for _, tt := range tests {
		if got := Filename(tt.name); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	r := sampleRule(t)

	path, err := WriteFile(r, dir)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "Tier_Pricing__v2_final-Generated.rbx" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := codec.FromJSON(data)
	if err != nil {
		t.Fatalf("exported file does not reload: %v", err)
	}
	if restored.ID != r.ID {
		t.Error("exported document identity differs")
	}
}

func TestWriteFileNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	r := sampleRule(t)

	first, err := WriteFile(r, dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := WriteFile(r, dir)
	if err != nil {
		t.Fatal(err)
	}
	third, err := WriteFile(r, dir)
	if err != nil {
		t.Fatal(err)
	}

	if first == second || second == third {
		t.Fatalf("paths collide: %q, %q, %q", first, second, third)
	}
	if !strings.HasSuffix(second, "_1-Generated.rbx") {
		t.Errorf("second path = %q, want _1 counter", second)
	}
	if !strings.HasSuffix(third, "_2-Generated.rbx") {
		t.Errorf("third path = %q, want _2 counter", third)
	}
}

func TestWriteFileRejectsInvalidRule(t *testing.T) {
	r := rule.New() // no name
	if _, err := WriteFile(r, t.TempDir()); err == nil {
		t.Error("invalid rule exported")
	}
}

func exportedCount(t *testing.T, c *metrics.Collector) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() == "forge_export_rules_exported_total" {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestExporterCountsWrites(t *testing.T) {
	collector := metrics.NewCollector(nil)
	e := NewExporter(t.TempDir(), collector)

	if _, err := e.Write(sampleRule(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := e.Write(sampleRule(t)); err != nil {
		t.Fatal(err)
	}
	if got := exportedCount(t, collector); got != 2 {
		t.Errorf("exports = %v, want 2", got)
	}
}

func TestExporterDoesNotCountRejectedRule(t *testing.T) {
	collector := metrics.NewCollector(nil)
	e := NewExporter(t.TempDir(), collector)

	if _, err := e.Write(rule.New()); err == nil {
		t.Fatal("invalid rule exported")
	}
	if got := exportedCount(t, collector); got != 0 {
		t.Errorf("exports = %v after rejected write", got)
	}
}
