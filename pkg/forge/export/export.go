// Package export writes validated rules to portable .rbx files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"rulesmith-hq/forge/pkg/forge/codec"
	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/validator"
	"rulesmith-hq/forge/pkg/telemetry/metrics"
)

const suffix = "-Generated.rbx"

var unsafeChars = regexp.MustCompile(`[^\w\-. ]`)

// Filename derives the export file name from a rule name: unsafe
// characters and spaces become underscores, and the generated suffix is
// appended.
func Filename(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "Untitled"
	}
	safe := unsafeChars.ReplaceAllString(name, "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	return safe + suffix
}

// Exporter writes rule documents into a target directory.
type Exporter struct {
	dir     string
	metrics *metrics.Collector
}

// NewExporter creates an exporter for the given directory. The metrics
// collector may be nil.
func NewExporter(dir string, collector *metrics.Collector) *Exporter {
	return &Exporter{dir: dir, metrics: collector}
}

// Write validates the rule and writes its JSON document, returning the
// path written. Existing exports are never overwritten: a taken name
// gets a _1, _2, ... counter before the suffix.
func (e *Exporter) Write(r *rule.Rule) (string, error) {
	if err := validator.Validate(r); err != nil {
		return "", err
	}

	data, err := codec.ToJSON(r)
	if err != nil {
		return "", forgeErrors.New(forgeErrors.KindIO, "encoding rule %q: %v", r.Name, err)
	}

	path := uniquePath(e.dir, Filename(r.Name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", forgeErrors.New(forgeErrors.KindIO, "writing %s: %v", path, err)
	}
	e.metrics.RecordExport()
	return path, nil
}

// WriteFile writes the rule into dir without metrics.
func WriteFile(r *rule.Rule, dir string) (string, error) {
	return NewExporter(dir, nil).Write(r)
}

func uniquePath(dir, name string) string {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	base := strings.TrimSuffix(name, suffix)
	for n := 1; ; n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, suffix))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}
