// Package forge is the top-level entry point for authoring, validating,
// loading, and exporting decision-table rules.
package forge

import (
	"os"

	"rulesmith-hq/forge/pkg/forge/codec"
	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/validator"
)

// NewRule creates an empty rule document.
func NewRule() *rule.Rule {
	return rule.New()
}

// Validate checks a rule and returns every violation found, or nil.
func Validate(r *rule.Rule) error {
	return validator.Validate(r)
}

// LoadBytes reconstructs and validates a rule from its JSON document
// form.
func LoadBytes(data []byte) (*rule.Rule, error) {
	return codec.FromJSON(data)
}

// LoadFile reads, reconstructs, and validates a rule document file.
func LoadFile(path string) (*rule.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, forgeErrors.New(forgeErrors.KindIO, "reading %s: %v", path, err)
	}
	return codec.FromJSON(data)
}
