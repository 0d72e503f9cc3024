package validator

import (
	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
)

// Validator checks whole rule documents and aggregates every violation
// into one report, rather than stopping at the first. Structural checks
// run first; reference checks only run on a structurally sound document,
// since clause validation against a broken schema produces noise.
type Validator struct {
	structural *structuralValidator
	references *referenceValidator
}

// New creates a document validator.
func New() *Validator {
	return &Validator{
		structural: newStructuralValidator(),
		references: newReferenceValidator(),
	}
}

// Validate checks the document and returns all violations found, or nil
// if the document is valid.
func (v *Validator) Validate(r *rule.Rule) error {
	errs := forgeErrors.NewErrorList()

	v.structural.validate(r, errs)
	if errs.HasErrors() {
		return errs
	}

	v.references.validate(r, errs)
	return errs.ToError()
}

// Validate is a convenience wrapper around a one-shot Validator.
func Validate(r *rule.Rule) error {
	return New().Validate(r)
}
