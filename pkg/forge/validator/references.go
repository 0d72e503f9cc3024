package validator

import (
	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/schema"
)

// referenceValidator checks every condition's clauses and response values
// against the declared schemas: field references resolve, operators belong
// to the field type's catalog, and operands match the operator's specs.
type referenceValidator struct{}

func newReferenceValidator() *referenceValidator {
	return &referenceValidator{}
}

func (v *referenceValidator) validate(r *rule.Rule, errs *forgeErrors.ErrorList) {
	for i, c := range r.Conditions() {
		v.checkClauses(r, c, i, errs)
		v.checkResponses(r, c, i, errs)
	}
}

func (v *referenceValidator) checkClauses(r *rule.Rule, c *rule.Condition, idx int, errs *forgeErrors.ErrorList) {
	for _, key := range c.ClauseKeys() {
		cl, _ := c.Clause(key)

		f, ok := r.RequestField(key)
		if !ok {
			errs.Add(forgeErrors.New(forgeErrors.KindUnknownField,
				"condition %d references undeclared request field %q", idx+1, key).
				WithField(key))
			continue
		}

		def, ok := schema.Lookup(f.Type, cl.Op)
		if !ok {
			errs.Add(forgeErrors.New(forgeErrors.KindOperatorMismatch,
				"condition %d applies operator %q to %s field %q", idx+1, cl.Op, f.Type, key).
				WithField(key).
				WithSuggestion(forgeErrors.SuggestOperators(string(f.Type), schema.OperatorStrings(f.Type))))
			continue
		}

		if _, err := schema.ValidateOperands(def, cl.Args); err != nil {
			if fe, isRich := err.(*forgeErrors.Error); isRich {
				errs.Add(fe.WithField(key))
			} else {
				errs.AddError(forgeErrors.KindOperand, err.Error())
			}
		}
	}
}

func (v *referenceValidator) checkResponses(r *rule.Rule, c *rule.Condition, idx int, errs *forgeErrors.ErrorList) {
	for _, key := range c.ResponseKeys() {
		val, _ := c.Response(key)

		f, ok := r.ResponseField(key)
		if !ok {
			errs.Add(forgeErrors.New(forgeErrors.KindUnknownField,
				"condition %d sets undeclared response field %q", idx+1, key).
				WithField(key))
			continue
		}

		if err := schema.CheckValue(f.Type, val); err != nil {
			errs.Add(forgeErrors.New(forgeErrors.KindTypeMismatch,
				"condition %d response value for %s field %q: %v", idx+1, f.Type, key, err).
				WithField(key))
		}
	}
}
