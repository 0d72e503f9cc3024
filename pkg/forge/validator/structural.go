package validator

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/schema"
)

// structuralValidator checks the document's own shape: name, schema key
// uniqueness, default values, and condition schedules. It never inspects
// clause semantics.
type structuralValidator struct{}

func newStructuralValidator() *structuralValidator {
	return &structuralValidator{}
}

func (v *structuralValidator) validate(r *rule.Rule, errs *forgeErrors.ErrorList) {
	v.checkName(r, errs)
	v.checkSchema("request", r.RequestSchema(), errs)
	v.checkSchema("response", r.ResponseSchema(), errs)
	v.checkSchedules(r, errs)
}

func (v *structuralValidator) checkName(r *rule.Rule, errs *forgeErrors.ErrorList) {
	if strings.TrimSpace(r.Name) == "" {
		errs.Add(forgeErrors.New(forgeErrors.KindEmptyName, "rule name must not be blank"))
	}
}

func (v *structuralValidator) checkSchema(role string, fields []*schema.Field, errs *forgeErrors.ErrorList) {
	seen := make(map[string]bool)
	for _, f := range fields {
		if seen[f.Key] {
			errs.Add(forgeErrors.New(forgeErrors.KindDuplicateField,
				"%s field %q is declared more than once", role, f.Key).WithField(f.Key))
		}
		seen[f.Key] = true

		if _, err := schema.NormalizeValue(f.Type, f.Default); err != nil {
			errs.Add(forgeErrors.New(forgeErrors.KindInvalidDefault,
				"default for %s field %q does not match type %s: %v",
				role, f.Key, f.Type, err).WithField(f.Key))
		}
	}
}

func (v *structuralValidator) checkSchedules(r *rule.Rule, errs *forgeErrors.ErrorList) {
	for i, c := range r.Conditions() {
		for _, expr := range c.Settings.Schedule {
			if _, err := cron.ParseStandard(expr); err != nil {
				errs.Add(forgeErrors.New(forgeErrors.KindSchedule,
					"condition %d has invalid schedule %q: %v", i+1, expr, err).
					WithSuggestion(fmt.Sprintf("expected a standard cron expression, e.g. %q", "0 9 * * MON-FRI")))
			}
		}
	}
}
