package rule

// ConditionBuilder accumulates clauses for a condition under construction.
// Nothing is added to the rule until Then succeeds; a failing clause or
// assignment leaves the document untouched.
type ConditionBuilder struct {
	rule    *Rule
	clauses []Clause
	or      bool
}

// When starts a condition whose clauses must all hold.
func (r *Rule) When(clauses ...Clause) *ConditionBuilder {
	return &ConditionBuilder{rule: r, clauses: clauses}
}

// Any starts a condition that fires when any one of its clauses holds.
func (r *Rule) Any(clauses ...Clause) *ConditionBuilder {
	return &ConditionBuilder{rule: r, clauses: clauses, or: true}
}

// Then completes the condition with its response assignments and appends
// it to the rule. Validation errors roll the condition back and return the
// rule unchanged.
func (b *ConditionBuilder) Then(assignments ...Assignment) (*Rule, error) {
	c := b.rule.NewCondition()
	c.Settings.Or = b.or

	for _, cl := range b.clauses {
		if err := c.SetClause(cl.Field, cl.Op, cl.Args...); err != nil {
			b.rule.removeCondition(c)
			return nil, err
		}
	}
	for _, a := range assignments {
		if err := c.SetResponse(a.Field, a.Value); err != nil {
			b.rule.removeCondition(c)
			return nil, err
		}
	}
	return b.rule, nil
}
