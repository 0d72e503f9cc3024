package rule

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/google/uuid"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/schema"
)

// ConditionSettings holds per-condition behavior flags.
type ConditionSettings struct {
	Enabled  bool     // Disabled conditions are kept but never fire
	Priority int      // Evaluation priority among sibling conditions
	GroupID  string   // Optional visual grouping for editors
	Or       bool     // Match if any clause holds, instead of all
	Schedule []string // Cron expressions gating when the condition is active
}

// Condition is one row of the decision table: at most one clause per
// request field, and response values for any subset of response fields.
// Fields the condition does not mention match anything and keep their
// declared defaults.
type Condition struct {
	ID       string
	Settings ConditionSettings

	rule      *Rule
	clauses   map[string]*Clause
	responses map[string]any
}

// NewCondition appends an empty, enabled condition to the rule and
// returns it.
func (r *Rule) NewCondition() *Condition {
	c := &Condition{
		ID:        uuid.NewString(),
		Settings:  ConditionSettings{Enabled: true},
		rule:      r,
		clauses:   make(map[string]*Clause),
		responses: make(map[string]any),
	}
	r.conditions = append(r.conditions, c)
	r.touch()
	return c
}

// ConditionAt returns the condition at the given zero-based index for
// modification.
func (r *Rule) ConditionAt(idx int) (*Condition, error) {
	if idx < 0 || idx >= len(r.conditions) {
		return nil, fmt.Errorf("condition index %d out of range (rule has %d)", idx, len(r.conditions))
	}
	return r.conditions[idx], nil
}

// FindConditions returns the conditions whose clauses include every given
// clause: same field, same operator, and operands equal after canonical
// normalization.
func (r *Rule) FindConditions(clauses ...Clause) []*Condition {
	var out []*Condition
	for _, c := range r.conditions {
		if c.matchesAll(clauses) {
			out = append(out, c)
		}
	}
	return out
}

func (c *Condition) matchesAll(clauses []Clause) bool {
	for _, want := range clauses {
		have, ok := c.clauses[want.Field]
		if !ok || have.Op != want.Op {
			return false
		}
		if !reflect.DeepEqual(have.Args, c.rule.canonicalArgs(want)) {
			return false
		}
	}
	return true
}

// canonicalArgs normalizes a search clause's operands the way SetClause
// would, so raw values compare equal to stored ones. Clauses that do not
// normalize are compared as given.
func (r *Rule) canonicalArgs(cl Clause) []any {
	f, ok := r.RequestField(cl.Field)
	if !ok {
		return cl.Args
	}
	def, ok := schema.Lookup(f.Type, cl.Op)
	if !ok {
		return cl.Args
	}
	normalized, err := schema.ValidateOperands(def, cl.Args)
	if err != nil {
		return cl.Args
	}
	return normalized
}

// Delete removes the condition from its rule. Deleting a condition the
// rule no longer holds is a no-op.
func (c *Condition) Delete() {
	c.rule.removeCondition(c)
	c.rule.touch()
}

func (r *Rule) removeCondition(c *Condition) {
	for i, existing := range r.conditions {
		if existing == c {
			r.conditions = append(r.conditions[:i], r.conditions[i+1:]...)
			return
		}
	}
}

// SetClause sets the clause for a request field, validating the field
// reference, the operator against the field type's catalog, and the
// operands against the operator's specs. Setting a clause on a field that
// already has one replaces it.
func (c *Condition) SetClause(fieldKey string, op schema.Operator, args ...any) error {
	f, ok := c.rule.RequestField(fieldKey)
	if !ok {
		return forgeErrors.New(forgeErrors.KindUnknownField,
			"condition references undeclared request field %q", fieldKey).
			WithField(fieldKey).
			WithSuggestion(forgeErrors.SuggestKey(fieldKey, c.rule.requestKeys()))
	}

	def, ok := schema.Lookup(f.Type, op)
	if !ok {
		return forgeErrors.New(forgeErrors.KindOperatorMismatch,
			"operator %q is not legal for %s field %q", op, f.Type, fieldKey).
			WithField(fieldKey).
			WithSuggestion(forgeErrors.SuggestOperators(string(f.Type), schema.OperatorStrings(f.Type)))
	}

	normalized, err := schema.ValidateOperands(def, args)
	if err != nil {
		if fe, isRich := err.(*forgeErrors.Error); isRich {
			fe.WithField(fieldKey)
		}
		return err
	}

	c.clauses[fieldKey] = &Clause{Field: fieldKey, Op: op, Args: normalized}
	c.rule.touch()
	return nil
}

// SetResponse sets the response value for a response field, validating the
// field reference and the value's shape against the field type.
func (c *Condition) SetResponse(fieldKey string, value any) error {
	f, ok := c.rule.ResponseField(fieldKey)
	if !ok {
		return forgeErrors.New(forgeErrors.KindUnknownField,
			"condition references undeclared response field %q", fieldKey).
			WithField(fieldKey).
			WithSuggestion(forgeErrors.SuggestKey(fieldKey, c.rule.responseKeys()))
	}

	v, err := schema.NormalizeValue(f.Type, value)
	if err != nil {
		return forgeErrors.New(forgeErrors.KindTypeMismatch,
			"response value for %s field %q: %v", f.Type, fieldKey, err).WithField(fieldKey)
	}

	c.responses[fieldKey] = v
	c.rule.touch()
	return nil
}

// PutClause stores a reconstructed clause without validating it. Used when
// rebuilding a document from its serialized form; the validator re-checks
// the result.
func (c *Condition) PutClause(fieldKey string, op schema.Operator, args []any) {
	c.clauses[fieldKey] = &Clause{Field: fieldKey, Op: op, Args: args}
}

// PutResponse stores a reconstructed response value without validating it.
func (c *Condition) PutResponse(fieldKey string, value any) {
	c.responses[fieldKey] = value
}

// Clause returns the clause set for a request field, if any.
func (c *Condition) Clause(fieldKey string) (*Clause, bool) {
	cl, ok := c.clauses[fieldKey]
	return cl, ok
}

// Response returns the response value set for a response field, if any.
func (c *Condition) Response(fieldKey string) (any, bool) {
	v, ok := c.responses[fieldKey]
	return v, ok
}

// ClauseKeys returns the request field keys this condition constrains, in
// request schema order. Clauses on keys outside the schema, which can only
// come from reconstruction, sort after the declared ones.
func (c *Condition) ClauseKeys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, f := range c.rule.RequestSchema() {
		if _, ok := c.clauses[f.Key]; ok {
			keys = append(keys, f.Key)
			seen[f.Key] = true
		}
	}
	var orphans []string
	for k := range c.clauses {
		if !seen[k] {
			orphans = append(orphans, k)
		}
	}
	sort.Strings(orphans)
	return append(keys, orphans...)
}

// ResponseKeys returns the response field keys this condition sets, in
// response schema order, with reconstructed orphan keys sorted last.
func (c *Condition) ResponseKeys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, f := range c.rule.ResponseSchema() {
		if _, ok := c.responses[f.Key]; ok {
			keys = append(keys, f.Key)
			seen[f.Key] = true
		}
	}
	var orphans []string
	for k := range c.responses {
		if !seen[k] {
			orphans = append(orphans, k)
		}
	}
	sort.Strings(orphans)
	return append(keys, orphans...)
}

// Enable marks the condition active.
func (c *Condition) Enable() *Condition {
	c.Settings.Enabled = true
	c.rule.touch()
	return c
}

// Disable keeps the condition in the document but prevents it from firing.
func (c *Condition) Disable() *Condition {
	c.Settings.Enabled = false
	c.rule.touch()
	return c
}

// SetPriority sets the condition's evaluation priority.
func (c *Condition) SetPriority(p int) *Condition {
	c.Settings.Priority = p
	c.rule.touch()
	return c
}

// SetGroup assigns the condition to a visual group.
func (c *Condition) SetGroup(id string) *Condition {
	c.Settings.GroupID = id
	c.rule.touch()
	return c
}

// SetSchedule gates the condition behind cron expressions. Expressions are
// stored as written; the validator checks their syntax.
func (c *Condition) SetSchedule(exprs ...string) *Condition {
	c.Settings.Schedule = exprs
	c.rule.touch()
	return c
}
