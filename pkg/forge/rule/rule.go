package rule

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/schema"
)

// Settings holds document-level behavior flags.
type Settings struct {
	Testing          bool // Run the test suite on publish
	SchemaValidation bool // Reject requests that do not match the request schema
	AllProperties    bool // Require every request field to be present
	LockSchema       bool // Freeze the schema against further edits
}

// Rule is a decision-table rule document: a request schema, a response
// schema, and an ordered list of conditions mapping request patterns to
// response values. Zero conditions is a legal (vacuous) document.
//
// Timestamps are kept as RFC 3339 strings so a document compares equal to
// its serialize-deserialize image without time-zone normalization games.
type Rule struct {
	ID          string
	Name        string
	Description string
	Slug        string
	Alias       string
	CreatedAt   string
	UpdatedAt   string

	Settings Settings

	requestSchema  []*schema.Field
	responseSchema []*schema.Field
	conditions     []*Condition
	tests          []*Test
}

// New creates an empty rule document with a fresh ID and slug.
func New() *Rule {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Rule{
		ID:        uuid.NewString(),
		Slug:      newSlug(10),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func newSlug(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugAlphabet[rand.IntN(len(slugAlphabet))]
	}
	return string(b)
}

func (r *Rule) touch() {
	r.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// SetName sets the display name. Blank names are rejected.
func (r *Rule) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return forgeErrors.New(forgeErrors.KindEmptyName, "rule name must not be blank")
	}
	r.Name = name
	r.touch()
	return nil
}

// SetDescription sets the rule description.
func (r *Rule) SetDescription(description string) *Rule {
	r.Description = description
	r.touch()
	return r
}

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// SetAlias sets a custom URL-safe alias for the rule. Aliases must be at
// least three characters of letters, digits, hyphens, or underscores.
func (r *Rule) SetAlias(alias string) error {
	if len(alias) < 3 {
		return forgeErrors.New(forgeErrors.KindInvalidAlias,
			"alias %q must be at least 3 characters", alias)
	}
	if !aliasPattern.MatchString(alias) {
		return forgeErrors.New(forgeErrors.KindInvalidAlias,
			"alias %q may only contain letters, digits, hyphens, and underscores", alias)
	}
	r.Alias = alias
	r.touch()
	return nil
}

// EnableTesting turns on test-suite execution on publish.
func (r *Rule) EnableTesting() *Rule {
	r.Settings.Testing = true
	r.touch()
	return r
}

// EnableSchemaValidation rejects requests whose shape does not match the
// request schema.
func (r *Rule) EnableSchemaValidation() *Rule {
	r.Settings.SchemaValidation = true
	r.touch()
	return r
}

// RequireAllProperties requires every request field to be present.
func (r *Rule) RequireAllProperties() *Rule {
	r.Settings.AllProperties = true
	r.touch()
	return r
}

// LockSchema freezes the schema against further edits in editors.
func (r *Rule) LockSchema() *Rule {
	r.Settings.LockSchema = true
	r.touch()
	return r
}

// RequestSchema returns the request fields in declaration order.
func (r *Rule) RequestSchema() []*schema.Field {
	return r.requestSchema
}

// ResponseSchema returns the response fields in declaration order.
func (r *Rule) ResponseSchema() []*schema.Field {
	return r.responseSchema
}

// Conditions returns the conditions in authoring order.
func (r *Rule) Conditions() []*Condition {
	return r.conditions
}

// RequestField looks up a request field by key.
func (r *Rule) RequestField(key string) (*schema.Field, bool) {
	for _, f := range r.requestSchema {
		if f.Key == key {
			return f, true
		}
	}
	return nil, false
}

// ResponseField looks up a response field by key.
func (r *Rule) ResponseField(key string) (*schema.Field, bool) {
	for _, f := range r.responseSchema {
		if f.Key == key {
			return f, true
		}
	}
	return nil, false
}

func (r *Rule) requestKeys() []string {
	keys := make([]string, len(r.requestSchema))
	for i, f := range r.requestSchema {
		keys[i] = f.Key
	}
	return keys
}

func (r *Rule) responseKeys() []string {
	keys := make([]string, len(r.responseSchema))
	for i, f := range r.responseSchema {
		keys[i] = f.Key
	}
	return keys
}

// addRequestField declares a request field. Declaration is atomic: on any
// error the schema is unchanged.
func (r *Rule) addRequestField(key, label string, t schema.FieldType, description string, def any) error {
	if _, exists := r.RequestField(key); exists {
		return forgeErrors.New(forgeErrors.KindDuplicateField,
			"request field %q is already declared", key).WithField(key)
	}
	f, err := schema.NewField(key, label, t, description, def)
	if err != nil {
		return err
	}
	r.requestSchema = append(r.requestSchema, f)
	r.touch()
	return nil
}

func (r *Rule) addResponseField(key, label string, t schema.FieldType, description string, def any) error {
	if _, exists := r.ResponseField(key); exists {
		return forgeErrors.New(forgeErrors.KindDuplicateField,
			"response field %q is already declared", key).WithField(key)
	}
	f, err := schema.NewField(key, label, t, description, def)
	if err != nil {
		return err
	}
	r.responseSchema = append(r.responseSchema, f)
	r.touch()
	return nil
}

// AddBooleanField declares a boolean request field and returns a typed
// handle for building clauses against it.
func (r *Rule) AddBooleanField(key, description string, def bool) (BooleanField, error) {
	if err := r.addRequestField(key, "", schema.Boolean, description, def); err != nil {
		return BooleanField{}, err
	}
	return BooleanField{fieldRef{rule: r, key: key}}, nil
}

// AddNumberField declares a numeric request field.
func (r *Rule) AddNumberField(key, description string, def float64) (NumberField, error) {
	if err := r.addRequestField(key, "", schema.Number, description, def); err != nil {
		return NumberField{}, err
	}
	return NumberField{fieldRef{rule: r, key: key}}, nil
}

// AddStringField declares a string request field.
func (r *Rule) AddStringField(key, description, def string) (StringField, error) {
	if err := r.addRequestField(key, "", schema.String, description, def); err != nil {
		return StringField{}, err
	}
	return StringField{fieldRef{rule: r, key: key}}, nil
}

// AddDateField declares a date request field. A nil default means no
// default.
func (r *Rule) AddDateField(key, description string, def any) (DateField, error) {
	if err := r.addRequestField(key, "", schema.Date, description, def); err != nil {
		return DateField{}, err
	}
	return DateField{fieldRef{rule: r, key: key}}, nil
}

// AddListField declares a list request field. A nil default becomes the
// empty list.
func (r *Rule) AddListField(key, description string, def []any) (ListField, error) {
	var d any
	if def != nil {
		d = def
	}
	if err := r.addRequestField(key, "", schema.List, description, d); err != nil {
		return ListField{}, err
	}
	return ListField{fieldRef{rule: r, key: key}}, nil
}

// AddBooleanResponse declares a boolean response field.
func (r *Rule) AddBooleanResponse(key, description string, def bool) (BooleanField, error) {
	if err := r.addResponseField(key, "", schema.Boolean, description, def); err != nil {
		return BooleanField{}, err
	}
	return BooleanField{fieldRef{rule: r, key: key}}, nil
}

// AddNumberResponse declares a numeric response field.
func (r *Rule) AddNumberResponse(key, description string, def float64) (NumberField, error) {
	if err := r.addResponseField(key, "", schema.Number, description, def); err != nil {
		return NumberField{}, err
	}
	return NumberField{fieldRef{rule: r, key: key}}, nil
}

// AddStringResponse declares a string response field.
func (r *Rule) AddStringResponse(key, description, def string) (StringField, error) {
	if err := r.addResponseField(key, "", schema.String, description, def); err != nil {
		return StringField{}, err
	}
	return StringField{fieldRef{rule: r, key: key}}, nil
}

// AddDateResponse declares a date response field.
func (r *Rule) AddDateResponse(key, description string, def any) (DateField, error) {
	if err := r.addResponseField(key, "", schema.Date, description, def); err != nil {
		return DateField{}, err
	}
	return DateField{fieldRef{rule: r, key: key}}, nil
}

// AddListResponse declares a list response field.
func (r *Rule) AddListResponse(key, description string, def []any) (ListField, error) {
	var d any
	if def != nil {
		d = def
	}
	if err := r.addResponseField(key, "", schema.List, description, d); err != nil {
		return ListField{}, err
	}
	return ListField{fieldRef{rule: r, key: key}}, nil
}

func (r *Rule) getTypedField(key string, want schema.FieldType) error {
	f, ok := r.RequestField(key)
	if !ok {
		return forgeErrors.New(forgeErrors.KindUnknownField,
			"request field %q is not declared", key).
			WithField(key).
			WithSuggestion(forgeErrors.SuggestKey(key, r.requestKeys()))
	}
	if f.Type != want {
		return forgeErrors.New(forgeErrors.KindTypeMismatch,
			"field %q is %s, not %s", key, f.Type, want).WithField(key)
	}
	return nil
}

// GetBooleanField returns a typed handle for an existing boolean request
// field.
func (r *Rule) GetBooleanField(key string) (BooleanField, error) {
	if err := r.getTypedField(key, schema.Boolean); err != nil {
		return BooleanField{}, err
	}
	return BooleanField{fieldRef{rule: r, key: key}}, nil
}

// GetNumberField returns a typed handle for an existing numeric request
// field.
func (r *Rule) GetNumberField(key string) (NumberField, error) {
	if err := r.getTypedField(key, schema.Number); err != nil {
		return NumberField{}, err
	}
	return NumberField{fieldRef{rule: r, key: key}}, nil
}

// GetStringField returns a typed handle for an existing string request
// field.
func (r *Rule) GetStringField(key string) (StringField, error) {
	if err := r.getTypedField(key, schema.String); err != nil {
		return StringField{}, err
	}
	return StringField{fieldRef{rule: r, key: key}}, nil
}

// GetDateField returns a typed handle for an existing date request field.
func (r *Rule) GetDateField(key string) (DateField, error) {
	if err := r.getTypedField(key, schema.Date); err != nil {
		return DateField{}, err
	}
	return DateField{fieldRef{rule: r, key: key}}, nil
}

// GetListField returns a typed handle for an existing list request field.
func (r *Rule) GetListField(key string) (ListField, error) {
	if err := r.getTypedField(key, schema.List); err != nil {
		return ListField{}, err
	}
	return ListField{fieldRef{rule: r, key: key}}, nil
}

// RestoreRequestField appends a reconstructed request field without
// revalidating it. Used when rebuilding a document from its serialized
// form; the validator re-checks the result.
func (r *Rule) RestoreRequestField(f *schema.Field) {
	r.requestSchema = append(r.requestSchema, f)
}

// RestoreResponseField appends a reconstructed response field without
// revalidating it.
func (r *Rule) RestoreResponseField(f *schema.Field) {
	r.responseSchema = append(r.responseSchema, f)
}
