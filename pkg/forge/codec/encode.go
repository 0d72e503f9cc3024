package codec

import (
	"encoding/json"
	"strings"

	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/schema"
)

// ToDocument converts a rule to its canonical document form. Encoding is
// total: any constructible rule encodes, valid or not.
func ToDocument(r *rule.Rule) *Document {
	doc := &Document{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Slug:           r.Slug,
		Alias:          r.Alias,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		SampleRequest:  sampleFromDefaults(r.RequestSchema()),
		SampleResponse: sampleFromDefaults(r.ResponseSchema()),
		RequestSchema:  encodeSchema(r.RequestSchema()),
		ResponseSchema: encodeSchema(r.ResponseSchema()),
		Conditions:     make([]ConditionDoc, 0, len(r.Conditions())),
		Settings: SettingsDoc{
			Testing:          r.Settings.Testing,
			SchemaValidation: r.Settings.SchemaValidation,
			AllProperties:    r.Settings.AllProperties,
			LockSchema:       r.Settings.LockSchema,
		},
		TestSuite:      encodeTests(r.Tests()),
		ConditionCount: len(r.Conditions()),
	}

	for _, c := range r.Conditions() {
		doc.Conditions = append(doc.Conditions, encodeCondition(c))
	}
	return doc
}

// ToJSON serializes a rule as indented JSON.
func ToJSON(r *rule.Rule) ([]byte, error) {
	return json.MarshalIndent(ToDocument(r), "", "  ")
}

func encodeSchema(fields []*schema.Field) []FieldDoc {
	docs := make([]FieldDoc, len(fields))
	for i, f := range fields {
		docs[i] = FieldDoc{
			Key:          f.Key,
			Name:         f.Name,
			Type:         string(f.Type),
			Description:  f.Description,
			DefaultValue: f.Default,
			Show:         f.Show,
		}
	}
	return docs
}

func encodeCondition(c *rule.Condition) ConditionDoc {
	doc := ConditionDoc{
		ID:       c.ID,
		Request:  make(map[string]ClauseDoc),
		Response: make(map[string]ValueDoc),
		Settings: ConditionSettingsDoc{
			Enabled:  c.Settings.Enabled,
			Priority: c.Settings.Priority,
			GroupID:  c.Settings.GroupID,
			Or:       c.Settings.Or,
			Schedule: c.Settings.Schedule,
		},
	}
	for _, key := range c.ClauseKeys() {
		cl, _ := c.Clause(key)
		args := cl.Args
		if args == nil {
			args = []any{}
		}
		doc.Request[key] = ClauseDoc{Op: string(cl.Op), Args: args}
	}
	for _, key := range c.ResponseKeys() {
		v, _ := c.Response(key)
		doc.Response[key] = ValueDoc{Value: v}
	}
	return doc
}

func encodeTests(tests []*rule.Test) []TestDoc {
	docs := make([]TestDoc, len(tests))
	for i, t := range tests {
		docs[i] = TestDoc{
			ID:       t.ID,
			Name:     t.Name,
			Request:  t.Request,
			Response: t.Response,
			Critical: t.Critical,
		}
	}
	return docs
}

// sampleFromDefaults builds an example payload from a schema's defaults.
// Dotted keys nest: "customer.age" becomes {"customer": {"age": ...}}.
func sampleFromDefaults(fields []*schema.Field) map[string]any {
	out := make(map[string]any)
	for _, f := range fields {
		parts := strings.Split(f.Key, ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = f.Default
	}
	return out
}
