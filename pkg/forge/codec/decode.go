package codec

import (
	"encoding/json"

	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/schema"
	"rulesmith-hq/forge/pkg/forge/validator"
)

// FromDocument reconstructs a rule from its canonical document form.
// Unknown type or operator tags fail fast with a suggestion; everything
// else is restored verbatim and then re-validated, so a document with
// semantic violations returns a DeserializationError carrying all of them.
func FromDocument(doc *Document) (*rule.Rule, error) {
	r := rule.New()
	r.Name = doc.Name
	r.Description = doc.Description
	r.Alias = doc.Alias
	r.Settings = rule.Settings{
		Testing:          doc.Settings.Testing,
		SchemaValidation: doc.Settings.SchemaValidation,
		AllProperties:    doc.Settings.AllProperties,
		LockSchema:       doc.Settings.LockSchema,
	}

	for _, fd := range doc.RequestSchema {
		f, err := decodeField(fd)
		if err != nil {
			return nil, err
		}
		r.RestoreRequestField(f)
	}
	for _, fd := range doc.ResponseSchema {
		f, err := decodeField(fd)
		if err != nil {
			return nil, err
		}
		r.RestoreResponseField(f)
	}

	for _, cd := range doc.Conditions {
		c := r.NewCondition()
		c.ID = cd.ID
		c.Settings = rule.ConditionSettings{
			Enabled:  cd.Settings.Enabled,
			Priority: cd.Settings.Priority,
			GroupID:  cd.Settings.GroupID,
			Or:       cd.Settings.Or,
			Schedule: cd.Settings.Schedule,
		}
		for key, cl := range cd.Request {
			op := schema.Operator(cl.Op)
			if !schema.KnownOperator(op) {
				return nil, forgeErrors.New(forgeErrors.KindUnknownTag,
					"unknown operator tag %q", cl.Op).
					WithField(key).
					WithSuggestion(forgeErrors.SuggestTag(cl.Op, schema.AllOperatorStrings()))
			}
			args := cl.Args
			if args == nil {
				args = []any{}
			}
			c.PutClause(key, op, args)
		}
		for key, vd := range cd.Response {
			c.PutResponse(key, vd.Value)
		}
	}

	for _, td := range doc.TestSuite {
		r.AddTest(&rule.Test{
			ID:       td.ID,
			Name:     td.Name,
			Request:  td.Request,
			Response: td.Response,
			Critical: td.Critical,
		})
	}

	// Identity and timestamps last: restoring conditions and tests bumps
	// the modification time.
	r.ID = doc.ID
	r.Slug = doc.Slug
	r.CreatedAt = doc.CreatedAt
	r.UpdatedAt = doc.UpdatedAt

	if err := validator.Validate(r); err != nil {
		if el, ok := forgeErrors.AsList(err); ok {
			return nil, forgeErrors.NewDeserializationError(el)
		}
		return nil, err
	}
	return r, nil
}

// FromJSON deserializes a rule from its JSON document form.
func FromJSON(data []byte) (*rule.Rule, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, forgeErrors.New(forgeErrors.KindDeserialization,
			"document is not valid JSON: %v", err)
	}
	return FromDocument(&doc)
}

func decodeField(fd FieldDoc) (*schema.Field, error) {
	t, err := schema.ParseFieldType(fd.Type)
	if err != nil {
		if fe, ok := err.(*forgeErrors.Error); ok {
			fe.WithField(fd.Key)
		}
		return nil, err
	}
	return &schema.Field{
		Key:         fd.Key,
		Name:        fd.Name,
		Type:        t,
		Description: fd.Description,
		Default:     fd.DefaultValue,
		Show:        fd.Show,
	}, nil
}
