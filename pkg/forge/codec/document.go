package codec

// Document is the canonical serialized form of a rule. Field names and
// nesting are part of the storage contract: documents written today must
// reload byte-compatibly tomorrow, so tags here never change meaning.
type Document struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Slug           string         `json:"slug"`
	Alias          string         `json:"alias,omitempty"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	SampleRequest  map[string]any `json:"sampleRequest"`
	SampleResponse map[string]any `json:"sampleResponse"`
	RequestSchema  []FieldDoc     `json:"requestSchema"`
	ResponseSchema []FieldDoc     `json:"responseSchema"`
	Conditions     []ConditionDoc `json:"conditions"`
	Settings       SettingsDoc    `json:"settings"`
	TestSuite      []TestDoc      `json:"testSuite"`
	ConditionCount int            `json:"conditionCount"`
}

// FieldDoc is the serialized form of one schema field.
type FieldDoc struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	DefaultValue any    `json:"defaultValue"`
	Show         bool   `json:"show"`
}

// ClauseDoc is the serialized form of one clause: an operator tag and its
// operands. Args is always an array, even when empty, so consumers never
// branch on null.
type ClauseDoc struct {
	Op   string `json:"op"`
	Args []any  `json:"args"`
}

// ValueDoc wraps a response value.
type ValueDoc struct {
	Value any `json:"value"`
}

// ConditionDoc is the serialized form of one condition row.
type ConditionDoc struct {
	ID       string               `json:"id"`
	Request  map[string]ClauseDoc `json:"request"`
	Response map[string]ValueDoc  `json:"response"`
	Settings ConditionSettingsDoc `json:"settings"`
}

// ConditionSettingsDoc mirrors rule.ConditionSettings on the wire.
type ConditionSettingsDoc struct {
	Enabled  bool     `json:"enabled"`
	Priority int      `json:"priority"`
	GroupID  string   `json:"groupId,omitempty"`
	Or       bool     `json:"or,omitempty"`
	Schedule []string `json:"schedule,omitempty"`
}

// SettingsDoc mirrors rule.Settings on the wire.
type SettingsDoc struct {
	Testing          bool `json:"testing"`
	SchemaValidation bool `json:"schemaValidation"`
	AllProperties    bool `json:"allProperties"`
	LockSchema       bool `json:"lockSchema"`
}

// TestDoc is the serialized form of one stored test case.
type TestDoc struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Request  map[string]any `json:"request"`
	Response map[string]any `json:"response"`
	Critical bool           `json:"critical"`
}
