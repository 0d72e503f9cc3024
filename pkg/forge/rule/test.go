package rule

import "github.com/google/uuid"

// Test is a stored example exercising a rule: a request payload and the
// response it should produce. Critical tests block publishing on failure.
type Test struct {
	ID       string
	Name     string
	Request  map[string]any
	Response map[string]any
	Critical bool
}

// NewTest creates an empty test case with a fresh ID.
func NewTest() *Test {
	return &Test{
		ID:       uuid.NewString(),
		Request:  make(map[string]any),
		Response: make(map[string]any),
	}
}

// SetName sets the test's display name.
func (t *Test) SetName(name string) *Test {
	t.Name = name
	return t
}

// Expect sets the request payload and the response it should produce.
func (t *Test) Expect(request, response map[string]any) *Test {
	t.Request = request
	t.Response = response
	return t
}

// IsCritical marks the test as blocking: a failure prevents publishing.
func (t *Test) IsCritical() *Test {
	t.Critical = true
	return t
}

// AddTest appends a test case to the rule's suite.
func (r *Rule) AddTest(t *Test) *Rule {
	r.tests = append(r.tests, t)
	r.touch()
	return r
}

// RemoveTest removes a test case by ID. It reports whether a test was
// removed.
func (r *Rule) RemoveTest(id string) bool {
	for i, t := range r.tests {
		if t.ID == id {
			r.tests = append(r.tests[:i], r.tests[i+1:]...)
			r.touch()
			return true
		}
	}
	return false
}

// FindTestByName returns the first test with the given name.
func (r *Rule) FindTestByName(name string) (*Test, bool) {
	for _, t := range r.tests {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Tests returns the test suite in authoring order.
func (r *Rule) Tests() []*Test {
	return r.tests
}
