// Package rule models decision-table rule documents: typed request and
// response schemas, conditions built from validated clauses, and the
// fluent When/Any/Then authoring surface.
//
// Construction is fail-fast: declaring a duplicate field, applying an
// operator outside a field type's catalog, or passing malformed operands
// returns an error immediately and leaves the document unchanged. The
// unvalidated Put/Restore entry points exist for reconstruction from
// serialized form, where the validator re-checks every invariant
// afterwards.
package rule
