package query

import "fmt"

// QueryError mirrors this pipeline's existing error shape: a closed Kind
// tag plus a human message, used for malformed query input and for an
// unknown feature name in the queries that require one. Other not-found
// results use a result type's Found/nil-able fields instead, per §4.4's
// "or null" result shapes.
type QueryError struct {
	Kind    string
	Message string
}

func (e QueryError) Error() string {
	return fmt.Sprintf("query error (%v): %v", e.Kind, e.Message)
}
