package geonames

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by query operations. Callers distinguish them
// with errors.Is: invalid arguments are rejected before any index access,
// while ErrNotFound means a well-formed query matched nothing.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// MalformedRecordError reports a dataset row that does not match the
// 19-column schema. Any malformed row fails the entire load: a partially
// built index would be silently incomplete.
type MalformedRecordError struct {
	Line   int    // 1-based line number within the dataset
	Fields int    // number of tab-separated fields found
	Reason string // set when the field count is right but a value won't parse
}

func (e *MalformedRecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed record at line %d: got %d fields, want %d", e.Line, e.Fields, datasetFieldCount)
}
