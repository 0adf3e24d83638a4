package clinchpad

import (
	"errors"
	"fmt"
)

// NotFoundError reports a name lookup that matched nothing. It always
// carries the searched name; for stage lookups Pipeline names the
// pipeline that was searched.
type NotFoundError struct {
	Resource string // "pipeline" or "stage"
	Name     string
	Pipeline string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Pipeline != "" {
		return fmt.Sprintf("%s %q not found in pipeline %q", e.Resource, e.Name, e.Pipeline)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// APIError is a non-2xx response from the ClinchPad API. It is
// propagated as-is; the client never retries.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: API error (status %d): %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// DedupError reports a note-deduplication batch that failed partway.
// Notes listed in Deleted are gone and are not restored; the lead's
// note state is indeterminate until re-queried.
type DedupError struct {
	Deleted  []string // note ids removed before the failure
	FailedID string   // note id whose deletion failed
	Err      error
}

// Error implements the error interface.
func (e *DedupError) Error() string {
	return fmt.Sprintf("delete duplicate note %s (%d already deleted): %v", e.FailedID, len(e.Deleted), e.Err)
}

// Unwrap returns the underlying transport error.
func (e *DedupError) Unwrap() error {
	return e.Err
}
