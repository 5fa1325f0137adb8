package domain

import "fmt"

// FetchError reports a feed boundary failure: network error, timeout,
// non-2xx response, or an undecodable body. A FetchError aborts the whole
// run before any store access; the scheduler's next trigger is the retry.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SchemaError reports a single malformed feed record missing a required
// field. It is isolated: the record is skipped and counted, the run
// continues.
type SchemaError struct {
	Field      string // the missing or unparseable required field
	IncidentID string // may be empty when the id itself is missing
	Detail     string
}

func (e *SchemaError) Error() string {
	if e.IncidentID == "" {
		return fmt.Sprintf("schema: missing required field %q: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("schema: incident %s: field %q: %s", e.IncidentID, e.Field, e.Detail)
}

// StoreReadError reports that the destination's current contents could not
// be read. The run must abort without writing: merging against an unknown
// prior state would silently lose history.
type StoreReadError struct {
	Err error
}

func (e *StoreReadError) Error() string { return fmt.Sprintf("store read: %v", e.Err) }

func (e *StoreReadError) Unwrap() error { return e.Err }

// StoreWriteError reports that the destination rejected the merged image.
// The destination is left in its last-known-good state.
type StoreWriteError struct {
	Err error
}

func (e *StoreWriteError) Error() string { return fmt.Sprintf("store write: %v", e.Err) }

func (e *StoreWriteError) Unwrap() error { return e.Err }
