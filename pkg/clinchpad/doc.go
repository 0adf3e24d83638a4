// Package clinchpad is a client for the ClinchPad CRM REST API.
//
// The client exposes pipelines, stages, leads, notes, and activities as
// typed values and layers three conveniences on top of the raw resource
// calls: name-based lookup backed by a session-lifetime pipeline cache,
// stage and date filtering for leads and activities, and a note
// deduplication pass (FindNote with FindKeepLast) that collapses
// duplicate matcher hits down to a single canonical note.
//
// All list endpoints fetch one bounded page (999 records); records
// beyond that bound are silently omitted. Writes are not retried and
// carry no exactly-once guarantee.
package clinchpad
