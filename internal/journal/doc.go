// Package journal persists a history of copy runs in SQLite.
//
// Each run and the entries of its report are written once, after the run
// finishes. The journal is an audit trail only: nothing reads it back to
// decide what to copy.
package journal
