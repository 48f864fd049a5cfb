// Package preflight provides readiness checks for the source and destination
// trees the copy jobs depend on.
//
// The CLI "vynlassets check" command runs RunAll and renders the results as
// a table. Required checks cover the roots every run reads from or writes
// to; optional checks cover individual sources that a run would skip with a
// notice when absent.
package preflight
