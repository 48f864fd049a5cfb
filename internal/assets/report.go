package assets

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies what an entry published.
type Kind string

const (
	KindFriend  Kind = "friend"
	KindTrack   Kind = "track"
	KindCover   Kind = "cover"
	KindProfile Kind = "profile"
	KindAlbum   Kind = "album"
)

// Outcome is the result recorded for an entry.
type Outcome string

const (
	OutcomeCopied  Outcome = "copied"
	OutcomePlanned Outcome = "planned"
	OutcomeMissing Outcome = "missing"
)

// Entry describes one source considered during a run.
type Entry struct {
	Kind        Kind
	Album       string
	Name        string
	Source      string
	Destination string
	Outcome     Outcome
	Bytes       int64
	Detail      string
}

// Report collects the entries of a single run.
type Report struct {
	RunID      string
	Operation  string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    []Entry
}

func newReport(operation string, dryRun bool) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Operation: operation,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}
}

func (r *Report) add(entry Entry) {
	r.Entries = append(r.Entries, entry)
}

func (r *Report) finish() {
	r.FinishedAt = time.Now().UTC()
}

// Count returns the number of entries with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

// Bytes returns the total bytes written by the run.
func (r *Report) Bytes() int64 {
	if r == nil {
		return 0
	}
	var total int64
	for _, e := range r.Entries {
		if e.Outcome == OutcomeCopied {
			total += e.Bytes
		}
	}
	return total
}

// Duration returns how long the run took.
func (r *Report) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
