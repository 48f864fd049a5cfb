package testsupport

import (
	"testing"

	"vynlassets/internal/config"
	"vynlassets/internal/journal"
)

// MustOpenJournal opens the journal configured in cfg and closes it when the
// test finishes.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
