package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"vynlassets/internal/runlock"
)

func TestAcquireRejectsSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "vynlassets.lock")

	first, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("first Acquire returned error: %v", err)
	}
	t.Cleanup(func() { _ = first.Release() })

	if _, err := runlock.Acquire(path); !errors.Is(err, runlock.ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	second, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after release returned error: %v", err)
	}
	if second.Path() != path {
		t.Fatalf("unexpected lock path %q", second.Path())
	}
	if err := second.Release(); err != nil {
		t.Fatalf("second Release returned error: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("repeated Release returned error: %v", err)
	}
}
