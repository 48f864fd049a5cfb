package journal_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"vynlassets/internal/assets"
	"vynlassets/internal/journal"
	"vynlassets/internal/logging"
	"vynlassets/internal/testsupport"
)

func TestRecordAndReadBack(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournal(), testsupport.WithFriendsImages("a.png", "b.png"))
	testsupport.WriteBytes(t, filepath.Join(cfg.Paths.GraphicsDir, "a.png"), []byte("aaaa"))

	report, err := assets.NewFriends(cfg, logging.NewNop()).Run(context.Background(), assets.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()
	if err := store.Record(ctx, report, nil); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != report.RunID || run.Operation != assets.OperationFriends {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Copied != 1 || run.Missing != 1 || run.Bytes != 4 || run.Error != "" {
		t.Fatalf("unexpected run counts: %+v", run)
	}
	if !run.StartedAt.Equal(report.StartedAt) {
		t.Fatalf("expected started_at %v, got %v", report.StartedAt, run.StartedAt)
	}

	entries, err := store.Entries(ctx, run.ID)
	if err != nil {
		t.Fatalf("Entries returned error: %v", err)
	}
	if len(entries) != len(report.Entries) {
		t.Fatalf("expected %d entries, got %d", len(report.Entries), len(entries))
	}
	for i := range entries {
		if entries[i] != report.Entries[i] {
			t.Fatalf("entry %d mismatch: got %+v want %+v", i, entries[i], report.Entries[i])
		}
	}
}

func TestRecordStoresFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournal(), testsupport.WithFriendsImages())
	report, err := assets.NewFriends(cfg, logging.NewNop()).Run(context.Background(), assets.Options{DryRun: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	store := testsupport.MustOpenJournal(t, cfg)
	if err := store.Record(context.Background(), report, errors.New("disk full")); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	runs, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(runs) != 1 || runs[0].Error != "disk full" || !runs[0].DryRun {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournal(), testsupport.WithFriendsImages())
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		report, err := assets.NewFriends(cfg, logging.NewNop()).Run(ctx, assets.Options{DryRun: true})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if err := store.Record(ctx, report, nil); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
		ids = append(ids, report.RunID)
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected ordering: %+v", runs)
	}
}

func TestEntriesUnknownRun(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournal())
	store := testsupport.MustOpenJournal(t, cfg)

	if _, err := store.Entries(context.Background(), "nope"); !errors.Is(err, journal.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournal())
	first, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	second, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	defer second.Close()
	if second.Path() != cfg.Journal.Path {
		t.Fatalf("unexpected path %q", second.Path())
	}
}
