package assets_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vynlassets/internal/assets"
	"vynlassets/internal/config"
	"vynlassets/internal/logging"
	"vynlassets/internal/testsupport"
)

func albumByName(t *testing.T, cfg *config.Config, name string) config.Album {
	t.Helper()
	for _, album := range cfg.Albums {
		if album.Name == name {
			return album
		}
	}
	t.Fatalf("album %q not configured", name)
	return config.Album{}
}

func runSocial(t *testing.T, cfg *config.Config, opts assets.Options) *assets.Report {
	t.Helper()
	social, err := assets.NewSocial(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSocial returned error: %v", err)
	}
	report, err := social.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return report
}

func TestSocialCopiesAudioAndCover(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applause := albumByName(t, cfg, "applause")
	testsupport.WriteBytes(t, filepath.Join(applause.Source, "01 Intro.mp3"), []byte("intro"))
	testsupport.WriteBytes(t, filepath.Join(applause.Source, "02 LOUD.MP3"), []byte("loud"))
	testsupport.WriteBytes(t, filepath.Join(applause.Source, "cover_art.JPG"), []byte("jpeg"))
	testsupport.WriteBytes(t, filepath.Join(applause.Source, "notes.txt"), []byte("notes"))
	testsupport.WriteBytes(t, filepath.Join(applause.Source, "stems", "kick.mp3"), []byte("kick"))

	report := runSocial(t, cfg, assets.Options{})

	if got := testsupport.ReadFile(t, filepath.Join(applause.Dest, "01 Intro.mp3")); !bytes.Equal(got, []byte("intro")) {
		t.Fatalf("unexpected track content %q", got)
	}
	if got := testsupport.ReadFile(t, filepath.Join(applause.Dest, "02 LOUD.MP3")); !bytes.Equal(got, []byte("loud")) {
		t.Fatalf("unexpected upper-case track content %q", got)
	}
	if got := testsupport.ReadFile(t, filepath.Join(cfg.AlbumArtDir(), "applause_cover.JPG")); !bytes.Equal(got, []byte("jpeg")) {
		t.Fatalf("unexpected cover content %q", got)
	}
	testsupport.AssertMissing(t, filepath.Join(applause.Dest, "notes.txt"))
	testsupport.AssertMissing(t, filepath.Join(applause.Dest, "kick.mp3"))
	testsupport.AssertMissing(t, filepath.Join(applause.Dest, "stems"))

	if report.Count(assets.OutcomeCopied) != 3 {
		t.Fatalf("expected 3 copies, got %+v", report.Entries)
	}
}

func TestSocialCreatesDestinationsAndSkipsMissingAlbums(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	report := runSocial(t, cfg, assets.Options{})

	for _, album := range cfg.Albums {
		if info, err := os.Stat(album.Dest); err != nil || !info.IsDir() {
			t.Fatalf("expected album destination %s: %v", album.Dest, err)
		}
	}
	for _, dir := range []string{cfg.AlbumArtDir(), filepath.Dir(cfg.Profile.Dest)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}

	var missingAlbums int
	for _, entry := range report.Entries {
		if entry.Kind == assets.KindAlbum && entry.Outcome == assets.OutcomeMissing {
			missingAlbums++
		}
	}
	if missingAlbums != len(cfg.Albums) {
		t.Fatalf("expected every album reported missing, got %d", missingAlbums)
	}
	testsupport.AssertMissing(t, cfg.Profile.Dest)
}

func TestSocialCoverPolicies(t *testing.T) {
	tests := []struct {
		policy     string
		wantLegacy bool
	}{
		{config.CoverMatchStrict, false},
		{config.CoverMatchLegacy, true},
	}
	for _, tc := range tests {
		t.Run(tc.policy, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithCoverMatch(tc.policy))
			victory := albumByName(t, cfg, "victory")
			testsupport.WriteBytes(t, filepath.Join(victory.Source, "random_cover.txt"), []byte("text"))
			testsupport.WriteBytes(t, filepath.Join(victory.Source, "album_notes.txt"), []byte("notes"))

			runSocial(t, cfg, assets.Options{})

			textCover := filepath.Join(cfg.AlbumArtDir(), "victory_cover.txt")
			if tc.wantLegacy {
				if got := testsupport.ReadFile(t, textCover); !bytes.Equal(got, []byte("text")) {
					t.Fatalf("expected legacy policy to copy text cover, got %q", got)
				}
			} else {
				testsupport.AssertMissing(t, textCover)
			}
		})
	}
}

func TestSocialLegacyCoverNamedMP3IsCopiedTwice(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCoverMatch(config.CoverMatchLegacy))
	surrender := albumByName(t, cfg, "surrender")
	testsupport.WriteBytes(t, filepath.Join(surrender.Source, "cover song.mp3"), []byte("cover"))

	report := runSocial(t, cfg, assets.Options{})

	testsupport.ReadFile(t, filepath.Join(surrender.Dest, "cover song.mp3"))
	testsupport.ReadFile(t, filepath.Join(cfg.AlbumArtDir(), "surrender_cover.mp3"))
	if report.Count(assets.OutcomeCopied) != 2 {
		t.Fatalf("expected track and cover copies, got %+v", report.Entries)
	}
}

func TestSocialCopiesProfileWhenPresent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	// The profile keeps its fixed destination name whatever the source format.
	testsupport.WriteBytes(t, cfg.Profile.Source, buf.Bytes())
	mtime := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(cfg.Profile.Source, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	report := runSocial(t, cfg, assets.Options{})

	if got := testsupport.ReadFile(t, cfg.Profile.Dest); !bytes.Equal(got, buf.Bytes()) {
		t.Fatal("profile content mismatch")
	}
	info, err := os.Stat(cfg.Profile.Dest)
	if err != nil {
		t.Fatalf("stat profile: %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Fatalf("expected preserved mtime %v, got %v", mtime, info.ModTime())
	}
	var profile *assets.Entry
	for i := range report.Entries {
		if report.Entries[i].Kind == assets.KindProfile {
			profile = &report.Entries[i]
		}
	}
	if profile == nil || profile.Outcome != assets.OutcomeCopied {
		t.Fatalf("expected copied profile entry, got %+v", report.Entries)
	}
	if profile.Detail != "png 3x2" {
		t.Fatalf("expected image detail, got %q", profile.Detail)
	}
}

func TestSocialDryRunWritesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lowfires := albumByName(t, cfg, "lowfires")
	testsupport.WriteBytes(t, filepath.Join(lowfires.Source, "ember.mp3"), []byte("ember"))
	testsupport.WriteBytes(t, cfg.Profile.Source, []byte("jpeg"))

	report := runSocial(t, cfg, assets.Options{DryRun: true})

	testsupport.AssertMissing(t, cfg.Paths.PublicDir)
	if report.Count(assets.OutcomePlanned) != 2 {
		t.Fatalf("expected track and profile planned, got %+v", report.Entries)
	}
}

func TestSocialSkipsAlbumSourceThatIsAFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums(config.Album{Name: "demo", Source: "demo.zip"}))
	testsupport.WriteBytes(t, cfg.Albums[0].Source, []byte("zip"))

	report := runSocial(t, cfg, assets.Options{})

	if len(report.Entries) == 0 || report.Entries[0].Detail != "not a directory" {
		t.Fatalf("expected album reported as not a directory, got %+v", report.Entries)
	}
}

func TestNewSocialRejectsUnknownPolicy(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Social.CoverMatch = "fuzzy"
	if _, err := assets.NewSocial(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for unknown cover policy")
	}
}

func TestSocialLeavesSourceAloneWhenDestIsSource(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums(config.Album{Name: "demo", Source: "demo"}))
	// Validation rejects this layout; the copier must still be safe if handed it.
	cfg.Albums[0].Dest = cfg.Albums[0].Source
	src := filepath.Join(cfg.Albums[0].Source, "track.mp3")
	testsupport.WriteBytes(t, src, []byte("master track 1"))

	social, err := assets.NewSocial(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSocial returned error: %v", err)
	}
	_, err = social.Run(context.Background(), assets.Options{})
	if !errors.Is(err, assets.ErrSameFile) {
		t.Fatalf("expected ErrSameFile, got %v", err)
	}
	if got := testsupport.ReadFile(t, src); !bytes.Equal(got, []byte("master track 1")) {
		t.Fatalf("source track changed: %q", got)
	}
}

func TestSocialAbortsOnCopyFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applause := albumByName(t, cfg, "applause")
	testsupport.WriteBytes(t, filepath.Join(applause.Source, "01 Intro.mp3"), []byte("intro"))
	testsupport.WriteBytes(t, filepath.Join(applause.Source, "02 Outro.mp3"), []byte("outro"))
	lowfires := albumByName(t, cfg, "lowfires")
	testsupport.WriteBytes(t, filepath.Join(lowfires.Source, "ember.mp3"), []byte("ember"))
	blocked := filepath.Join(applause.Dest, "02 Outro.mp3")
	if err := os.MkdirAll(filepath.Join(blocked, "keep"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	social, err := assets.NewSocial(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSocial returned error: %v", err)
	}
	report, err := social.Run(context.Background(), assets.Options{})
	if err == nil {
		t.Fatal("expected copy failure")
	}
	if !strings.Contains(err.Error(), "02 Outro.mp3 -> "+blocked) {
		t.Fatalf("expected error naming source and destination, got %v", err)
	}
	if report.Count(assets.OutcomeCopied) != 1 || report.Entries[0].Name != "01 Intro.mp3" {
		t.Fatalf("expected the first track recorded, got %+v", report.Entries)
	}
	testsupport.AssertMissing(t, filepath.Join(lowfires.Dest, "ember.mp3"))
	if report.FinishedAt.IsZero() {
		t.Fatal("expected finished timestamp on a failed run")
	}
}
