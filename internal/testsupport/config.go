package testsupport

import (
	"path/filepath"
	"testing"

	"vynlassets/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
// Options run before normalization, so relative paths resolve the same way
// they would from a config file.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a normalized config rooted in a unique temp directory:
// <base>/music for sources, <base>/public for destinations, and <base>/state
// and <base>/logs for tool state.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.MusicRoot = filepath.Join(base, "music")
	cfgVal.Paths.PublicDir = filepath.Join(base, "public")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	return builder.cfg
}

// WithCoverMatch sets the social cover-art policy.
func WithCoverMatch(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Social.CoverMatch = policy
	}
}

// WithAlbums replaces the album list.
func WithAlbums(albums ...config.Album) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Albums = append([]config.Album(nil), albums...)
	}
}

// WithFriendsImages replaces the friends image list.
func WithFriendsImages(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Friends.Images = append([]string{}, names...)
	}
}

// WithJournal enables the run journal.
func WithJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
