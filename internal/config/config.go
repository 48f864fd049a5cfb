package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the source and destination roots.
type Paths struct {
	MusicRoot      string `toml:"music_root"`
	GraphicsDir    string `toml:"graphics_dir"`
	DiscographyDir string `toml:"discography_dir"`
	PublicDir      string `toml:"public_dir"`
	StateDir       string `toml:"state_dir"`
	LogDir         string `toml:"log_dir"`
}

// Friends configures the Top 8 image copier.
type Friends struct {
	DestSubdir string   `toml:"dest_subdir"`
	Images     []string `toml:"images"`
}

// Album maps a published album name to its source and destination folders.
// Relative sources resolve against the discography directory; relative
// destinations resolve against the public directory and default to
// music/<name>.
type Album struct {
	Name   string `toml:"name"`
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
}

// Profile configures the single profile image copy.
type Profile struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
}

// Social configures album scanning.
type Social struct {
	CoverMatch     string `toml:"cover_match"`
	AlbumArtSubdir string `toml:"album_art_subdir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Journal controls the optional SQLite run history.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for vynlassets.
//
// Configuration sections:
//   - Paths: music library, website public directory, state and logs
//   - Friends: ordered Top 8 image list and destination
//   - Albums: album source/destination pairs in processing order
//   - Profile: the profile image copy
//   - Social: cover-art matching policy and album art destination
//   - Logging: log format and level
//   - Journal: optional run history database
type Config struct {
	Paths   Paths   `toml:"paths"`
	Friends Friends `toml:"friends"`
	Albums  []Album `toml:"albums"`
	Profile Profile `toml:"profile"`
	Social  Social  `toml:"social"`
	Logging Logging `toml:"logging"`
	Journal Journal `toml:"journal"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vynlassets/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	cfg.applyEnv()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// Lists from the file replace the defaults rather than extend them;
		// normalize restores the defaults when the file omits them.
		cfg.Albums = nil
		cfg.Friends.Images = nil

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Normalize resolves every path in cfg. Load calls it; tests and callers that
// build a Config by hand call it directly.
func (c *Config) Normalize() error {
	return c.normalize()
}

// applyEnv seeds the roots from the environment. Values from a config file
// still take precedence.
func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("VYNL_MUSIC_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.MusicRoot = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("VYNL_PUBLIC_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.PublicDir = strings.TrimSpace(value)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vynlassets.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories. Source and
// destination trees are never created here; the copy commands own those.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FriendsDir returns the absolute destination for numbered friends images.
func (c *Config) FriendsDir() string {
	return c.Friends.DestSubdir
}

// AlbumArtDir returns the absolute destination for <album>_cover files.
func (c *Config) AlbumArtDir() string {
	return c.Social.AlbumArtSubdir
}

// LockPath returns the run lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "vynlassets.lock")
}

// LogPath returns the log file written alongside console output.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "vynlassets.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// resolveUnder joins rel onto base unless rel is already absolute or
// tilde-prefixed, then expands the result.
func resolveUnder(base, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return expandPath(base)
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "~") {
		return expandPath(rel)
	}
	return expandPath(filepath.Join(base, filepath.FromSlash(rel)))
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
