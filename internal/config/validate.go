package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAlbums(); err != nil {
		return err
	}
	if err := c.validateProfile(); err != nil {
		return err
	}
	if err := c.validateSocial(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.MusicRoot == "" {
		return errors.New("paths.music_root must be set")
	}
	if c.Paths.PublicDir == "" {
		return errors.New("paths.public_dir must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateAlbums() error {
	seen := make(map[string]struct{}, len(c.Albums))
	for i, album := range c.Albums {
		if album.Name == "" {
			return fmt.Errorf("albums[%d].name must be set", i)
		}
		// The name becomes part of <album>_cover.<ext>.
		if strings.ContainsAny(album.Name, `/\`) || album.Name == "." || album.Name == ".." {
			return fmt.Errorf("albums[%d].name %q must not contain path separators", i, album.Name)
		}
		if _, dup := seen[album.Name]; dup {
			return fmt.Errorf("albums[%d].name %q is duplicated", i, album.Name)
		}
		seen[album.Name] = struct{}{}
		// Copying into the source tree would overwrite the masters.
		if pathsOverlap(album.Source, album.Dest) {
			return fmt.Errorf("albums[%d] %q: dest %q overlaps source %q", i, album.Name, album.Dest, album.Source)
		}
	}
	return nil
}

func (c *Config) validateProfile() error {
	if c.Profile.Source != "" && filepath.Clean(c.Profile.Source) == filepath.Clean(c.Profile.Dest) {
		return fmt.Errorf("profile.dest %q is the same path as profile.source", c.Profile.Dest)
	}
	return nil
}

// pathsOverlap reports whether a and b are the same path or one contains the
// other.
func pathsOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return within(a, b) || within(b, a)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (c *Config) validateSocial() error {
	switch c.Social.CoverMatch {
	case CoverMatchStrict, CoverMatchLegacy:
		return nil
	default:
		return fmt.Errorf("social.cover_match: unsupported value %q (want %q or %q)", c.Social.CoverMatch, CoverMatchStrict, CoverMatchLegacy)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
