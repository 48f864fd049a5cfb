package config

import (
	"fmt"
	"path"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeFriends(); err != nil {
		return err
	}
	if err := c.normalizeAlbums(); err != nil {
		return err
	}
	if err := c.normalizeProfile(); err != nil {
		return err
	}
	if err := c.normalizeSocial(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.MusicRoot) == "" {
		c.Paths.MusicRoot = defaultMusicRoot
	}
	if c.Paths.MusicRoot, err = expandPath(strings.TrimSpace(c.Paths.MusicRoot)); err != nil {
		return fmt.Errorf("paths.music_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.PublicDir) == "" {
		c.Paths.PublicDir = defaultPublicDir
	}
	if c.Paths.PublicDir, err = expandPath(strings.TrimSpace(c.Paths.PublicDir)); err != nil {
		return fmt.Errorf("paths.public_dir: %w", err)
	}
	if c.Paths.GraphicsDir, err = resolveUnder(c.Paths.MusicRoot, defaultIfBlank(c.Paths.GraphicsDir, defaultGraphicsSubdir)); err != nil {
		return fmt.Errorf("paths.graphics_dir: %w", err)
	}
	if c.Paths.DiscographyDir, err = resolveUnder(c.Paths.MusicRoot, defaultIfBlank(c.Paths.DiscographyDir, defaultDiscographyDir)); err != nil {
		return fmt.Errorf("paths.discography_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(defaultIfBlank(c.Paths.StateDir, defaultStateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(defaultIfBlank(c.Paths.LogDir, defaultLogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFriends() error {
	var err error
	if c.Friends.DestSubdir, err = resolveUnder(c.Paths.PublicDir, defaultIfBlank(c.Friends.DestSubdir, defaultFriendsSubdir)); err != nil {
		return fmt.Errorf("friends.dest_subdir: %w", err)
	}
	if c.Friends.Images == nil {
		c.Friends.Images = append([]string(nil), DefaultFriendsImages...)
	}
	// Blank entries keep their slot so later images retain their numbers.
	for i, name := range c.Friends.Images {
		c.Friends.Images[i] = strings.TrimSpace(name)
	}
	return nil
}

func (c *Config) normalizeAlbums() error {
	if c.Albums == nil {
		c.Albums = DefaultAlbums()
	}
	for i := range c.Albums {
		album := &c.Albums[i]
		album.Name = strings.ToLower(strings.TrimSpace(album.Name))
		if strings.TrimSpace(album.Source) == "" {
			return fmt.Errorf("albums[%d].source must be set", i)
		}
		var err error
		if album.Source, err = resolveUnder(c.Paths.DiscographyDir, album.Source); err != nil {
			return fmt.Errorf("albums[%d].source: %w", i, err)
		}
		dest := strings.TrimSpace(album.Dest)
		if dest == "" {
			dest = path.Join(defaultMusicSubdir, album.Name)
		}
		if album.Dest, err = resolveUnder(c.Paths.PublicDir, dest); err != nil {
			return fmt.Errorf("albums[%d].dest: %w", i, err)
		}
	}
	return nil
}

func (c *Config) normalizeProfile() error {
	var err error
	if c.Profile.Source, err = resolveUnder(c.Paths.GraphicsDir, defaultIfBlank(c.Profile.Source, defaultProfileSource)); err != nil {
		return fmt.Errorf("profile.source: %w", err)
	}
	if c.Profile.Dest, err = resolveUnder(c.Paths.PublicDir, defaultIfBlank(c.Profile.Dest, defaultProfileDest)); err != nil {
		return fmt.Errorf("profile.dest: %w", err)
	}
	return nil
}

func (c *Config) normalizeSocial() error {
	c.Social.CoverMatch = strings.ToLower(strings.TrimSpace(c.Social.CoverMatch))
	if c.Social.CoverMatch == "" {
		c.Social.CoverMatch = defaultCoverMatch
	}
	var err error
	if c.Social.AlbumArtSubdir, err = resolveUnder(c.Paths.PublicDir, defaultIfBlank(c.Social.AlbumArtSubdir, defaultAlbumArtSubdir)); err != nil {
		return fmt.Errorf("social.album_art_subdir: %w", err)
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	var err error
	if c.Journal.Path, err = resolveUnder(c.Paths.StateDir, defaultIfBlank(c.Journal.Path, defaultJournalFilename)); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func defaultIfBlank(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
