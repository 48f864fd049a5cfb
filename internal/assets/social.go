package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"vynlassets/internal/config"
	"vynlassets/internal/logging"
)

// Social publishes album audio, album cover art, and the profile image.
type Social struct {
	cfg    *config.Config
	logger *slog.Logger
	policy CoverPolicy
}

// NewSocial builds an organizer for cfg. It fails only on an unknown cover
// match policy.
func NewSocial(cfg *config.Config, logger *slog.Logger) (*Social, error) {
	policy, err := ParseCoverPolicy(cfg.Social.CoverMatch)
	if err != nil {
		return nil, err
	}
	return &Social{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, OperationSocial),
		policy: policy,
	}, nil
}

// Run creates the destination directories, publishes every album in
// configured order, then the profile image. Albums whose source directory is
// absent are skipped with a notice.
func (s *Social) Run(ctx context.Context, opts Options) (*Report, error) {
	ctx, logger, report := startRun(ctx, s.logger, OperationSocial, opts)
	defer report.finish()

	if !opts.DryRun {
		if err := s.setupDirs(); err != nil {
			return report, err
		}
	}

	for _, album := range s.cfg.Albums {
		if err := s.publishAlbum(ctx, logger, report, album, opts); err != nil {
			return report, err
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if err := s.publishProfile(logger, report, opts); err != nil {
		return report, err
	}

	logger.Info("Done organizing assets.", logging.Args(
		logging.Int("copied", report.Count(OutcomeCopied)+report.Count(OutcomePlanned)),
		logging.Int("missing", report.Count(OutcomeMissing)),
	)...)
	return report, nil
}

func (s *Social) setupDirs() error {
	dirs := make([]string, 0, len(s.cfg.Albums)+2)
	for _, album := range s.cfg.Albums {
		dirs = append(dirs, album.Dest)
	}
	dirs = append(dirs, filepath.Dir(s.cfg.Profile.Dest), s.cfg.AlbumArtDir())
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func (s *Social) publishAlbum(ctx context.Context, logger *slog.Logger, report *Report, album config.Album, opts Options) error {
	logger = logger.With(logging.String(logging.FieldAlbum, album.Name))

	state, err := statDir(album.Source)
	if err != nil {
		return fmt.Errorf("stat album %s source: %w", album.Name, err)
	}
	if state != sourcePresent {
		entry := Entry{Kind: KindAlbum, Album: album.Name, Name: album.Name, Source: album.Source}
		if state == sourceWrongType {
			entry.Detail = "not a directory"
		}
		missing(logger, report, entry, "album source not found, skipping")
		return nil
	}

	entries, err := os.ReadDir(album.Source)
	if err != nil {
		return fmt.Errorf("read album %s source: %w", album.Name, err)
	}

	for _, dirEntry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := dirEntry.Name()
		src := filepath.Join(album.Source, name)

		fileState, _, err := statFile(src)
		if err != nil {
			return fmt.Errorf("stat %s: %w", src, err)
		}
		if fileState != sourcePresent {
			logger.Debug("ignoring non-file entry", logging.Args(logging.String(logging.FieldSource, src))...)
			continue
		}

		if isAudio(name) {
			entry := Entry{
				Kind:        KindTrack,
				Album:       album.Name,
				Name:        name,
				Source:      src,
				Destination: filepath.Join(album.Dest, name),
			}
			if _, err := publish(logger, report, entry, opts); err != nil {
				return err
			}
			logger.Info("copied track", logging.Args(logging.String("file", name))...)
		}

		// Evaluated independently of the audio rule: a file can be both.
		if s.policy.Matches(name) {
			coverName := withExtension(album.Name+"_cover", extension(name))
			entry := Entry{
				Kind:        KindCover,
				Album:       album.Name,
				Name:        name,
				Source:      src,
				Destination: filepath.Join(s.cfg.AlbumArtDir(), coverName),
			}
			if _, err := publish(logger, report, entry, opts); err != nil {
				return err
			}
			logger.Info("copied cover", logging.Args(
				logging.String("file", name),
				logging.String("as", coverName),
			)...)
		}
	}
	return nil
}

func (s *Social) publishProfile(logger *slog.Logger, report *Report, opts Options) error {
	src := s.cfg.Profile.Source
	entry := Entry{
		Kind:        KindProfile,
		Name:        filepath.Base(src),
		Source:      src,
		Destination: s.cfg.Profile.Dest,
	}

	state, _, err := statFile(src)
	if err != nil {
		return fmt.Errorf("stat profile image: %w", err)
	}
	if state != sourcePresent {
		missing(logger, report, entry, "profile image not found, skipping")
		return nil
	}

	if _, err := publish(logger, report, entry, opts); err != nil {
		return err
	}
	logger.Info("copied profile image", logging.Args(logging.String(logging.FieldDestination, entry.Destination))...)
	return nil
}
