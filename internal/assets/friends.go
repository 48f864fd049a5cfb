package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"vynlassets/internal/config"
	"vynlassets/internal/logging"
)

// Friends publishes the ordered Top 8 images as 1.<ext> through N.<ext>.
type Friends struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewFriends builds a friends copier for cfg. A nil logger discards output.
func NewFriends(cfg *config.Config, logger *slog.Logger) *Friends {
	return &Friends{cfg: cfg, logger: logging.NewComponentLogger(logger, OperationFriends)}
}

// Run copies every listed image found in the graphics directory. An image's
// number is its 1-based position in the list, so a missing image leaves a
// gap instead of shifting later images down.
func (f *Friends) Run(ctx context.Context, opts Options) (*Report, error) {
	ctx, logger, report := startRun(ctx, f.logger, OperationFriends, opts)
	defer report.finish()

	destDir := f.cfg.FriendsDir()
	if !opts.DryRun {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return report, fmt.Errorf("create friends directory %q: %w", destDir, err)
		}
	}

	for i, name := range f.cfg.Friends.Images {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if name == "" {
			continue
		}
		src := filepath.Join(f.cfg.Paths.GraphicsDir, name)
		destName := withExtension(strconv.Itoa(i+1), extension(filepath.Base(name)))
		entry := Entry{
			Kind:        KindFriend,
			Name:        name,
			Source:      src,
			Destination: filepath.Join(destDir, destName),
		}

		state, _, err := statFile(src)
		if err != nil {
			return report, fmt.Errorf("stat %s: %w", src, err)
		}
		if state != sourcePresent {
			missing(logger, report, entry, "image not found, skipping")
			continue
		}

		if _, err := publish(logger, report, entry, opts); err != nil {
			return report, err
		}
		logger.Info("copied image", logging.Args(
			logging.String("image", name),
			logging.String("as", destName),
		)...)
	}

	logger.Info("Done copying Top 8 images.", logging.Args(
		logging.Int("copied", report.Count(OutcomeCopied)+report.Count(OutcomePlanned)),
		logging.Int("missing", report.Count(OutcomeMissing)),
	)...)
	return report, nil
}
