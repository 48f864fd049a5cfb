package assets

import (
	"context"
	"errors"
	"log/slog"

	"vynlassets/internal/logging"
	"vynlassets/internal/media/artwork"
	"vynlassets/internal/media/tags"
)

const (
	// OperationFriends names the Top 8 image run.
	OperationFriends = "friends"
	// OperationSocial names the album, cover, and profile run.
	OperationSocial = "social"
)

// Options adjusts a single run.
type Options struct {
	// DryRun resolves and reports every copy without touching the destination tree.
	DryRun bool
}

// startRun creates the report for a run and tags ctx and logger with its ID.
func startRun(ctx context.Context, base *slog.Logger, operation string, opts Options) (context.Context, *slog.Logger, *Report) {
	report := newReport(operation, opts.DryRun)
	ctx = logging.WithOperation(logging.WithRunID(ctx, report.RunID), operation)
	logger := logging.WithContext(ctx, base)
	if opts.DryRun {
		logger = logger.With(logging.Bool("dry_run", true))
	}
	return ctx, logger, report
}

// publish copies entry.Source to entry.Destination, or marks it planned on a
// dry run, and records the entry. Copy failures are returned wrapped.
func publish(logger *slog.Logger, report *Report, entry Entry, opts Options) (Entry, error) {
	if opts.DryRun {
		entry.Outcome = OutcomePlanned
	} else {
		written, err := copyFile(entry.Source, entry.Destination)
		if err != nil {
			return entry, wrapCopyError(entry.Source, entry.Destination, err)
		}
		entry.Bytes = written
		entry.Outcome = OutcomeCopied
	}
	entry.Detail = describe(logger, entry)
	report.add(entry)
	return entry, nil
}

// describe returns a short human label for the published file. Inspection
// failures only lose the label.
func describe(logger *slog.Logger, entry Entry) string {
	switch entry.Kind {
	case KindTrack:
		track, err := tags.Read(entry.Source)
		if err != nil {
			if !errors.Is(err, tags.ErrNoTags) {
				logger.Debug("id3 inspection failed", logging.Args(logging.String(logging.FieldSource, entry.Source), logging.Error(err))...)
			}
			return ""
		}
		return track.Label()
	case KindFriend, KindCover, KindProfile:
		info, err := artwork.Describe(entry.Source)
		if err != nil {
			logger.Debug("image inspection failed", logging.Args(logging.String(logging.FieldSource, entry.Source), logging.Error(err))...)
			return ""
		}
		return info.String()
	default:
		return ""
	}
}

func missing(logger *slog.Logger, report *Report, entry Entry, msg string) {
	entry.Outcome = OutcomeMissing
	report.add(entry)
	logger.Info(msg, logging.Args(
		logging.String(logging.FieldEventType, "asset_missing"),
		logging.String(logging.FieldSource, entry.Source),
	)...)
}
