package assets

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"vynlassets/internal/config"
)

// CoverPolicy decides which album files count as cover art.
type CoverPolicy string

const (
	// CoverStrict selects names containing "cover" or "album" with a .jpg or
	// .png extension.
	CoverStrict CoverPolicy = config.CoverMatchStrict
	// CoverLegacy reproduces the original predicate:
	// "cover" in name OR ("album" in name AND image extension).
	// Any file with "cover" in its name matches regardless of extension.
	CoverLegacy CoverPolicy = config.CoverMatchLegacy
)

// ParseCoverPolicy validates a configured policy name.
func ParseCoverPolicy(value string) (CoverPolicy, error) {
	switch CoverPolicy(fold(strings.TrimSpace(value))) {
	case CoverStrict, "":
		return CoverStrict, nil
	case CoverLegacy:
		return CoverLegacy, nil
	default:
		return "", fmt.Errorf("unsupported cover match policy %q", value)
	}
}

// Matches reports whether name is treated as cover art.
func (p CoverPolicy) Matches(name string) bool {
	folded := fold(name)
	cover := strings.Contains(folded, "cover")
	album := strings.Contains(folded, "album")
	image := isCoverImage(folded)
	if p == CoverLegacy {
		return cover || (album && image)
	}
	return (cover || album) && image
}

// isAudio reports whether name has an .mp3 extension in any case.
func isAudio(name string) bool {
	return strings.HasSuffix(fold(name), ".mp3")
}

func isCoverImage(folded string) bool {
	return strings.HasSuffix(folded, ".jpg") || strings.HasSuffix(folded, ".png")
}

// fold returns the case-folded form of s for case-insensitive comparisons.
func fold(s string) string {
	return cases.Fold().String(s)
}

// extension returns the text after the last dot with its case preserved, or
// "" when name has no dot or ends in one.
func extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// withExtension joins base and ext as base.ext, or returns base alone when ext
// is empty.
func withExtension(base, ext string) string {
	if ext == "" {
		return base
	}
	return base + "." + ext
}
