// Package tags reads ID3 metadata from MP3 files so copy reports can name the
// track that was published, not just the file.
package tags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bogem/id3v2"
)

// ErrNoTags reports an MP3 without any ID3v2 title or artist frames.
var ErrNoTags = errors.New("no id3 tags")

// Track holds the frames the reports display.
type Track struct {
	Title  string
	Artist string
	Album  string
}

// Label renders "Artist - Title", falling back to whichever part is present.
func (t Track) Label() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Artist
	}
}

// Read parses the title, artist, and album frames of the MP3 at path. The file
// is opened read-only and never modified.
func Read(path string) (Track, error) {
	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Title", "Artist", "Album"},
	})
	if err != nil {
		return Track{}, fmt.Errorf("read id3 tags %s: %w", path, err)
	}
	defer tag.Close()

	track := Track{
		Title:  strings.TrimSpace(tag.Title()),
		Artist: strings.TrimSpace(tag.Artist()),
		Album:  strings.TrimSpace(tag.Album()),
	}
	if track.Title == "" && track.Artist == "" {
		return track, ErrNoTags
	}
	return track, nil
}
