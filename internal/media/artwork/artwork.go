// Package artwork inspects image headers so reports can show the format and
// dimensions of published cover art and friends images. Images are never
// decoded in full or re-encoded.
package artwork

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF header registration
	_ "image/jpeg" // JPEG header registration
	_ "image/png"  // PNG header registration
	"os"

	_ "golang.org/x/image/bmp"  // BMP header registration
	_ "golang.org/x/image/tiff" // TIFF header registration
	_ "golang.org/x/image/webp" // WebP header registration
)

// Info describes an image file.
type Info struct {
	Format string
	Width  int
	Height int
}

// String renders "png 1200x1200".
func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d", i.Format, i.Width, i.Height)
}

// Describe reads the image header at path.
func Describe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode image header %s: %w", path, err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
