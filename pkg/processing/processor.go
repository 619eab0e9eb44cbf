package processing

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Processor handles the geometric stages of the pipeline: loading, resizing
// and cropping.
type Processor struct{}

// NewProcessor creates a new image processor
func NewProcessor() *Processor {
	return &Processor{}
}

// LoadImage loads an image from a file path with WebP support. Paths starting
// with a home directory shorthand are rejected before any decode attempt.
func (p *Processor) LoadImage(path string) (image.Image, error) {
	if strings.HasPrefix(path, "~") {
		return nil, fmt.Errorf("home-relative path %q is not supported, expand it first", path)
	}

	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if img, _, err := image.Decode(f); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// ResizeShorterEdge scales the image so that its shorter edge becomes exactly
// scale, preserving the aspect ratio. The longer edge is truncated after
// floating point scaling. A scale of zero or below returns the input
// unchanged.
func (p *Processor) ResizeShorterEdge(img image.Image, scale int) image.Image {
	if scale <= 0 {
		return img
	}

	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()

	var scaledWidth, scaledHeight int
	if rows > cols {
		scaledWidth = scale
		scaledHeight = int(float64(rows) * float64(scale) / float64(cols))
	} else {
		scaledHeight = scale
		scaledWidth = int(float64(cols) * float64(scale) / float64(rows))
	}

	return imaging.Resize(img, scaledWidth, scaledHeight, imaging.Linear)
}

// CenterCrop extracts a centered height x width region and returns it together
// with the effective cropped size. A request of zero or below in either
// dimension, or one matching the current size, passes the input through
// unchanged. A request larger than the source is clamped to the source size,
// so the effective size may be smaller than requested. The returned image is
// backed by a fresh contiguous buffer.
func (p *Processor) CenterCrop(img image.Image, height, width int) (image.Image, int, int, error) {
	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()

	if height <= 0 || width <= 0 || (rows == height && cols == width) {
		return img, rows, cols, nil
	}

	offX := (cols - width) / 2
	offY := (rows - height) / 2
	if offX < 0 {
		offX = 0
	}
	if offY < 0 {
		offY = 0
	}
	if width > cols {
		width = cols
	}
	if height > rows {
		height = rows
	}
	if offX+width > cols || offY+height > rows {
		return nil, 0, 0, fmt.Errorf("crop %dx%d at (%d,%d) exceeds image %dx%d",
			height, width, offX, offY, rows, cols)
	}

	rect := image.Rect(offX, offY, offX+width, offY+height).Add(bounds.Min)
	return imaging.Crop(img, rect), height, width, nil
}
