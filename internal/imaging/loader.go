package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
)

// Load decodes the image at path and flattens it onto an opaque white
// background, so transparent panel areas read as paper rather than ink.
//
// Returns:
//   - *image.NRGBA: the opaque RGB image, with bounds starting at (0,0).
//   - error: non-nil if the file cannot be opened or decoded.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return Flatten(img), nil
}

// Flatten composites img over opaque white and rebases it at (0,0).
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := imaging.New(b.Dx(), b.Dy(), color.White)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// Dimensions is the width and height of an image in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the size of img.
func GetDimensions(img image.Image) Dimensions {
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}
