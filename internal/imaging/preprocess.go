package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// DefaultUpscale is the enlargement applied to crops before recognition.
const DefaultUpscale = 2

// PreprocessOptions controls Preprocess.
type PreprocessOptions struct {
	// Upscale multiplies both axes. Values below 1 are treated as 1.
	Upscale int

	// AutoInvert flips light-on-dark crops so Tesseract sees dark text on a
	// light background.
	AutoInvert bool
}

// DefaultPreprocessOptions returns the settings the panel layouts use.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{Upscale: DefaultUpscale}
}

// Preprocess converts a crop to grayscale, optionally fixes its polarity, and
// enlarges it with a Lanczos filter.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	var gray image.Image = effect.Grayscale(img)

	if opts.AutoInvert && IsLightOnDark(gray) {
		gray = imaging.Invert(gray)
	}

	scale := opts.Upscale
	if scale < 1 {
		scale = 1
	}
	if scale == 1 {
		return gray
	}

	b := gray.Bounds()
	return imaging.Resize(gray, b.Dx()*scale, b.Dy()*scale, imaging.Lanczos)
}
