package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MeanLightness returns the average CIE L* lightness of img on a 0-1 scale
// (0 = black, 1 = white). Fully transparent pixels are skipped. An image with
// no opaque pixels reports 1.
func MeanLightness(img image.Image) float64 {
	b := img.Bounds()
	var sum float64
	var n int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			sum += l
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}

// IsLightOnDark reports whether img looks like light text on a dark
// background. Text covers a minority of a value crop, so the background
// dominates the mean.
func IsLightOnDark(img image.Image) bool {
	return MeanLightness(img) < 0.5
}
