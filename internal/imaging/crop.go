package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangular area of an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1" validate:"gte=0"`
	Y1 int `json:"y1" validate:"gte=0"`
	X2 int `json:"x2" validate:"gtfield=X1"`
	Y2 int `json:"y2" validate:"gtfield=Y1"`
}

// Rect builds a Region from left, top, right, bottom.
func Rect(left, top, right, bottom int) Region {
	return Region{X1: left, Y1: top, X2: right, Y2: bottom}
}

// Rectangle converts r to an image.Rectangle.
func (r Region) Rectangle() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Width returns X2-X1.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height returns Y2-Y1.
func (r Region) Height() int { return r.Y2 - r.Y1 }

// String formats r as "(x1,y1)-(x2,y2)".
func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// Crop extracts r from img. The result is rebased at (0,0).
func Crop(img image.Image, r Region) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region %s outside image bounds (%d,%d)-(%d,%d)",
			r, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, r.Rectangle()), nil
}
