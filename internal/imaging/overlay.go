package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Label is a named rectangle to mark on an overlay.
type Label struct {
	Name   string
	Region Region
}

// OverlayOptions controls Overlay.
type OverlayOptions struct {
	// Outline is the rectangle colour. Defaults to opaque red.
	Outline color.Color

	// GridSpacing draws a coordinate grid every n pixels when > 0.
	GridSpacing int
}

var (
	defaultOutline = color.RGBA{255, 0, 0, 255}
	gridColor      = color.NRGBA{0, 160, 255, 96}
	labelFG        = color.RGBA{255, 255, 255, 255}
	labelBG        = color.RGBA{0, 0, 0, 180}
)

// Overlay returns a copy of img with every label's rectangle outlined and
// its name printed just above the top-left corner. It is used to check region
// calibration against a live panel.
func Overlay(img image.Image, labels []Label, opts OverlayOptions) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	if opts.GridSpacing > 0 {
		drawGrid(result, opts.GridSpacing)
	}

	outline := opts.Outline
	if outline == nil {
		outline = defaultOutline
	}

	for _, l := range labels {
		drawRect(result, l.Region, outline)
		drawLabel(result, l.Region.X1, l.Region.Y1-basicfont.Face7x13.Descent-1, l.Name)
	}
	return result
}

func drawGrid(img *image.RGBA, spacing int) {
	b := img.Bounds()
	for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			img.Set(x, y, gridColor)
		}
	}
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, gridColor)
		}
	}
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		for x := b.Min.X + spacing; x < b.Max.X; x += spacing * 2 {
			drawLabel(img, x+2, y+13, fmt.Sprintf("%d,%d", x, y))
		}
	}
}

// drawRect outlines r with a one pixel border inside the region.
func drawRect(img *image.RGBA, r Region, c color.Color) {
	rect := r.Rectangle().Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, c)
		img.Set(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, c)
		img.Set(rect.Max.X-1, y, c)
	}
}

// drawLabel prints text with its baseline at (x, y) on a dark backing box.
func drawLabel(img *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelFG),
		Face: face,
		Dot:  fixed.P(x, y),
	}

	width := d.MeasureString(text).Ceil()
	box := image.Rect(x-1, y-face.Ascent-1, x+width+1, y+face.Descent).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(labelBG), image.Point{}, draw.Over)

	d.DrawString(text)
}

// ParseHexColor parses a hex colour string like "#FF0000" or "#FF000080".
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
