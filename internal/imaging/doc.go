// Package imaging prepares raster panel images for character recognition.
//
// The operations here cover the part of the capture pipeline between "bytes
// on disk" and "a small image Tesseract can read": decoding the staged panel
// image, cutting out one value's rectangle, and turning that crop into a
// large, dark-on-light grayscale image.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, Y increases downward
//   - For regions, (X1,Y1) is inclusive (top-left), (X2,Y2) is exclusive
//     (bottom-right), the same convention as image.Rectangle
//
// # Preprocessing
//
// Preprocess applies, in order:
//  1. Grayscale conversion (single channel)
//  2. Optional polarity fix: light text on a dark background is inverted,
//     decided from the crop's mean CIE L* lightness
//  3. Upscaling by an integer factor with a Lanczos filter
//
// Small crops recognize poorly; the default factor of 2 along both axes is
// what the panel layouts were tuned against.
//
// # Temporary Files
//
// Tesseract reads from a file path, so SaveTemp writes crops as PNG files in
// the system temp directory. Callers remove them when done.
//
// # Calibration
//
// Overlay draws labelled region outlines, and optionally a coordinate grid,
// on a copy of a panel so layouts can be checked against the live image.
package imaging
