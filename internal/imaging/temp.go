package imaging

import (
	"fmt"
	"image"
	"os"

	"github.com/anthonynsimon/bild/imgio"
)

// SaveTemp writes img as a PNG in the system temp directory and returns the
// path. The file name starts with prefix.
//
// IMPORTANT: The caller is responsible for deleting the file with os.Remove.
func SaveTemp(img image.Image, prefix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	f.Close()

	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	return path, nil
}
