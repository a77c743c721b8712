package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Charset is a Tesseract character whitelist.
type Charset string

const (
	// NumericCharset restricts recognition to signed decimal numbers.
	NumericCharset Charset = "-0123456789."

	// DateCharset covers strings like "10:50:00 AM EST, Mon Feb 16".
	DateCharset Charset = "-0123456789,: APMSunMonTueWedThuFriSatJanFebMarAprMayJunJulAugSepOctNovDecESTGMT"
)

// Recognizer turns the image at a path into text.
type Recognizer interface {
	Recognize(imagePath string, charset Charset) (string, error)
}

// Options configures a Tesseract recognizer.
type Options struct {
	// Language is the Tesseract language code. Default "eng".
	Language string

	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string

	// PageSegMode defaults to gosseract.PSM_SINGLE_BLOCK (6).
	PageSegMode gosseract.PageSegMode
}

// Tesseract is a Recognizer backed by a single gosseract client.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates and configures an engine handle.
func NewTesseract(opts Options) (*Tesseract, error) {
	if opts.Language == "" {
		opts.Language = "eng"
	}
	if opts.PageSegMode == 0 {
		opts.PageSegMode = gosseract.PSM_SINGLE_BLOCK
	}

	client := gosseract.NewClient()

	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(opts.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(opts.PageSegMode); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &Tesseract{client: client}, nil
}

// Recognize runs OCR on the image at imagePath restricted to charset and
// returns the text with surrounding whitespace removed.
func (t *Tesseract) Recognize(imagePath string, charset Charset) (string, error) {
	if err := t.client.SetWhitelist(string(charset)); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := t.client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Version returns the linked Tesseract version.
func (t *Tesseract) Version() string {
	return t.client.Version()
}

// Close releases the engine handle.
func (t *Tesseract) Close() error {
	return t.client.Close()
}
