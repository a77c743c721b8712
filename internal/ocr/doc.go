// Package ocr reads short strings of text from small images using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). It is built
// for the buoy panels' needs: every call recognizes one pre-cropped value
// image, treated as a single uniform block of text (page segmentation mode
// 6), with recognition restricted to a Charset chosen for what the region
// holds.
//
// # Prerequisites
//
// Tesseract and its English language data must be installed on the system:
//   - Raspberry Pi OS / Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// A non-standard tessdata location can be supplied with Options.TessdataPrefix.
//
// # Character Sets
//
//   - NumericCharset: digits, minus sign, decimal point
//   - DateCharset: digits, punctuation, space, AM/PM, weekday and month
//     abbreviations, and the zone letters the panels print
//
// # Reuse
//
// A Tesseract value holds one engine handle and is meant to be reused for
// every region of a panel, then closed. It is not safe for concurrent use.
package ocr
