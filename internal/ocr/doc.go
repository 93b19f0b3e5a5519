// Package ocr recognizes text in editor snapshots using Tesseract.
//
// Recognition wraps the Tesseract engine via gosseract/v2, which needs cgo
// and the Tesseract libraries. It is compiled in only with the tesseract
// build tag:
//
//	go build -tags tesseract ./...
//
// Without the tag, Recognize returns ErrUnavailable and Available reports
// false, so the rest of the editor builds and runs on machines without
// Tesseract installed.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// The default language is English ("eng").
//
// # Preprocessing
//
// Images are converted to grayscale before recognition, and optionally
// enlarged by Recognizer.Scale. Binarized snapshots from the editor are
// already high contrast and usually recognize well at scale 1.
package ocr
