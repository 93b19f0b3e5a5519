//go:build !tesseract

package ocr

import "image"

// Available reports whether this build can recognize text.
func Available() bool { return false }

func recognize(image.Image, string) (string, error) {
	return "", ErrUnavailable
}
