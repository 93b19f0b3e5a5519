package ocr

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errors.New("text recognition unavailable: built without the tesseract tag")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Recognizer runs Tesseract over editor snapshots.
type Recognizer struct {
	// Language is a Tesseract language code such as "eng" or "deu".
	Language string

	// Scale enlarges the image before recognition; small glyphs are read
	// more reliably at 2x or more. Values <= 1 leave the image unchanged.
	Scale float64
}

// New creates a recognizer for language. An empty language selects
// DefaultLanguage.
func New(language string) *Recognizer {
	if language == "" {
		language = DefaultLanguage
	}
	return &Recognizer{Language: language, Scale: 1}
}

// Recognize returns the text found in img.
func (r *Recognizer) Recognize(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("no image to recognize")
	}
	text, err := recognize(r.prepare(img), r.Language)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// prepare converts img to grayscale and applies Scale.
func (r *Recognizer) prepare(img image.Image) image.Image {
	out := imaging.Grayscale(img)
	if r.Scale > 1 {
		b := out.Bounds()
		out = imaging.Resize(out, int(float64(b.Dx())*r.Scale), 0, imaging.Lanczos)
	}
	return out
}
