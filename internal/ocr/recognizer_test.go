//go:build !tesseract

package ocr

import (
	"errors"
	"image"
	"testing"
)

func TestNew_DefaultLanguage(t *testing.T) {
	r := New("")
	if r.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", r.Language, DefaultLanguage)
	}
	if r := New("deu"); r.Language != "deu" {
		t.Errorf("Language = %q, want deu", r.Language)
	}
}

func TestRecognize_Unavailable(t *testing.T) {
	if Available() {
		t.Fatal("Available() = true without tesseract tag")
	}
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	_, err := New("eng").Recognize(img)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRecognize_EmptyImage(t *testing.T) {
	_, err := New("eng").Recognize(image.NewGray(image.Rect(0, 0, 0, 0)))
	if err == nil {
		t.Error("expected error for empty image")
	}
	_, err = New("eng").Recognize(nil)
	if err == nil {
		t.Error("expected error for nil image")
	}
}

func TestPrepare_Scale(t *testing.T) {
	r := New("eng")
	r.Scale = 2
	out := r.prepare(image.NewRGBA(image.Rect(0, 0, 20, 10)))
	b := out.Bounds()
	if b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("prepared size = %dx%d, want 40x20", b.Dx(), b.Dy())
	}

	r.Scale = 1
	out = r.prepare(image.NewRGBA(image.Rect(0, 0, 20, 10)))
	if out.Bounds().Dx() != 20 {
		t.Errorf("scale 1 changed width to %d", out.Bounds().Dx())
	}
}
