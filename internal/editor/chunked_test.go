package editor

import (
	"bytes"
	"testing"

	"github.com/ironsheep/image-editor-mcp/internal/bitmap"
)

func testPixels(n int) []byte {
	buf := make([]byte, n*bitmap.Channels)
	for i := range buf {
		buf[i] = byte(i * 37)
	}
	return buf
}

func runPass(p *Pass) int {
	steps := 0
	for {
		steps++
		if p.Step() {
			return steps
		}
	}
}

func TestPass_SliceSizeIndependence(t *testing.T) {
	want := testPixels(50)
	bitmap.Apply(want, bitmap.Threshold(bitmap.DefaultThreshold))

	for _, size := range []int{1, 3, 4, 7, 64, 200, 1000} {
		buf := testPixels(50)
		runPass(NewPass(buf, bitmap.Threshold(bitmap.DefaultThreshold), size))
		if !bytes.Equal(buf, want) {
			t.Errorf("slice size %d: result differs from single pass", size)
		}
	}
}

func TestPass_StepCount(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{size: 1, want: 8},
		{size: 3, want: 3},
		{size: 8, want: 1},
		{size: 100, want: 1},
	}
	for _, tt := range tests {
		p := NewPass(make([]byte, 8), bitmap.Invert(), tt.size)
		if got := runPass(p); got != tt.want {
			t.Errorf("slice size %d: %d steps, want %d", tt.size, got, tt.want)
		}
		if !p.Done() || p.Cursor() != p.Len() {
			t.Errorf("slice size %d: pass not complete", tt.size)
		}
	}
}

func TestPass_ScenarioSinglePixel(t *testing.T) {
	buf := []byte{10, 200, 50, 255}
	runPass(NewPass(buf, bitmap.Threshold(128), 1))
	if !bytes.Equal(buf, []byte{0, 255, 0, 255}) {
		t.Errorf("got %v, want [0 255 0 255]", buf)
	}
}

func TestPass_Resume(t *testing.T) {
	want := testPixels(10)
	bitmap.Apply(want, bitmap.Invert())

	buf := testPixels(10)
	first := NewPass(buf, bitmap.Invert(), 6)
	first.Step()

	// Continue from where the first pass stopped, with a different slice size
	runPass(Resume(buf, bitmap.Invert(), 5, first.Cursor()))
	if !bytes.Equal(buf, want) {
		t.Error("resumed pass differs from uninterrupted pass")
	}
}

func TestPass_DefaultSliceSize(t *testing.T) {
	p := NewPass(make([]byte, 4), bitmap.Invert(), 0)
	if p.sliceSize != DefaultSliceSize {
		t.Errorf("sliceSize = %d, want %d", p.sliceSize, DefaultSliceSize)
	}
	if r := Resume(make([]byte, 4), bitmap.Invert(), 1, 100); r.Cursor() != 4 {
		t.Errorf("Resume past end: cursor %d, want 4", r.Cursor())
	}
}
