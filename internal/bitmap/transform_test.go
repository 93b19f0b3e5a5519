package bitmap

import (
	"bytes"
	"testing"
)

func TestThreshold_SinglePixel(t *testing.T) {
	pix := []byte{10, 200, 50, 255}
	Apply(pix, Threshold(DefaultThreshold))

	want := []byte{0, 255, 0, 255}
	if !bytes.Equal(pix, want) {
		t.Errorf("got %v, want %v", pix, want)
	}
}

func TestThreshold_Boundary(t *testing.T) {
	f := Threshold(128)
	tests := []struct {
		in   byte
		want byte
	}{
		{0, 0},
		{128, 0},
		{129, 255},
		{255, 255},
	}
	for _, tt := range tests {
		if got := f(tt.in, 0); got != tt.want {
			t.Errorf("Threshold(128)(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestApply_PreservesAlpha(t *testing.T) {
	pix := []byte{1, 2, 3, 7, 4, 5, 6, 9}
	Apply(pix, Invert())

	want := []byte{254, 253, 252, 7, 251, 250, 249, 9}
	if !bytes.Equal(pix, want) {
		t.Errorf("got %v, want %v", pix, want)
	}
}

func TestApplyRange_ChannelFromAbsoluteIndex(t *testing.T) {
	var seen []int
	pix := make([]byte, 8)
	ApplyRange(pix, func(b byte, ch int) byte {
		seen = append(seen, ch)
		return b
	}, 2, 7)

	// indices 2,3,4,5,6 -> channels 2,(alpha skipped),0,1,2
	want := []int{2, 0, 1, 2}
	if len(seen) != len(want) {
		t.Fatalf("channels = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("channels = %v, want %v", seen, want)
		}
	}
}

func TestApplyRange_ClampsEnd(t *testing.T) {
	pix := []byte{0, 0, 0, 0}
	ApplyRange(pix, Invert(), 0, 100)
	if pix[0] != 255 || pix[3] != 0 {
		t.Errorf("got %v", pix)
	}
}

func TestOtsuLevel_Bimodal(t *testing.T) {
	pix := make([]byte, 0, 8*4)
	for i := 0; i < 4; i++ {
		pix = append(pix, 20, 20, 20, 255)
	}
	for i := 0; i < 4; i++ {
		pix = append(pix, 220, 220, 220, 255)
	}
	s, err := FromPix(pix, 8, 1)
	if err != nil {
		t.Fatalf("FromPix: %v", err)
	}

	level := OtsuLevel(s)
	if level < 20 || level >= 220 {
		t.Errorf("OtsuLevel = %d, want a level separating 20 and 220", level)
	}

	Apply(s.Pix, Threshold(level))
	if s.Pix[0] != 0 || s.Pix[4*4] != 255 {
		t.Errorf("threshold at %d did not separate the classes: %v", level, s.Pix)
	}
}

func TestOtsuLevel_TranslucentUsesStoredValues(t *testing.T) {
	// At alpha 128 premultiplied values would be about 20 and 110.
	pix := make([]byte, 0, 8*4)
	for i := 0; i < 4; i++ {
		pix = append(pix, 40, 40, 40, 128)
	}
	for i := 0; i < 4; i++ {
		pix = append(pix, 220, 220, 220, 128)
	}
	s, err := FromPix(pix, 8, 1)
	if err != nil {
		t.Fatalf("FromPix: %v", err)
	}

	if level := OtsuLevel(s); level != 40 {
		t.Errorf("OtsuLevel = %d, want 40", level)
	}
}

func TestOtsu_Degenerate(t *testing.T) {
	var empty [256]int
	if got := otsu(empty); got != DefaultThreshold {
		t.Errorf("otsu(empty) = %d, want %d", got, DefaultThreshold)
	}

	var flat [256]int
	flat[77] = 10
	if got := otsu(flat); got != DefaultThreshold {
		t.Errorf("otsu(single value) = %d, want %d", got, DefaultThreshold)
	}
}
