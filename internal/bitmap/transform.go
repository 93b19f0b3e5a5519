package bitmap

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// DefaultThreshold is the binarization level used when none is given.
const DefaultThreshold = 128

// Transform maps one colour byte to a new value. channel is 0, 1 or 2 for
// red, green and blue; alpha bytes are never passed to a Transform.
type Transform func(b byte, channel int) byte

// Threshold returns the binarization transform: bytes above level become
// 255, everything else becomes 0.
func Threshold(level uint8) Transform {
	return func(b byte, _ int) byte {
		if b > level {
			return 255
		}
		return 0
	}
}

// Invert returns the transform that replaces every colour byte b with 255-b.
func Invert() Transform {
	return func(b byte, _ int) byte {
		return 255 - b
	}
}

// ApplyRange runs f over pix[from:to], skipping alpha bytes. Indices are
// absolute offsets into pix, so the channel of each byte is its index
// modulo 4 regardless of where the range starts. to is clamped to len(pix).
func ApplyRange(pix []byte, f Transform, from, to int) {
	if to > len(pix) {
		to = len(pix)
	}
	for i := from; i < to; i++ {
		ch := i % Channels
		if ch == AlphaChannel {
			continue
		}
		pix[i] = f(pix[i], ch)
	}
}

// Apply runs f over the whole buffer in one pass.
func Apply(pix []byte, f Transform) {
	ApplyRange(pix, f, 0, len(pix))
}

// OtsuLevel picks a binarization level for the committed image of s by
// maximising between-class variance over the combined red, green and blue
// histograms.
//
// The bins count the stored non-premultiplied bytes, the same values
// Threshold compares, so translucent pixels are not darkened by their alpha.
func OtsuLevel(s *Snapshot) uint8 {
	img := s.Image()
	// Viewing the bytes as RGBA stops the histogram from premultiplying them.
	raw := &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
	hist := histogram.NewRGBAHistogram(raw)

	var bins [256]int
	for i := 0; i < 256; i++ {
		bins[i] = hist.R.Bins[i] + hist.G.Bins[i] + hist.B.Bins[i]
	}
	return otsu(bins)
}

func otsu(bins [256]int) uint8 {
	total := 0
	sum := 0.0
	for i, n := range bins {
		total += n
		sum += float64(i * n)
	}
	if total == 0 {
		return DefaultThreshold
	}

	var (
		weightB int
		sumB    float64
		best    float64
		level   = -1
	)
	for t := 0; t < 256; t++ {
		weightB += bins[t]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(t * bins[t])
		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			level = t
		}
	}
	// Single-valued images have no split.
	if level < 0 {
		return DefaultThreshold
	}
	return uint8(level)
}
