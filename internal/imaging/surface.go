package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Surface is the editor's visible drawing area, an RGBA canvas of fixed
// size with a background colour.
type Surface struct {
	canvas     *image.RGBA
	background color.Color
}

// NewSurface creates a width x height surface cleared to white.
func NewSurface(width, height int) *Surface {
	s := &Surface{
		canvas:     image.NewRGBA(image.Rect(0, 0, width, height)),
		background: color.White,
	}
	s.Clear()
	return s
}

// SetBackground sets the colour used by Clear.
func (s *Surface) SetBackground(c color.Color) {
	s.background = c
}

// Clear fills the surface with the background colour.
func (s *Surface) Clear() {
	draw.Draw(s.canvas, s.canvas.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// Draw paints img scaled to fit the surface, preserving its aspect ratio,
// and centered on both axes.
func (s *Surface) Draw(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nothing to draw")
	}
	src := img.Bounds()
	if src.Empty() {
		return fmt.Errorf("cannot draw empty image")
	}
	dst := FitRect(src.Dx(), src.Dy(), s.canvas.Bounds().Dx(), s.canvas.Bounds().Dy())
	if dst.Empty() {
		return fmt.Errorf("surface too small to draw %dx%d image", src.Dx(), src.Dy())
	}
	draw.ApproxBiLinear.Scale(s.canvas, dst, img, src, draw.Over, nil)
	return nil
}

// Snapshot returns a copy of the surface.
func (s *Surface) Snapshot() image.Image {
	return imaging.Clone(s.canvas)
}

// Size returns the surface dimensions.
func (s *Surface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// FitRect returns the largest rectangle with the source aspect ratio that
// fits inside a dstW x dstH area, centered in it.
func FitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}
	// Compare srcW/srcH against dstW/dstH without floating point.
	var w, h int
	if srcW*dstH >= srcH*dstW {
		w = dstW
		h = srcH * dstW / srcW
	} else {
		h = dstH
		w = srcW * dstH / srcH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x := (dstW - w) / 2
	y := (dstH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
