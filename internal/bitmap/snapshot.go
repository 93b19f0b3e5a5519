// Package bitmap holds the editable pixel data of the editor.
//
// A Snapshot is one point in edit history: a non-premultiplied RGBA byte
// buffer (4 bytes per pixel, row-major, no padding) plus its dimensions.
// Edits write into Pix directly; the committed image returned by Image only
// changes when Commit is called, so a half-finished edit is never drawn.
package bitmap

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Channels is the number of bytes per pixel.
const Channels = 4

// AlphaChannel is the channel index that pixel transforms never modify.
const AlphaChannel = 3

// Snapshot is an RGBA pixel buffer with dimensions.
type Snapshot struct {
	// Pix holds Width*Height*4 bytes in R, G, B, A order.
	Pix []byte

	Width  int
	Height int

	live *image.NRGBA
}

// New returns a zeroed (transparent black) snapshot.
func New(width, height int) (*Snapshot, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}
	s := &Snapshot{
		Pix:    make([]byte, width*height*Channels),
		Width:  width,
		Height: height,
	}
	s.Commit()
	return s, nil
}

// FromPix wraps an existing buffer. The buffer is owned by the snapshot
// afterwards.
func FromPix(pix []byte, width, height int) (*Snapshot, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}
	if len(pix) != width*height*Channels {
		return nil, fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d",
			len(pix), width*height*Channels, width, height)
	}
	s := &Snapshot{Pix: pix, Width: width, Height: height}
	s.Commit()
	return s, nil
}

// FromImage copies any image into a new snapshot, converting it to
// non-premultiplied RGBA.
func FromImage(img image.Image) (*Snapshot, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return FromPix(nrgba.Pix, b.Dx(), b.Dy())
}

// Clone returns a deep copy, including the committed image.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Pix:    make([]byte, len(s.Pix)),
		Width:  s.Width,
		Height: s.Height,
	}
	copy(c.Pix, s.Pix)
	if s.live != nil {
		c.live = imaging.Clone(s.live)
	}
	return c
}

// Commit publishes the current contents of Pix as the image returned by
// Image.
func (s *Snapshot) Commit() {
	if s.live == nil || s.live.Bounds().Dx() != s.Width || s.live.Bounds().Dy() != s.Height {
		s.live = image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	}
	copy(s.live.Pix, s.Pix)
}

// Image returns the last committed image. Callers must not modify it.
func (s *Snapshot) Image() *image.NRGBA {
	if s.live == nil {
		s.Commit()
	}
	return s.live
}

// Validate checks the buffer length invariant.
func (s *Snapshot) Validate() error {
	if len(s.Pix) != s.Width*s.Height*Channels {
		return fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d",
			len(s.Pix), s.Width*s.Height*Channels, s.Width, s.Height)
	}
	return nil
}

// Equal reports whether two snapshots have the same dimensions and pixels.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Width == o.Width && s.Height == o.Height && bytes.Equal(s.Pix, o.Pix)
}
