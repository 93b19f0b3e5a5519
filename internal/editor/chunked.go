package editor

import (
	"github.com/ironsheep/image-editor-mcp/internal/bitmap"
)

// DefaultSliceSize is the number of buffer bytes processed per slice.
const DefaultSliceSize = 1_000_000

// Pass is the resumable state of one chunked transform over a buffer.
//
// A Pass is deterministic: the final buffer depends only on the buffer and
// the transform, never on the slice size or on how many slices it took.
type Pass struct {
	buf       []byte
	transform bitmap.Transform
	sliceSize int
	cursor    int
}

// NewPass prepares a pass over buf. A non-positive sliceSize selects
// DefaultSliceSize.
func NewPass(buf []byte, f bitmap.Transform, sliceSize int) *Pass {
	if sliceSize <= 0 {
		sliceSize = DefaultSliceSize
	}
	return &Pass{buf: buf, transform: f, sliceSize: sliceSize}
}

// Resume prepares a pass that continues from cursor.
func Resume(buf []byte, f bitmap.Transform, sliceSize, cursor int) *Pass {
	p := NewPass(buf, f, sliceSize)
	if cursor > len(buf) {
		cursor = len(buf)
	}
	if cursor > 0 {
		p.cursor = cursor
	}
	return p
}

// Step processes one slice and reports whether the pass is complete.
func (p *Pass) Step() bool {
	end := p.cursor + p.sliceSize
	if end > len(p.buf) {
		end = len(p.buf)
	}
	bitmap.ApplyRange(p.buf, p.transform, p.cursor, end)
	p.cursor = end
	return p.Done()
}

// Done reports whether every byte has been processed.
func (p *Pass) Done() bool { return p.cursor >= len(p.buf) }

// Cursor returns the offset of the next unprocessed byte.
func (p *Pass) Cursor() int { return p.cursor }

// Len returns the buffer length.
func (p *Pass) Len() int { return len(p.buf) }

// runChunked drives p to completion as a chain of scheduler tasks, one slice
// per task. Each task re-checks that generation g still owns the editor
// before touching the buffer; a stale task returns without side effects.
// onDone runs with the editor lock held, on the task that processed the last
// slice.
func (s *Session) runChunked(p *Pass, g Generation, onDone func(ed *Editor)) {
	ed, ok := s.tryAcquire()
	if !ok {
		s.logger.Printf("editor locked at slice boundary (generation %d, byte %d of %d), abandoning pass",
			g, p.Cursor(), p.Len())
		return
	}
	defer s.release()

	if !ed.mode.MatchRunID(g) {
		s.debugf("generation %d superseded at byte %d of %d", g, p.Cursor(), p.Len())
		return
	}
	if p.Step() {
		onDone(ed)
		return
	}
	s.post(func() { s.runChunked(p, g, onDone) })
}
