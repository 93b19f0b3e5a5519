package editor

import (
	"github.com/ironsheep/image-editor-mcp/internal/bitmap"
)

// MaxHistory bounds the number of snapshots kept for undo and redo.
const MaxHistory = 10

// History is a bounded list of snapshots with a cursor.
//
// Pushing after an undo discards everything past the cursor. Once the list
// holds MaxHistory entries the oldest one is evicted, so it can no longer be
// reached by undo. Until the history changes again, DropCurrent can take the
// latest push back and restore what it displaced.
type History struct {
	snapshots []*bitmap.Snapshot
	cursor    int
	last      *displaced
}

// displaced is what one Push removed.
type displaced struct {
	pushed  *bitmap.Snapshot
	evicted *bitmap.Snapshot
	branch  []*bitmap.Snapshot
	cursor  int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{snapshots: make([]*bitmap.Snapshot, 0, MaxHistory)}
}

// Push appends s after the cursor and moves the cursor to it.
func (h *History) Push(s *bitmap.Snapshot) {
	d := &displaced{pushed: s, cursor: h.cursor}
	if len(h.snapshots) > 0 {
		if tail := h.snapshots[h.cursor+1:]; len(tail) > 0 {
			d.branch = append([]*bitmap.Snapshot(nil), tail...)
		}
		for i := h.cursor + 1; i < len(h.snapshots); i++ {
			h.snapshots[i] = nil
		}
		h.snapshots = h.snapshots[:h.cursor+1]
	}
	if len(h.snapshots) == MaxHistory {
		d.evicted = h.snapshots[0]
		h.snapshots[0] = nil
		h.snapshots = append(h.snapshots[:0], h.snapshots[1:]...)
	}
	h.snapshots = append(h.snapshots, s)
	h.cursor = len(h.snapshots) - 1
	h.last = d
}

// ClonePush pushes a deep copy of the current snapshot and returns the copy,
// which becomes current. The original stays in history untouched. On an
// empty history it does nothing and returns nil.
func (h *History) ClonePush() *bitmap.Snapshot {
	cur := h.Current()
	if cur == nil {
		return nil
	}
	c := cur.Clone()
	h.Push(c)
	return c
}

// Undo moves the cursor back one entry and returns the snapshot there, or
// nil if the cursor is already at the first entry.
func (h *History) Undo() *bitmap.Snapshot {
	if h.cursor == 0 || len(h.snapshots) == 0 {
		return nil
	}
	h.cursor--
	h.last = nil
	return h.snapshots[h.cursor]
}

// Redo moves the cursor forward one entry and returns the snapshot there, or
// nil if the cursor is already at the last entry.
func (h *History) Redo() *bitmap.Snapshot {
	if len(h.snapshots) == 0 || h.cursor >= len(h.snapshots)-1 {
		return nil
	}
	h.cursor++
	h.last = nil
	return h.snapshots[h.cursor]
}

// DropCurrent removes the entry at the cursor when it is the last entry and
// reports whether anything was removed. If the entry came from the latest
// Push, the snapshot that push evicted and the branch it truncated are put
// back and the cursor returns to where it was before the push. Otherwise
// the cursor moves to the new last entry.
func (h *History) DropCurrent() bool {
	n := len(h.snapshots)
	if n == 0 || h.cursor != n-1 {
		return false
	}
	dropped := h.snapshots[n-1]
	h.snapshots[n-1] = nil
	h.snapshots = h.snapshots[:n-1]

	d := h.last
	h.last = nil
	if d == nil || d.pushed != dropped {
		if h.cursor > 0 {
			h.cursor--
		}
		return true
	}
	if d.evicted != nil {
		restored := make([]*bitmap.Snapshot, 0, MaxHistory)
		restored = append(restored, d.evicted)
		h.snapshots = append(restored, h.snapshots...)
	}
	h.snapshots = append(h.snapshots, d.branch...)
	h.cursor = d.cursor
	return true
}

// Current returns the snapshot at the cursor, or nil when empty.
func (h *History) Current() *bitmap.Snapshot {
	if len(h.snapshots) == 0 {
		return nil
	}
	return h.snapshots[h.cursor]
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int { return h.cursor }

// IsEmpty reports whether no snapshot is stored.
func (h *History) IsEmpty() bool { return len(h.snapshots) == 0 }

// AtStart reports whether undo has nothing to move to.
func (h *History) AtStart() bool { return h.cursor == 0 }

// AtEnd reports whether redo has nothing to move to.
func (h *History) AtEnd() bool {
	return len(h.snapshots) == 0 || h.cursor == len(h.snapshots)-1
}

// Clear drops every snapshot.
func (h *History) Clear() {
	for i := range h.snapshots {
		h.snapshots[i] = nil
	}
	h.snapshots = h.snapshots[:0]
	h.cursor = 0
	h.last = nil
}
