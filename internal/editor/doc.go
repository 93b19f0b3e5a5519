// Package editor is the state and concurrency core of the bitmap editor.
//
// An Editor holds the loaded source image, a bounded undo/redo History of
// bitmap snapshots, a ModeManager that admits one operation at a time, and
// the registry of display elements whose enabled state mirrors all of that.
// The Editor is only reachable through a Session, which owns the lock.
//
// # Operations
//
// Every user-triggered operation (Load, Binarize, Invert, Undo, Redo, Save,
// Recognize) first asks the ModeManager for admission. A refused operation
// returns ErrBusy without side effects. An admitted one receives a
// Generation and disables every display element until it finishes.
//
// Long work never blocks the scheduler. Pixel transforms run as a chain of
// slices, one scheduler task per slice (see Pass), and decoding or text
// recognition complete through future.Signal continuations. Each
// continuation re-checks its Generation with MatchRunID before touching
// state, so an operation superseded by Cancel simply stops.
//
// # History
//
// Edits never write into a snapshot that is already in history. Binarize
// and Invert first clone the current snapshot into a new slot and transform
// the clone in place; the slot's committed image is only updated when the
// whole pass is done.
package editor
