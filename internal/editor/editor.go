package editor

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/ironsheep/image-editor-mcp/internal/bitmap"
	"github.com/ironsheep/image-editor-mcp/internal/future"
	"github.com/ironsheep/image-editor-mcp/internal/theme"
)

// ExportFilename is the fixed name of the exported artifact.
const ExportFilename = "image.png"

var (
	// ErrBusy means another operation holds admission. It is a normal
	// outcome for an event that arrives while the editor is working.
	ErrBusy = errors.New("editor is busy")

	// ErrLocked means the editor lock was contended at the moment the event
	// arrived; the event is dropped rather than queued.
	ErrLocked = errors.New("editor is locked")

	// ErrNoImage means the operation needs a loaded image.
	ErrNoImage = errors.New("no image data")

	// ErrNothingToUndo is returned by Undo at the first history entry.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo at the last history entry.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrSuperseded completes an operation that was cancelled before it
	// finished.
	ErrSuperseded = errors.New("operation superseded")

	// ErrNoRecognizer is returned by Recognize when no OCR engine is
	// configured.
	ErrNoRecognizer = errors.New("text recognition not configured")
)

// Renderer draws onto the visible surface.
type Renderer interface {
	Clear()
	// Draw paints img centered and scaled to fit the surface.
	Draw(img image.Image) error
	SetBackground(c color.Color)
	// Snapshot returns a copy of what is currently shown.
	Snapshot() image.Image
}

// Codec converts between encoded images and snapshots. Decoding completes
// asynchronously.
type Codec interface {
	Decode(data []byte) *future.Signal[*bitmap.Snapshot]
	DecodeURL(url string) *future.Signal[*bitmap.Snapshot]
	// Encode returns a data URL holding a lossless copy of the snapshot's
	// committed image.
	Encode(s *bitmap.Snapshot) (string, error)
}

// Scheduler queues a task behind everything already pending.
type Scheduler interface {
	YieldOnce(fn func()) bool
}

// Recognizer extracts text from an image. It may block.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// Editor is the mutable editor state. It is only reachable through a
// Session, which serializes access to it.
type Editor struct {
	source   image.Image
	history  *History
	mode     *ModeManager
	elements Elements
	renderer Renderer
	codec    Codec
	theme    *theme.Theme
	inflight *Operation
}

// syncElements reflects the admission and history state onto the display
// elements.
func (e *Editor) syncElements() {
	if !e.mode.IsIdle() {
		e.elements.setAll(false)
		return
	}
	loaded := !e.history.IsEmpty()
	e.elements.set(RoleInput, true)
	e.elements.set(RoleBinarization, loaded)
	e.elements.set(RoleInvert, loaded)
	e.elements.set(RoleSave, loaded)
	e.elements.set(RoleRecognize, loaded)
	e.elements.set(RoleUndo, loaded && !e.history.AtStart())
	e.elements.set(RoleRedo, loaded && !e.history.AtEnd())
}

// redrawCurrent paints the current snapshot synchronously.
func (e *Editor) redrawCurrent() error {
	e.renderer.Clear()
	cur := e.history.Current()
	if cur == nil {
		return nil
	}
	return e.renderer.Draw(cur.Image())
}

// Result is what a completed operation produced.
type Result struct {
	// Text is set by Recognize.
	Text string
}

// Operation is one admitted editor operation.
type Operation struct {
	Generation Generation
	Kind       string

	done *future.Signal[Result]

	// ownsSlot is set while the operation's edit is being written into a
	// history slot it created.
	ownsSlot bool
}

func newOperation(g Generation, kind string) *Operation {
	return &Operation{Generation: g, Kind: kind, done: future.NewSignal[Result]()}
}

// Done is closed when the operation completes, fails or is superseded.
func (o *Operation) Done() <-chan struct{} { return o.done.Done() }

// Wait blocks until the operation completes or ctx is done.
func (o *Operation) Wait(ctx context.Context) (Result, error) {
	return o.done.Await(ctx)
}

// Export is a saved copy of the current snapshot.
type Export struct {
	Filename string
	DataURL  string
	Image    image.Image
}

// Status describes the editor for display.
type Status struct {
	Busy       bool            `json:"busy"`
	Generation Generation      `json:"generation,omitempty"`
	Operation  string          `json:"operation,omitempty"`
	HistoryLen int             `json:"history_length"`
	Cursor     int             `json:"cursor"`
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
	Elements   map[string]bool `json:"elements"`
	Theme      string          `json:"theme"`
	Background string          `json:"background"`

	// DisabledForeground is the text colour of disabled controls.
	DisabledForeground string `json:"disabled_foreground"`
}
