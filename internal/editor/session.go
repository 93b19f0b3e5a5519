package editor

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/ironsheep/image-editor-mcp/internal/bitmap"
	"github.com/ironsheep/image-editor-mcp/internal/future"
	"github.com/ironsheep/image-editor-mcp/internal/theme"
)

// Options configures a Session.
type Options struct {
	Renderer  Renderer
	Codec     Codec
	Scheduler Scheduler

	// Recognizer is optional; without it Recognize returns ErrNoRecognizer.
	Recognizer Recognizer

	// Theme defaults to a light theme with the built-in palettes.
	Theme *theme.Theme

	// Elements defaults to DefaultElements().
	Elements Elements

	// SliceSize is the chunked transform slice, in bytes.
	SliceSize int

	Logger *log.Logger
	Debug  bool
}

// Session is the single shared handle to an Editor. Every event handler
// holds the same *Session; the mutex inside it is the only path to the
// editor state.
//
// Event handlers take the lock with TryLock and drop the event when it is
// contended. Continuations that already proved ownership through their
// generation take it with a blocking Lock.
type Session struct {
	mu sync.Mutex
	ed *Editor

	sched      Scheduler
	recognizer Recognizer
	sliceSize  int
	logger     *log.Logger
	debug      bool
}

// NewSession creates an editor with an empty history.
func NewSession(opts Options) (*Session, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("codec is required")
	}
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Theme == nil {
		opts.Theme = theme.New(theme.PreferSystem, theme.DefaultLight, theme.DefaultDark)
	}
	if opts.Elements == nil {
		opts.Elements = DefaultElements()
	}
	if opts.SliceSize <= 0 {
		opts.SliceSize = DefaultSliceSize
	}

	ed := &Editor{
		history:  NewHistory(),
		mode:     NewModeManager(),
		elements: opts.Elements,
		renderer: opts.Renderer,
		codec:    opts.Codec,
		theme:    opts.Theme,
	}
	ed.renderer.SetBackground(ed.theme.Background())
	ed.renderer.Clear()
	ed.syncElements()

	return &Session{
		ed:         ed,
		sched:      opts.Scheduler,
		recognizer: opts.Recognizer,
		sliceSize:  opts.SliceSize,
		logger:     opts.Logger,
		debug:      opts.Debug,
	}, nil
}

func (s *Session) tryAcquire() (*Editor, bool) {
	if !s.mu.TryLock() {
		s.logger.Printf("Editor is locked")
		return nil, false
	}
	return s.ed, true
}

func (s *Session) acquire() *Editor {
	s.mu.Lock()
	return s.ed
}

func (s *Session) release() {
	s.mu.Unlock()
}

func (s *Session) debugf(format string, args ...interface{}) {
	if s.debug {
		s.logger.Printf(format, args...)
	}
}

// post queues fn on the scheduler. The scheduler logs refusals.
func (s *Session) post(fn func()) bool {
	return s.sched.YieldOnce(fn)
}

// admit takes the lock and admission for a new operation. On success the
// lock is still held and every display element is disabled.
func (s *Session) admit(kind string) (*Editor, *Operation, error) {
	ed, ok := s.tryAcquire()
	if !ok {
		return nil, nil, ErrLocked
	}
	g, ok := ed.mode.TryRun()
	if !ok {
		s.release()
		s.debugf("%s refused: editor is busy", kind)
		return nil, nil, ErrBusy
	}
	op := newOperation(g, kind)
	ed.inflight = op
	ed.syncElements()
	s.debugf("%s admitted as generation %d", kind, g)
	return ed, op, nil
}

// finish completes op. The lock must be held. If op was already superseded
// the editor state is left alone.
func (s *Session) finish(ed *Editor, op *Operation, res Result, err error) {
	if ed.mode.MatchRunID(op.Generation) {
		ed.mode.ToIdle()
	}
	if ed.inflight == op {
		ed.inflight = nil
	}
	ed.syncElements()
	if err != nil {
		op.done.Fail(err)
		return
	}
	op.done.Succeed(res)
}

// Load decodes an image and makes it the new current snapshot. Decoding
// happens off the event loop; the returned operation completes after the
// image is drawn and pushed onto the history. A decode failure leaves the
// history unchanged.
func (s *Session) Load(data []byte) (*Operation, error) {
	ed, op, err := s.admit("load")
	if err != nil {
		return nil, err
	}
	codec := ed.codec
	s.release()

	codec.Decode(data).Then(s.post, func(snap *bitmap.Snapshot, err error) {
		ed := s.acquire()
		defer s.release()

		if !ed.mode.MatchRunID(op.Generation) {
			s.debugf("load %d superseded before decode finished", op.Generation)
			return
		}
		if err != nil {
			s.logger.Printf("failed to load image: %v", err)
			s.finish(ed, op, Result{}, err)
			return
		}

		ed.source = snap.Clone().Image()
		ed.renderer.Clear()
		if err := ed.renderer.Draw(ed.source); err != nil {
			s.logger.Printf("could not draw image: %v", err)
		}
		ed.history.Push(snap)
		s.finish(ed, op, Result{}, nil)
	})
	return op, nil
}

// Threshold selects the binarization level.
type Threshold struct {
	Level uint8
	// Auto picks the level from the current snapshot's histogram and
	// ignores Level.
	Auto bool
}

// Binarize thresholds the current snapshot into a new history entry. The
// work runs in slices on the scheduler; the returned operation completes
// once the result is committed and drawn.
func (s *Session) Binarize(t Threshold) (*Operation, error) {
	return s.edit("binarize", func(cur *bitmap.Snapshot) bitmap.Transform {
		level := t.Level
		if t.Auto {
			level = bitmap.OtsuLevel(cur)
			s.debugf("auto threshold level %d", level)
		}
		return bitmap.Threshold(level)
	})
}

// Invert inverts the colour channels of the current snapshot into a new
// history entry.
func (s *Session) Invert() (*Operation, error) {
	return s.edit("invert", func(*bitmap.Snapshot) bitmap.Transform {
		return bitmap.Invert()
	})
}

func (s *Session) edit(kind string, pick func(cur *bitmap.Snapshot) bitmap.Transform) (*Operation, error) {
	ed, op, err := s.admit(kind)
	if err != nil {
		return nil, err
	}
	defer s.release()

	cur := ed.history.Current()
	if cur == nil {
		s.logger.Printf("No image data")
		s.finish(ed, op, Result{}, ErrNoImage)
		return nil, ErrNoImage
	}
	f := pick(cur)
	target := ed.history.ClonePush()
	op.ownsSlot = true

	pass := NewPass(target.Pix, f, s.sliceSize)
	s.post(func() {
		s.runChunked(pass, op.Generation, func(ed *Editor) {
			target.Commit()
			op.ownsSlot = false
			s.redraw(ed, op, target)
		})
	})
	return op, nil
}

// Undo steps back one history entry and redraws it.
func (s *Session) Undo() (*Operation, error) {
	return s.move("undo", (*History).Undo, ErrNothingToUndo)
}

// Redo steps forward one history entry and redraws it.
func (s *Session) Redo() (*Operation, error) {
	return s.move("redo", (*History).Redo, ErrNothingToRedo)
}

func (s *Session) move(kind string, step func(*History) *bitmap.Snapshot, boundary error) (*Operation, error) {
	ed, op, err := s.admit(kind)
	if err != nil {
		return nil, err
	}
	defer s.release()

	snap := step(ed.history)
	if snap == nil {
		s.finish(ed, op, Result{}, boundary)
		return nil, boundary
	}
	s.redraw(ed, op, snap)
	return op, nil
}

// redraw shows snap by round-tripping it through an encoded URL, then
// completes op. The lock must be held; the draw itself happens in a later
// task.
func (s *Session) redraw(ed *Editor, op *Operation, snap *bitmap.Snapshot) {
	url, err := ed.codec.Encode(snap)
	if err != nil {
		s.logger.Printf("could not encode image: %v", err)
		s.finish(ed, op, Result{}, err)
		return
	}

	ed.codec.DecodeURL(url).Then(s.post, func(shown *bitmap.Snapshot, err error) {
		ed := s.acquire()
		defer s.release()

		if !ed.mode.MatchRunID(op.Generation) {
			s.debugf("%s %d superseded before redraw", op.Kind, op.Generation)
			return
		}
		if err != nil {
			s.logger.Printf("could not draw image: %v", err)
			s.finish(ed, op, Result{}, err)
			return
		}
		ed.renderer.Clear()
		if err := ed.renderer.Draw(shown.Image()); err != nil {
			s.logger.Printf("could not draw image: %v", err)
			s.finish(ed, op, Result{}, err)
			return
		}
		s.finish(ed, op, Result{}, nil)
	})
}

// Save exports the current snapshot as a PNG data URL named ExportFilename.
func (s *Session) Save() (*Export, error) {
	ed, op, err := s.admit("save")
	if err != nil {
		return nil, err
	}
	defer s.release()

	cur := ed.history.Current()
	if cur == nil {
		s.logger.Printf("No image to save")
		s.finish(ed, op, Result{}, ErrNoImage)
		return nil, ErrNoImage
	}
	url, err := ed.codec.Encode(cur)
	if err != nil {
		s.finish(ed, op, Result{}, err)
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	exp := &Export{
		Filename: ExportFilename,
		DataURL:  url,
		Image:    cur.Clone().Image(),
	}
	s.finish(ed, op, Result{}, nil)
	return exp, nil
}

// Cancel supersedes the running operation, if any. Its pending
// continuations see the generation change and stop; a history slot it was
// still writing is discarded. It reports the cancelled generation.
func (s *Session) Cancel() (Generation, bool, error) {
	ed, ok := s.tryAcquire()
	if !ok {
		return 0, false, ErrLocked
	}
	defer s.release()

	g, running := ed.mode.Current()
	if !running {
		return 0, false, nil
	}
	ed.mode.ToIdle()

	op := ed.inflight
	ed.inflight = nil
	if op != nil && op.ownsSlot {
		ed.history.DropCurrent()
	}
	if err := ed.redrawCurrent(); err != nil {
		s.logger.Printf("could not draw image: %v", err)
	}
	ed.syncElements()
	if op != nil {
		op.done.Fail(ErrSuperseded)
	}
	s.logger.Printf("cancelled generation %d", g)
	return g, true, nil
}

// Recognize runs text recognition on the current snapshot off the event
// loop.
func (s *Session) Recognize() (*Operation, error) {
	if s.recognizer == nil {
		return nil, ErrNoRecognizer
	}
	ed, op, err := s.admit("recognize")
	if err != nil {
		return nil, err
	}
	defer s.release()

	cur := ed.history.Current()
	if cur == nil {
		s.logger.Printf("No image data")
		s.finish(ed, op, Result{}, ErrNoImage)
		return nil, ErrNoImage
	}
	img := cur.Clone().Image()

	rec := s.recognizer
	future.Bridge(func(onSuccess func(string), onFailure func(error)) {
		go func() {
			text, err := rec.Recognize(img)
			if err != nil {
				onFailure(err)
				return
			}
			onSuccess(text)
		}()
	}).Then(s.post, func(text string, err error) {
		ed := s.acquire()
		defer s.release()

		if !ed.mode.MatchRunID(op.Generation) {
			return
		}
		if err != nil {
			s.logger.Printf("text recognition failed: %v", err)
		}
		s.finish(ed, op, Result{Text: text}, err)
	})
	return op, nil
}

// SetSystemPreference applies a media-preference change. It is not gated by
// admission; the surface is repainted only when the editor is idle.
func (s *Session) SetSystemPreference(prefersDark bool) (theme.Mode, error) {
	return s.restyle(func(t *theme.Theme) theme.Mode { return t.SetSystemPreference(prefersDark) })
}

// ToggleTheme flips between light and dark.
func (s *Session) ToggleTheme() (theme.Mode, error) {
	return s.restyle((*theme.Theme).Toggle)
}

func (s *Session) restyle(change func(*theme.Theme) theme.Mode) (theme.Mode, error) {
	ed, ok := s.tryAcquire()
	if !ok {
		return "", ErrLocked
	}
	defer s.release()

	mode := change(ed.theme)
	ed.renderer.SetBackground(ed.theme.Background())
	if ed.mode.IsIdle() {
		if err := ed.redrawCurrent(); err != nil {
			s.logger.Printf("could not draw image: %v", err)
		}
	}
	return mode, nil
}

// Status reports the editor state.
func (s *Session) Status() (*Status, error) {
	ed, ok := s.tryAcquire()
	if !ok {
		return nil, ErrLocked
	}
	defer s.release()

	st := &Status{
		HistoryLen: ed.history.Len(),
		Cursor:     ed.history.Cursor(),
		Elements:   ed.elements.States(),
		Theme:      string(ed.theme.Mode()),
		Background: ed.theme.Palette().Background.Clamped().Hex(),

		DisabledForeground: ed.theme.DisabledForeground().Hex(),
	}
	if g, running := ed.mode.Current(); running {
		st.Busy = true
		st.Generation = g
		if ed.inflight != nil {
			st.Operation = ed.inflight.Kind
		}
	}
	if cur := ed.history.Current(); cur != nil {
		st.Width, st.Height = cur.Width, cur.Height
	}
	return st, nil
}

// Render returns a copy of the visible surface.
func (s *Session) Render() (image.Image, error) {
	ed, ok := s.tryAcquire()
	if !ok {
		return nil, ErrLocked
	}
	defer s.release()
	return ed.renderer.Snapshot(), nil
}

// Close drops the history and source image. Pending continuations become
// stale and stop.
func (s *Session) Close() {
	ed := s.acquire()
	defer s.release()

	ed.mode.ToIdle()
	if ed.inflight != nil {
		ed.inflight.done.Fail(ErrSuperseded)
		ed.inflight = nil
	}
	ed.history.Clear()
	ed.source = nil
}

// IsControlFlow reports whether err is an expected refusal (busy, locked or
// nothing to do) rather than a failure.
func IsControlFlow(err error) bool {
	return errors.Is(err, ErrBusy) || errors.Is(err, ErrLocked) ||
		errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo)
}
