package editor

// Generation identifies one admitted operation. Generations increase
// strictly for the lifetime of a ModeManager.
type Generation uint16

// ModeManager is the single-flight admission gate for operations that
// mutate editor state. It is either idle or running exactly one generation.
//
// A ModeManager is not safe for concurrent use on its own; the Session lock
// guards it.
type ModeManager struct {
	running bool
	current Generation
	last    Generation
}

// NewModeManager returns an idle manager.
func NewModeManager() *ModeManager {
	return &ModeManager{}
}

// TryRun admits a new operation if the manager is idle and returns its
// generation. When an operation is already running it returns false and
// leaves the state unchanged.
func (m *ModeManager) TryRun() (Generation, bool) {
	if m.running {
		return 0, false
	}
	m.last++
	m.current = m.last
	m.running = true
	return m.current, true
}

// MatchRunID reports whether g is the operation currently running. A
// continuation that gets false has been superseded and must not touch
// editor state.
func (m *ModeManager) MatchRunID(g Generation) bool {
	return m.running && m.current == g
}

// ToIdle returns the manager to idle unconditionally.
func (m *ModeManager) ToIdle() {
	m.running = false
}

// IsIdle reports whether no operation is running.
func (m *ModeManager) IsIdle() bool {
	return !m.running
}

// Current returns the running generation, if any.
func (m *ModeManager) Current() (Generation, bool) {
	return m.current, m.running
}
