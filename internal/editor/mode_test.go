package editor

import "testing"

func TestModeManager_SingleFlight(t *testing.T) {
	m := NewModeManager()
	if !m.IsIdle() {
		t.Fatal("new manager should be idle")
	}

	g1, ok := m.TryRun()
	if !ok {
		t.Fatal("TryRun on idle manager failed")
	}
	if _, ok := m.TryRun(); ok {
		t.Fatal("second TryRun admitted while running")
	}
	if cur, running := m.Current(); !running || cur != g1 {
		t.Errorf("Current() = %d, %v; want %d, true", cur, running, g1)
	}

	m.ToIdle()
	g2, ok := m.TryRun()
	if !ok {
		t.Fatal("TryRun after ToIdle failed")
	}
	if g2 <= g1 {
		t.Errorf("generation did not increase: %d then %d", g1, g2)
	}
}

func TestModeManager_GenerationsStrictlyIncrease(t *testing.T) {
	m := NewModeManager()
	var last Generation
	for i := 0; i < 100; i++ {
		g, ok := m.TryRun()
		if !ok {
			t.Fatalf("iteration %d: TryRun failed", i)
		}
		if i > 0 && g <= last {
			t.Fatalf("iteration %d: generation %d not greater than %d", i, g, last)
		}
		last = g
		m.ToIdle()
	}
}

func TestModeManager_MatchRunID(t *testing.T) {
	m := NewModeManager()
	g, _ := m.TryRun()
	if !m.MatchRunID(g) {
		t.Error("MatchRunID false for running generation")
	}
	if m.MatchRunID(g + 1) {
		t.Error("MatchRunID true for other generation")
	}

	m.ToIdle()
	if m.MatchRunID(g) {
		t.Error("MatchRunID true while idle")
	}

	// A newer generation supersedes the old one
	g2, _ := m.TryRun()
	if m.MatchRunID(g) || !m.MatchRunID(g2) {
		t.Errorf("MatchRunID(%d)=%v MatchRunID(%d)=%v", g, m.MatchRunID(g), g2, m.MatchRunID(g2))
	}
}

func TestModeManager_ToIdleIsUnconditional(t *testing.T) {
	m := NewModeManager()
	m.ToIdle()
	if !m.IsIdle() {
		t.Error("ToIdle on idle manager changed state")
	}
	m.TryRun()
	m.ToIdle()
	m.ToIdle()
	if !m.IsIdle() {
		t.Error("manager not idle after ToIdle")
	}
}
