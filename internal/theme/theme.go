// Package theme tracks the editor's light/dark appearance.
//
// The active mode follows two kinds of events: a media-preference change
// (the host reporting that the user prefers a dark or light scheme) and an
// explicit toggle. Whichever happened last wins.
package theme

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode is the active appearance.
type Mode string

// Modes.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Preference is the configured starting point.
type Preference string

// Preferences.
const (
	PreferSystem Preference = "system"
	PreferLight  Preference = "light"
	PreferDark   Preference = "dark"
)

// Palette holds the colours used for one mode.
type Palette struct {
	Background colorful.Color
	Foreground colorful.Color
}

// ParsePalette parses "#RRGGBB" background and foreground colours.
func ParsePalette(background, foreground string) (Palette, error) {
	bg, err := colorful.Hex(background)
	if err != nil {
		return Palette{}, fmt.Errorf("invalid background colour %q: %w", background, err)
	}
	fg, err := colorful.Hex(foreground)
	if err != nil {
		return Palette{}, fmt.Errorf("invalid foreground colour %q: %w", foreground, err)
	}
	return Palette{Background: bg, Foreground: fg}, nil
}

// DefaultLight and DefaultDark are the built-in palettes.
var (
	DefaultLight = Palette{
		Background: colorful.Color{R: 0.96, G: 0.96, B: 0.96},
		Foreground: colorful.Color{R: 0.12, G: 0.12, B: 0.12},
	}
	DefaultDark = Palette{
		Background: colorful.Color{R: 0.12, G: 0.12, B: 0.13},
		Foreground: colorful.Color{R: 0.90, G: 0.90, B: 0.90},
	}
)

// Theme is the current appearance. It is not safe for concurrent use; the
// editor session guards it.
type Theme struct {
	mode  Mode
	light Palette
	dark  Palette
}

// New creates a theme. PreferSystem starts in light mode until the host
// reports a media preference.
func New(pref Preference, light, dark Palette) *Theme {
	t := &Theme{mode: Light, light: light, dark: dark}
	if pref == PreferDark {
		t.mode = Dark
	}
	return t
}

// SetSystemPreference applies a media-preference change.
func (t *Theme) SetSystemPreference(prefersDark bool) Mode {
	if prefersDark {
		t.mode = Dark
	} else {
		t.mode = Light
	}
	return t.mode
}

// Toggle flips between light and dark.
func (t *Theme) Toggle() Mode {
	if t.mode == Dark {
		t.mode = Light
	} else {
		t.mode = Dark
	}
	return t.mode
}

// Mode returns the active mode.
func (t *Theme) Mode() Mode { return t.mode }

// Palette returns the active palette.
func (t *Theme) Palette() Palette {
	if t.mode == Dark {
		return t.dark
	}
	return t.light
}

// Background returns the active surface colour.
func (t *Theme) Background() color.Color {
	return t.Palette().Background.Clamped()
}

// DisabledForeground is the foreground blended halfway toward the
// background, used for controls that cannot be clicked.
func (t *Theme) DisabledForeground() colorful.Color {
	p := t.Palette()
	return p.Foreground.BlendLab(p.Background, 0.5).Clamped()
}

// ParsePreference validates a preference name. Empty means PreferSystem.
func ParsePreference(s string) (Preference, error) {
	switch Preference(s) {
	case "", PreferSystem:
		return PreferSystem, nil
	case PreferLight, PreferDark:
		return Preference(s), nil
	default:
		return "", fmt.Errorf("unknown theme preference %q (want system, light or dark)", s)
	}
}
