package theme

import "testing"

func TestNew_StartingMode(t *testing.T) {
	tests := []struct {
		pref Preference
		want Mode
	}{
		{PreferSystem, Light},
		{PreferLight, Light},
		{PreferDark, Dark},
	}
	for _, tt := range tests {
		if got := New(tt.pref, DefaultLight, DefaultDark).Mode(); got != tt.want {
			t.Errorf("New(%s).Mode() = %s, want %s", tt.pref, got, tt.want)
		}
	}
}

func TestLastEventWins(t *testing.T) {
	th := New(PreferSystem, DefaultLight, DefaultDark)
	if got := th.SetSystemPreference(true); got != Dark {
		t.Fatalf("after dark preference: %s", got)
	}
	if got := th.Toggle(); got != Light {
		t.Fatalf("after toggle: %s", got)
	}
	if got := th.SetSystemPreference(true); got != Dark {
		t.Fatalf("preference after toggle: %s", got)
	}
	if got := th.SetSystemPreference(false); got != Light {
		t.Fatalf("light preference: %s", got)
	}
}

func TestPaletteFollowsMode(t *testing.T) {
	light, err := ParsePalette("#ffffff", "#000000")
	if err != nil {
		t.Fatal(err)
	}
	dark, err := ParsePalette("#000000", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	th := New(PreferLight, light, dark)
	if r, g, b, _ := th.Background().RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("light background = %x,%x,%x, want white", r, g, b)
	}
	th.Toggle()
	if r, g, b, _ := th.Background().RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("dark background = %x,%x,%x, want black", r, g, b)
	}
}

func TestDisabledForeground_BetweenColours(t *testing.T) {
	p, _ := ParsePalette("#ffffff", "#000000")
	th := New(PreferLight, p, p)
	got := th.DisabledForeground()
	if got.R <= 0 || got.R >= 1 {
		t.Errorf("disabled foreground R = %f, want strictly between black and white", got.R)
	}
}

func TestParsePalette_Invalid(t *testing.T) {
	if _, err := ParsePalette("nope", "#000000"); err == nil {
		t.Error("expected error for bad background")
	}
	if _, err := ParsePalette("#000000", "#zzzzzz"); err == nil {
		t.Error("expected error for bad foreground")
	}
}

func TestParsePreference(t *testing.T) {
	if p, err := ParsePreference(""); err != nil || p != PreferSystem {
		t.Errorf("ParsePreference(\"\") = %s, %v", p, err)
	}
	if p, err := ParsePreference("dark"); err != nil || p != PreferDark {
		t.Errorf("ParsePreference(dark) = %s, %v", p, err)
	}
	if _, err := ParsePreference("sepia"); err == nil {
		t.Error("expected error for unknown preference")
	}
}
