package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	// Check a few known colors are set (not zero value)
	if isColorEmpty(theme.Primary) {
		t.Error("DefaultTheme Primary color is empty")
	}
	if isColorEmpty(theme.Key) {
		t.Error("DefaultTheme Key color is empty")
	}
	if isColorEmpty(theme.Str) {
		t.Error("DefaultTheme Str color is empty")
	}
}

func isColorEmpty(c lipgloss.AdaptiveColor) bool {
	return c.Light == "" && c.Dark == ""
}

func TestLightThemePinsDarkVariants(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := LightTheme(renderer)

	if theme.Name != "light" {
		t.Errorf("expected name light, got %q", theme.Name)
	}
	for _, c := range []lipgloss.AdaptiveColor{theme.Primary, theme.Key, theme.Str, theme.Num} {
		if c.Dark != c.Light {
			t.Errorf("light theme color not pinned: Light=%q Dark=%q", c.Light, c.Dark)
		}
	}
}

func TestMonoThemeHasNoColors(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := MonoTheme(renderer)

	if !isColorEmpty(theme.Key) || !isColorEmpty(theme.Str) {
		t.Error("mono theme should leave token colors unset")
	}
	// Matches still need to stand out without color
	if !theme.Match.GetReverse() {
		t.Error("mono theme Match should use reverse video")
	}
	if !theme.CurrentMatch.GetBold() {
		t.Error("mono theme CurrentMatch should be bold")
	}
}

func TestTokenLookup(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))

	if !theme.Token(TokenKey, false).GetBold() {
		t.Error("key token should be bold")
	}
	if !theme.Token(TokenSummary, false).GetItalic() {
		t.Error("summary token should be italic")
	}
	// Out-of-range kinds fall back to punctuation instead of panicking
	_ = theme.Token(TokenKind(250), false)
}

func TestThemeByName(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)

	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"", "default", false},
		{"default", "default", false},
		{"light", "light", false},
		{"mono", "mono", false},
		{"dracula-extra", "", true},
	}

	for _, tt := range tests {
		theme, err := ThemeByName(tt.name, renderer)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ThemeByName(%q) expected error, got nil", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ThemeByName(%q) unexpected error: %v", tt.name, err)
			continue
		}
		if theme.Name != tt.wantName {
			t.Errorf("ThemeByName(%q) name = %q, want %q", tt.name, theme.Name, tt.wantName)
		}
	}
}

// ── Color profile detection tests ───────────────────────────────────────

func TestColorProfile_Detection(t *testing.T) {
	// TermProfile is set at init(); just verify it's a valid value
	valid := map[colorprofile.Profile]bool{
		colorprofile.Unknown:   true,
		colorprofile.NoTTY:     true,
		colorprofile.ASCII:     true,
		colorprofile.ANSI:      true,
		colorprofile.ANSI256:   true,
		colorprofile.TrueColor: true,
	}
	if !valid[TermProfile] {
		t.Errorf("TermProfile has unexpected value: %d", TermProfile)
	}
}

func TestThemeBg_TrueColor(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.TrueColor

	got := ThemeBg("#282A36")
	if _, ok := got.(lipgloss.NoColor); ok {
		t.Error("ThemeBg should return hex color in TrueColor mode, got NoColor")
	}
}

func TestThemeBg_ANSI(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI

	got := ThemeBg("#282A36")
	if _, ok := got.(lipgloss.NoColor); !ok {
		t.Errorf("ThemeBg should return NoColor in ANSI mode, got %T", got)
	}
}

func TestThemeBg_ANSI256(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI256

	got := ThemeBg("#282A36")
	if _, ok := got.(lipgloss.NoColor); !ok {
		t.Errorf("ThemeBg should return NoColor in ANSI256 mode (only TrueColor gets hex bg), got %T", got)
	}
}

func TestThemeFg_TrueColor(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.TrueColor

	got := ThemeFg("#FF6B6B")
	if _, ok := got.(lipgloss.ANSIColor); ok {
		t.Error("ThemeFg should return hex color in TrueColor mode, got ANSIColor")
	}
}

func TestThemeFg_ANSI256(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI256

	got := ThemeFg("#FF6B6B")
	if _, ok := got.(lipgloss.ANSIColor); ok {
		t.Error("ThemeFg should return hex color in ANSI256 mode, got ANSIColor")
	}
}

func TestThemeFg_ANSI(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI

	got := ThemeFg("#FF6B6B")
	ansiColor, ok := got.(lipgloss.ANSIColor)
	if !ok {
		t.Errorf("ThemeFg should return ANSIColor in ANSI mode, got %T", got)
	} else if ansiColor != 7 {
		t.Errorf("ThemeFg should return ANSI white (7) in ANSI mode, got %d", ansiColor)
	}
}

func TestThemeFg_NoTTY(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.NoTTY

	got := ThemeFg("#FF6B6B")
	if _, ok := got.(lipgloss.ANSIColor); !ok {
		t.Errorf("ThemeFg should return ANSIColor in NoTTY mode, got %T", got)
	}
}
