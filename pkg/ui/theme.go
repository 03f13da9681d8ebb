package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation
// that may clash with palettes like Solarized.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// TokenKind classifies a span of rendered row text for styling.
type TokenKind uint8

const (
	TokenKey TokenKind = iota
	TokenString
	TokenNumber
	TokenBool
	TokenNull
	TokenPunct
	TokenSummary
	TokenControl
	tokenKindCount
)

type Theme struct {
	Renderer *lipgloss.Renderer
	Name     string

	// Colors
	Primary   lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	Key    lipgloss.AdaptiveColor
	Str    lipgloss.AdaptiveColor
	Num    lipgloss.AdaptiveColor
	Bool   lipgloss.AdaptiveColor
	Null   lipgloss.AdaptiveColor
	Punct  lipgloss.AdaptiveColor
	Danger lipgloss.AdaptiveColor

	// Styles
	Base       lipgloss.Style
	CursorBase lipgloss.Style

	// Pre-computed token styles, indexed by TokenKind. Created once at
	// startup instead of per-frame; the cursor set carries the highlight
	// background so spaces between tokens stay uniform on the cursor row.
	token       [tokenKindCount]lipgloss.Style
	cursorToken [tokenKindCount]lipgloss.Style

	Match        lipgloss.Style
	CurrentMatch lipgloss.Style

	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	StatusInfo   lipgloss.Style
	SearchPrompt lipgloss.Style

	HelpTitle lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
}

// Token returns the precomputed style for a token kind. onCursor selects
// the variant with the cursor-row background applied.
func (t Theme) Token(kind TokenKind, onCursor bool) lipgloss.Style {
	if kind >= tokenKindCount {
		kind = TokenPunct
	}
	if onCursor {
		return t.cursorToken[kind]
	}
	return t.token[kind]
}

// buildStyles derives every precomputed style from the theme's colors.
// Called by each theme constructor after the palette is set.
func (t *Theme) buildStyles(r *lipgloss.Renderer) {
	t.Base = r.NewStyle().Foreground(ColorText)
	t.CursorBase = r.NewStyle().Background(t.Highlight)

	fg := [tokenKindCount]lipgloss.AdaptiveColor{
		TokenKey:     t.Key,
		TokenString:  t.Str,
		TokenNumber:  t.Num,
		TokenBool:    t.Bool,
		TokenNull:    t.Null,
		TokenPunct:   t.Punct,
		TokenSummary: t.Muted,
		TokenControl: t.Muted,
	}
	for k := TokenKind(0); k < tokenKindCount; k++ {
		t.token[k] = r.NewStyle().Foreground(fg[k])
		t.cursorToken[k] = r.NewStyle().Foreground(fg[k]).Background(t.Highlight)
	}
	t.token[TokenKey] = t.token[TokenKey].Bold(true)
	t.cursorToken[TokenKey] = t.cursorToken[TokenKey].Bold(true)
	t.token[TokenSummary] = t.token[TokenSummary].Italic(true)
	t.cursorToken[TokenSummary] = t.cursorToken[TokenSummary].Italic(true)

	t.Match = r.NewStyle().Background(ColorMatchBg)
	t.CurrentMatch = r.NewStyle().Background(ColorMatchCurrentBg).Bold(true).Underline(true)

	t.StatusBar = r.NewStyle().Background(ColorBgHighlight).Foreground(ColorText)
	t.StatusError = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.StatusInfo = r.NewStyle().Foreground(t.Subtext)
	t.SearchPrompt = r.NewStyle().Foreground(t.Primary).Bold(true)

	t.HelpTitle = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)
	t.HelpKey = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.HelpDesc = r.NewStyle().Foreground(t.Subtext)
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Name:     "default",

		Primary:   ColorPrimary,
		Subtext:   ColorSubtext,
		Highlight: ColorBgHighlight,
		Muted:     ColorMuted,

		Key:    ColorTokenKey,
		Str:    ColorTokenString,
		Num:    ColorTokenNumber,
		Bool:   ColorTokenBool,
		Null:   ColorTokenNull,
		Punct:  ColorSubtext,
		Danger: ColorDanger,
	}
	t.buildStyles(r)
	return t
}

// LightTheme pins every color to its light-background value, for terminals
// whose background detection lies (ssh sessions, multiplexers).
func LightTheme(r *lipgloss.Renderer) Theme {
	t := DefaultTheme(r)
	t.Name = "light"
	for _, c := range []*lipgloss.AdaptiveColor{
		&t.Primary, &t.Subtext, &t.Highlight, &t.Muted,
		&t.Key, &t.Str, &t.Num, &t.Bool, &t.Null, &t.Punct, &t.Danger,
	} {
		c.Dark = c.Light
	}
	t.buildStyles(r)
	return t
}

// MonoTheme drops all color and styles tokens with weight alone. Matches
// are still visible through the bold/underline attributes.
func MonoTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Name:     "mono",
	}
	t.buildStyles(r)
	t.Match = r.NewStyle().Reverse(true)
	t.CurrentMatch = r.NewStyle().Reverse(true).Bold(true)
	t.CursorBase = r.NewStyle().Bold(true)
	for k := TokenKind(0); k < tokenKindCount; k++ {
		t.token[k] = r.NewStyle()
		t.cursorToken[k] = r.NewStyle().Bold(true)
	}
	t.token[TokenKey] = t.token[TokenKey].Bold(true)
	t.StatusBar = r.NewStyle().Reverse(true)
	return t
}

// ThemeByName resolves a theme name from config or the -theme flag.
func ThemeByName(name string, r *lipgloss.Renderer) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(r), nil
	case "light":
		return LightTheme(r), nil
	case "mono":
		return MonoTheme(r), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (available: default, light, mono)", name)
	}
}

// TestTheme returns a theme suitable for use in tests (uses nil renderer).
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
