package ui

import "github.com/charmbracelet/lipgloss"

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors - Light mode uses darker colors for contrast on white backgrounds
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	// Accent colors
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// JSON token colors
	ColorTokenKey    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"} // Cyan
	ColorTokenString = lipgloss.AdaptiveColor{Light: "#808000", Dark: "#F1FA8C"} // Yellow
	ColorTokenNumber = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"} // Purple
	ColorTokenBool   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"} // Orange
	ColorTokenNull   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"} // Gray

	// Search match backgrounds - subtle yellow wash, stronger for the active match
	ColorMatchBg        = lipgloss.AdaptiveColor{Light: "#FFF3CD", Dark: "#3D3D1A"}
	ColorMatchCurrentBg = lipgloss.AdaptiveColor{Light: "#FFE8CC", Dark: "#3D2A1A"}
)
