package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the scroll state of the help overlay. The content comes
// from the live keymap each frame, so rebound keys show their actual
// bindings rather than the defaults.
type HelpModel struct {
	offset int
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

// helpLayout groups actions into the overlay's sections. Key labels are
// resolved against the keymap at render time.
var helpLayout = []struct {
	title   string
	actions []Action
}{
	{"Moving", []Action{
		ActionCursorDown, ActionCursorUp,
		ActionNextSibling, ActionPrevSibling,
		ActionParent, ActionFirstChild,
		ActionFirstLine, ActionLastLine,
	}},
	{"Scrolling", []Action{
		ActionHalfPageDown, ActionHalfPageUp,
		ActionPageDown, ActionPageUp,
		ActionScrollLeft, ActionScrollRight, ActionScrollReset,
	}},
	{"Folding", []Action{
		ActionToggleCollapse, ActionCollapse, ActionExpand,
		ActionCollapseNode, ActionExpandNode,
		ActionCollapseAll, ActionExpandAll,
	}},
	{"Search", []Action{
		ActionSearchForward, ActionSearchBackward,
		ActionSearchNext, ActionSearchPrev,
		ActionSearchCurrent, ActionClearSearch,
	}},
	{"Copying", []Action{
		ActionYankValue, ActionYankRaw, ActionYankKey,
		ActionYankPath, ActionYankString,
	}},
	{"Other", []Action{
		ActionReload, ActionToggleHelp, ActionQuit,
	}},
}

// Scroll moves the overlay content; View clamps the offset against the
// real line count.
func (h *HelpModel) Scroll(delta int) {
	h.offset += delta
	if h.offset < 0 {
		h.offset = 0
	}
}

// Reset rewinds the overlay to the top, for when it is reopened.
func (h *HelpModel) Reset() {
	h.offset = 0
}

const helpKeyColumn = 15

// View renders the help modal sized for the given window.
func (h *HelpModel) View(km *Keymap, theme Theme, width, height int) string {
	r := theme.Renderer

	modalWidth := 52
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 20 {
		modalWidth = 20
	}
	inner := modalWidth - 6 // border and padding

	titleStyle := r.NewStyle().Bold(true).Foreground(theme.Primary)
	footerStyle := r.NewStyle().Foreground(theme.Muted).Italic(true)
	dividerStyle := r.NewStyle().Foreground(theme.Muted)

	var body []string
	for _, sec := range helpSections(km) {
		if len(sec.entries) == 0 {
			continue
		}
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, titleStyle.Render(sec.title))
		for _, e := range sec.entries {
			keys := theme.HelpKey.Render(padRight(truncate(e.keys, helpKeyColumn-1), helpKeyColumn))
			body = append(body, keys+theme.HelpDesc.Render(truncate(e.desc, inner-helpKeyColumn)))
		}
	}

	// The title and footer stay fixed, the body scrolls between them.
	visible := height - 8
	if visible < 3 {
		visible = 3
	}
	maxOffset := len(body) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if h.offset > maxOffset {
		h.offset = maxOffset
	}
	end := h.offset + visible
	if end > len(body) {
		end = len(body)
	}

	var b strings.Builder
	b.WriteString(theme.HelpTitle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	b.WriteString(strings.Join(body[h.offset:end], "\n"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	footer := "any key closes"
	if maxOffset > 0 {
		footer = "j/k scroll · any other key closes"
	}
	b.WriteString(footerStyle.Render(footer))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2).
		Width(modalWidth)

	return modalStyle.Render(b.String())
}

// helpSections assembles the overlay content from the keymap. Actions
// that lost every key to an override are dropped from their section.
func helpSections(km *Keymap) []helpSection {
	sections := make([]helpSection, 0, len(helpLayout))
	for _, layout := range helpLayout {
		sec := helpSection{title: layout.title}
		for _, a := range layout.actions {
			keys := km.Bindings(a)
			if len(keys) == 0 {
				continue
			}
			sec.entries = append(sec.entries, helpEntry{keys: strings.Join(keys, "/"), desc: a.Describe()})
		}
		sections = append(sections, sec)
	}
	return sections
}

