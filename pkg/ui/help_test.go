package ui

import (
	"strings"
	"testing"
)

func findHelpEntry(sections []helpSection, desc string) (helpEntry, bool) {
	for _, sec := range sections {
		for _, e := range sec.entries {
			if e.desc == desc {
				return e, true
			}
		}
	}
	return helpEntry{}, false
}

func TestHelpSectionsDefaultKeymap(t *testing.T) {
	sections := helpSections(DefaultKeymap())

	wantTitles := []string{"Moving", "Scrolling", "Folding", "Search", "Copying", "Other"}
	if len(sections) != len(wantTitles) {
		t.Fatalf("got %d sections, want %d", len(sections), len(wantTitles))
	}
	for i, title := range wantTitles {
		if sections[i].title != title {
			t.Errorf("section %d title = %q, want %q", i, sections[i].title, title)
		}
	}

	tests := []struct {
		desc string
		keys string
	}{
		{"move cursor down", "j/down"},
		{"move cursor up", "k/up"},
		{"jump to first line", "gg/home"},
		{"jump to last line", "G/end"},
		{"toggle collapse", "space"},
		{"collapse, or move to parent", "h/left"},
		{"yank value as formatted JSON", "yy"},
		{"yank path from root", "yp"},
		{"search for key or value under cursor", "*"},
		{"quit", "q/ctrl+c"},
	}
	for _, tt := range tests {
		e, ok := findHelpEntry(sections, tt.desc)
		if !ok {
			t.Errorf("no entry for %q", tt.desc)
			continue
		}
		if e.keys != tt.keys {
			t.Errorf("keys for %q = %q, want %q", tt.desc, e.keys, tt.keys)
		}
	}
}

func TestHelpSectionsReflectOverrides(t *testing.T) {
	km := DefaultKeymap()
	err := km.ApplyOverrides(map[string][]string{
		"cursor_down": {"x"},
		"reload":      {"none"},
	})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	sections := helpSections(km)

	e, ok := findHelpEntry(sections, "move cursor down")
	if !ok {
		t.Fatal("cursor down entry missing after rebind")
	}
	if e.keys != "x" {
		t.Errorf("rebound keys = %q, want %q", e.keys, "x")
	}

	if _, ok := findHelpEntry(sections, "reload the document"); ok {
		t.Error("unbound reload action should be dropped from help")
	}
}

func TestHelpViewRendersSections(t *testing.T) {
	var h HelpModel
	out := h.View(DefaultKeymap(), TestTheme(), 80, 60)

	for _, want := range []string{"Keys", "Moving", "Folding", "Copying", "gg/home", "any key closes"} {
		if !strings.Contains(out, want) {
			t.Errorf("help view missing %q", want)
		}
	}
	if strings.Contains(out, "j/k scroll") {
		t.Error("tall window should not advertise scrolling")
	}

	for _, line := range strings.Split(out, "\n") {
		if w := lipglossWidth(line); w > 80 {
			t.Errorf("help line wider than window: %d cells in %q", w, line)
		}
	}
}

func TestHelpViewScrollsInShortWindow(t *testing.T) {
	var h HelpModel
	out := h.View(DefaultKeymap(), TestTheme(), 80, 20)

	if !strings.Contains(out, "j/k scroll") {
		t.Error("short window should advertise scrolling")
	}
	if strings.Contains(out, "reload the document") {
		t.Error("bottom section should be off screen before scrolling")
	}

	h.Scroll(1000)
	out = h.View(DefaultKeymap(), TestTheme(), 80, 20)
	if !strings.Contains(out, "quit") {
		t.Error("scrolled to bottom, quit entry should be visible")
	}
	if strings.Contains(out, "move cursor down") {
		t.Error("scrolled to bottom, top entries should be off screen")
	}
}

func TestHelpScrollClampsAndResets(t *testing.T) {
	var h HelpModel
	h.Scroll(-5)
	if h.offset != 0 {
		t.Errorf("offset after scrolling above top = %d, want 0", h.offset)
	}

	h.Scroll(7)
	h.Reset()
	if h.offset != 0 {
		t.Errorf("offset after Reset = %d, want 0", h.offset)
	}
}

func TestHelpViewTinyWindow(t *testing.T) {
	// Degenerate sizes must render something rather than panic.
	var h HelpModel
	for _, size := range [][2]int{{10, 5}, {0, 0}, {25, 3}} {
		out := h.View(DefaultKeymap(), TestTheme(), size[0], size[1])
		if out == "" {
			t.Errorf("empty help view at %dx%d", size[0], size[1])
		}
	}
}

func TestBindingsLabeling(t *testing.T) {
	km := DefaultKeymap()
	tests := []struct {
		action Action
		want   string
	}{
		{ActionCursorDown, "j/down"},
		{ActionCursorUp, "k/up"},
		{ActionToggleCollapse, "space"},
		{ActionQuit, "q/ctrl+c"},
		{ActionFirstLine, "gg/home"},
		{ActionYankPath, "yp"},
	}
	for _, tt := range tests {
		got := strings.Join(km.Bindings(tt.action), "/")
		if got != tt.want {
			t.Errorf("Bindings(%s) = %q, want %q", tt.action.Name(), got, tt.want)
		}
	}
}
