package ui

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/jsonwork/pkg/document"
)

// stripANSI removes ANSI escape sequences for plain-text comparison.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

const modelFixture = `{
  "name": "jsonwork",
  "tags": ["alpha", "beta", "rc"],
  "owner": {"id": 7, "active": true, "address": {"city": "Utrecht"}},
  "count": null
}`

// Fully expanded, modelFixture renders as 16 lines:
//
//	0  {
//	1    "name": "jsonwork",
//	2    "tags": [
//	3      "alpha",
//	4      "beta",
//	5      "rc"
//	6    ],
//	7    "owner": {
//	8      "id": 7,
//	9      "active": true,
//	10     "address": {
//	11       "city": "Utrecht"
//	12     }
//	13   },
//	14   "count": null
//	15 }

func newTestModel(t *testing.T, src string) Model {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	m := NewModel(doc, "")
	m.theme = TestTheme()
	m.renderer = NewRenderer(m.theme, 2)
	return resize(m, 80, 24)
}

func resize(m Model, width, height int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

// keyMsg builds the KeyMsg whose String() matches one keymap key name.
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func cursorNode(m Model) *document.Node {
	return m.doc.Node(m.viewport.Cursor)
}

// A fresh model starts in Normal mode with the cursor on the root.
func TestModelStartsAtRoot(t *testing.T) {
	m := newTestModel(t, modelFixture)

	if m.mode != ModeNormal {
		t.Errorf("expected ModeNormal, got %v", m.mode)
	}
	if m.viewport.Cursor != m.doc.Root() {
		t.Errorf("expected cursor on root, got node %d", m.viewport.Cursor)
	}
	if !m.ready {
		t.Error("expected model ready after window size message")
	}
}

// Cursor keys walk lines, siblings, parent and first child.
func TestModelCursorKeys(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "j")
	if got := cursorNode(m).Key; got != "name" {
		t.Errorf("after j expected cursor on 'name', got %q", got)
	}
	m = press(m, "down")
	if got := cursorNode(m).Key; got != "tags" {
		t.Errorf("after down expected cursor on 'tags', got %q", got)
	}
	m = press(m, "J")
	if got := cursorNode(m).Key; got != "owner" {
		t.Errorf("after J expected next sibling 'owner', got %q", got)
	}
	m = press(m, "K")
	if got := cursorNode(m).Key; got != "tags" {
		t.Errorf("after K expected prev sibling 'tags', got %q", got)
	}
	m = press(m, "i")
	if got := cursorNode(m).Text; got != "alpha" {
		t.Errorf("after i expected first child 'alpha', got %q", got)
	}
	m = press(m, "p")
	if got := cursorNode(m).Key; got != "tags" {
		t.Errorf("after p expected parent 'tags', got %q", got)
	}
	m = press(m, "k")
	if got := cursorNode(m).Key; got != "name" {
		t.Errorf("after k expected cursor on 'name', got %q", got)
	}
}

// Keys with no Normal-mode binding leave the model untouched.
func TestModelUnknownKeysIgnored(t *testing.T) {
	m := newTestModel(t, modelFixture)
	m = press(m, "j")
	before := m.viewport.Cursor

	m = press(m, "Z", "1", "!")

	if m.viewport.Cursor != before {
		t.Errorf("cursor moved on unbound keys: %d -> %d", before, m.viewport.Cursor)
	}
	if m.mode != ModeNormal {
		t.Errorf("mode changed on unbound keys: %v", m.mode)
	}
	if m.doc.TotalLines() != 16 {
		t.Errorf("document changed on unbound keys: %d lines", m.doc.TotalLines())
	}
}

// Space toggles collapse on containers and does nothing on scalars.
func TestModelSpaceTogglesCollapse(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "j", "j") // tags
	m = press(m, "space")
	if !cursorNode(m).Collapsed {
		t.Error("expected 'tags' collapsed after space")
	}
	if got := m.doc.TotalLines(); got != 12 {
		t.Errorf("expected 12 lines with tags collapsed, got %d", got)
	}

	m = press(m, "space")
	if cursorNode(m).Collapsed {
		t.Error("expected 'tags' expanded after second space")
	}

	m = press(m, "k") // name, a scalar
	m = press(m, "space")
	if got := m.doc.TotalLines(); got != 16 {
		t.Errorf("space on scalar changed line count: %d", got)
	}
}

// h collapses the container under the cursor, or climbs to the parent
// when the cursor sits on a scalar or an already folded node.
func TestModelCollapseKeyClimbsFromScalar(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "j", "h") // cursor on scalar 'name'
	if m.viewport.Cursor != m.doc.Root() {
		t.Errorf("expected h on scalar to move to parent, cursor at %d", m.viewport.Cursor)
	}

	m = press(m, "h") // root is an expanded container: fold it
	if got := m.doc.TotalLines(); got != 1 {
		t.Errorf("expected 1 line after folding root, got %d", got)
	}

	m = press(m, "h") // folded root has no parent: stay put
	if m.viewport.Cursor != m.doc.Root() {
		t.Errorf("expected cursor to stay on root, got %d", m.viewport.Cursor)
	}
}

// l expands a folded container, then steps into it.
func TestModelExpandKeySteps(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "j", "j", "c") // collapse 'tags' in place
	if !cursorNode(m).Collapsed {
		t.Fatal("expected 'tags' collapsed after c")
	}

	m = press(m, "l")
	if cursorNode(m).Collapsed {
		t.Error("expected l to expand the folded container")
	}
	if got := cursorNode(m).Key; got != "tags" {
		t.Errorf("expected cursor still on 'tags', got %q", got)
	}

	m = press(m, "l")
	if got := cursorNode(m).Text; got != "alpha" {
		t.Errorf("expected l on expanded container to enter 'alpha', got %q", got)
	}
}

// Collapsing everything relocates the cursor to its nearest visible
// ancestor instead of leaving it on a hidden node.
func TestModelCollapseAllRelocatesCursor(t *testing.T) {
	m := newTestModel(t, modelFixture)

	// Walk deep: name, tags, alpha, beta, rc, owner, id, active, address, city
	m = press(m, "j", "j", "j", "j", "j", "j", "j", "j", "j", "j")
	if got := cursorNode(m).Key; got != "city" {
		t.Fatalf("expected cursor on 'city', got %q", got)
	}

	m = press(m, "C")
	if m.viewport.Cursor != m.doc.Root() {
		t.Errorf("expected cursor relocated to root, got node %d", m.viewport.Cursor)
	}
	if got := m.doc.TotalLines(); got != 1 {
		t.Errorf("expected 1 visible line, got %d", got)
	}

	m = press(m, "E")
	if got := m.doc.TotalLines(); got != 16 {
		t.Errorf("expected 16 lines after expand all, got %d", got)
	}
}

// G jumps to the last cursor line, gg back to the first; a dangling g
// prefix cancels on any other key.
func TestModelGotoKeys(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "G")
	if got := cursorNode(m).Key; got != "count" {
		t.Errorf("after G expected cursor on 'count', got %q", got)
	}
	if got := m.viewport.CursorLine(); got != 14 {
		t.Errorf("after G expected cursor line 14, got %d", got)
	}

	m = press(m, "g")
	if m.mode != ModePendingG {
		t.Fatalf("expected ModePendingG after g, got %v", m.mode)
	}
	m = press(m, "g")
	if m.viewport.Cursor != m.doc.Root() {
		t.Errorf("after gg expected cursor on root, got %d", m.viewport.Cursor)
	}
	if m.mode != ModeNormal {
		t.Errorf("expected ModeNormal after gg, got %v", m.mode)
	}

	m = press(m, "G", "g", "x")
	if m.mode != ModeNormal {
		t.Errorf("expected dangling g to cancel, mode %v", m.mode)
	}
	if got := cursorNode(m).Key; got != "count" {
		t.Errorf("expected gx not to move the cursor, got %q", got)
	}
}

// Committing a search moves the cursor to the first hit.
func TestModelSearchCommitMovesCursor(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "/")
	if m.mode != ModeSearchInput {
		t.Fatalf("expected ModeSearchInput after /, got %v", m.mode)
	}
	m = press(m, "b", "e", "t", "a", "enter")

	if m.mode != ModeNormal {
		t.Errorf("expected ModeNormal after commit, got %v", m.mode)
	}
	if got := cursorNode(m).Text; got != "beta" {
		t.Errorf("expected cursor on 'beta', got %q", got)
	}
	if m.engine.Count() != 1 {
		t.Errorf("expected 1 match, got %d", m.engine.Count())
	}
}

// A match inside a collapsed subtree is revealed: the ancestors expand,
// the rest of the document stays folded.
func TestModelSearchRevealsCollapsedMatch(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "C")
	m = press(m, "/", "U", "t", "r", "e", "c", "h", "t", "enter")

	if got := cursorNode(m).Text; got != "Utrecht" {
		t.Fatalf("expected cursor on 'Utrecht', got %q", got)
	}
	if got := m.doc.Path(m.viewport.Cursor); got != ".owner.address.city" {
		t.Errorf("expected path .owner.address.city, got %q", got)
	}

	// tags was not on the match's ancestor chain and stays folded.
	rootN := m.doc.Node(m.doc.Root())
	tagsID := m.doc.Node(rootN.First).Next
	if !m.doc.Node(tagsID).Collapsed {
		t.Error("expected 'tags' to stay collapsed")
	}
	if got := m.viewport.CursorLine(); got != 7 {
		t.Errorf("expected cursor line 7 with tags folded, got %d", got)
	}
}

// A pattern that does not compile keeps the input open with the error
// inline; fixing the pattern clears it.
func TestModelSearchBadPatternKeepsInput(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "/", "[", "enter")
	if m.mode != ModeSearchInput {
		t.Fatalf("expected to stay in ModeSearchInput, got %v", m.mode)
	}
	if m.searchErr == "" {
		t.Error("expected inline pattern error")
	}

	m = press(m, "a", "]")
	if m.searchErr != "" {
		t.Errorf("expected typing to clear the error, got %q", m.searchErr)
	}
	m = press(m, "enter")
	if m.mode != ModeNormal {
		t.Errorf("expected commit of fixed pattern, mode %v", m.mode)
	}
	if got := m.engine.Pattern(); got != "[a]" {
		t.Errorf("expected pattern '[a]', got %q", got)
	}
}

// A well-formed pattern with no hits leaves search mode and reports.
func TestModelSearchNoMatchReportsStatus(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "/", "z", "e", "b", "r", "a", "enter")
	if m.mode != ModeNormal {
		t.Errorf("expected ModeNormal, got %v", m.mode)
	}
	if m.statusMsg != "no matches: zebra" {
		t.Errorf("expected no-match status, got %q", m.statusMsg)
	}
	if !m.statusIsError {
		t.Error("expected error styling on no-match status")
	}

	m = press(m, "n")
	if m.statusMsg != "no matches: zebra" {
		t.Errorf("expected n to repeat the no-match status, got %q", m.statusMsg)
	}
}

// Unbound printable keys append to the pattern buffer; esc cancels
// without touching the previous search.
func TestModelSearchInputAppends(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "/", "Z", "9")
	if got := m.searchInput.Value(); got != "Z9" {
		t.Errorf("expected buffer 'Z9', got %q", got)
	}

	m = press(m, "esc")
	if m.mode != ModeNormal {
		t.Errorf("expected esc to cancel search input, mode %v", m.mode)
	}
	if m.engine.Pattern() != "" {
		t.Errorf("expected no active pattern, got %q", m.engine.Pattern())
	}

	m = press(m, "n")
	if m.statusMsg != "no previous search" {
		t.Errorf("expected 'no previous search', got %q", m.statusMsg)
	}
}

// n past the last match wraps around and the status bar says so.
func TestModelSearchWrapIndicator(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "G")
	m = press(m, "/", "n", "a", "m", "e", "enter")

	if got := cursorNode(m).Key; got != "name" {
		t.Fatalf("expected wrap to 'name', got %q", got)
	}
	bar := stripANSI(m.renderStatusBar())
	if !strings.Contains(bar, "/name 1/1 (wrapped)") {
		t.Errorf("expected wrapped match segment in status bar, got %q", bar)
	}
}

// q and ctrl+c both quit.
func TestModelQuitReturnsQuitCmd(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := newTestModel(t, modelFixture)
		next, cmd := m.Update(keyMsg(key))
		m = next.(Model)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg for %q", key)
		}
	}
}

// F1 opens the help overlay; j scrolls it, anything else closes it.
func TestModelHelpMode(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "f1")
	if m.mode != ModeHelp {
		t.Fatalf("expected ModeHelp, got %v", m.mode)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "Keys") {
		t.Error("expected help overlay in view")
	}

	m = press(m, "j")
	if m.mode != ModeHelp {
		t.Errorf("expected j to scroll help, not close it; mode %v", m.mode)
	}
	m = press(m, "x")
	if m.mode != ModeNormal {
		t.Errorf("expected any other key to close help, mode %v", m.mode)
	}
}

// Yank variants that need a key or a string refuse politely elsewhere.
func TestModelYankGuards(t *testing.T) {
	m := newTestModel(t, modelFixture)

	// Root has no key and is not a string.
	m = press(m, "y", "k")
	if m.statusMsg != "no key here" {
		t.Errorf("expected 'no key here', got %q", m.statusMsg)
	}
	if m.mode != ModeNormal {
		t.Errorf("expected ModeNormal after yank, got %v", m.mode)
	}

	m = press(m, "y", "s")
	if m.statusMsg != "not a string" {
		t.Errorf("expected 'not a string', got %q", m.statusMsg)
	}
}

// An unbound key after the y prefix cancels the pending yank.
func TestModelPendingYankUnknownKeyCancels(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "y")
	if m.mode != ModePendingY {
		t.Fatalf("expected ModePendingY, got %v", m.mode)
	}
	m = press(m, "x")
	if m.mode != ModeNormal {
		t.Errorf("expected ModeNormal, got %v", m.mode)
	}
	if m.statusMsg != "" {
		t.Errorf("expected no status, got %q", m.statusMsg)
	}
}

// Reload picks up the changed file and keeps the cursor where the new
// document allows.
func TestModelReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`{"a": 1, "b": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(doc, path)
	m.theme = TestTheme()
	m = resize(m, 80, 24)
	m = press(m, "j") // cursor on "a"

	if err := os.WriteFile(path, []byte(`{"a": 10, "b": 2, "c": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(FileChangedMsg{})
	m = next.(Model)

	if m.statusMsg != "reloaded" {
		t.Errorf("expected 'reloaded' status, got %q", m.statusMsg)
	}
	if got := m.doc.TotalLines(); got != 5 {
		t.Errorf("expected 5 lines after reload, got %d", got)
	}
	if got := cursorNode(m).Key; got != "a" {
		t.Errorf("expected cursor still on 'a', got %q", got)
	}
}

// A reload that fails to parse keeps the old tree on screen.
func TestModelReloadParseFailureKeepsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`{"a": 1, "b": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(doc, path)
	m.theme = TestTheme()
	m = resize(m, 80, 24)

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = press(m, "R")

	if !m.statusIsError {
		t.Error("expected error status after failed reload")
	}
	if !strings.HasPrefix(m.statusMsg, "reload:") {
		t.Errorf("expected reload error message, got %q", m.statusMsg)
	}
	if got := m.doc.TotalLines(); got != 4 {
		t.Errorf("expected old document kept at 4 lines, got %d", got)
	}
}

// Documents read from stdin have no file to reload.
func TestModelReloadFromStdinDocument(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "R")
	if m.statusMsg != "document came from stdin, nothing to reload" {
		t.Errorf("expected stdin reload message, got %q", m.statusMsg)
	}
	if !m.statusIsError {
		t.Error("expected error styling on stdin reload message")
	}
}

// The status bar shows the cursor path on the left and the position on
// the right.
func TestModelStatusBarShowsPathAndPosition(t *testing.T) {
	m := newTestModel(t, modelFixture)

	bar := stripANSI(m.renderStatusBar())
	if !strings.Contains(bar, " .") {
		t.Errorf("expected root path in status bar, got %q", bar)
	}
	if !strings.Contains(bar, "1/16") {
		t.Errorf("expected position 1/16, got %q", bar)
	}

	m = press(m, "j")
	bar = stripANSI(m.renderStatusBar())
	if !strings.Contains(bar, ".name") {
		t.Errorf("expected .name path, got %q", bar)
	}
	if !strings.Contains(bar, "2/16") {
		t.Errorf("expected position 2/16, got %q", bar)
	}

	// Collapsed containers carry their child count in the summary.
	m = press(m, "j", "space")
	bar = stripANSI(m.renderStatusBar())
	if !strings.Contains(bar, ".tags (3 items)") {
		t.Errorf("expected collapsed item count, got %q", bar)
	}
}

// Pending prefixes surface in the status bar.
func TestModelStatusBarPendingIndicator(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = press(m, "g")
	bar := stripANSI(m.renderStatusBar())
	if !strings.Contains(bar, "1/16 · g") {
		t.Errorf("expected pending g indicator, got %q", bar)
	}

	m = press(m, "x", "y")
	bar = stripANSI(m.renderStatusBar())
	if !strings.Contains(bar, "1/16 · y") {
		t.Errorf("expected pending y indicator, got %q", bar)
	}
}

// The frame is exactly height lines: the body window padded with
// tildes, then one status row.
func TestModelViewFrameShape(t *testing.T) {
	m := newTestModel(t, modelFixture)

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 frame lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if w := lipglossWidth(ln); w > 80 {
			t.Errorf("line %d wider than window: %d", i, w)
		}
	}
	// The 16-line document leaves rows 16..22 to tildes.
	if got := strings.TrimSpace(stripANSI(lines[16])); got != "~" {
		t.Errorf("expected tilde filler row, got %q", got)
	}
	if !strings.Contains(stripANSI(lines[0]), "{") {
		t.Errorf("expected root line first, got %q", stripANSI(lines[0]))
	}
}

// L and H shift the horizontal window within the cursor row; 0 resets.
func TestModelHorizontalScrollKeys(t *testing.T) {
	m := newTestModel(t, modelFixture)

	// The root row is one column wide: no scroll possible there.
	m = press(m, "L")
	if m.viewport.HScroll != 0 {
		t.Errorf("expected no scroll on one-column row, got %d", m.viewport.HScroll)
	}

	m = press(m, "j", "L", "L")
	if m.viewport.HScroll != 8 {
		t.Errorf("expected hscroll 8 after LL, got %d", m.viewport.HScroll)
	}
	m = press(m, "H")
	if m.viewport.HScroll != 4 {
		t.Errorf("expected hscroll 4 after H, got %d", m.viewport.HScroll)
	}
	m = press(m, "0")
	if m.viewport.HScroll != 0 {
		t.Errorf("expected hscroll reset, got %d", m.viewport.HScroll)
	}
}

// Resizing reshapes the viewport, reserving one row for the status bar.
func TestModelWindowResize(t *testing.T) {
	m := newTestModel(t, modelFixture)

	m = resize(m, 40, 10)
	if m.viewport.Width != 40 {
		t.Errorf("expected viewport width 40, got %d", m.viewport.Width)
	}
	if m.viewport.Height != 9 {
		t.Errorf("expected viewport height 9, got %d", m.viewport.Height)
	}

	view := m.View()
	if got := len(strings.Split(view, "\n")); got != 10 {
		t.Errorf("expected 10 frame lines, got %d", got)
	}
}

// prettyJSON reindents valid spans and passes anything else through.
func TestPrettyJSON(t *testing.T) {
	got := prettyJSON(`{"a":[1,2]}`)
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if got != want {
		t.Errorf("expected reindented JSON %q, got %q", want, got)
	}

	if got := prettyJSON("not json"); got != "not json" {
		t.Errorf("expected invalid input unchanged, got %q", got)
	}
}

// stringContent decodes the raw span body, control characters included.
func TestStringContentUnescapes(t *testing.T) {
	m := newTestModel(t, `{"s": "a\nb", "t": "plain"}`)

	m = press(m, "j")
	if got := m.stringContent(m.viewport.Cursor); got != "a\nb" {
		t.Errorf("expected real newline in content, got %q", got)
	}
	m = press(m, "j")
	if got := m.stringContent(m.viewport.Cursor); got != "plain" {
		t.Errorf("expected 'plain', got %q", got)
	}
}
