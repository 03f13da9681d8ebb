package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/jsonwork/pkg/config"
	"github.com/vanderheijden86/jsonwork/pkg/debug"
	"github.com/vanderheijden86/jsonwork/pkg/document"
	"github.com/vanderheijden86/jsonwork/pkg/metrics"
	"github.com/vanderheijden86/jsonwork/pkg/search"
	"github.com/vanderheijden86/jsonwork/pkg/watcher"
)

// hScrollStep is how many columns one horizontal scroll step moves.
const hScrollStep = 4

// FileChangedMsg is sent when the watched document changes on disk.
type FileChangedMsg struct{}

// WatchFileCmd returns a command that waits for the next file change
// and delivers it as a FileChangedMsg.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// Model is the viewer's top-level bubbletea model: one document, one
// viewport over it, and the input modes layered on top.
type Model struct {
	doc      *document.Document
	docPath  string // empty when the document came from stdin
	viewport *Viewport
	renderer *Renderer
	engine   *search.Engine
	keymap   *Keymap
	theme    Theme
	help     HelpModel

	mode        Mode
	searchInput textinput.Model
	searchDir   search.Direction
	searchErr   string // inline pattern error shown in the search bar

	width  int
	height int
	ready  bool

	statusMsg     string
	statusIsError bool
	wrapped       bool // last match jump wrapped around the document

	watcher    *watcher.Watcher
	lastReload time.Time
}

// NewModel builds a model over a parsed document. path is the source
// file ("" for stdin); reload and watch need it.
func NewModel(doc *document.Document, path string) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return Model{
		doc:         doc,
		docPath:     path,
		viewport:    NewViewport(doc),
		renderer:    NewRenderer(theme, 2),
		engine:      search.NewEngine(doc),
		keymap:      DefaultKeymap(),
		theme:       theme,
		searchInput: ti,
		lastReload:  time.Now(),
	}
}

// WithConfig applies the resolved configuration. Theme and keymap come
// in already built: flag overrides and key rebinding happen in main,
// where errors can still go to stderr.
func (m Model) WithConfig(cfg config.Config, theme Theme, km *Keymap) Model {
	m.theme = theme
	m.keymap = km
	m.renderer = NewRenderer(theme, cfg.IndentWidth)
	if cfg.Scrolloff >= 0 {
		m.viewport.Scrolloff = cfg.Scrolloff
	}
	return m
}

// WithWatcher attaches a started file watcher; Init arms the wait.
func (m Model) WithWatcher(w *watcher.Watcher) Model {
	m.watcher = w
	return m
}

// Stop releases background resources. main defers it.
func (m Model) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchFileCmd(m.watcher)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		bodyHeight := m.height - 1 // status bar keeps one row
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		m.viewport.SetSize(m.width, bodyHeight)
		inputWidth := m.width - 4
		if inputWidth < 1 {
			inputWidth = 1
		}
		m.searchInput.Width = inputWidth
		return m, nil

	case FileChangedMsg:
		return m.reload(true)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.Lookup(m.mode, msg.String())

	// Transient messages live until the next key press.
	m.statusMsg = ""
	m.statusIsError = false

	switch m.mode {
	case ModeSearchInput:
		return m.handleSearchKey(action, msg)

	case ModeHelp:
		m.handleHelpKey(action)
		return m, nil

	case ModePendingG:
		m.mode = ModeNormal
		if action == ActionFirstLine {
			m.viewport.CursorFirst()
		}
		return m, nil

	case ModePendingY:
		m.mode = ModeNormal
		m.handleYank(action)
		return m, nil
	}

	return m.handleNormal(action)
}

func (m Model) handleSearchKey(action Action, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action {
	case ActionInputCancel:
		m.mode = ModeNormal
		m.searchErr = ""
		m.searchInput.Blur()
		return m, nil

	case ActionInputCommit:
		return m.commitSearch()

	default: // ActionInputAppend: textinput handles editing keys itself
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.searchErr = ""
		return m, cmd
	}
}

func (m *Model) handleHelpKey(action Action) {
	switch action {
	case ActionCursorUp:
		m.help.Scroll(-1)
	case ActionCursorDown:
		m.help.Scroll(1)
	case ActionHalfPageUp:
		m.help.Scroll(-5)
	case ActionHalfPageDown:
		m.help.Scroll(5)
	case ActionPageUp:
		m.help.Scroll(-10)
	case ActionPageDown:
		m.help.Scroll(10)
	default:
		m.mode = ModeNormal
	}
}

func (m Model) handleNormal(action Action) (tea.Model, tea.Cmd) {
	v := m.viewport
	switch action {
	case ActionQuit:
		return m, tea.Quit

	case ActionCursorUp:
		v.CursorUp()
	case ActionCursorDown:
		v.CursorDown()
	case ActionPrevSibling:
		v.CursorPrevSibling()
	case ActionNextSibling:
		v.CursorNextSibling()
	case ActionParent:
		v.CursorParent()
	case ActionFirstChild:
		v.CursorFirstChild()
	case ActionFirstLine:
		v.CursorFirst()
	case ActionLastLine:
		v.CursorLast()

	case ActionHalfPageUp:
		v.HalfPageUp()
	case ActionHalfPageDown:
		v.HalfPageDown()
	case ActionPageUp:
		v.PageUp()
	case ActionPageDown:
		v.PageDown()
	case ActionScrollLeft:
		v.ScrollLeft(hScrollStep)
	case ActionScrollRight:
		v.ScrollRight(hScrollStep, m.cursorRowWidth())
	case ActionScrollReset:
		v.ResetScroll()

	case ActionToggleCollapse:
		if m.doc.CanCollapse(v.Cursor) {
			m.doc.ToggleCollapse(v.Cursor)
			v.Ensure()
		}
	case ActionCollapse:
		m.collapseOrParent()
	case ActionExpand:
		m.expandOrFirstChild()
	case ActionCollapseNode:
		m.doc.SetCollapsed(v.Cursor, true)
		v.Ensure()
	case ActionExpandNode:
		m.doc.SetCollapsed(v.Cursor, false)
		v.Ensure()
	case ActionCollapseAll:
		m.doc.CollapseAll()
		v.CursorTo(m.doc.VisibleAncestor(v.Cursor))
	case ActionExpandAll:
		m.doc.ExpandAll()
		v.Ensure()

	case ActionSearchForward:
		return m.startSearch(search.Forward)
	case ActionSearchBackward:
		return m.startSearch(search.Backward)
	case ActionSearchNext:
		m.cycleMatch(m.engine.Next)
	case ActionSearchPrev:
		m.cycleMatch(m.engine.Prev)
	case ActionSearchCurrent:
		m.searchCurrent()
	case ActionClearSearch:
		m.engine.Clear()
		m.wrapped = false

	case ActionGoPrefix:
		m.mode = ModePendingG
	case ActionYankPrefix:
		m.mode = ModePendingY
	case ActionToggleHelp:
		m.mode = ModeHelp
		m.help.Reset()
	case ActionReload:
		return m.reload(false)
	}
	return m, nil
}

// collapseOrParent is vim-style h: fold the container under the cursor,
// or climb to the parent when there is nothing left to fold here.
func (m *Model) collapseOrParent() {
	v := m.viewport
	n := m.doc.Node(v.Cursor)
	if n.Kind.IsContainer() && !n.Collapsed && n.Children > 0 {
		m.doc.SetCollapsed(v.Cursor, true)
		v.Ensure()
		return
	}
	v.CursorParent()
}

// expandOrFirstChild is vim-style l: unfold the container under the
// cursor, or step into it when it is already open.
func (m *Model) expandOrFirstChild() {
	v := m.viewport
	n := m.doc.Node(v.Cursor)
	if n.Kind.IsContainer() && n.Collapsed {
		m.doc.SetCollapsed(v.Cursor, false)
		v.Ensure()
		return
	}
	v.CursorFirstChild()
}

func (m Model) startSearch(dir search.Direction) (tea.Model, tea.Cmd) {
	m.mode = ModeSearchInput
	m.searchDir = dir
	m.searchErr = ""
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	return m, textinput.Blink
}

func (m Model) commitSearch() (tea.Model, tea.Cmd) {
	pattern := m.searchInput.Value()
	if pattern == "" {
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}
	match, wrapped, err := m.engine.Search(pattern, m.searchDir, m.viewport.Cursor)
	if err != nil {
		if errors.Is(err, search.ErrNoMatch) {
			m.mode = ModeNormal
			m.searchInput.Blur()
			m.setStatus(fmt.Sprintf("no matches: %s", pattern), true)
			return m, nil
		}
		// Bad pattern: stay in the input so it can be fixed.
		m.searchErr = err.Error()
		return m, nil
	}
	m.mode = ModeNormal
	m.searchInput.Blur()
	m.jumpToMatch(match, wrapped)
	return m, nil
}

// cycleMatch runs engine.Next or engine.Prev and moves to the result.
func (m *Model) cycleMatch(step func() (search.Match, bool, error)) {
	match, wrapped, err := step()
	if err != nil {
		if m.engine.Pattern() == "" {
			m.setStatus("no previous search", true)
			return
		}
		m.setStatus(fmt.Sprintf("no matches: %s", m.engine.Pattern()), true)
		return
	}
	m.jumpToMatch(match, wrapped)
}

// searchCurrent searches for the cursor node's own key or scalar text,
// taken literally.
func (m *Model) searchCurrent() {
	pattern, ok := m.engine.LiteralPattern(m.viewport.Cursor)
	if !ok {
		m.setStatus("nothing to search for here", true)
		return
	}
	match, wrapped, err := m.engine.Search(pattern, search.Forward, m.viewport.Cursor)
	if err != nil {
		m.setStatus(fmt.Sprintf("no matches: %s", pattern), true)
		return
	}
	m.jumpToMatch(match, wrapped)
}

// jumpToMatch expands whatever hides the match and puts the cursor on
// its node.
func (m *Model) jumpToMatch(match search.Match, wrapped bool) {
	m.doc.Reveal(match.Node)
	m.viewport.CursorTo(match.Node)
	m.wrapped = wrapped
}

func (m *Model) handleYank(action Action) {
	id := m.viewport.Cursor
	n := m.doc.Node(id)
	switch action {
	case ActionYankValue:
		m.yank("value", prettyJSON(m.doc.SpanText(id)))
	case ActionYankRaw:
		m.yank("raw value", m.doc.SpanText(id))
	case ActionYankKey:
		if !n.HasKey {
			m.setStatus("no key here", true)
			return
		}
		m.yank("key", n.Key)
	case ActionYankPath:
		m.yank("path", m.doc.Path(id))
	case ActionYankString:
		if n.Kind != document.KindString {
			m.setStatus("not a string", true)
			return
		}
		m.yank("string", m.stringContent(id))
	}
}

// stringContent is the true value of a string node: fully unescaped,
// control characters included. Falls back to the display form if the
// body does not decode.
func (m Model) stringContent(id document.NodeID) string {
	raw := m.doc.SpanText(id)
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	s, err := document.Unescape(body)
	if err != nil {
		return m.doc.Node(id).Text
	}
	return s
}

func (m *Model) yank(what, text string) {
	if err := clipboard.WriteAll(text); err != nil {
		m.setStatus(fmt.Sprintf("clipboard: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("copied %s (%d bytes)", what, len(text)), false)
}

// prettyJSON reindents a raw value span for the clipboard. The span is
// valid JSON by construction; on any error the raw text goes out as is.
func prettyJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

// reload re-reads the document file. A parse failure keeps the old
// tree on screen and reports the error. fromWatch re-arms the watcher
// wait regardless of the outcome.
func (m Model) reload(fromWatch bool) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if fromWatch && m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	if m.docPath == "" {
		if !fromWatch {
			m.setStatus("document came from stdin, nothing to reload", true)
		}
		return m, tea.Batch(cmds...)
	}

	start := time.Now()
	src, err := os.ReadFile(m.docPath)
	if err != nil {
		m.setStatus(fmt.Sprintf("reload: %v", err), true)
		return m, tea.Batch(cmds...)
	}
	doc, err := document.Parse(src)
	if err != nil {
		m.setStatus(fmt.Sprintf("reload: %v", err), true)
		return m, tea.Batch(cmds...)
	}
	debug.LogTiming("reload", time.Since(start))

	m.doc = doc
	m.viewport.SetDocument(doc)
	m.engine.SetDocument(doc)
	m.wrapped = false
	m.lastReload = time.Now()
	m.setStatus("reloaded", false)
	return m, tea.Batch(cmds...)
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
}

func (m Model) cursorRowWidth() int {
	return m.renderer.RowWidth(m.doc, m.doc.NodeLine(m.viewport.Cursor))
}

func (m Model) View() string {
	defer metrics.Timer(metrics.FrameRender)()

	if !m.ready {
		return "Loading..."
	}

	if m.mode == ModeHelp {
		overlay := m.help.View(m.keymap, m.theme, m.width, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	bottom := m.renderStatusBar()
	if m.mode == ModeSearchInput {
		bottom = m.renderSearchBar()
	}
	return m.renderBody() + "\n" + bottom
}

// renderBody materializes exactly the viewport's window of rows. Rows
// past the end of the document show a tilde, pager style.
func (m Model) renderBody() string {
	v := m.viewport
	active, hasActive := m.engine.Active()
	tilde := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted)

	rows := make([]string, 0, v.Height)
	for _, ln := range v.Lines() {
		p := RowParams{
			HScroll:   v.HScroll,
			Width:     m.width,
			OnCursor:  ln.Node == v.Cursor && ln.Role != document.RoleClose,
			Matches:   m.engine.ForNode(ln.Node),
			Active:    active,
			HasActive: hasActive,
		}
		rows = append(rows, m.renderer.Row(m.doc, ln, p))
	}
	for len(rows) < v.Height {
		rows = append(rows, tilde.Render("~"))
	}
	return strings.Join(rows, "\n")
}

// renderStatusBar is the bottom row outside search input: a transient
// message when one is pending, otherwise cursor path on the left and
// search/position/watch state on the right.
func (m Model) renderStatusBar() string {
	t := m.theme

	if m.statusMsg != "" {
		style := t.StatusInfo
		if m.statusIsError {
			style = t.StatusError
		}
		msg := style.Render(truncate(" "+m.statusMsg, m.width))
		remaining := m.width - lipgloss.Width(msg)
		if remaining < 0 {
			remaining = 0
		}
		return msg + strings.Repeat(" ", remaining)
	}

	var right []string
	if pat := m.engine.Pattern(); pat != "" && m.engine.Count() > 0 {
		seg := fmt.Sprintf("/%s %d/%d", pat, m.engine.ActiveIndex()+1, m.engine.Count())
		if m.wrapped {
			seg += " (wrapped)"
		}
		right = append(right, seg)
	}
	right = append(right, fmt.Sprintf("%d/%d", m.viewport.CursorLine()+1, m.doc.TotalLines()))
	if m.watcher != nil {
		right = append(right, "watching · "+FormatTimeRel(m.lastReload))
	}
	switch m.mode {
	case ModePendingG:
		right = append(right, "g")
	case ModePendingY:
		right = append(right, "y")
	}
	rightStr := strings.Join(right, " · ") + " "

	avail := m.width - lipgloss.Width(rightStr) - 2
	if avail < 0 {
		avail = 0
	}
	left := " " + truncateLeft(m.cursorSummary(), avail)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Render(left + strings.Repeat(" ", gap) + rightStr)
}

// cursorSummary is the status-bar path segment. Collapsed containers
// carry their hidden child count here rather than on the row.
func (m Model) cursorSummary() string {
	id := m.viewport.Cursor
	n := m.doc.Node(id)
	path := m.doc.Path(id)
	if n.Kind.IsContainer() && n.Collapsed && n.Children > 0 {
		return fmt.Sprintf("%s (%d items)", path, n.Children)
	}
	return path
}

func (m Model) renderSearchBar() string {
	prompt := "/"
	if m.searchDir == search.Backward {
		prompt = "?"
	}
	bar := m.theme.SearchPrompt.Render(prompt) + m.searchInput.View()
	if m.searchErr != "" {
		bar += "  " + m.theme.StatusError.Render(truncate(m.searchErr, m.width/2))
	}
	return bar
}
