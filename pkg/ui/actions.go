package ui

import "sort"

// Action is everything a key press can do. The keymap tables map
// (mode, key) pairs onto these.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit

	// Cursor movement
	ActionCursorUp
	ActionCursorDown
	ActionPrevSibling
	ActionNextSibling
	ActionParent
	ActionFirstChild
	ActionFirstLine
	ActionLastLine

	// Scrolling
	ActionHalfPageUp
	ActionHalfPageDown
	ActionPageUp
	ActionPageDown
	ActionScrollLeft
	ActionScrollRight
	ActionScrollReset

	// Collapse state
	ActionToggleCollapse
	ActionCollapse
	ActionExpand
	ActionCollapseNode
	ActionExpandNode
	ActionCollapseAll
	ActionExpandAll

	// Search
	ActionSearchForward
	ActionSearchBackward
	ActionSearchNext
	ActionSearchPrev
	ActionSearchCurrent
	ActionClearSearch

	// Prefixes
	ActionGoPrefix
	ActionYankPrefix

	// Yanks (reached through the y prefix)
	ActionYankValue
	ActionYankRaw
	ActionYankKey
	ActionYankPath
	ActionYankString

	ActionToggleHelp
	ActionReload

	// Search-input mode
	ActionInputCommit
	ActionInputCancel
	ActionInputAppend

	actionCount
)

// actionRegistry maps canonical action names to actions. Config key
// overrides and the help overlay both resolve through it.
var actionRegistry = map[string]Action{
	"quit": ActionQuit,

	"cursor_up":    ActionCursorUp,
	"cursor_down":  ActionCursorDown,
	"prev_sibling": ActionPrevSibling,
	"next_sibling": ActionNextSibling,
	"parent":       ActionParent,
	"first_child":  ActionFirstChild,
	"first_line":   ActionFirstLine,
	"last_line":    ActionLastLine,

	"half_page_up":   ActionHalfPageUp,
	"half_page_down": ActionHalfPageDown,
	"page_up":        ActionPageUp,
	"page_down":      ActionPageDown,
	"scroll_left":    ActionScrollLeft,
	"scroll_right":   ActionScrollRight,
	"scroll_reset":   ActionScrollReset,

	"toggle_collapse": ActionToggleCollapse,
	"collapse":        ActionCollapse,
	"expand":          ActionExpand,
	"collapse_node":   ActionCollapseNode,
	"expand_node":     ActionExpandNode,
	"collapse_all":    ActionCollapseAll,
	"expand_all":      ActionExpandAll,

	"search":         ActionSearchForward,
	"search_back":    ActionSearchBackward,
	"search_next":    ActionSearchNext,
	"search_prev":    ActionSearchPrev,
	"search_current": ActionSearchCurrent,
	"clear_search":   ActionClearSearch,

	"go":   ActionGoPrefix,
	"yank": ActionYankPrefix,

	"yank_value":  ActionYankValue,
	"yank_raw":    ActionYankRaw,
	"yank_key":    ActionYankKey,
	"yank_path":   ActionYankPath,
	"yank_string": ActionYankString,

	"help":   ActionToggleHelp,
	"reload": ActionReload,
}

// actionDescriptions backs the help overlay.
var actionDescriptions = map[Action]string{
	ActionQuit: "quit",

	ActionCursorUp:    "move cursor up",
	ActionCursorDown:  "move cursor down",
	ActionPrevSibling: "previous sibling",
	ActionNextSibling: "next sibling",
	ActionParent:      "move to parent",
	ActionFirstChild:  "move to first child",
	ActionFirstLine:   "jump to first line",
	ActionLastLine:    "jump to last line",

	ActionHalfPageUp:   "half page up",
	ActionHalfPageDown: "half page down",
	ActionPageUp:       "page up",
	ActionPageDown:     "page down",
	ActionScrollLeft:   "scroll left",
	ActionScrollRight:  "scroll right",
	ActionScrollReset:  "reset horizontal scroll",

	ActionToggleCollapse: "toggle collapse",
	ActionCollapse:       "collapse, or move to parent",
	ActionExpand:         "expand, or move into",
	ActionCollapseNode:   "collapse node",
	ActionExpandNode:     "expand node",
	ActionCollapseAll:    "collapse everything",
	ActionExpandAll:      "expand everything",

	ActionSearchForward:  "search forward",
	ActionSearchBackward: "search backward",
	ActionSearchNext:     "next match",
	ActionSearchPrev:     "previous match",
	ActionSearchCurrent:  "search for key or value under cursor",
	ActionClearSearch:    "clear search highlight",

	ActionGoPrefix:   "g prefix (gg jumps to first line)",
	ActionYankPrefix: "yank prefix",

	ActionYankValue:  "yank value as formatted JSON",
	ActionYankRaw:    "yank raw value text",
	ActionYankKey:    "yank member key",
	ActionYankPath:   "yank path from root",
	ActionYankString: "yank unescaped string content",

	ActionToggleHelp: "toggle this help",
	ActionReload:     "reload the document",
}

// ActionByName resolves a canonical action name.
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

// IsActionName reports whether name is a registered action.
func IsActionName(name string) bool {
	_, ok := actionRegistry[name]
	return ok
}

// ActionNames returns all registered action names, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the canonical name for a, or "" for internal actions.
func (a Action) Name() string {
	for name, action := range actionRegistry {
		if action == a {
			return name
		}
	}
	return ""
}

// Describe returns the help text for a.
func (a Action) Describe() string {
	return actionDescriptions[a]
}
