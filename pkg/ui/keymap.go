package ui

import (
	"fmt"
	"sort"
	"strings"
)

// Mode identifies the viewer's input state. Pending modes absorb the
// second key of a two-key sequence.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeSearchInput
	ModeHelp
	ModePendingG
	ModePendingY
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearchInput:
		return "search"
	case ModeHelp:
		return "help"
	case ModePendingG:
		return "pending-g"
	case ModePendingY:
		return "pending-y"
	}
	return "unknown"
}

// keyAliases lets config files spell keys that are awkward as YAML
// scalars. Lookup keys come from tea.KeyMsg.String().
var keyAliases = map[string]string{
	"space": " ",
}

// NormalizeKey canonicalizes a key name from a config file into the
// form the tables are keyed by.
func NormalizeKey(raw string) string {
	if k, ok := keyAliases[strings.ToLower(raw)]; ok {
		return k
	}
	return raw
}

// Keymap resolves (mode, key) pairs to actions through per-mode lookup
// tables. Dispatch is data: handlers switch on the resulting Action,
// never on key strings.
type Keymap struct {
	tables map[Mode]map[string]Action
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{tables: map[Mode]map[string]Action{
		ModeNormal: {
			"q":      ActionQuit,
			"ctrl+c": ActionQuit,

			"k":     ActionCursorUp,
			"up":    ActionCursorUp,
			"j":     ActionCursorDown,
			"down":  ActionCursorDown,
			"K":     ActionPrevSibling,
			"J":     ActionNextSibling,
			"p":     ActionParent,
			"i":     ActionFirstChild,
			"home":  ActionFirstLine,
			"G":     ActionLastLine,
			"end":   ActionLastLine,
			"g":     ActionGoPrefix,

			"ctrl+u": ActionHalfPageUp,
			"ctrl+d": ActionHalfPageDown,
			"ctrl+b": ActionPageUp,
			"pgup":   ActionPageUp,
			"ctrl+f": ActionPageDown,
			"pgdown": ActionPageDown,
			"H":      ActionScrollLeft,
			"L":      ActionScrollRight,
			"0":      ActionScrollReset,

			" ":     ActionToggleCollapse,
			"h":     ActionCollapse,
			"left":  ActionCollapse,
			"l":     ActionExpand,
			"right": ActionExpand,
			"c":     ActionCollapseNode,
			"e":     ActionExpandNode,
			"C":     ActionCollapseAll,
			"E":     ActionExpandAll,

			"/":   ActionSearchForward,
			"?":   ActionSearchBackward,
			"n":   ActionSearchNext,
			"N":   ActionSearchPrev,
			"*":   ActionSearchCurrent,
			"esc": ActionClearSearch,

			"y": ActionYankPrefix,

			"f1": ActionToggleHelp,
			"R":  ActionReload,
		},
		ModeSearchInput: {
			"enter":  ActionInputCommit,
			"esc":    ActionInputCancel,
			"ctrl+c": ActionInputCancel,
		},
		ModeHelp: {
			"k":      ActionCursorUp,
			"up":     ActionCursorUp,
			"j":      ActionCursorDown,
			"down":   ActionCursorDown,
			"ctrl+u": ActionHalfPageUp,
			"ctrl+d": ActionHalfPageDown,
			"pgup":   ActionPageUp,
			"pgdown": ActionPageDown,
		},
		ModePendingG: {
			"g": ActionFirstLine,
		},
		ModePendingY: {
			"y": ActionYankValue,
			"v": ActionYankRaw,
			"k": ActionYankKey,
			"p": ActionYankPath,
			"s": ActionYankString,
		},
	}}
}

// Lookup resolves one key press. Keys absent from a mode's table get
// that mode's default: ignored in Normal and the pending modes,
// appended to the buffer in SearchInput, and closing the overlay in
// Help.
func (k *Keymap) Lookup(mode Mode, key string) Action {
	if a, ok := k.tables[mode][key]; ok {
		return a
	}
	switch mode {
	case ModeSearchInput:
		return ActionInputAppend
	case ModeHelp:
		return ActionToggleHelp
	}
	return ActionNone
}

// KeysFor returns the Normal-mode keys bound to an action, sorted for
// stable help output.
func (k *Keymap) KeysFor(action Action) []string {
	var keys []string
	for key, a := range k.tables[ModeNormal] {
		if a == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// PendingKeysFor returns the second-stage keys reaching an action
// through a pending mode, prefixed with the prefix key.
func (k *Keymap) PendingKeysFor(mode Mode, prefix string, action Action) []string {
	var keys []string
	for key, a := range k.tables[mode] {
		if a == action {
			keys = append(keys, prefix+key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Bindings returns every key sequence reaching an action: its
// Normal-mode keys plus two-key sequences through the pending modes.
// Sorted shortest first so the mnemonic key leads, with keys that
// would render invisibly spelled out.
func (k *Keymap) Bindings(action Action) []string {
	keys := k.KeysFor(action)
	for _, p := range k.KeysFor(ActionGoPrefix) {
		keys = append(keys, k.PendingKeysFor(ModePendingG, p, action)...)
	}
	for _, p := range k.KeysFor(ActionYankPrefix) {
		keys = append(keys, k.PendingKeysFor(ModePendingY, p, action)...)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for i, key := range keys {
		if key == " " {
			keys[i] = "space"
		}
	}
	return keys
}

// ApplyOverrides rebinds Normal-mode keys from a config map of action
// name to key list. Every key previously bound to the action is
// released first, so an empty list (or the entry "none") unbinds the
// action entirely.
func (k *Keymap) ApplyOverrides(bindings map[string][]string) error {
	if len(bindings) == 0 {
		return nil
	}
	normal := k.tables[ModeNormal]

	// Deterministic application order so duplicate key assignments
	// resolve the same way on every run.
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := ActionByName(name)
		if !ok {
			return fmt.Errorf("unknown action %q in key bindings (see jw -keys for the list)", name)
		}
		for key, a := range normal {
			if a == action {
				delete(normal, key)
			}
		}
		for _, raw := range bindings[name] {
			if strings.EqualFold(raw, "none") {
				continue
			}
			normal[NormalizeKey(raw)] = action
		}
	}
	return nil
}
