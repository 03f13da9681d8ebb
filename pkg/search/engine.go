// Package search finds regular-expression matches in a parsed JSON
// document and tracks the active match for n/N style cycling.
//
// Matching runs over node content (member keys and scalar display
// text) in document order and ignores collapse state entirely, so a
// hit inside a collapsed subtree is still found; revealing it is the
// caller's job.
package search

import (
	"errors"
	"regexp"
	"sort"

	"github.com/vanderheijden86/jsonwork/pkg/document"
	"github.com/vanderheijden86/jsonwork/pkg/metrics"
)

// ErrNoMatch reports a well-formed pattern that matches nothing.
var ErrNoMatch = errors.New("no matches")

// Direction selects which way a search scans from the starting node.
type Direction int8

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Area says which part of a node's row a match landed in.
type Area uint8

const (
	AreaKey Area = iota
	AreaValue
)

// Match is one regexp hit. Start and End are byte offsets into the
// node's display text (the key for AreaKey, the scalar text for
// AreaValue).
type Match struct {
	Node  document.NodeID
	Area  Area
	Start int
	End   int
}

// Engine holds the compiled pattern and the full match list for one
// document. The match list is ordered by document order: ascending
// node, key hits before value hits on the same node.
type Engine struct {
	doc     *document.Document
	pattern string
	re      *regexp.Regexp
	matches []Match
	current int
}

func NewEngine(doc *document.Document) *Engine {
	return &Engine{doc: doc, current: -1}
}

// SetDocument points the engine at a fresh document, rescanning with
// the active pattern. Node identities do not survive a reload, so the
// active match is dropped.
func (e *Engine) SetDocument(doc *document.Document) {
	e.doc = doc
	e.current = -1
	e.matches = nil
	if e.re != nil {
		e.scan()
	}
}

// Search compiles pattern and activates the nearest match in the given
// direction from the starting node, wrapping around at most once. The
// returned bool reports whether it wrapped. A compile error leaves the
// previous search untouched; a pattern with no hits replaces it and
// returns ErrNoMatch.
func (e *Engine) Search(pattern string, dir Direction, from document.NodeID) (Match, bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Match{}, false, err
	}
	e.pattern = pattern
	e.re = re
	e.scan()
	if len(e.matches) == 0 {
		e.current = -1
		return Match{}, false, ErrNoMatch
	}
	idx, wrapped := e.nearest(dir, from)
	e.current = idx
	return e.matches[idx], wrapped, nil
}

// Next advances to the following match in document order, wrapping to
// the first after the last. The bool reports the wrap.
func (e *Engine) Next() (Match, bool, error) {
	if len(e.matches) == 0 {
		return Match{}, false, ErrNoMatch
	}
	if e.current < 0 {
		e.current = 0
		return e.matches[0], false, nil
	}
	e.current++
	if e.current == len(e.matches) {
		e.current = 0
		return e.matches[0], true, nil
	}
	return e.matches[e.current], false, nil
}

// Prev steps back to the preceding match, wrapping to the last before
// the first.
func (e *Engine) Prev() (Match, bool, error) {
	if len(e.matches) == 0 {
		return Match{}, false, ErrNoMatch
	}
	if e.current < 0 {
		e.current = len(e.matches) - 1
		return e.matches[e.current], false, nil
	}
	e.current--
	if e.current < 0 {
		e.current = len(e.matches) - 1
		return e.matches[e.current], true, nil
	}
	return e.matches[e.current], false, nil
}

// Active returns the current match, if any.
func (e *Engine) Active() (Match, bool) {
	if e.current < 0 || e.current >= len(e.matches) {
		return Match{}, false
	}
	return e.matches[e.current], true
}

// ActiveIndex is the zero-based position of the active match, or -1.
func (e *Engine) ActiveIndex() int { return e.current }

func (e *Engine) Count() int      { return len(e.matches) }
func (e *Engine) Pattern() string { return e.pattern }

// Matches exposes the full ordered match list.
func (e *Engine) Matches() []Match { return e.matches }

// ForNode returns the contiguous run of matches on one node, for row
// highlighting.
func (e *Engine) ForNode(id document.NodeID) []Match {
	lo := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].Node >= id })
	hi := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].Node > id })
	return e.matches[lo:hi]
}

// Clear drops the pattern, match list, and active match.
func (e *Engine) Clear() {
	e.pattern = ""
	e.re = nil
	e.matches = nil
	e.current = -1
}

// LiteralPattern builds a pattern matching the node's own text
// verbatim: the member key if it has one, otherwise its scalar text.
// Unkeyed containers have no text to match.
func (e *Engine) LiteralPattern(id document.NodeID) (string, bool) {
	n := e.doc.Node(id)
	switch {
	case n.HasKey:
		return regexp.QuoteMeta(n.Key), true
	case !n.Kind.IsContainer():
		return regexp.QuoteMeta(n.Text), true
	}
	return "", false
}

// scan rebuilds the match list. Node IDs are assigned in document
// order during parsing, so a single pass over the arena visits every
// row top to bottom.
func (e *Engine) scan() {
	defer metrics.Timer(metrics.SearchScan)()

	e.matches = e.matches[:0]
	for id := document.NodeID(0); int(id) < e.doc.Len(); id++ {
		n := e.doc.Node(id)
		if n.HasKey {
			for _, span := range e.re.FindAllStringIndex(n.Key, -1) {
				e.matches = append(e.matches, Match{Node: id, Area: AreaKey, Start: span[0], End: span[1]})
			}
		}
		if !n.Kind.IsContainer() {
			for _, span := range e.re.FindAllStringIndex(n.Text, -1) {
				e.matches = append(e.matches, Match{Node: id, Area: AreaValue, Start: span[0], End: span[1]})
			}
		}
	}
}

// nearest picks the first match strictly beyond from in the scan
// direction, wrapping to the far end when nothing lies beyond.
func (e *Engine) nearest(dir Direction, from document.NodeID) (int, bool) {
	if dir == Backward {
		idx := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].Node >= from })
		if idx == 0 {
			return len(e.matches) - 1, true
		}
		return idx - 1, false
	}
	idx := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].Node > from })
	if idx == len(e.matches) {
		return 0, true
	}
	return idx, false
}
