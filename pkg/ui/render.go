package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/jsonwork/pkg/document"
	"github.com/vanderheijden86/jsonwork/pkg/search"
)

// Row composition for the document view. Each logical line becomes a
// sequence of typed spans (indent, key, punctuation, value), which
// flatten into display cells before horizontal clipping. All column
// arithmetic is in display cells: wide runes take two columns,
// combining marks none, and control codepoints show as a width-1
// placeholder glyph, so a row's visible width never depends on byte or
// rune counts.

// RowSpan is one typed run of row text, before styling and clipping.
// Matchable spans hold a node's key or scalar text verbatim, so search
// match offsets index into Text directly.
type RowSpan struct {
	Kind      TokenKind
	Text      string
	Area      search.Area
	Matchable bool
}

const (
	matchNone uint8 = iota
	matchOther
	matchCurrent
)

// cell is one display column (or two, for wide runes) of composed row
// text. Zero-width runes fold into the preceding cell.
type cell struct {
	text  string
	width int
	kind  TokenKind
	match uint8
}

// RowParams carries the per-row view state for rendering.
type RowParams struct {
	HScroll   int
	Width     int
	OnCursor  bool
	Matches   []search.Match // matches on this row's node
	Active    search.Match
	HasActive bool
}

// Renderer turns line descriptors into styled terminal rows. It holds
// no document state; the same renderer serves every frame.
type Renderer struct {
	theme  Theme
	indent int
}

func NewRenderer(theme Theme, indentWidth int) *Renderer {
	if indentWidth < 1 {
		indentWidth = 2
	}
	return &Renderer{theme: theme, indent: indentWidth}
}

func (r *Renderer) SetTheme(theme Theme) { r.theme = theme }

// Row renders one row, styled, horizontally scrolled, and clipped to
// p.Width columns. Cursor rows pad to full width so the highlight bar
// spans the viewport.
func (r *Renderer) Row(doc *document.Document, ln document.Line, p RowParams) string {
	cells := clipCells(r.flattenRow(doc, ln, p), p.HScroll, p.Width)
	var sb strings.Builder
	used := 0
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j].kind == cells[i].kind && cells[j].match == cells[i].match {
			run.WriteString(cells[j].text)
			used += cells[j].width
			j++
		}
		sb.WriteString(r.styleFor(cells[i], p.OnCursor).Render(run.String()))
		i = j
	}
	if p.OnCursor && used < p.Width {
		sb.WriteString(r.theme.CursorBase.Render(strings.Repeat(" ", p.Width-used)))
	}
	return sb.String()
}

func (r *Renderer) styleFor(c cell, onCursor bool) lipgloss.Style {
	switch c.match {
	case matchCurrent:
		return r.theme.CurrentMatch
	case matchOther:
		return r.theme.Match
	}
	return r.theme.Token(c.kind, onCursor)
}

// RowText returns the row's full text with no styling, scrolling, or
// control-rune substitution.
func (r *Renderer) RowText(doc *document.Document, ln document.Line) string {
	var sb strings.Builder
	for _, sp := range r.composeSpans(doc, ln) {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// RowWidth returns the row's full display width in columns.
func (r *Renderer) RowWidth(doc *document.Document, ln document.Line) int {
	w := 0
	for _, c := range flattenSpans(r.composeSpans(doc, ln), RowParams{}) {
		w += c.width
	}
	return w
}

// plainRow is Row without styling, for geometry assertions in tests.
func (r *Renderer) plainRow(doc *document.Document, ln document.Line, p RowParams) string {
	var sb strings.Builder
	for _, c := range clipCells(r.flattenRow(doc, ln, p), p.HScroll, p.Width) {
		sb.WriteString(c.text)
	}
	return sb.String()
}

func (r *Renderer) flattenRow(doc *document.Document, ln document.Line, p RowParams) []cell {
	return flattenSpans(r.composeSpans(doc, ln), p)
}

// composeSpans lays out one logical line: indentation, the member key
// when present, and the role's content. The trailing comma lands on a
// node's last line (the scalar, summary, or closing-bracket line) when
// a next sibling follows.
func (r *Renderer) composeSpans(doc *document.Document, ln document.Line) []RowSpan {
	n := doc.Node(ln.Node)
	spans := make([]RowSpan, 0, 8)
	if d := doc.Depth(ln.Node) * r.indent; d > 0 {
		spans = append(spans, RowSpan{Kind: TokenPunct, Text: strings.Repeat(" ", d)})
	}

	if ln.Role == document.RoleClose {
		spans = append(spans, RowSpan{Kind: TokenPunct, Text: closeBracket(n.Kind)})
		return appendComma(spans, n)
	}

	if n.HasKey {
		if document.IsIdentKey(n.Key) {
			spans = append(spans, RowSpan{Kind: TokenKey, Text: n.Key, Area: search.AreaKey, Matchable: true})
		} else {
			spans = append(spans,
				RowSpan{Kind: TokenPunct, Text: `"`},
				RowSpan{Kind: TokenKey, Text: n.Key, Area: search.AreaKey, Matchable: true},
				RowSpan{Kind: TokenPunct, Text: `"`},
			)
		}
		spans = append(spans, RowSpan{Kind: TokenPunct, Text: ": "})
	}

	switch ln.Role {
	case document.RoleOpen:
		return append(spans, RowSpan{Kind: TokenPunct, Text: openBracket(n.Kind)})
	case document.RoleSummary:
		if n.Children == 0 {
			spans = append(spans, RowSpan{Kind: TokenPunct, Text: emptyBody(n.Kind)})
		} else {
			spans = append(spans, RowSpan{Kind: TokenSummary, Text: summaryBody(n.Kind)})
		}
	default:
		spans = r.appendScalar(spans, n)
	}
	return appendComma(spans, n)
}

func (r *Renderer) appendScalar(spans []RowSpan, n *document.Node) []RowSpan {
	switch n.Kind {
	case document.KindString:
		return append(spans,
			RowSpan{Kind: TokenPunct, Text: `"`},
			RowSpan{Kind: TokenString, Text: n.Text, Area: search.AreaValue, Matchable: true},
			RowSpan{Kind: TokenPunct, Text: `"`},
		)
	case document.KindNumber:
		return append(spans, RowSpan{Kind: TokenNumber, Text: n.Text, Area: search.AreaValue, Matchable: true})
	case document.KindBool:
		return append(spans, RowSpan{Kind: TokenBool, Text: n.Text, Area: search.AreaValue, Matchable: true})
	default:
		return append(spans, RowSpan{Kind: TokenNull, Text: n.Text, Area: search.AreaValue, Matchable: true})
	}
}

func appendComma(spans []RowSpan, n *document.Node) []RowSpan {
	if n.Next != document.InvalidID {
		return append(spans, RowSpan{Kind: TokenPunct, Text: ","})
	}
	return spans
}

func openBracket(k document.Kind) string {
	if k == document.KindObject {
		return "{"
	}
	return "["
}

func closeBracket(k document.Kind) string {
	if k == document.KindObject {
		return "}"
	}
	return "]"
}

func emptyBody(k document.Kind) string {
	if k == document.KindObject {
		return "{}"
	}
	return "[]"
}

func summaryBody(k document.Kind) string {
	if k == document.KindObject {
		return "{...}"
	}
	return "[...]"
}

// flattenSpans expands spans into display cells, substituting control
// runes with placeholder glyphs and folding zero-width runes into the
// cell before them. Match state is resolved per rune from the byte
// offset within the span's text.
func flattenSpans(spans []RowSpan, p RowParams) []cell {
	cells := make([]cell, 0, 64)
	for _, sp := range spans {
		for i, rn := range sp.Text {
			state := matchNone
			if sp.Matchable {
				state = matchStateAt(p, sp.Area, i)
			}
			if document.IsControlRune(rn) {
				cells = append(cells, cell{text: string(placeholderRune(rn)), width: 1, kind: TokenControl, match: state})
				continue
			}
			w := runewidth.RuneWidth(rn)
			if w == 0 {
				if len(cells) > 0 {
					cells[len(cells)-1].text += string(rn)
				}
				continue
			}
			cells = append(cells, cell{text: string(rn), width: w, kind: sp.Kind, match: state})
		}
	}
	return cells
}

// placeholderRune maps a control codepoint to its display stand-in:
// the Unicode control picture for C0 and DEL, U+FFFD for C1.
func placeholderRune(r rune) rune {
	switch {
	case r < 0x20:
		return '␀' + r
	case r == 0x7F:
		return '␡'
	default:
		return '�'
	}
}

func matchStateAt(p RowParams, area search.Area, i int) uint8 {
	for _, m := range p.Matches {
		if m.Area != area || i < m.Start || i >= m.End {
			continue
		}
		if p.HasActive && m == p.Active {
			return matchCurrent
		}
		return matchOther
	}
	return matchNone
}

// clipCells applies the horizontal scroll offset and right-edge clip.
// A wide cell straddling either boundary is never split: the boundary
// column renders as a blank carrying the cell's style instead.
func clipCells(cells []cell, hscroll, width int) []cell {
	if width <= 0 {
		return nil
	}
	if hscroll < 0 {
		hscroll = 0
	}
	out := make([]cell, 0, len(cells))
	used := 0
	i := 0
	for col := 0; i < len(cells) && col < hscroll; i++ {
		c := cells[i]
		if col+c.width > hscroll {
			out = append(out, cell{text: " ", width: 1, kind: c.kind, match: c.match})
			used = 1
		}
		col += c.width
	}
	for ; i < len(cells); i++ {
		c := cells[i]
		if used+c.width > width {
			if used < width {
				out = append(out, cell{text: " ", width: 1, kind: c.kind, match: c.match})
				used++
			}
			break
		}
		out = append(out, c)
		used += c.width
	}
	return out
}
