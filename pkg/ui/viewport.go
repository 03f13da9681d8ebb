package ui

import (
	"github.com/vanderheijden86/jsonwork/pkg/document"
)

// Viewport tracks the visible window over the document: the top line
// number, the cursor node, and the horizontal offset in display
// columns. The cursor always names a node; its line is derived on
// demand, so collapsing under the cursor can never leave it pointing
// at a stale line number. Cursor motion drags the window, and paging
// drags the cursor, each within the scroll margin.
type Viewport struct {
	doc *document.Document

	Cursor  document.NodeID
	Top     int64
	HScroll int

	Width     int
	Height    int
	Scrolloff int
}

func NewViewport(doc *document.Document) *Viewport {
	return &Viewport{doc: doc, Cursor: doc.Root(), Scrolloff: 3}
}

// SetDocument swaps the document under the viewport, keeping the view
// position where the new document allows it.
func (v *Viewport) SetDocument(doc *document.Document) {
	v.doc = doc
	if v.Cursor < 0 || int(v.Cursor) >= doc.Len() {
		v.Cursor = doc.Root()
	}
	v.Cursor = doc.VisibleAncestor(v.Cursor)
	v.Ensure()
}

// SetSize records the window geometry and re-clamps the view.
func (v *Viewport) SetSize(width, height int) {
	v.Width = width
	v.Height = height
	v.Ensure()
}

// CursorLine returns the cursor's current line number.
func (v *Viewport) CursorLine() int64 {
	return v.doc.LineOf(v.Cursor)
}

// Lines returns the window's line descriptors, at most Height of them.
func (v *Viewport) Lines() []document.Line {
	return v.doc.Window(v.Top, v.Height)
}

// Ensure clamps Top so the cursor stays inside the scroll margin and
// the window stays inside the document.
func (v *Viewport) Ensure() {
	if v.Height <= 0 {
		return
	}
	total := v.doc.TotalLines()
	maxTop := total - int64(v.Height)
	if maxTop < 0 {
		maxTop = 0
	}
	so := int64(v.Scrolloff)
	if 2*so >= int64(v.Height) {
		so = int64(v.Height-1) / 2
	}
	line := v.CursorLine()
	if line < v.Top+so {
		v.Top = line - so
	}
	if line > v.Top+int64(v.Height)-1-so {
		v.Top = line - int64(v.Height) + 1 + so
	}
	if v.Top > maxTop {
		v.Top = maxTop
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

// CursorTo moves the cursor to a specific node.
func (v *Viewport) CursorTo(id document.NodeID) {
	if id == document.InvalidID {
		return
	}
	v.Cursor = id
	v.Ensure()
}

func (v *Viewport) CursorUp() {
	v.CursorTo(v.doc.PrevVisibleNode(v.Cursor))
}

func (v *Viewport) CursorDown() {
	v.CursorTo(v.doc.NextVisibleNode(v.Cursor))
}

func (v *Viewport) CursorPrevSibling() {
	v.CursorTo(v.doc.PrevSibling(v.Cursor))
}

func (v *Viewport) CursorNextSibling() {
	v.CursorTo(v.doc.NextSibling(v.Cursor))
}

func (v *Viewport) CursorParent() {
	v.CursorTo(v.doc.Parent(v.Cursor))
}

// CursorFirstChild descends into an expanded container; no-op on
// scalars and collapsed or empty containers.
func (v *Viewport) CursorFirstChild() {
	n := v.doc.Node(v.Cursor)
	if n.Kind.IsContainer() && n.Children > 0 && !n.Collapsed {
		v.CursorTo(n.First)
	}
}

func (v *Viewport) CursorFirst() {
	v.CursorTo(v.doc.Root())
}

func (v *Viewport) CursorLast() {
	v.CursorTo(v.doc.LastVisibleNode())
}

func (v *Viewport) HalfPageDown() { v.page(int64(v.Height) / 2) }
func (v *Viewport) HalfPageUp()   { v.page(-int64(v.Height) / 2) }
func (v *Viewport) PageDown()     { v.page(int64(v.Height)) }
func (v *Viewport) PageUp()       { v.page(-int64(v.Height)) }

// page shifts the window and snaps the cursor to keep its screen
// position, preferring cursor-addressable lines.
func (v *Viewport) page(delta int64) {
	if v.Height <= 0 || delta == 0 {
		return
	}
	total := v.doc.TotalLines()
	maxTop := total - int64(v.Height)
	if maxTop < 0 {
		maxTop = 0
	}
	offset := v.CursorLine() - v.Top
	v.Top += delta
	if v.Top > maxTop {
		v.Top = maxTop
	}
	if v.Top < 0 {
		v.Top = 0
	}
	v.snapCursor(offset)
}

// snapCursor places the cursor on the window line nearest the given
// screen offset. Closing-bracket lines are not cursor-addressable, so
// it scans downward from the offset and then upward before giving up
// and re-clamping the window around the unmoved cursor.
func (v *Viewport) snapCursor(offset int64) {
	lines := v.Lines()
	if len(lines) == 0 {
		v.Ensure()
		return
	}
	at := int(offset)
	if at < 0 {
		at = 0
	}
	if at >= len(lines) {
		at = len(lines) - 1
	}
	for i := at; i < len(lines); i++ {
		if lines[i].Role != document.RoleClose {
			v.Cursor = lines[i].Node
			return
		}
	}
	for i := at - 1; i >= 0; i-- {
		if lines[i].Role != document.RoleClose {
			v.Cursor = lines[i].Node
			return
		}
	}
	v.Ensure()
}

// ScrollLeft moves the horizontal offset toward column zero.
func (v *Viewport) ScrollLeft(step int) {
	v.HScroll -= step
	if v.HScroll < 0 {
		v.HScroll = 0
	}
}

// ScrollRight moves the horizontal offset rightward, keeping at least
// one column of the cursor row reachable. rowWidth is the cursor
// row's full display width.
func (v *Viewport) ScrollRight(step, rowWidth int) {
	v.HScroll += step
	if max := rowWidth - 1; v.HScroll > max {
		v.HScroll = max
	}
	if v.HScroll < 0 {
		v.HScroll = 0
	}
}

// ResetScroll returns the view to column zero.
func (v *Viewport) ResetScroll() {
	v.HScroll = 0
}
