// Package document holds a parsed JSON document and its view state: an
// arena-allocated node tree, per-node collapse flags, and the memoized
// line counts that keep collapse bookkeeping incremental. The value
// tree is immutable after Parse; the collapse flags and memos are the
// only mutable state, and every mutation goes through Document methods
// so the memos are never stale when read.
package document

// NodeID addresses a node in the document arena.
type NodeID int32

// InvalidID marks an absent link (no parent, no sibling, and so on).
const InvalidID NodeID = -1

// Kind classifies a JSON value.
type Kind uint8

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "invalid"
}

// IsContainer reports whether the kind can hold children.
func (k Kind) IsContainer() bool { return k == KindObject || k == KindArray }

// Span is a half-open byte range [Pos, End) into the source document.
type Span struct {
	Pos int
	End int
}

// Node is one JSON value, or one key:value member of an object. Nodes
// live in the arena and reference each other by NodeID rather than by
// pointer. Fields are read-only for callers; collapse state changes go
// through Document methods so the line-count memos stay consistent.
type Node struct {
	Parent NodeID
	First  NodeID // first child
	Last   NodeID // last child
	Next   NodeID // next sibling
	Prev   NodeID // previous sibling

	Kind      Kind
	Collapsed bool
	HasKey    bool   // node is an object member
	Key       string // member key, display form
	Text      string // scalar value, display form ("" for containers)
	Span      Span   // byte range of the value in the source
	Index     int32  // position among siblings
	Children  int32

	lines int64 // subtree line count if this node were expanded
}

// Document is a parsed JSON tree. IDs are assigned in document order,
// so comparing NodeIDs compares document positions.
type Document struct {
	nodes []Node
	src   []byte
	root  NodeID
}

// Root returns the top-level value's ID.
func (d *Document) Root() NodeID { return d.root }

// Len returns the number of nodes in the document.
func (d *Document) Len() int { return len(d.nodes) }

// Node returns the node for id. The returned pointer is valid for the
// life of the document; id must be in range.
func (d *Document) Node(id NodeID) *Node { return &d.nodes[id] }

// Source returns the raw bytes the document was parsed from.
func (d *Document) Source() []byte { return d.src }

// SpanText returns the raw source text of the node's value.
func (d *Document) SpanText(id NodeID) string {
	sp := d.nodes[id].Span
	return string(d.src[sp.Pos:sp.End])
}

// Parent returns the parent ID, or InvalidID at the root.
func (d *Document) Parent(id NodeID) NodeID { return d.nodes[id].Parent }

// FirstChild returns the first child ID, or InvalidID.
func (d *Document) FirstChild(id NodeID) NodeID { return d.nodes[id].First }

// LastChild returns the last child ID, or InvalidID.
func (d *Document) LastChild(id NodeID) NodeID { return d.nodes[id].Last }

// NextSibling returns the next sibling ID, or InvalidID.
func (d *Document) NextSibling(id NodeID) NodeID { return d.nodes[id].Next }

// PrevSibling returns the previous sibling ID, or InvalidID.
func (d *Document) PrevSibling(id NodeID) NodeID { return d.nodes[id].Prev }

// Depth returns the number of ancestors above id (root is 0).
func (d *Document) Depth(id NodeID) int {
	depth := 0
	for p := d.nodes[id].Parent; p != InvalidID; p = d.nodes[p].Parent {
		depth++
	}
	return depth
}

// CanCollapse reports whether id is a container with at least one
// child. Scalars and empty containers occupy one line either way, so
// collapsing them is meaningless.
func (d *Document) CanCollapse(id NodeID) bool {
	n := &d.nodes[id]
	return n.Kind.IsContainer() && n.Children > 0
}

// contribution is the number of visible lines the node's subtree
// renders at under the current collapse state: 1 for scalars, empty
// containers and collapsed containers, the expanded memo otherwise.
func (d *Document) contribution(id NodeID) int64 {
	n := &d.nodes[id]
	if !n.Kind.IsContainer() || n.Children == 0 || n.Collapsed {
		return 1
	}
	return n.lines
}

// SetCollapsed sets the collapse flag of a container and patches the
// line-count memos along the ancestor chain. Cost is proportional to
// tree depth, never to document size. No-op for scalars, empty
// containers, and flags already in the requested state.
func (d *Document) SetCollapsed(id NodeID, collapsed bool) {
	n := &d.nodes[id]
	if !n.Kind.IsContainer() || n.Children == 0 || n.Collapsed == collapsed {
		return
	}
	before := d.contribution(id)
	n.Collapsed = collapsed
	d.patchAncestors(n.Parent, d.contribution(id)-before)
}

// ToggleCollapse flips the collapse flag of a container.
func (d *Document) ToggleCollapse(id NodeID) {
	d.SetCollapsed(id, !d.nodes[id].Collapsed)
}

// patchAncestors adds delta to the expanded-line memo of every
// ancestor, stopping after the first collapsed one: a collapsed
// ancestor still needs the corrected memo for when it is expanded
// later, but its own one-line contribution is unchanged, so nothing
// above it moves.
func (d *Document) patchAncestors(id NodeID, delta int64) {
	if delta == 0 {
		return
	}
	for id != InvalidID {
		n := &d.nodes[id]
		n.lines += delta
		if n.Collapsed {
			return
		}
		id = n.Parent
	}
}

// SetCollapsedRecursive applies a collapse state uniformly to id and
// every container beneath it. The walk uses an explicit stack; document
// depth is input-controlled, so nothing in this package recurses over
// the tree. Cost is proportional to the subtree, plus the usual
// O(depth) ancestor patch.
func (d *Document) SetCollapsedRecursive(id NodeID, collapsed bool) {
	n := &d.nodes[id]
	if !n.Kind.IsContainer() {
		return
	}
	before := d.contribution(id)

	order := make([]NodeID, 0, 64)
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cn := &d.nodes[cur]
		if !cn.Kind.IsContainer() {
			continue
		}
		if cn.Children > 0 {
			cn.Collapsed = collapsed
		}
		order = append(order, cur)
		for c := cn.First; c != InvalidID; c = d.nodes[c].Next {
			stack = append(stack, c)
		}
	}

	// Reversed pre-order puts every child before its parent, so each
	// recount sees finished children.
	for i := len(order) - 1; i >= 0; i-- {
		d.recountNode(order[i])
	}
	d.patchAncestors(n.Parent, d.contribution(id)-before)
}

// recountNode recomputes one container's expanded-line memo from its
// children's current contributions.
func (d *Document) recountNode(id NodeID) {
	n := &d.nodes[id]
	if !n.Kind.IsContainer() || n.Children == 0 {
		n.lines = 1
		return
	}
	total := int64(2)
	for c := n.First; c != InvalidID; c = d.nodes[c].Next {
		total += d.contribution(c)
	}
	n.lines = total
}

// CollapseAll collapses every container in the document, the root
// included.
func (d *Document) CollapseAll() { d.SetCollapsedRecursive(d.root, true) }

// ExpandAll expands every container in the document.
func (d *Document) ExpandAll() { d.SetCollapsedRecursive(d.root, false) }

// IsVisible reports whether id's own line is currently visible, that
// is, no proper ancestor is collapsed.
func (d *Document) IsVisible(id NodeID) bool {
	for p := d.nodes[id].Parent; p != InvalidID; p = d.nodes[p].Parent {
		if d.nodes[p].Collapsed {
			return false
		}
	}
	return true
}

// VisibleAncestor returns id itself when no ancestor is collapsed, and
// otherwise the outermost collapsed ancestor: the node that owns the
// summary line id's content is folded into. Used to relocate the
// cursor after a collapse.
func (d *Document) VisibleAncestor(id NodeID) NodeID {
	out := id
	for p := d.nodes[id].Parent; p != InvalidID; p = d.nodes[p].Parent {
		if d.nodes[p].Collapsed {
			out = p
		}
	}
	return out
}

// Reveal expands every collapsed ancestor of id, and nothing else, so
// the node's own line becomes visible. It reports how many ancestors
// were expanded.
func (d *Document) Reveal(id NodeID) int {
	expanded := 0
	for p := d.nodes[id].Parent; p != InvalidID; p = d.nodes[p].Parent {
		if d.nodes[p].Collapsed {
			d.SetCollapsed(p, false)
			expanded++
		}
	}
	return expanded
}
