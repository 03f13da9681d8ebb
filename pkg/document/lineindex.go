package document

// Logical line semantics: a scalar (or key:scalar member) is one line;
// a collapsed or empty container is one line; an expanded container is
// an opening line, each child's lines, and a closing line. Lines are
// never materialized as a list. Resolve descends from the root with the
// memoized counts, and Window walks successors from a single Resolve,
// so a 50-row window of a fifty-million-line document costs a descent
// plus 49 constant-time steps.

// Role identifies which of a node's lines a logical line is.
type Role uint8

const (
	RoleScalar  Role = iota // a scalar or key:scalar line
	RoleOpen                // an expanded container's opening line
	RoleSummary             // a collapsed or empty container's single line
	RoleClose               // an expanded container's closing line
)

func (r Role) String() string {
	switch r {
	case RoleScalar:
		return "scalar"
	case RoleOpen:
		return "open"
	case RoleSummary:
		return "summary"
	case RoleClose:
		return "close"
	}
	return "invalid"
}

// Line locates one logical line: a node plus which of that node's
// lines it is.
type Line struct {
	Node NodeID
	Role Role
}

// TotalLines returns the number of visible lines in the document.
func (d *Document) TotalLines() int64 { return d.contribution(d.root) }

// Resolve maps a 0-based line number to its line descriptor by
// descending from the root, using the memoized counts to skip whole
// subtrees. Cost grows with tree depth and the siblings scanned on the
// descent path, not with the line number. Returns false when the line
// number is out of range.
func (d *Document) Resolve(line int64) (Line, bool) {
	if line < 0 || line >= d.TotalLines() {
		return Line{}, false
	}
	id := d.root
	for {
		n := &d.nodes[id]
		c := d.contribution(id)
		if c == 1 {
			return Line{Node: id, Role: singleLineRole(n)}, true
		}
		if line == 0 {
			return Line{Node: id, Role: RoleOpen}, true
		}
		if line == c-1 {
			return Line{Node: id, Role: RoleClose}, true
		}
		line--
		child := n.First
		for {
			cc := d.contribution(child)
			if line < cc {
				break
			}
			line -= cc
			child = d.nodes[child].Next
		}
		id = child
	}
}

// singleLineRole is the role of a node that renders as one line.
func singleLineRole(n *Node) Role {
	if n.Kind.IsContainer() {
		return RoleSummary
	}
	return RoleScalar
}

// firstRole is the role of the node's first (primary) line.
func (d *Document) firstRole(id NodeID) Role {
	n := &d.nodes[id]
	if n.Kind.IsContainer() && n.Children > 0 && !n.Collapsed {
		return RoleOpen
	}
	return singleLineRole(n)
}

// lastRole is the role of the node's final line.
func (d *Document) lastRole(id NodeID) Role {
	n := &d.nodes[id]
	if n.Kind.IsContainer() && n.Children > 0 && !n.Collapsed {
		return RoleClose
	}
	return singleLineRole(n)
}

// NodeLine returns the primary line descriptor for a visible node: its
// opening line for an expanded container, its only line otherwise.
func (d *Document) NodeLine(id NodeID) Line {
	return Line{Node: id, Role: d.firstRole(id)}
}

// LineOf returns the line number of the node's primary line. Nodes
// hidden inside a collapsed subtree resolve to their visible
// ancestor's line.
func (d *Document) LineOf(id NodeID) int64 {
	cur := d.VisibleAncestor(id)
	var line int64
	for {
		p := d.nodes[cur].Parent
		if p == InvalidID {
			return line
		}
		for s := d.nodes[p].First; s != cur; s = d.nodes[s].Next {
			line += d.contribution(s)
		}
		line++ // the parent's opening line
		cur = p
	}
}

// NextLine returns the line following ln, in constant time. The
// successor of an opening line is its first child's first line; the
// successor of any other line is the next sibling's first line, or the
// parent's closing line. Returns false after the document's last line.
func (d *Document) NextLine(ln Line) (Line, bool) {
	n := &d.nodes[ln.Node]
	if ln.Role == RoleOpen {
		return Line{Node: n.First, Role: d.firstRole(n.First)}, true
	}
	if n.Next != InvalidID {
		return Line{Node: n.Next, Role: d.firstRole(n.Next)}, true
	}
	if n.Parent == InvalidID {
		return Line{}, false
	}
	return Line{Node: n.Parent, Role: RoleClose}, true
}

// PrevLine returns the line preceding ln, in constant time. Returns
// false before the document's first line.
func (d *Document) PrevLine(ln Line) (Line, bool) {
	n := &d.nodes[ln.Node]
	if ln.Role == RoleClose {
		return Line{Node: n.Last, Role: d.lastRole(n.Last)}, true
	}
	if n.Prev != InvalidID {
		return Line{Node: n.Prev, Role: d.lastRole(n.Prev)}, true
	}
	if n.Parent == InvalidID {
		return Line{}, false
	}
	return Line{Node: n.Parent, Role: RoleOpen}, true
}

// Window returns up to count line descriptors starting at line number
// start: one Resolve plus constant-time successor steps, so the cost
// is O(count + depth) regardless of document size.
func (d *Document) Window(start int64, count int) []Line {
	if count <= 0 {
		return nil
	}
	ln, ok := d.Resolve(start)
	if !ok {
		return nil
	}
	out := make([]Line, 0, count)
	out = append(out, ln)
	for len(out) < count {
		next, ok := d.NextLine(ln)
		if !ok {
			break
		}
		out = append(out, next)
		ln = next
	}
	return out
}

// NextVisibleNode returns the node owning the next cursor-addressable
// line after id's primary line, skipping closing lines, or InvalidID
// at the end of the document.
func (d *Document) NextVisibleNode(id NodeID) NodeID {
	ln := d.NodeLine(id)
	for {
		next, ok := d.NextLine(ln)
		if !ok {
			return InvalidID
		}
		if next.Role != RoleClose {
			return next.Node
		}
		ln = next
	}
}

// PrevVisibleNode returns the node owning the previous
// cursor-addressable line before id's primary line, or InvalidID at
// the start of the document.
func (d *Document) PrevVisibleNode(id NodeID) NodeID {
	ln := d.NodeLine(id)
	for {
		prev, ok := d.PrevLine(ln)
		if !ok {
			return InvalidID
		}
		if prev.Role != RoleClose {
			return prev.Node
		}
		ln = prev
	}
}

// LastVisibleNode returns the node owning the document's last
// cursor-addressable line: the deepest last child reachable without
// crossing a collapsed boundary.
func (d *Document) LastVisibleNode() NodeID {
	id := d.root
	for {
		n := &d.nodes[id]
		if !n.Kind.IsContainer() || n.Children == 0 || n.Collapsed {
			return id
		}
		id = n.Last
	}
}
