package document

import (
	"testing"
)

// TestScenarioLineMapping verifies the exact line composition for the
// reference document, collapsed and expanded
func TestScenarioLineMapping(t *testing.T) {
	doc := mustParse(t, scenarioJSON)
	root := doc.Root()
	a := doc.FirstChild(root)
	b := doc.NextSibling(a)
	e1 := doc.FirstChild(b)
	e2 := doc.NextSibling(e1)
	e3 := doc.NextSibling(e2)

	expanded := []Line{
		{root, RoleOpen},   // {
		{a, RoleScalar},    // a: 1,
		{b, RoleOpen},      // b: [
		{e1, RoleScalar},   // 1,
		{e2, RoleScalar},   // 2,
		{e3, RoleScalar},   // 3
		{b, RoleClose},     // ]
		{root, RoleClose},  // }
	}
	got := doc.Window(0, 100)
	if len(got) != len(expanded) {
		t.Fatalf("expected %d lines, got %d", len(expanded), len(got))
	}
	for i := range expanded {
		if got[i] != expanded[i] {
			t.Errorf("line %d: expected %v/%v, got %v/%v",
				i, expanded[i].Node, expanded[i].Role, got[i].Node, got[i].Role)
		}
	}

	doc.ToggleCollapse(b)
	collapsed := []Line{
		{root, RoleOpen},  // {
		{a, RoleScalar},   // a: 1,
		{b, RoleSummary},  // b: [...]
		{root, RoleClose}, // }
	}
	got = doc.Window(0, 100)
	if len(got) != len(collapsed) {
		t.Fatalf("expected %d lines after collapse, got %d", len(collapsed), len(got))
	}
	for i := range collapsed {
		if got[i] != collapsed[i] {
			t.Errorf("collapsed line %d: expected %v/%v, got %v/%v",
				i, collapsed[i].Node, collapsed[i].Role, got[i].Node, got[i].Role)
		}
	}

	// A cursor that was on a hidden child relocates to b's summary line.
	if got := doc.VisibleAncestor(e2); got != b {
		t.Errorf("expected cursor relocation to b, got node %d", got)
	}
	if got := doc.LineOf(e2); got != 2 {
		t.Errorf("expected hidden node to resolve to line 2, got %d", got)
	}

	// Toggling again restores the exact prior line set.
	doc.ToggleCollapse(b)
	got = doc.Window(0, 100)
	if len(got) != len(expanded) {
		t.Fatalf("expected %d lines restored, got %d", len(expanded), len(got))
	}
	for i := range expanded {
		if got[i] != expanded[i] {
			t.Errorf("restored line %d: expected %v/%v, got %v/%v",
				i, expanded[i].Node, expanded[i].Role, got[i].Node, got[i].Role)
		}
	}
}

// TestResolveBounds verifies out-of-range lines report false
func TestResolveBounds(t *testing.T) {
	doc := mustParse(t, scenarioJSON)
	if _, ok := doc.Resolve(-1); ok {
		t.Errorf("expected failure for negative line")
	}
	if _, ok := doc.Resolve(doc.TotalLines()); ok {
		t.Errorf("expected failure for line == total")
	}
	if _, ok := doc.Resolve(7); !ok {
		t.Errorf("expected success for last line")
	}
}

// TestLineOfInvertsResolve verifies LineOf is the inverse of Resolve
// on primary lines
func TestLineOfInvertsResolve(t *testing.T) {
	doc := mustParse(t, `{"x": {"y": {"z": [1, 2]}}, "w": [3], "s": "v"}`)
	doc.SetCollapsed(doc.FirstChild(doc.Root()), true)

	for i := int64(0); i < doc.TotalLines(); i++ {
		ln, ok := doc.Resolve(i)
		if !ok {
			t.Fatalf("Resolve(%d) failed", i)
		}
		if ln.Role == RoleClose {
			continue
		}
		if got := doc.LineOf(ln.Node); got != i {
			t.Errorf("line %d: LineOf(%d) = %d", i, ln.Node, got)
		}
	}
}

// TestLineStepping verifies NextLine/PrevLine walk the same sequence
// forwards and backwards
func TestLineStepping(t *testing.T) {
	doc := mustParse(t, `{"x": {"y": [1, 2]}, "w": {}, "list": [true, null]}`)
	total := doc.TotalLines()
	forward := doc.Window(0, int(total))
	if int64(len(forward)) != total {
		t.Fatalf("expected %d lines, got %d", total, len(forward))
	}

	// Stepping forward one line at a time matches the window.
	ln := forward[0]
	for i := 1; i < len(forward); i++ {
		next, ok := doc.NextLine(ln)
		if !ok {
			t.Fatalf("NextLine stopped early at %d", i)
		}
		if next != forward[i] {
			t.Errorf("step %d: expected %v/%v, got %v/%v",
				i, forward[i].Node, forward[i].Role, next.Node, next.Role)
		}
		ln = next
	}
	if _, ok := doc.NextLine(ln); ok {
		t.Errorf("expected NextLine to stop at the last line")
	}

	// And back again.
	for i := len(forward) - 2; i >= 0; i-- {
		prev, ok := doc.PrevLine(ln)
		if !ok {
			t.Fatalf("PrevLine stopped early at %d", i)
		}
		if prev != forward[i] {
			t.Errorf("back step %d: expected %v/%v, got %v/%v",
				i, forward[i].Node, forward[i].Role, prev.Node, prev.Role)
		}
		ln = prev
	}
	if _, ok := doc.PrevLine(ln); ok {
		t.Errorf("expected PrevLine to stop at the first line")
	}
}

// TestWindowSlices verifies mid-document and edge windows
func TestWindowSlices(t *testing.T) {
	doc := mustParse(t, scenarioJSON)
	full := doc.Window(0, 8)

	mid := doc.Window(3, 3)
	if len(mid) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(mid))
	}
	for i, ln := range mid {
		if ln != full[3+i] {
			t.Errorf("window line %d: expected %v/%v, got %v/%v",
				i, full[3+i].Node, full[3+i].Role, ln.Node, ln.Role)
		}
	}

	tail := doc.Window(6, 50)
	if len(tail) != 2 {
		t.Errorf("expected clamped tail of 2 lines, got %d", len(tail))
	}
	if out := doc.Window(8, 5); out != nil {
		t.Errorf("expected nil window past the end, got %d lines", len(out))
	}
	if out := doc.Window(0, 0); out != nil {
		t.Errorf("expected nil window for zero count")
	}
}

// TestVisibleNodeStepping verifies cursor-style node iteration skips
// closing lines
func TestVisibleNodeStepping(t *testing.T) {
	doc := mustParse(t, scenarioJSON)
	root := doc.Root()
	a := doc.FirstChild(root)
	b := doc.NextSibling(a)
	e1 := doc.FirstChild(b)
	e3 := doc.LastChild(b)

	order := []NodeID{root, a, b, e1, doc.NextSibling(e1), e3}
	for i := 0; i < len(order)-1; i++ {
		if got := doc.NextVisibleNode(order[i]); got != order[i+1] {
			t.Errorf("NextVisibleNode(%d): expected %d, got %d", order[i], order[i+1], got)
		}
	}
	if got := doc.NextVisibleNode(e3); got != InvalidID {
		t.Errorf("expected InvalidID past the last node, got %d", got)
	}
	for i := len(order) - 1; i > 0; i-- {
		if got := doc.PrevVisibleNode(order[i]); got != order[i-1] {
			t.Errorf("PrevVisibleNode(%d): expected %d, got %d", order[i], order[i-1], got)
		}
	}
	if got := doc.PrevVisibleNode(root); got != InvalidID {
		t.Errorf("expected InvalidID before the root, got %d", got)
	}
	if got := doc.LastVisibleNode(); got != e3 {
		t.Errorf("expected last visible node %d, got %d", e3, got)
	}

	doc.ToggleCollapse(b)
	if got := doc.NextVisibleNode(b); got != InvalidID {
		t.Errorf("expected nothing after collapsed b, got %d", got)
	}
	if got := doc.LastVisibleNode(); got != b {
		t.Errorf("expected b as last visible node, got %d", got)
	}
}
