package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jtree"

	"github.com/vanderheijden86/jsonwork/pkg/metrics"
)

// ParseError describes rejected input. Offset is a byte offset into
// the source at or just past the failure. Line is 1-based and Column a
// 0-based byte offset within the line; Line 0 means unknown.
type ParseError struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at %d:%d (offset %d): %s", e.Line, e.Column, e.Offset, e.Msg)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

// parse mode: what the grammar expects next.
type pmode uint8

const (
	pValue      pmode = iota // a value
	pArrayFirst              // a value or an immediate "]"
	pKeyFirst                // a member key or an immediate "}"
	pKey                     // a member key (after a comma)
	pColon                   // the ":" separating key and value
	pAfter                   // a separator or closing bracket
)

// Parse builds a Document from src. The input must hold exactly one
// JSON value; empty input, malformed syntax, and trailing content are
// reported as a *ParseError. The token stream comes from the jtree
// scanner, but the grammar is driven here with an explicit container
// stack: document depth is input-controlled, so nothing may recurse on
// it, and malformed input must never panic.
func Parse(src []byte) (*Document, error) {
	defer metrics.Timer(metrics.JSONParsing)()

	doc := &Document{src: src, root: InvalidID}
	b := &builder{doc: doc}
	sc := jtree.NewScanner(bytes.NewReader(src))

	mode := pValue
	first := true
	for {
		if err := sc.Next(); err != nil {
			if err == io.EOF {
				// The scanner returns the bare sentinel only at a clean
				// token boundary; mid-token EOF arrives wrapped.
				if first {
					return nil, &ParseError{Offset: len(src), Msg: "empty input"}
				}
				return nil, &ParseError{Offset: len(src), Msg: "unexpected end of input"}
			}
			return nil, scanError(sc, err)
		}
		first = false
		tok := sc.Token()

		switch mode {
		case pValue, pArrayFirst:
			switch tok {
			case jtree.LBrace:
				b.open(KindObject, sc)
				mode = pKeyFirst
			case jtree.LSquare:
				b.open(KindArray, sc)
				mode = pArrayFirst
			case jtree.String, jtree.Integer, jtree.Number, jtree.True, jtree.False, jtree.Null:
				b.leaf(sc)
				mode = pAfter
			case jtree.RSquare:
				if mode != pArrayFirst {
					return nil, tokenError(sc, "unexpected %v", tok)
				}
				b.close(sc)
				mode = pAfter
			default:
				return nil, tokenError(sc, "unexpected %v", tok)
			}

		case pKeyFirst, pKey:
			switch tok {
			case jtree.String:
				b.member(sc)
				mode = pColon
			case jtree.RBrace:
				if mode != pKeyFirst {
					return nil, tokenError(sc, "unexpected %v after comma", tok)
				}
				b.close(sc)
				mode = pAfter
			default:
				return nil, tokenError(sc, "expected member key, got %v", tok)
			}

		case pColon:
			if tok != jtree.Colon {
				return nil, tokenError(sc, "expected %v, got %v", jtree.Colon, tok)
			}
			mode = pValue

		case pAfter:
			top, ok := b.top()
			if !ok {
				// The document is complete; any token here is trailing.
				return nil, tokenError(sc, "trailing content after document")
			}
			switch {
			case tok == jtree.Comma && top == KindArray:
				mode = pValue
			case tok == jtree.Comma && top == KindObject:
				mode = pKey
			case tok == jtree.RSquare && top == KindArray:
				b.close(sc)
			case tok == jtree.RBrace && top == KindObject:
				b.close(sc)
			default:
				return nil, tokenError(sc, "unexpected %v", tok)
			}
		}

		if mode == pAfter && len(b.stack) == 0 {
			break
		}
	}

	// Nothing but end-of-input may follow the value.
	if err := sc.Next(); err != io.EOF {
		if err == nil {
			return nil, tokenError(sc, "trailing content after document")
		}
		return nil, scanError(sc, err)
	}
	return doc, nil
}

// scanError converts a tokenizer failure into a ParseError, unwrapping
// the scanner's positional wrapper and translating a mid-token EOF.
func scanError(sc *jtree.Scanner, err error) error {
	msg := err.Error()
	if inner := errors.Unwrap(err); inner != nil {
		msg = inner.Error()
	}
	if errors.Is(err, io.EOF) {
		msg = "unexpected end of input"
	}
	loc := sc.Location()
	return &ParseError{Offset: loc.End, Line: loc.Last.Line, Column: loc.Last.Column, Msg: msg}
}

// tokenError reports an unexpected-but-lexically-valid token at the
// token's own position.
func tokenError(sc *jtree.Scanner, format string, args ...any) error {
	loc := sc.Location()
	return &ParseError{Offset: loc.Pos, Line: loc.First.Line, Column: loc.First.Column, Msg: fmt.Sprintf(format, args...)}
}

// builder owns arena assembly: node creation, sibling linking, and
// finalizing the line-count memos as containers close.
type builder struct {
	doc     *Document
	stack   []NodeID // open containers, innermost last
	key     string
	haveKey bool
}

// top returns the kind of the innermost open container.
func (b *builder) top() (Kind, bool) {
	if len(b.stack) == 0 {
		return 0, false
	}
	return b.doc.nodes[b.stack[len(b.stack)-1]].Kind, true
}

func (b *builder) open(kind Kind, sc *jtree.Scanner) {
	b.stack = append(b.stack, b.add(kind, sc.Span()))
}

func (b *builder) leaf(sc *jtree.Scanner) {
	id := b.add(kindOf(sc.Token()), sc.Span())
	n := &b.doc.nodes[id]
	if sc.Token() == jtree.String {
		raw := sc.Text() // still quoted
		n.Text = SafeUnescapeOr(string(raw[1 : len(raw)-1]))
	} else {
		n.Text = string(sc.Text())
	}
}

func (b *builder) member(sc *jtree.Scanner) {
	raw := sc.Text()
	b.key = SafeUnescapeOr(string(raw[1 : len(raw)-1]))
	b.haveKey = true
}

// close pops the innermost container, extends its span over the
// closing bracket, and finalizes its line-count memo. Children close
// before parents, so each recount sees finished counts.
func (b *builder) close(sc *jtree.Scanner) {
	id := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.doc.nodes[id].Span.End = sc.Span().End
	b.doc.recountNode(id)
}

func kindOf(tok jtree.Token) Kind {
	switch tok {
	case jtree.String:
		return KindString
	case jtree.Integer, jtree.Number:
		return KindNumber
	case jtree.True, jtree.False:
		return KindBool
	default:
		return KindNull
	}
}

// add creates a node for the current token, consuming any pending
// member key, and links it under the innermost open container.
func (b *builder) add(kind Kind, sp jtree.Span) NodeID {
	id := NodeID(len(b.doc.nodes))
	n := Node{
		Parent: InvalidID,
		First:  InvalidID,
		Last:   InvalidID,
		Next:   InvalidID,
		Prev:   InvalidID,
		Kind:   kind,
		Span:   Span{Pos: sp.Pos, End: sp.End},
		lines:  1,
	}
	if b.haveKey {
		n.HasKey, n.Key = true, b.key
		b.key, b.haveKey = "", false
	}
	b.doc.nodes = append(b.doc.nodes, n)

	if len(b.stack) > 0 {
		b.link(b.stack[len(b.stack)-1], id)
	} else {
		b.doc.root = id
	}
	return id
}

// link appends child to parent's child list in constant time.
func (b *builder) link(parent, child NodeID) {
	p := &b.doc.nodes[parent]
	c := &b.doc.nodes[child]
	c.Parent = parent
	c.Index = p.Children
	if p.Last == InvalidID {
		p.First, p.Last = child, child
	} else {
		b.doc.nodes[p.Last].Next = child
		c.Prev = p.Last
		p.Last = child
	}
	p.Children++
}
