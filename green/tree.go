package green

import (
	"io"
	"strings"
)

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	// Text returns the exact source text covered by the element.
	Text() string
	// TextLen returns len(Text()) without building the string.
	TextLen() int

	element()
}

// Token is a leaf. It owns exactly the source text it was created from.
type Token struct {
	kind Kind
	text string
}

// NewToken creates a leaf token. The kind is not validated; use a Builder or
// comb.State to get kind checking against a Language.
func NewToken(kind Kind, text string) *Token {
	return &Token{kind: kind, text: text}
}

func (t *Token) Kind() Kind { return t.kind }
func (t *Token) Text() string { return t.text }
func (t *Token) TextLen() int { return len(t.text) }
func (t *Token) element() {}

// Node is an interior element. Its span is the concatenation of its
// children's spans.
type Node struct {
	kind     Kind
	children []Element
	textLen  int
}

// NewNode creates a node owning a copy of children. Nil children are dropped.
func NewNode(kind Kind, children []Element) *Node {
	n := &Node{
		kind:     kind,
		children: make([]Element, 0, len(children)),
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.children = append(n.children, c)
		n.textLen += c.TextLen()
	}
	return n
}

func (n *Node) Kind() Kind { return n.kind }
func (n *Node) TextLen() int { return n.textLen }
func (n *Node) element() {}

// NumChildren returns the number of direct children, tokens included.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the i-th direct child.
func (n *Node) Child(i int) Element {
	return n.children[i]
}

// Children returns a copy of the direct children.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) Text() string {
	var b strings.Builder
	b.Grow(n.textLen)
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.children {
		switch c := c.(type) {
		case *Token:
			b.WriteString(c.text)
		case *Node:
			c.writeText(b)
		}
	}
}

// WriteTo writes the source text covered by n to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	m, err := io.WriteString(w, n.Text())
	return int64(m), err
}

// Tokens returns every leaf below n in document order.
func (n *Node) Tokens() []*Token {
	var out []*Token
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			switch c := c.(type) {
			case *Token:
				out = append(out, c)
			case *Node:
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Equal reports whether a and b are structurally equal: same kinds, same
// token text and pairwise-equal children.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.TextLen() != b.TextLen() {
		return false
	}

	switch a := a.(type) {
	case *Token:
		b, ok := b.(*Token)
		return ok && a.text == b.text
	case *Node:
		b, ok := b.(*Node)
		if !ok || len(a.children) != len(b.children) {
			return false
		}
		if a == b {
			return true
		}
		for i := range a.children {
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// ParseTree is the raw result of parsing one document: a green root plus the
// errors raised while producing it, in order. It holds no back-references and
// may be shared between goroutines.
type ParseTree struct {
	root   *Node
	errors []ParseError
}

func NewParseTree(root *Node, errors []ParseError) *ParseTree {
	pt := &ParseTree{root: root}
	if len(errors) > 0 {
		pt.errors = make([]ParseError, len(errors))
		copy(pt.errors, errors)
	}
	return pt
}

// Root is the source of truth for the parsed document.
func (pt *ParseTree) Root() *Node {
	return pt.root
}

// AnyErrors reports whether any errors were raised while parsing.
func (pt *ParseTree) AnyErrors() bool {
	return len(pt.errors) > 0
}

// Errors returns the errors raised while parsing, in the order they were
// raised. The slice must not be modified.
func (pt *ParseTree) Errors() []ParseError {
	return pt.errors
}
