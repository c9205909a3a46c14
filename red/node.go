// Package red provides a parent-aware, read-only view of a green tree.
//
// A red Node wraps a green node together with its parent, its index among the
// parent's children and its absolute byte offset. Red nodes are created
// lazily while navigating and cached on their parent, so the first descent
// into a subtree allocates and later ones do not.
//
// Because of that cache, a red tree is not safe for concurrent use. Share the
// green tree (or a green.ParseTree) across goroutines and build a red tree on
// the goroutine that navigates it.
package red

import (
	"github.com/dhamidi/doomfront/green"
)

// Element is either a *Node or a *Token.
type Element interface {
	Kind() green.Kind
	Span() green.Span
	Text() string
	Parent() *Node
	// Index is the position among the parent's children, tokens included.
	Index() int

	element()
}

// Node is a cursor over a green node.
type Node struct {
	green    *green.Node
	parent   *Node
	index    int
	offset   int
	children []Element
}

// NewRoot creates a cursor tree rooted at root. The root starts at offset 0.
func NewRoot(root *green.Node) *Node {
	return &Node{green: root}
}

func (n *Node) element() {}

func (n *Node) Kind() green.Kind { return n.green.Kind() }
func (n *Node) Green() *green.Node { return n.green }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Index() int { return n.index }
func (n *Node) Text() string { return n.green.Text() }

func (n *Node) Span() green.Span {
	return green.Span{Start: n.offset, End: n.offset + n.green.TextLen()}
}

// ChildrenWithTokens returns all direct children. The slice is shared with
// the node's cache and must not be modified.
func (n *Node) ChildrenWithTokens() []Element {
	if n.children == nil && n.green.NumChildren() > 0 {
		n.children = make([]Element, n.green.NumChildren())
		off := n.offset
		for i := range n.children {
			switch g := n.green.Child(i).(type) {
			case *green.Node:
				n.children[i] = &Node{green: g, parent: n, index: i, offset: off}
			case *green.Token:
				n.children[i] = &Token{green: g, parent: n, index: i, offset: off}
			}
			off += n.green.Child(i).TextLen()
		}
	}
	return n.children
}

// Children returns the direct children that are nodes.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, c := range n.ChildrenWithTokens() {
		if c, ok := c.(*Node); ok {
			out = append(out, c)
		}
	}
	return out
}

// ChildAt returns the i-th direct child, tokens included.
func (n *Node) ChildAt(i int) Element {
	children := n.ChildrenWithTokens()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

func (n *Node) FirstChildOrToken() Element {
	return n.ChildAt(0)
}

func (n *Node) LastChildOrToken() Element {
	return n.ChildAt(n.green.NumChildren() - 1)
}

// FirstChild returns the first direct child that is a node.
func (n *Node) FirstChild() *Node {
	for _, c := range n.ChildrenWithTokens() {
		if c, ok := c.(*Node); ok {
			return c
		}
	}
	return nil
}

// LastChild returns the last direct child that is a node.
func (n *Node) LastChild() *Node {
	children := n.ChildrenWithTokens()
	for i := len(children) - 1; i >= 0; i-- {
		if c, ok := children[i].(*Node); ok {
			return c
		}
	}
	return nil
}

// ChildOfKind returns the first direct child, node or token, of the given kind.
func (n *Node) ChildOfKind(kind green.Kind) Element {
	for _, c := range n.ChildrenWithTokens() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// ChildrenOfKind returns every direct child, node or token, of the given kind.
func (n *Node) ChildrenOfKind(kind green.Kind) []Element {
	var out []Element
	for _, c := range n.ChildrenWithTokens() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) NextSiblingOrToken() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent.ChildAt(n.index + 1)
}

func (n *Node) PrevSiblingOrToken() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent.ChildAt(n.index - 1)
}

// NextSibling returns the next sibling that is a node.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.ChildrenWithTokens()
	for i := n.index + 1; i < len(siblings); i++ {
		if s, ok := siblings[i].(*Node); ok {
			return s
		}
	}
	return nil
}

// PrevSibling returns the previous sibling that is a node.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.ChildrenWithTokens()
	for i := n.index - 1; i >= 0; i-- {
		if s, ok := siblings[i].(*Node); ok {
			return s
		}
	}
	return nil
}

// Ancestors returns n's parent, grandparent and so on up to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// FirstToken returns the leftmost leaf below n.
func (n *Node) FirstToken() *Token {
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *Token:
			return c
		case *Node:
			if t := c.FirstToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// LastToken returns the rightmost leaf below n.
func (n *Node) LastToken() *Token {
	children := n.ChildrenWithTokens()
	for i := len(children) - 1; i >= 0; i-- {
		switch c := children[i].(type) {
		case *Token:
			return c
		case *Node:
			if t := c.LastToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// Descendants returns n and every node below it in preorder.
func (n *Node) Descendants() []*Node {
	out := []*Node{n}
	for _, c := range n.Children() {
		out = append(out, c.Descendants()...)
	}
	return out
}

// Tokens returns every leaf below n in document order.
func (n *Node) Tokens() []*Token {
	var out []*Token
	for t := n.FirstToken(); t != nil && t.offset < n.Span().End; t = t.NextToken() {
		out = append(out, t)
	}
	return out
}

// TokenAtOffset returns the leaf containing the byte at offset. An offset
// equal to the end of the tree returns the last token.
func (n *Node) TokenAtOffset(offset int) *Token {
	span := n.Span()
	if offset < span.Start || offset > span.End {
		return nil
	}
	cur := n
	for {
		var hit Element
		for _, c := range cur.ChildrenWithTokens() {
			if cs := c.Span(); offset >= cs.Start && offset < cs.End {
				hit = c
				break
			}
		}
		if t, ok := hit.(*Token); ok {
			return t
		}
		next, ok := hit.(*Node)
		if !ok {
			if offset == span.End {
				return n.LastToken()
			}
			return nil
		}
		cur = next
	}
}
