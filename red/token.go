package red

import "github.com/dhamidi/doomfront/green"

// Token is a cursor over a green token.
type Token struct {
	green  *green.Token
	parent *Node
	index  int
	offset int
}

func (t *Token) element() {}

func (t *Token) Kind() green.Kind { return t.green.Kind() }
func (t *Token) Green() *green.Token { return t.green }
func (t *Token) Parent() *Node { return t.parent }
func (t *Token) Index() int { return t.index }
func (t *Token) Text() string { return t.green.Text() }

func (t *Token) Span() green.Span {
	return green.Span{Start: t.offset, End: t.offset + t.green.TextLen()}
}

func (t *Token) NextSiblingOrToken() Element {
	return t.parent.ChildAt(t.index + 1)
}

func (t *Token) PrevSiblingOrToken() Element {
	return t.parent.ChildAt(t.index - 1)
}

// NextToken returns the next leaf in document order, crossing node
// boundaries, or nil at the end of the tree.
func (t *Token) NextToken() *Token {
	var cur Element = t
	for cur.Parent() != nil {
		p := cur.Parent()
		for i := cur.Index() + 1; i < p.green.NumChildren(); i++ {
			switch s := p.ChildAt(i).(type) {
			case *Token:
				return s
			case *Node:
				if first := s.FirstToken(); first != nil {
					return first
				}
			}
		}
		cur = p
	}
	return nil
}

// PrevToken returns the previous leaf in document order, or nil at the start
// of the tree.
func (t *Token) PrevToken() *Token {
	var cur Element = t
	for cur.Parent() != nil {
		p := cur.Parent()
		for i := cur.Index() - 1; i >= 0; i-- {
			switch s := p.ChildAt(i).(type) {
			case *Token:
				return s
			case *Node:
				if last := s.LastToken(); last != nil {
					return last
				}
			}
		}
		cur = p
	}
	return nil
}

// Ancestors returns the token's parent, grandparent and so on up to the root.
func (t *Token) Ancestors() []*Node {
	var out []*Node
	for p := t.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}
