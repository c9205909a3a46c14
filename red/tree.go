package red

import "github.com/dhamidi/doomfront/green"

// Tree is the navigable form of a green.ParseTree. The cursor tree is built
// on first use of Root; build a Tree on the goroutine that will navigate it.
type Tree struct {
	raw  *green.ParseTree
	root *Node
}

func NewTree(raw *green.ParseTree) *Tree {
	return &Tree{raw: raw}
}

// Raw returns the underlying green parse tree, which is safe to share.
func (t *Tree) Raw() *green.ParseTree {
	return t.raw
}

// Root returns the cursor over the document's root node.
func (t *Tree) Root() *Node {
	if t.root == nil {
		t.root = NewRoot(t.raw.Root())
	}
	return t.root
}

func (t *Tree) AnyErrors() bool {
	return t.raw.AnyErrors()
}

func (t *Tree) Errors() []green.ParseError {
	return t.raw.Errors()
}
