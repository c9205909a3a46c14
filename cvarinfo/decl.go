package cvarinfo

import "github.com/dhamidi/doomfront/red"

// Decl summarises one Definition node.
type Decl struct {
	Node *red.Node
	Name *red.Token
	Type *red.Token
	// Scope is the first of server, user or nosave, or nil if there is none.
	Scope      *red.Token
	Qualifiers []*red.Token
	// Default is the default value's literal, or nil.
	Default *red.Token
}

// TypeName returns the type keyword in lower case, e.g. "int".
func (d Decl) TypeName() string {
	if d.Type == nil {
		return ""
	}
	for _, kw := range typeKeywords {
		if kw.kind == d.Type.Kind() {
			return kw.text
		}
	}
	return ""
}

// DeclOf summarises n, which must be a Definition.
func DeclOf(n *red.Node) (Decl, bool) {
	if n == nil || n.Kind() != Definition {
		return Decl{}, false
	}

	d := Decl{Node: n}
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *red.Node:
			switch c.Kind() {
			case Flags:
				d.addFlags(c)
			case DefaultDef:
				if lit := c.LastToken(); lit != nil && IsLiteral(lit.Kind()) {
					d.Default = lit
				}
			}
		case *red.Token:
			switch {
			case IsType(c.Kind()):
				d.Type = c
			case c.Kind() == Ident:
				d.Name = c
			}
		}
	}
	return d, true
}

func (d *Decl) addFlags(flags *red.Node) {
	for _, c := range flags.ChildrenWithTokens() {
		tok, ok := c.(*red.Token)
		if !ok {
			continue
		}
		switch {
		case IsScope(tok.Kind()) && d.Scope == nil:
			d.Scope = tok
		case IsQualifier(tok.Kind()):
			d.Qualifiers = append(d.Qualifiers, tok)
		}
	}
}

// Declarations returns a summary of every Definition directly below root, in
// document order.
func Declarations(root *red.Node) []Decl {
	var out []Decl
	for _, n := range root.Children() {
		if d, ok := DeclOf(n); ok {
			out = append(out, d)
		}
	}
	return out
}

// EnclosingDecl returns the declaration containing e, if any.
func EnclosingDecl(e red.Element) (Decl, bool) {
	n, ok := e.(*red.Node)
	if !ok {
		n = e.Parent()
	}
	for ; n != nil; n = n.Parent() {
		if n.Kind() == Definition {
			return DeclOf(n)
		}
	}
	return Decl{}, false
}
