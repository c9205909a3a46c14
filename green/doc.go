// Package green provides immutable, structurally shared concrete syntax trees.
//
// # Overview
//
// A green tree is lossless: every byte of the parsed document, whitespace and
// comments included, lives in exactly one leaf Token, and concatenating the
// leaves in order reproduces the source. Nodes know their kind and children
// but not their parent or their absolute offset, which is what makes them
// safe to share between goroutines and between trees.
//
//	Root
//	├── Whitespace "\n"
//	└── Definition
//	    ├── Flags
//	    │   ├── KwServer "server"
//	    │   └── Whitespace " "
//	    ├── TypeInt "int"
//	    ...
//
// Parent-aware navigation lives in package red, which projects a green tree
// into a cursor tree on demand.
//
// # Syntax kinds
//
// Every grammar owns a closed enumeration of Kind values and describes it with
// a Language. The largest valid kind is the language's root kind; anything
// above it is a programming error and makes CheckKind panic.
//
// # Building trees
//
// Trees are built either by composing nodes directly (see package comb) or by
// replaying a flat instruction stream through a Builder:
//
//	b := green.NewBuilder(lang, src)
//	b.StartNode(Root)
//	cp := b.Checkpoint()
//	b.TokenAt(Number, green.Span{Start: 0, End: 1})
//	b.StartNodeAt(cp, BinaryExpr) // wrap everything since cp
//	...
//	b.FinishNode()
//	b.FinishNode()
//	root := b.Finish()
//
// Misusing a Builder (unbalanced start/finish, stale checkpoints, unknown
// kinds) panics with a *MisuseError. Those panics indicate a broken grammar,
// never a malformed document; malformed documents are reported as ParseError
// values instead.
//
// # Thread Safety
//
// Node, Token and ParseTree are immutable and may be shared freely. A Builder
// is not safe for concurrent use.
package green
