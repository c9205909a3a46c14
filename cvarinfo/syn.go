package cvarinfo

import "github.com/dhamidi/doomfront/green"

// Syntax kinds of CVARINFO. Root must stay last.
const (
	// Definition is one console variable declaration, from its flags up to
	// and including the terminating semicolon.
	Definition green.Kind = iota
	// DefaultDef is the "= literal" clause together with surrounding trivia.
	DefaultDef
	// Flags holds the scope and qualifier keywords and the trivia between them.
	Flags
	// TypeSpec is reserved. Type keywords are direct children of Definition.
	TypeSpec

	LitFalse
	LitFloat
	LitInt
	LitString
	LitTrue

	TypeBool
	TypeColor
	TypeFloat
	TypeInt
	TypeString

	KwCheat
	KwNoArchive
	KwNoSave
	KwLatch
	KwServer
	KwUser

	Eq
	Ident
	Semicolon
	Comment
	// Unknown holds input skipped while recovering from a syntax error.
	Unknown
	Whitespace

	Root
)

var kindNames = [...]string{
	Definition:  "Definition",
	DefaultDef:  "DefaultDef",
	Flags:       "Flags",
	TypeSpec:    "TypeSpec",
	LitFalse:    "LitFalse",
	LitFloat:    "LitFloat",
	LitInt:      "LitInt",
	LitString:   "LitString",
	LitTrue:     "LitTrue",
	TypeBool:    "TypeBool",
	TypeColor:   "TypeColor",
	TypeFloat:   "TypeFloat",
	TypeInt:     "TypeInt",
	TypeString:  "TypeString",
	KwCheat:     "KwCheat",
	KwNoArchive: "KwNoArchive",
	KwNoSave:    "KwNoSave",
	KwLatch:     "KwLatch",
	KwServer:    "KwServer",
	KwUser:      "KwUser",
	Eq:          "Eq",
	Ident:       "Ident",
	Semicolon:   "Semicolon",
	Comment:     "Comment",
	Unknown:     "Unknown",
	Whitespace:  "Whitespace",
	Root:        "Root",
}

type language struct{}

// Lang is the kind space of CVARINFO.
var Lang green.Language = language{}

func (language) Name() string     { return "CVARINFO" }
func (language) Root() green.Kind { return Root }

func (language) KindName(k green.Kind) string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return ""
}

// KindByName is the inverse of Lang.KindName.
func KindByName(name string) (green.Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return green.Kind(k), true
		}
	}
	return 0, false
}

// IsScope reports whether k is one of the scope keywords server, user and
// nosave.
func IsScope(k green.Kind) bool {
	return k == KwServer || k == KwUser || k == KwNoSave
}

// IsQualifier reports whether k is one of noarchive, cheat and latch.
func IsQualifier(k green.Kind) bool {
	return k == KwNoArchive || k == KwCheat || k == KwLatch
}

func IsType(k green.Kind) bool {
	return TypeBool <= k && k <= TypeString
}

func IsLiteral(k green.Kind) bool {
	return LitFalse <= k && k <= LitTrue
}

// IsTrivia reports whether k is whitespace or a comment.
func IsTrivia(k green.Kind) bool {
	return k == Whitespace || k == Comment
}
