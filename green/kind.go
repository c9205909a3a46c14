package green

import "fmt"

// Kind tags a node or token. Each grammar defines its own closed set of kinds.
type Kind uint16

// Language describes the kind space of one grammar.
type Language interface {
	// Name is a human-readable name for the grammar, e.g. "CVARINFO".
	Name() string
	// Root is the kind of the node covering a whole document. It is also the
	// largest valid kind.
	Root() Kind
	// KindName returns the name of k, or "" if k is not a valid kind.
	KindName(k Kind) string
}

// CheckKind panics with a *MisuseError if k is not a valid kind of lang.
func CheckKind(lang Language, k Kind) Kind {
	if k > lang.Root() {
		misuse("kind", "syntax kind %d out of range for %s (root is %d)", k, lang.Name(), lang.Root())
	}
	return k
}

// KindString formats k using the names of lang.
func KindString(lang Language, k Kind) string {
	if lang != nil {
		if name := lang.KindName(k); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Kind(%d)", k)
}
