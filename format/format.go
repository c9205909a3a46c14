// Package format renders parse trees and their diagnostics.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/doomfront/green"
)

// Encoder writes a parse tree to an underlying writer.
type Encoder interface {
	Encode(tree *green.ParseTree) error
	MarshalText(tree *green.ParseTree) ([]byte, error)
}

// Formats lists the names accepted by NewEncoder.
var Formats = []string{"text", "json"}

// NewEncoder returns the encoder called name, writing to w. Kinds are named
// using lang.
func NewEncoder(name string, w io.Writer, lang green.Language) (Encoder, error) {
	switch name {
	case "text", "":
		return NewTreeEncoder(w, lang), nil
	case "json":
		return NewJSONEncoder(w, lang), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Formats)
}
