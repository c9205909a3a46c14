package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/doomfront/green"
)

// TreeEncoder writes one line per node and token, indented by depth:
//
//	Root@0..10
//	  Definition@0..10
//	    KwServer@0..6 "server"
//
// Errors follow the tree, one per line.
type TreeEncoder struct {
	w    io.Writer
	lang green.Language
}

func NewTreeEncoder(w io.Writer, lang green.Language) *TreeEncoder {
	return &TreeEncoder{w: w, lang: lang}
}

func (e *TreeEncoder) Encode(tree *green.ParseTree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(tree *green.ParseTree) ([]byte, error) {
	var buf bytes.Buffer
	e.writeElement(&buf, tree.Root(), 0, 0)
	for _, err := range tree.Errors() {
		fmt.Fprintf(&buf, "error@%s: %s\n", err.Span, err.Error())
	}
	return buf.Bytes(), nil
}

func (e *TreeEncoder) writeElement(buf *bytes.Buffer, el green.Element, depth, offset int) {
	buf.WriteString(strings.Repeat("  ", depth))
	span := green.Span{Start: offset, End: offset + el.TextLen()}
	fmt.Fprintf(buf, "%s@%s", green.KindString(e.lang, el.Kind()), span)

	n, ok := el.(*green.Node)
	if !ok {
		fmt.Fprintf(buf, " %q\n", el.Text())
		return
	}
	buf.WriteByte('\n')
	for _, child := range n.Children() {
		e.writeElement(buf, child, depth+1, offset)
		offset += child.TextLen()
	}
}
