package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/doomfront/green"
)

// JSONEncoder writes a parse tree as a JSON Document.
type JSONEncoder struct {
	w    io.Writer
	lang green.Language
}

func NewJSONEncoder(w io.Writer, lang green.Language) *JSONEncoder {
	return &JSONEncoder{w: w, lang: lang}
}

func (e *JSONEncoder) Encode(tree *green.ParseTree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText(tree *green.ParseTree) ([]byte, error) {
	return json.MarshalIndent(NewDocument(tree, e.lang), "", "  ")
}

// Document is the JSON form of a parse tree.
type Document struct {
	Language string  `json:"language"`
	Root     *Node   `json:"root"`
	Errors   []Error `json:"errors,omitempty"`
}

// Node is a node or, when Text is set, a token.
type Node struct {
	Kind     string  `json:"kind"`
	Span     Span    `json:"span"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

type Span struct {
	Start Location `json:"start"`
	End   Location `json:"end"`
}

// Location is a byte offset together with its line and column.
type Location struct {
	Offset int `json:"offset"`
	Position
}

type Error struct {
	Message  string   `json:"message"`
	Span     Span     `json:"span"`
	Expected []string `json:"expected,omitempty"`
	Found    string   `json:"found,omitempty"`
}

// NewDocument converts tree. Line and column information is computed from
// the tree's own text.
func NewDocument(tree *green.ParseTree, lang green.Language) *Document {
	root := tree.Root()
	lines := NewLineIndex(root.Text())
	span := func(s green.Span) Span {
		return Span{
			Start: Location{Offset: s.Start, Position: lines.Position(s.Start)},
			End:   Location{Offset: s.End, Position: lines.Position(s.End)},
		}
	}

	var convert func(el green.Element, offset int) *Node
	convert = func(el green.Element, offset int) *Node {
		out := &Node{
			Kind: green.KindString(lang, el.Kind()),
			Span: span(green.Span{Start: offset, End: offset + el.TextLen()}),
		}
		n, ok := el.(*green.Node)
		if !ok {
			out.Text = el.Text()
			return out
		}
		for _, child := range n.Children() {
			out.Children = append(out.Children, convert(child, offset))
			offset += child.TextLen()
		}
		return out
	}

	doc := &Document{Language: lang.Name(), Root: convert(root, 0)}
	for _, err := range tree.Errors() {
		doc.Errors = append(doc.Errors, Error{
			Message:  err.Error(),
			Span:     span(err.Span),
			Expected: err.Expected,
			Found:    err.Found,
		})
	}
	return doc
}
