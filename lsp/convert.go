package lsp

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/doomfront/cvarinfo"
	"github.com/dhamidi/doomfront/format"
	"github.com/dhamidi/doomfront/green"
	"github.com/dhamidi/doomfront/workspace"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// document pairs a workspace file with the line index used to translate
// between byte offsets and LSP positions, whose characters are UTF-16 code
// units.
type document struct {
	file  *workspace.File
	lines *format.LineIndex
}

func newDocument(f *workspace.File) *document {
	return &document{file: f, lines: format.NewLineIndex(f.Content)}
}

func (d *document) position(offset int) protocol.Position {
	pos := d.lines.Position(offset)
	line := d.lines.Line(pos.Line)
	prefix := line[:min(pos.Column-1, len(line))]

	character := 0
	for _, r := range prefix {
		character += utf16Len(r)
	}
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(character),
	}
}

func (d *document) offset(pos protocol.Position) int {
	n := int(pos.Line) + 1
	start := d.lines.Offset(format.Position{Line: n, Column: 1})
	line := d.lines.Line(n)

	units, bytes := 0, 0
	for bytes < len(line) && units < int(pos.Character) {
		r, size := utf8.DecodeRuneInString(line[bytes:])
		units += utf16Len(r)
		bytes += size
	}
	return start + bytes
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func (d *document) rangeOf(span green.Span) protocol.Range {
	return protocol.Range{Start: d.position(span.Start), End: d.position(span.End)}
}

func (d *document) diagnostics() []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName

	out := []protocol.Diagnostic{}
	for _, err := range d.file.Errors {
		out = append(out, protocol.Diagnostic{
			Range:    d.rangeOf(err.Span),
			Severity: &severity,
			Source:   &source,
			Message:  err.Error(),
		})
	}
	return out
}

func (d *document) symbols() []protocol.DocumentSymbol {
	out := []protocol.DocumentSymbol{}
	for _, decl := range d.file.Declarations() {
		if decl.Name == nil {
			continue
		}
		detail := describe(decl)
		out = append(out, protocol.DocumentSymbol{
			Name:           decl.Name.Text(),
			Detail:         &detail,
			Kind:           protocol.SymbolKindVariable,
			Range:          d.rangeOf(decl.Node.Span()),
			SelectionRange: d.rangeOf(decl.Name.Span()),
		})
	}
	return out
}

// describe renders a declaration without its name, e.g. "server cheat int = 3".
func describe(decl cvarinfo.Decl) string {
	var parts []string
	if decl.Scope != nil {
		parts = append(parts, strings.ToLower(decl.Scope.Text()))
	}
	for _, q := range decl.Qualifiers {
		parts = append(parts, strings.ToLower(q.Text()))
	}
	parts = append(parts, decl.TypeName())
	if decl.Default != nil {
		parts = append(parts, "=", decl.Default.Text())
	}
	return strings.Join(parts, " ")
}

func (d *document) hover(pos protocol.Position) *protocol.Hover {
	root := d.file.Cursor().Root()
	tok := root.TokenAtOffset(d.offset(pos))
	if tok == nil {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** `%s`", cvarinfo.Lang.KindName(tok.Kind()), strings.TrimSpace(tok.Text()))
	if decl, ok := cvarinfo.EnclosingDecl(tok); ok && decl.Name != nil {
		fmt.Fprintf(&b, "\n\nin `%s`: %s", decl.Name.Text(), describe(decl))
	}

	r := d.rangeOf(tok.Span())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: b.String()},
		Range:    &r,
	}
}
