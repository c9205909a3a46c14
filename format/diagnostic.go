package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/doomfront/green"
)

// Snippet renders err as a message followed by the offending line, one line
// of context on either side, and carets under the error's span:
//
//	defs.txt:2:15: unexpected ";", expected literal
//	   1 | user int a;
//	   2 | server int x =;
//	     |               ^
func Snippet(name string, lines *LineIndex, err green.ParseError) string {
	pos := lines.Position(err.Span.Start)

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s:", name)
	}
	fmt.Fprintf(&b, "%s: %s\n", pos, err.Error())

	from := max(1, pos.Line-1)
	to := min(lines.NumLines(), pos.Line+1)
	for n := from; n <= to; n++ {
		line := lines.Line(n)
		if n == pos.Line+1 && line == "" {
			break
		}
		fmt.Fprintf(&b, "%4d | %s\n", n, line)
		if n != pos.Line {
			continue
		}
		width := 1
		if err.Span.Len() > 1 {
			width = min(err.Span.Len(), len(line)-pos.Column+1)
			width = max(width, 1)
		}
		fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", pos.Column-1), strings.Repeat("^", width))
	}
	return b.String()
}

// WriteDiagnostics writes a snippet for each of errs, in order, separated by
// blank lines.
func WriteDiagnostics(w io.Writer, name, src string, errs []green.ParseError) error {
	lines := NewLineIndex(src)
	for i, err := range errs {
		if i > 0 {
			if _, werr := io.WriteString(w, "\n"); werr != nil {
				return werr
			}
		}
		if _, werr := io.WriteString(w, Snippet(name, lines, err)); werr != nil {
			return werr
		}
	}
	return nil
}
