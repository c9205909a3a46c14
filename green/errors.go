package green

import (
	"fmt"
	"strings"
)

// Span is a half-open byte range [Start, End) into a source string.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// ParseError describes malformed input. It is data, not a control transfer:
// parsers collect ParseErrors in the order they were raised.
type ParseError struct {
	Span     Span
	Expected []string // labels of what would have been accepted at Span.Start
	Found    string   // the offending input, empty at end of input
	Message  string   // overrides the generated message when set
}

func (e ParseError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}

	if len(e.Expected) == 0 {
		return "unexpected " + found
	}

	return fmt.Sprintf("unexpected %s, expected %s", found, joinExpected(e.Expected))
}

// joinExpected joins the last two labels with "or" and the rest with commas.
func joinExpected(labels []string) string {
	switch len(labels) {
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " or " + labels[1]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " or " + labels[len(labels)-1]
}

// MisuseError reports that a grammar drove a Builder or combinator incorrectly.
// It is raised with panic and should not be recovered by callers; it means
// the grammar is broken, not the input.
type MisuseError struct {
	Op      string
	Message string
}

func (e *MisuseError) Error() string {
	return "green: " + e.Op + ": " + e.Message
}

func misuse(op, format string, args ...any) {
	panic(&MisuseError{Op: op, Message: fmt.Sprintf(format, args...)})
}
