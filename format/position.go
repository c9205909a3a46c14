package format

import (
	"fmt"
	"sort"
	"strings"
)

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps byte offsets of a source to lines and columns.
type LineIndex struct {
	src    string
	starts []int
}

func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Position returns the line and column of offset. Offsets outside the
// source are clamped.
func (li *LineIndex) Position(offset int) Position {
	offset = max(0, min(offset, len(li.src)))
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return Position{Line: line + 1, Column: offset - li.starts[line] + 1}
}

// Offset is the inverse of Position. Columns past the end of their line are
// clamped to it.
func (li *LineIndex) Offset(p Position) int {
	if p.Line < 1 {
		return 0
	}
	if p.Line > len(li.starts) {
		return len(li.src)
	}
	start := li.starts[p.Line-1]
	end := len(li.src)
	if p.Line < len(li.starts) {
		end = li.starts[p.Line] - 1
	}
	return min(start+max(p.Column-1, 0), end)
}

func (li *LineIndex) NumLines() int {
	return len(li.starts)
}

// Line returns the text of line n without its line break.
func (li *LineIndex) Line(n int) string {
	if n < 1 || n > len(li.starts) {
		return ""
	}
	start := li.starts[n-1]
	end := len(li.src)
	if n < len(li.starts) {
		end = li.starts[n] - 1
	}
	return strings.TrimSuffix(li.src[start:end], "\r")
}
