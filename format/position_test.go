package format

import "testing"

func TestLineIndex(t *testing.T) {
	li := NewLineIndex("ab\r\ncd\n\nefg")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{2, Position{1, 3}},
		{4, Position{2, 1}},
		{7, Position{3, 1}},
		{8, Position{4, 1}},
		{11, Position{4, 4}},
		{99, Position{4, 4}},
		{-1, Position{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := li.Position(tt.offset); got != tt.want {
				t.Errorf("Position(%d) = %s, want %s", tt.offset, got, tt.want)
			}
			if tt.offset >= 0 && tt.offset <= 11 {
				if got := li.Offset(tt.want); got != tt.offset {
					t.Errorf("Offset(%s) = %d, want %d", tt.want, got, tt.offset)
				}
			}
		})
	}

	if li.NumLines() != 4 {
		t.Errorf("NumLines = %d", li.NumLines())
	}
	for n, want := range map[int]string{1: "ab", 2: "cd", 3: "", 4: "efg", 5: ""} {
		if got := li.Line(n); got != want {
			t.Errorf("Line(%d) = %q, want %q", n, got, want)
		}
	}
	if got := li.Offset(Position{Line: 1, Column: 40}); got != 3 {
		t.Errorf("Offset past end of line 1 = %d, want 3", got)
	}
}
