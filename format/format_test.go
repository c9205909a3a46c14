package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/doomfront/cvarinfo"
	"github.com/dhamidi/doomfront/green"
	"github.com/r3labs/diff/v2"
)

const (
	kWord green.Kind = iota
	kSpace
	kLine
	kRoot
)

type testLang struct{}

func (testLang) Name() string     { return "test" }
func (testLang) Root() green.Kind { return kRoot }
func (testLang) KindName(k green.Kind) string {
	return [...]string{"Word", "Space", "Line", "Root"}[k]
}

// twoLines is the tree of "ab\ncd".
func twoLines(errs ...green.ParseError) *green.ParseTree {
	root := green.NewNode(kRoot, []green.Element{
		green.NewNode(kLine, []green.Element{
			green.NewToken(kWord, "ab"),
			green.NewToken(kSpace, "\n"),
		}),
		green.NewNode(kLine, []green.Element{
			green.NewToken(kWord, "cd"),
		}),
	})
	return green.NewParseTree(root, errs)
}

func loc(offset, line, column int) Location {
	return Location{Offset: offset, Position: Position{Line: line, Column: column}}
}

func TestNewDocument(t *testing.T) {
	tree := twoLines(green.ParseError{
		Span:     green.Span{Start: 3, End: 5},
		Expected: []string{"digit"},
		Found:    "c",
	})

	want := &Document{
		Language: "test",
		Root: &Node{
			Kind: "Root",
			Span: Span{loc(0, 1, 1), loc(5, 2, 3)},
			Children: []*Node{
				{
					Kind: "Line",
					Span: Span{loc(0, 1, 1), loc(3, 2, 1)},
					Children: []*Node{
						{Kind: "Word", Span: Span{loc(0, 1, 1), loc(2, 1, 3)}, Text: "ab"},
						{Kind: "Space", Span: Span{loc(2, 1, 3), loc(3, 2, 1)}, Text: "\n"},
					},
				},
				{
					Kind: "Line",
					Span: Span{loc(3, 2, 1), loc(5, 2, 3)},
					Children: []*Node{
						{Kind: "Word", Span: Span{loc(3, 2, 1), loc(5, 2, 3)}, Text: "cd"},
					},
				},
			},
		},
		Errors: []Error{{
			Message:  `unexpected "c", expected digit`,
			Span:     Span{loc(3, 2, 1), loc(5, 2, 3)},
			Expected: []string{"digit"},
			Found:    "c",
		}},
	}

	got := NewDocument(tree, testLang{})
	changes, err := diff.Diff(want, got)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range changes {
		t.Errorf("%s: want %v, got %v", strings.Join(c.Path, "."), c.From, c.To)
	}
}

func TestJSONEncoderDecodesToDocument(t *testing.T) {
	pt := cvarinfo.ParseRecov("user int a = 1;\nserver bool b =;\n")

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf, cvarinfo.Lang).Encode(pt); err != nil {
		t.Fatal(err)
	}
	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	changes, err := diff.Diff(NewDocument(pt, cvarinfo.Lang), &decoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) > 0 {
		t.Errorf("decoded document differs: %v", changes)
	}
	if decoded.Language != "CVARINFO" || len(decoded.Errors) != 1 {
		t.Errorf("language %q, %d errors", decoded.Language, len(decoded.Errors))
	}
}

func TestTreeEncoder(t *testing.T) {
	pt, errs := cvarinfo.Parse("server int x;")
	if len(errs) > 0 {
		t.Fatal(errs)
	}

	got, err := NewTreeEncoder(nil, cvarinfo.Lang).MarshalText(pt)
	if err != nil {
		t.Fatal(err)
	}
	want := `Root@0..13
  Definition@0..13
    Flags@0..7
      KwServer@0..6 "server"
      Whitespace@6..7 " "
    TypeInt@7..10 "int"
    Whitespace@10..11 " "
    Ident@11..12 "x"
    Semicolon@12..13 ";"
`
	if string(got) != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeEncoderListsErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf, testLang{}).Encode(twoLines(green.ParseError{
		Span:    green.Span{Start: 1, End: 2},
		Message: "boom",
	})); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if last := lines[len(lines)-1]; last != "error@1..2: boom" {
		t.Errorf("last line = %q", last)
	}
	if len(lines) != 7 {
		t.Errorf("got %d lines:\n%s", len(lines), buf.String())
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Formats {
		if _, err := NewEncoder(name, nil, testLang{}); err != nil {
			t.Errorf("NewEncoder(%q): %v", name, err)
		}
	}
	if _, err := NewEncoder("yaml", nil, testLang{}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
