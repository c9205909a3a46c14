package ebnflex

import (
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

const testGrammar = `
Program = { Token } .
Token   = Keyword | Name | Number | Space | Arrow | Minus .
Keyword = "let" .
Name    = letter { letter | digit } .
Number  = digit { digit } [ "." { digit } ] .
Space   = " " { " " } .
Arrow   = "->" .
Minus   = "-" .
letter  = "a" … "z" | "_" .
digit   = "0" … "9" .
`

var testTokens = []string{"Keyword", "Name", "Number", "Space", "Arrow", "Minus"}

func parseGrammar(t *testing.T) ebnf.Grammar {
	t.Helper()
	g, err := ebnf.Parse("test.ebnf", strings.NewReader(testGrammar))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatalf("verify grammar: %v", err)
	}
	return g
}

func kinds(tokens []Token) string {
	var parts []string
	for _, tok := range tokens {
		parts = append(parts, tok.Kind+":"+tok.Literal)
	}
	return strings.Join(parts, " ")
}

func TestTokenize(t *testing.T) {
	g := parseGrammar(t)

	tests := []struct {
		name  string
		input string
		opts  []Option
		want  string
	}{
		{"keyword beats name on a tie", "let", nil, "Keyword:let EOF:"},
		{"longest match wins", "letter", nil, "Name:letter EOF:"},
		{"optional part may be empty", "12.", nil, "Number:12. EOF:"},
		{"arrow over minus", "a->-1", nil, "Name:a Arrow:-> Minus:- Number:1 EOF:"},
		{"invalid bytes", "a?b", nil, "Name:a Invalid:? Name:b EOF:"},
		{"case is significant by default", "LET", nil, "Invalid:L Invalid:E Invalid:T EOF:"},
		{"folded keyword", "LET Let", []Option{FoldCase("Keyword")}, "Keyword:LET Space:  Keyword:Let EOF:"},
		{"empty input", "", nil, "EOF:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(g, testTokens, []byte(tt.input), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			tokens, err := l.Tokenize()
			if err != nil {
				t.Fatal(err)
			}
			if got := kinds(tokens); got != tt.want {
				t.Errorf("tokens = %s\nwant     %s", got, tt.want)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	g := parseGrammar(t)
	l, err := New(g, []string{"Name", "Space"}, []byte("ab\ncd"), WithFilename("x.txt"))
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := l.Tokenize()
	if err != nil {
		t.Fatal(err)
	}

	// ab, Invalid newline, cd, EOF
	if len(tokens) != 4 {
		t.Fatalf("got %d tokens: %s", len(tokens), kinds(tokens))
	}
	cd := tokens[2]
	if cd.Position.String() != "x.txt:2:1" || cd.Position.Offset != 3 || cd.End() != 5 {
		t.Errorf("cd at %s offset %d end %d", cd.Position, cd.Position.Offset, cd.End())
	}
}

func TestUnknownTokenProduction(t *testing.T) {
	g := parseGrammar(t)
	if _, err := New(g, []string{"Missing"}, nil); err == nil {
		t.Error("expected an error for an undefined token production")
	}
}
