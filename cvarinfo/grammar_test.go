package cvarinfo

import (
	"strings"
	"testing"

	"github.com/dhamidi/doomfront/ebnflex"
	"github.com/dhamidi/doomfront/green"
)

func TestVerifyGrammar(t *testing.T) {
	if err := VerifyGrammar(); err != nil {
		t.Fatal(err)
	}
}

func TestTokenNamesAreKinds(t *testing.T) {
	for _, name := range TokenNames {
		if _, ok := KindByName(name); !ok {
			t.Errorf("token %s has no syntax kind", name)
		}
	}
}

// The reference lexer and the parser must split well-formed input into the
// same leaves.
func TestLexerAgreesWithParser(t *testing.T) {
	sources := []string{
		smokeSource,
		"SERVER Int x = 0x1F; // c\n",
		`user string s = "a\n0041";`,
		"/* a **/ cheat latch color c = 1.5e3f;",
		"nosave bool b=false;\r\n",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			pt, errs := Parse(src)
			if len(errs) > 0 {
				t.Fatalf("parse errors: %v", errs)
			}
			var parsed []string
			for _, tok := range pt.Root().Tokens() {
				parsed = append(parsed, Lang.KindName(tok.Kind())+":"+tok.Text())
			}

			tokens, err := Lex(src)
			if err != nil {
				t.Fatal(err)
			}
			var lexed []string
			for _, tok := range tokens {
				if tok.Kind == ebnflex.EOF {
					continue
				}
				lexed = append(lexed, tok.Kind+":"+tok.Literal)
			}

			if got, want := strings.Join(lexed, " | "), strings.Join(parsed, " | "); got != want {
				t.Errorf("lexer:  %s\nparser: %s", got, want)
			}
		})
	}
}

// The reference grammar and the parser must accept the same inputs.
func TestConformsAgreesWithParse(t *testing.T) {
	tests := []struct {
		src    string
		accept bool
	}{
		{smokeSource, true},
		{"", true},
		{"  // only a comment\n", true},
		{"SERVER Int x = 0x1F; // c\n", true},
		{"server int x=1 ;", false},
		{"server int x = 1 // c\n;", false},
		{"server bool b = TRUE;", true},
		{"server bool b = falsey;", false},
		{"server\nint x = 1.5e3f;", true},
		{`user string s = "a";`, true},
		{"server int x =;", false},
		{"server int x", false},
		{"int x;", false},
		{"server intx;", false},
		{"serverint x;", false},
		{"server int x = 1;;", false},
		{"server int x = tru;", false},
		{`user string s = "open;`, false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, errs := Parse(tt.src)
			if parsed := len(errs) == 0; parsed != tt.accept {
				t.Errorf("Parse accepted = %v, want %v: %v", parsed, tt.accept, errs)
			}
			err := Conforms(tt.src)
			if conforms := err == nil; conforms != tt.accept {
				t.Errorf("Conforms accepted = %v, want %v: %v", conforms, tt.accept, err)
			}
		})
	}
}

func TestConformsLocatesError(t *testing.T) {
	err := Conforms("user int a;\nserver int x =;\n")
	if err == nil {
		t.Fatal("accepted a missing default")
	}
	perr, ok := err.(green.ParseError)
	if !ok {
		t.Fatalf("error %T, want green.ParseError", err)
	}
	if perr.Span.Start != 26 || perr.Found != ";" {
		t.Errorf("error at %v found %q", perr.Span, perr.Found)
	}
}
