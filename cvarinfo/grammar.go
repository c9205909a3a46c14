package cvarinfo

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/doomfront/ebnf/parse"
	"github.com/dhamidi/doomfront/ebnflex"
)

//go:embed cvarinfo.ebnf
var grammarSource string

// GrammarStart is the start production of the reference grammar.
const GrammarStart = "Document"

// GrammarSource returns the reference grammar in EBNF.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses the reference grammar.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("cvarinfo.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// VerifyGrammar checks that every production of the reference grammar is
// defined and reachable from Document.
func VerifyGrammar() error {
	g, err := Grammar()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, GrammarStart); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// TokenNames lists the token productions of the reference grammar. On equal
// match length, earlier names win, so keywords come before Ident.
var TokenNames = []string{
	"KwServer", "KwUser", "KwNoSave", "KwNoArchive", "KwCheat", "KwLatch",
	"TypeInt", "TypeFloat", "TypeBool", "TypeColor", "TypeString",
	"LitTrue", "LitFalse", "LitFloat", "LitInt", "LitString",
	"Ident", "Eq", "Semicolon", "Whitespace", "Comment",
}

func caseInsensitiveTokens() []string {
	var out []string
	for _, kw := range flagKeywords {
		out = append(out, kindNames[kw.kind])
	}
	for _, kw := range typeKeywords {
		out = append(out, kindNames[kw.kind])
	}
	return append(out, kindNames[LitTrue], kindNames[LitFalse])
}

// NewLexer returns a lexer over src driven by the reference grammar.
func NewLexer(src, filename string) (*ebnflex.Lexer, error) {
	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	return ebnflex.New(g, TokenNames, []byte(src),
		ebnflex.WithFilename(filename),
		ebnflex.FoldCase(caseInsensitiveTokens()...),
	)
}

// Lex splits src into tokens using the reference grammar. Input no token
// matches comes out as single-byte tokens of kind ebnflex.Invalid.
func Lex(src string) ([]ebnflex.Token, error) {
	l, err := NewLexer(src, "")
	if err != nil {
		return nil, err
	}
	return l.Tokenize()
}

// Conforms checks src against the reference grammar, lexing it with NewLexer
// and recognizing the tokens with an Earley parser. It shares no code with
// Parse, which makes it a cross-check of the hand-written grammar. Escape
// sequences are not checked for valid code points.
func Conforms(src string) error {
	g, err := Grammar()
	if err != nil {
		return err
	}
	tokens, err := Lex(src)
	if err != nil {
		return err
	}
	p, err := parse.NewEarleyParser(g, TokenNames, GrammarStart)
	if err != nil {
		return err
	}
	return p.Recognize(tokens, GrammarStart)
}
