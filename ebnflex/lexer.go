// Package ebnflex provides lexical scanning based on EBNF grammars.
//
// A Lexer is given a grammar and the names of the productions that are
// tokens. At each position it tries every token production and takes the
// longest match; ties go to the production listed first. Matching is
// greedy and does not backtrack into repetitions, which is enough for the
// regular token grammars it is meant for.
package ebnflex

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/ebnf"
)

const (
	// Invalid is the kind of a single byte no token production matches.
	Invalid = "Invalid"
	// EOF is the kind of the token marking the end of input.
	EOF = "EOF"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// End is the byte offset just past the token.
func (t Token) End() int {
	return t.Position.Offset + len(t.Literal)
}

const noMatch = -1

type memoKey struct {
	name   string
	offset int
	fold   bool
}

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	tokens   []string
	fold     map[string]bool
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length per production and offset
	visiting map[memoKey]bool // cycle detection
}

type Option func(*Lexer)

// WithFilename sets the file name reported in token positions.
func WithFilename(name string) Option {
	return func(l *Lexer) {
		l.filename = name
	}
}

// FoldCase makes the named token productions match ASCII letters
// case-insensitively, including inside the productions they reference.
func FoldCase(names ...string) Option {
	return func(l *Lexer) {
		for _, n := range names {
			l.fold[n] = true
		}
	}
}

// New creates a lexer for input. tokens names the productions of grammar
// that are tokens, in order of preference.
func New(grammar ebnf.Grammar, tokens []string, input []byte, opts ...Option) (*Lexer, error) {
	for _, name := range tokens {
		if prod, ok := grammar[name]; !ok || prod.Expr == nil {
			return nil, fmt.Errorf("token production %s is not defined", name)
		}
	}

	l := &Lexer{
		grammar: grammar,
		tokens:  tokens,
		fold:    make(map[string]bool),
		input:   input,
		line:    1,
		column:  1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// NextToken returns the next token from the input, or a token of kind EOF
// together with io.EOF at the end.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Position: l.Position()}, io.EOF
	}

	start := l.Position()

	// Match lengths are only valid for one starting offset.
	l.memo = make(map[memoKey]int)
	l.visiting = make(map[memoKey]bool)

	bestKind, bestLen := "", 0
	for _, name := range l.tokens {
		n := l.tryMatch(l.grammar[name].Expr, l.pos, l.fold[name])
		if n > bestLen {
			bestKind, bestLen = name, n
		}
	}

	if bestLen == 0 {
		lit := string(l.input[l.pos : l.pos+1])
		l.advance()
		return Token{Kind: Invalid, Literal: lit, Position: start}, nil
	}

	lit := string(l.input[l.pos : l.pos+bestLen])
	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{Kind: bestKind, Literal: lit, Position: start}, nil
}

// tryMatch returns the length of the match of expr at offset, or noMatch.
// A match may be empty.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int, fold bool) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.tryMatchToken(e.String, offset, fold)

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset, fold)

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n := l.tryMatch(item, pos, fold)
			if n == noMatch {
				return noMatch
			}
			pos += n
		}
		return pos - offset

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			if n := l.tryMatch(alt, offset, fold); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		pos := offset
		for {
			n := l.tryMatch(e.Body, pos, fold)
			if n <= 0 {
				break
			}
			pos += n
		}
		return pos - offset

	case *ebnf.Option:
		return max(l.tryMatch(e.Body, offset, fold), 0)

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset, fold)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset, fold)
	}
	return noMatch
}

// tryMatchName matches a named production with memoization and cycle detection.
func (l *Lexer) tryMatchName(name string, offset int, fold bool) int {
	key := memoKey{name: name, offset: offset, fold: fold}

	if n, ok := l.memo[key]; ok {
		return n
	}

	// Left recursion: refuse to re-enter the same production at the same
	// offset.
	if l.visiting[key] {
		return noMatch
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = noMatch
		return noMatch
	}

	l.visiting[key] = true
	n := l.tryMatch(prod.Expr, offset, fold)
	delete(l.visiting, key)

	l.memo[key] = n
	return n
}

// tryMatchToken matches a literal string.
func (l *Lexer) tryMatchToken(lit string, offset int, fold bool) int {
	if offset+len(lit) > len(l.input) {
		return noMatch
	}
	for i := 0; i < len(lit); i++ {
		a, b := l.input[offset+i], lit[i]
		if fold {
			a, b = lower(a), lower(b)
		}
		if a != b {
			return noMatch
		}
	}
	return len(lit)
}

// tryMatchRange matches one byte in a character range such as "a" … "z".
func (l *Lexer) tryMatchRange(begin, end string, offset int, fold bool) int {
	if offset >= len(l.input) || len(begin) != 1 || len(end) != 1 {
		return noMatch
	}
	ch := l.input[offset]
	if ch >= begin[0] && ch <= end[0] {
		return 1
	}
	if fold {
		if c := lower(ch); c >= begin[0] && c <= end[0] {
			return 1
		}
		if c := upper(ch); c >= begin[0] && c <= end[0] {
			return 1
		}
	}
	return noMatch
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Tokenize reads all tokens from input. The last token has kind EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
	}
}
