package comb

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/doomfront/green"
)

// Lit matches lit exactly.
func Lit(lit string) Parser[green.Span] {
	label := fmt.Sprintf("%q", lit)
	return func(s *State) (green.Span, bool) {
		if strings.HasPrefix(s.Rest(), lit) {
			start := s.pos
			s.pos += len(lit)
			return green.Span{Start: start, End: s.pos}, true
		}
		s.Expect(s.pos, label)
		return green.Span{}, false
	}
}

// OneOf matches a single character contained in chars.
func OneOf(chars string) Parser[green.Span] {
	return Filter(fmt.Sprintf("one of %q", chars), func(r rune) bool {
		return strings.ContainsRune(chars, r)
	})
}

// Filter matches a single character satisfying pred.
func Filter(label string, pred func(rune) bool) Parser[green.Span] {
	return func(s *State) (green.Span, bool) {
		if s.AtEnd() {
			s.Expect(s.pos, label)
			return green.Span{}, false
		}
		r, size := utf8.DecodeRuneInString(s.Rest())
		if !pred(r) {
			s.Expect(s.pos, label)
			return green.Span{}, false
		}
		start := s.pos
		s.pos += size
		return green.Span{Start: start, End: s.pos}, true
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

// Ident matches an ASCII letter or underscore followed by any number of ASCII
// letters, digits and underscores.
func Ident() Parser[green.Span] {
	return func(s *State) (green.Span, bool) {
		rest := s.Rest()
		if rest == "" || !isIdentStart(rest[0]) {
			s.Expect(s.pos, "identifier")
			return green.Span{}, false
		}
		n := 1
		for n < len(rest) && isIdentPart(rest[n]) {
			n++
		}
		start := s.pos
		s.pos += n
		return green.Span{Start: start, End: s.pos}, true
	}
}

// JustNC matches a whole identifier that equals kw, ignoring ASCII case.
// "SERVER" and "Server" match JustNC("server"); "servers" does not.
func JustNC(kw string) Parser[green.Span] {
	label := fmt.Sprintf("%q", kw)
	ident := Ident()
	return func(s *State) (green.Span, bool) {
		start := s.pos
		saved := s.snapshot()
		span, ok := ident(s)
		if ok && equalFoldASCII(s.src[span.Start:span.End], kw) {
			return span, true
		}
		s.pos = start
		s.fail = saved
		s.Expect(start, label)
		return green.Span{}, false
	}
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// Newline matches one line break: "\r\n", "\n", "\r", or one of the Unicode
// line separators VT, FF, NEL, LS and PS.
func Newline() Parser[green.Span] {
	return Labelled(Choice(
		Lit("\r\n"),
		OneOf("\n\r\x0b\x0c\u0085\u2028\u2029"),
	), "newline")
}

// TakeUntil consumes input up to and including the first match of end.
// It fails if end never matches.
func TakeUntil(end Parser[green.Span]) Parser[green.Span] {
	return func(s *State) (green.Span, bool) {
		start := s.pos
		for {
			if _, ok := end(s); ok {
				return green.Span{Start: start, End: s.pos}, true
			}
			if s.AtEnd() {
				s.pos = start
				return green.Span{}, false
			}
			_, size := utf8.DecodeRuneInString(s.Rest())
			s.pos += size
		}
	}
}

// Repeated matches p at least min times and as often as possible after that.
// Repetition stops if p succeeds without consuming input. Repeated is meant
// for lexical runs, so the attempt that ends a successful repetition does not
// count as a failure.
func Repeated(p Parser[green.Span], min int) Parser[green.Span] {
	return func(s *State) (green.Span, bool) {
		start := s.pos
		for n := 0; ; n++ {
			before := s.pos
			saved := s.snapshot()
			if _, ok := p(s); !ok || s.pos == before {
				s.pos = before
				if n < min {
					s.pos = start
					return green.Span{}, false
				}
				s.fail = saved
				return green.Span{Start: start, End: s.pos}, true
			}
		}
	}
}

// Seq matches each parser in turn.
func Seq(ps ...Parser[green.Span]) Parser[green.Span] {
	return func(s *State) (green.Span, bool) {
		start := s.pos
		for _, p := range ps {
			if _, ok := p(s); !ok {
				s.pos = start
				return green.Span{}, false
			}
		}
		return green.Span{Start: start, End: s.pos}, true
	}
}

// Opt matches p or nothing.
func Opt(p Parser[green.Span]) Parser[green.Span] {
	return func(s *State) (green.Span, bool) {
		start := s.pos
		if span, ok := p(s); ok {
			return span, true
		}
		s.pos = start
		return green.Span{Start: start, End: start}, true
	}
}

// Tok turns the input matched by p into a token of the given kind.
func Tok(p Parser[green.Span], kind green.Kind) Parser[green.Element] {
	return func(s *State) (green.Element, bool) {
		span, ok := p(s)
		if !ok {
			return nil, false
		}
		return s.Token(kind, span), true
	}
}

// Just matches lit exactly and emits it as a token.
func Just(lit string, kind green.Kind) Parser[green.Element] {
	return Tok(Lit(lit), kind)
}

// Wsp folds a run of spaces, tabs, carriage returns and newlines into one
// token.
func Wsp(kind green.Kind) Parser[green.Element] {
	return Tok(Labelled(Repeated(OneOf(" \t\r\n"), 1), "whitespace"), kind)
}

func notNewline(r rune) bool {
	switch r {
	case '\n', '\r', '\x0b', '\x0c', '\u0085', '\u2028', '\u2029':
		return false
	}
	return true
}

// CppComment matches a "//" comment up to, not including, the line break.
func CppComment(kind green.Kind) Parser[green.Element] {
	return Tok(Seq(Lit("//"), Repeated(Filter("comment text", notNewline), 0)), kind)
}

// CComment matches a non-nesting "/* */" comment.
func CComment(kind green.Kind) Parser[green.Element] {
	return Tok(Seq(Lit("/*"), TakeUntil(Lit("*/"))), kind)
}

// CCppComment matches either comment form.
func CCppComment(kind green.Kind) Parser[green.Element] {
	return Labelled(Choice(CppComment(kind), CComment(kind)), "comment")
}

// WspExt matches whitespace or a comment.
func WspExt(wsp, comment Parser[green.Element]) Parser[green.Element] {
	return Choice(wsp, comment)
}
