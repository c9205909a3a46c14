// Package comb is a small parser combinator library producing green trees.
//
// Parsers scan a source string left to right. A recogniser (Parser[green.Span])
// only reports how much input it matched; Tok turns such a match into a leaf
// token holding exactly that slice of the source. Accumulators (Vec, Arr) and
// CollectNode then assemble tokens into nodes, so a grammar is written as a
// pipeline:
//
//	def := comb.CollectNode(
//		comb.ChainPush(
//			comb.ChainPush(comb.StartVec(flags), typeSpec),
//			comb.Just(";", Semicolon),
//		),
//		Definition,
//	)
//
// A failing parser restores the position it started at, so alternatives can
// be tried with Choice. The State remembers the furthest position any parser
// failed at together with what was expected there; that record becomes the
// ParseError reported by Run, RunRecovery and RecoverWith.
package comb

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/doomfront/green"
)

// Parser consumes a prefix of the remaining input and produces a T, or fails
// without consuming anything.
type Parser[T any] func(s *State) (T, bool)

// State is the input cursor shared by all parsers of one run. It is not safe
// for concurrent use; every parse gets its own State.
type State struct {
	lang  green.Language
	src   string
	pos   int
	fail  failure
	diags []green.ParseError
}

// failure is the furthest point any parser has failed at.
type failure struct {
	set      bool
	pos      int
	expected []string
}

func NewState(lang green.Language, src string) *State {
	return &State{lang: lang, src: src}
}

func (s *State) Language() green.Language { return s.lang }
func (s *State) Source() string { return s.src }
func (s *State) Pos() int { return s.pos }

// Rest returns the unconsumed input.
func (s *State) Rest() string {
	return s.src[s.pos:]
}

func (s *State) AtEnd() bool {
	return s.pos >= len(s.src)
}

// Reset moves the cursor back to pos. Only positions previously returned by
// Pos are valid.
func (s *State) Reset(pos int) {
	s.pos = pos
}

// Emit records a diagnostic without failing the current parser.
func (s *State) Emit(err green.ParseError) {
	s.diags = append(s.diags, err)
}

// Diagnostics returns every diagnostic recorded so far, in order.
func (s *State) Diagnostics() []green.ParseError {
	return s.diags
}

// Expect records that label would have been accepted at pos.
func (s *State) Expect(pos int, label string) {
	switch {
	case !s.fail.set || pos > s.fail.pos:
		s.fail = failure{set: true, pos: pos, expected: []string{label}}
	case pos == s.fail.pos:
		for _, l := range s.fail.expected {
			if l == label {
				return
			}
		}
		s.fail.expected = append(s.fail.expected, label)
	}
}

// snapshot saves the failure record so it can be restored after a
// speculative attempt. Expect only appends past the saved length or replaces
// the slice, so a shallow copy stays valid as long as restores nest.
func (s *State) snapshot() failure {
	return s.fail
}

// Failure converts the furthest failure into a ParseError and forgets it.
func (s *State) Failure() green.ParseError {
	pos := s.fail.pos
	if !s.fail.set {
		pos = s.pos
	}
	err := green.ParseError{
		Span:     green.Span{Start: pos, End: pos},
		Expected: append([]string(nil), s.fail.expected...),
	}
	if pos < len(s.src) {
		_, size := utf8.DecodeRuneInString(s.src[pos:])
		err.Span.End = pos + size
		err.Found = s.src[pos : pos+size]
	}
	s.fail = failure{}
	return err
}

// Token creates a leaf holding the source text at span.
func (s *State) Token(kind green.Kind, span green.Span) *green.Token {
	green.CheckKind(s.lang, kind)
	return green.NewToken(kind, s.src[span.Start:span.End])
}

// Node creates an interior node of the given kind.
func (s *State) Node(kind green.Kind, children []green.Element) *green.Node {
	green.CheckKind(s.lang, kind)
	return green.NewNode(kind, children)
}

func (s *State) String() string {
	rest := s.Rest()
	if len(rest) > 16 {
		rest = rest[:16] + "..."
	}
	return fmt.Sprintf("State{pos: %d, rest: %q}", s.pos, rest)
}
