package comb

import (
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/doomfront/green"
)

// Sync describes where recovery stops skipping input.
type Sync struct {
	// Chars are the synchronisation characters. Skipping stops before the
	// first of them.
	Chars string
	// Unknown is the kind of the token holding the skipped input.
	Unknown green.Kind
	// Terminator, if not empty, is consumed after the skipped input when it
	// comes next, as its own token of kind TerminatorKind. It is not part of
	// the Unknown token, so a skipped statement keeps its semicolon.
	Terminator     string
	TerminatorKind green.Kind
}

// SkipUntil consumes input up to the next synchronisation character as one
// token of kind sync.Unknown. It always makes progress unless the input is
// exhausted: if a non-terminator synchronisation character comes first, that
// single character is skipped.
func SkipUntil(sync Sync) Parser[Vec] {
	return func(s *State) (Vec, bool) {
		start := s.pos
		rest := s.Rest()
		n := strings.IndexAny(rest, sync.Chars)
		if n < 0 {
			n = len(rest)
		}
		atTerm := sync.Terminator != "" && strings.HasPrefix(rest[n:], sync.Terminator)
		if n == 0 && !atTerm {
			if rest == "" {
				return nil, false
			}
			_, n = utf8.DecodeRuneInString(rest)
		}

		var out Vec
		if n > 0 {
			s.pos += n
			out = append(out, s.Token(sync.Unknown, green.Span{Start: start, End: s.pos}))
		}
		if atTerm {
			termStart := s.pos
			s.pos += len(sync.Terminator)
			out = append(out, s.Token(sync.TerminatorKind, green.Span{Start: termStart, End: s.pos}))
		}
		return out, true
	}
}

// RecoverWith runs p and, if it fails, runs skip from where p started
// instead. The furthest failure is recorded as a diagnostic only if skip
// matches; otherwise RecoverWith fails like p did.
func RecoverWith(p Parser[green.Element], skip Parser[Vec]) Parser[Vec] {
	return func(s *State) (Vec, bool) {
		start := s.pos
		if e, ok := p(s); ok {
			return Vec{e}, true
		}
		saved := s.snapshot()
		err := s.Failure()
		s.pos = start
		out, ok := skip(s)
		if !ok {
			s.pos = start
			s.fail = saved
			return nil, false
		}
		s.Emit(err)
		return out, true
	}
}

// Recover is RecoverWith using SkipUntil.
func Recover(p Parser[green.Element], sync Sync) Parser[Vec] {
	return RecoverWith(p, SkipUntil(sync))
}
