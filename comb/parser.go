package comb

import "github.com/dhamidi/doomfront/green"

// Choice tries each parser in order and returns the first success.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	return func(s *State) (T, bool) {
		start := s.pos
		for _, p := range ps {
			if v, ok := p(s); ok {
				return v, true
			}
			s.pos = start
		}
		var zero T
		return zero, false
	}
}

func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(s *State) (U, bool) {
		v, ok := p(s)
		if !ok {
			var zero U
			return zero, false
		}
		return f(v), true
	}
}

// MapWithSpan is Map with the span of input p consumed.
func MapWithSpan[T, U any](p Parser[T], f func(T, green.Span) U) Parser[U] {
	return func(s *State) (U, bool) {
		start := s.pos
		v, ok := p(s)
		if !ok {
			var zero U
			return zero, false
		}
		return f(v, green.Span{Start: start, End: s.pos}), true
	}
}

// Labelled names what p expects. If p fails without getting past its first
// character, the failure is reported as "expected <label>" instead of listing
// whatever p tried internally.
func Labelled[T any](p Parser[T], label string) Parser[T] {
	return func(s *State) (T, bool) {
		start := s.pos
		saved := s.snapshot()

		v, ok := p(s)
		if !ok && (!s.fail.set || s.fail.pos <= start) {
			s.fail = saved
			s.Expect(start, label)
		}
		return v, ok
	}
}

// OrNot makes p optional. An absent element is reported as nil.
func OrNot(p Parser[green.Element]) Parser[green.Element] {
	return func(s *State) (green.Element, bool) {
		start := s.pos
		if v, ok := p(s); ok {
			return v, true
		}
		s.pos = start
		return nil, true
	}
}

// Validate lets f inspect p's output and emit diagnostics through the state
// without failing the parse. f may replace the output.
func Validate[T any](p Parser[T], f func(v T, span green.Span, s *State) T) Parser[T] {
	return func(s *State) (T, bool) {
		start := s.pos
		v, ok := p(s)
		if !ok {
			return v, false
		}
		return f(v, green.Span{Start: start, End: s.pos}, s), true
	}
}

// End succeeds only at the end of input.
func End() Parser[green.Span] {
	return func(s *State) (green.Span, bool) {
		if s.AtEnd() {
			return green.Span{Start: s.pos, End: s.pos}, true
		}
		s.Expect(s.pos, "end of input")
		return green.Span{}, false
	}
}

// Lazy defers construction of a parser until it is first run, for recursive
// grammars.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	var p Parser[T]
	return func(s *State) (T, bool) {
		if p == nil {
			p = f()
		}
		return p(s)
	}
}

// Atomic treats p as one lexical unit. Whatever p tried internally is
// forgotten, and a failure is reported as label at the position p started.
func Atomic[T any](p Parser[T], label string) Parser[T] {
	return func(s *State) (T, bool) {
		start := s.pos
		saved := s.snapshot()
		v, ok := p(s)
		s.fail = saved
		if !ok {
			s.pos = start
			s.Expect(start, label)
		}
		return v, ok
	}
}
