package comb

import "github.com/dhamidi/doomfront/green"

// Accumulator collects the children of a node while it is being parsed.
// The containers differ only in how they allocate.
type Accumulator[A any] interface {
	Push(e green.Element) A
	Elements() []green.Element
}

// Vec is a growable accumulator.
type Vec []green.Element

func (v Vec) Push(e green.Element) Vec {
	return append(v, e)
}

func (v Vec) Elements() []green.Element {
	return v
}

// ArrCap is the capacity of an Arr.
const ArrCap = 8

// Arr is an accumulator stored inline, for syntax groups with a small fixed
// number of children. Pushing more than ArrCap elements is a grammar bug.
type Arr struct {
	items [ArrCap]green.Element
	n     int
}

func (a Arr) Push(e green.Element) Arr {
	if a.n == ArrCap {
		panic(&green.MisuseError{Op: "Arr.Push", Message: "more than 8 elements pushed to an inline array"})
	}
	a.items[a.n] = e
	a.n++
	return a
}

func (a Arr) Elements() []green.Element {
	out := make([]green.Element, a.n)
	copy(out, a.items[:a.n])
	return out
}

func (a Arr) Len() int {
	return a.n
}

// StartVec starts a growable accumulator with p's output.
func StartVec(p Parser[green.Element]) Parser[Vec] {
	return Map(p, func(e green.Element) Vec { return Vec{e} })
}

// StartSmall is StartVec with room for n elements reserved up front.
func StartSmall(p Parser[green.Element], n int) Parser[Vec] {
	return Map(p, func(e green.Element) Vec {
		v := make(Vec, 1, max(n, 1))
		v[0] = e
		return v
	})
}

// StartArr starts an inline accumulator with p's output.
func StartArr(p Parser[green.Element]) Parser[Arr] {
	return Map(p, func(e green.Element) Arr { return Arr{}.Push(e) })
}

// StartVecOpt starts a growable accumulator with p's output, or an empty one
// if p does not match.
func StartVecOpt(p Parser[green.Element]) Parser[Vec] {
	return func(s *State) (Vec, bool) {
		start := s.pos
		if e, ok := p(s); ok {
			return Vec{e}, true
		}
		s.pos = start
		return Vec{}, true
	}
}

// ChainPush runs acc and then p, pushing p's output.
func ChainPush[A Accumulator[A]](acc Parser[A], p Parser[green.Element]) Parser[A] {
	return func(s *State) (A, bool) {
		start := s.pos
		a, ok := acc(s)
		if !ok {
			return a, false
		}
		e, ok := p(s)
		if !ok {
			s.pos = start
			return a, false
		}
		return a.Push(e), true
	}
}

// ChainPushOpt runs acc and then tries p, pushing its output if it matched.
func ChainPushOpt[A Accumulator[A]](acc Parser[A], p Parser[green.Element]) Parser[A] {
	return func(s *State) (A, bool) {
		a, ok := acc(s)
		if !ok {
			return a, false
		}
		before := s.pos
		if e, ok := p(s); ok {
			return a.Push(e), true
		}
		s.pos = before
		return a, true
	}
}

// ChainAppend runs acc and then more, appending everything more collected.
func ChainAppend[A Accumulator[A], B Accumulator[B]](acc Parser[A], more Parser[B]) Parser[A] {
	return func(s *State) (A, bool) {
		start := s.pos
		a, ok := acc(s)
		if !ok {
			return a, false
		}
		b, ok := more(s)
		if !ok {
			s.pos = start
			return a, false
		}
		for _, e := range b.Elements() {
			a = a.Push(e)
		}
		return a, true
	}
}

// Repeat collects p's output at least min times and as often as possible
// after that. Repetition stops if p succeeds without consuming input. Unlike
// Repeated, the failure that ends the repetition stays on record, so a
// strict parse can report why the next item did not match.
func Repeat(p Parser[green.Element], min int) Parser[Vec] {
	return func(s *State) (Vec, bool) {
		start := s.pos
		var out Vec
		for {
			before := s.pos
			e, ok := p(s)
			if !ok || s.pos == before {
				s.pos = before
				if len(out) < min {
					s.pos = start
					return nil, false
				}
				if out == nil {
					out = Vec{}
				}
				return out, true
			}
			out = append(out, e)
		}
	}
}

// CollectNode wraps everything acc collected into a node of the given kind.
func CollectNode[A Accumulator[A]](acc Parser[A], kind green.Kind) Parser[green.Element] {
	return func(s *State) (green.Element, bool) {
		a, ok := acc(s)
		if !ok {
			return nil, false
		}
		return s.Node(kind, a.Elements()), true
	}
}

// CollectRoot is CollectNode for the node covering a whole document.
func CollectRoot[A Accumulator[A]](acc Parser[A], kind green.Kind) Parser[*green.Node] {
	return func(s *State) (*green.Node, bool) {
		a, ok := acc(s)
		if !ok {
			return nil, false
		}
		return s.Node(kind, a.Elements()), true
	}
}

// Remap changes the kind of the token or node p produced, keeping its
// contents.
func Remap(p Parser[green.Element], kind green.Kind) Parser[green.Element] {
	return func(s *State) (green.Element, bool) {
		e, ok := p(s)
		if !ok {
			return nil, false
		}
		green.CheckKind(s.lang, kind)
		switch e := e.(type) {
		case *green.Token:
			return green.NewToken(kind, e.Text()), true
		case *green.Node:
			return green.NewNode(kind, e.Children()), true
		}
		return e, true
	}
}

// RepeatFlat is Repeat for parsers that produce several elements at once.
// The outputs are concatenated in order.
func RepeatFlat[A Accumulator[A]](p Parser[A], min int) Parser[Vec] {
	return func(s *State) (Vec, bool) {
		start := s.pos
		out := Vec{}
		for n := 0; ; n++ {
			before := s.pos
			a, ok := p(s)
			if !ok || s.pos == before {
				s.pos = before
				if n < min {
					s.pos = start
					return nil, false
				}
				return out, true
			}
			out = append(out, a.Elements()...)
		}
	}
}
