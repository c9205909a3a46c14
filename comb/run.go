package comb

import "github.com/dhamidi/doomfront/green"

// Run parses src with p in strict mode. The parse succeeds only if p matches
// all of src and no diagnostics were emitted along the way; otherwise the zero
// value is returned with the errors.
func Run[T any](p Parser[T], lang green.Language, src string) (T, []green.ParseError) {
	s := NewState(lang, src)
	v, ok := p(s)
	if ok && !s.AtEnd() {
		s.Expect(s.pos, "end of input")
		ok = false
	}

	var zero T
	if !ok {
		return zero, append(s.diags, s.Failure())
	}
	if len(s.diags) > 0 {
		return zero, s.diags
	}
	return v, nil
}

// RunRecovery parses src with p and returns whatever p produced together with
// every diagnostic in the order it was raised. ok reports whether p matched;
// input left over after p is reported as an error but does not clear ok.
func RunRecovery[T any](p Parser[T], lang green.Language, src string) (v T, ok bool, errs []green.ParseError) {
	s := NewState(lang, src)
	v, ok = p(s)
	if !ok {
		return v, false, append(s.diags, s.Failure())
	}
	if !s.AtEnd() {
		s.Expect(s.pos, "end of input")
		s.Emit(s.Failure())
	}
	return v, true, s.diags
}
