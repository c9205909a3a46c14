package comb

import "github.com/dhamidi/doomfront/green"

const (
	decDigits = "0123456789"
	octDigits = "01234567"
	hexDigits = "0123456789abcdefABCDEF"
)

func intSuffix() Parser[green.Span] {
	return Seq(Opt(OneOf("uUlL")), Opt(OneOf("uUlL")))
}

// CIntSpan recognises a C integer literal: hexadecimal with a 0x prefix,
// octal with a 0 prefix, or decimal, in that order of preference, each with
// up to two suffix characters out of u, U, l and L.
func CIntSpan() Parser[green.Span] {
	hex := Seq(Lit("0"), OneOf("xX"), Repeated(OneOf(hexDigits), 1), intSuffix())
	oct := Seq(Lit("0"), Repeated(OneOf(octDigits), 1), intSuffix())
	dec := Seq(Repeated(OneOf(decDigits), 1), intSuffix())
	return Atomic(Choice(hex, oct, dec), "integer literal")
}

// CFloatSpan recognises a C floating-point literal. The accepted shapes are,
// in order: digits with a mandatory exponent ("1e9"), optional digits, a
// point and at least one digit (".5", "0.5e3"), and digits followed by a
// point with optional fraction ("5.", "5.e2"). Each may end in f or F.
func CFloatSpan() Parser[green.Span] {
	digits0 := Repeated(OneOf(decDigits), 0)
	digits1 := Repeated(OneOf(decDigits), 1)
	exp := Seq(OneOf("eE"), Opt(OneOf("+-")), digits1)
	suffix := Opt(OneOf("fF"))

	expOnly := Seq(digits1, exp, suffix)
	leading := Seq(digits0, Lit("."), digits1, Opt(exp), suffix)
	trailing := Seq(digits1, Lit("."), digits0, Opt(exp), suffix)
	return Atomic(Choice(expOnly, leading, trailing), "floating-point literal")
}

// CInt emits a C integer literal as a token.
func CInt(kind green.Kind) Parser[green.Element] {
	return Tok(CIntSpan(), kind)
}

// CFloat emits a C floating-point literal as a token.
func CFloat(kind green.Kind) Parser[green.Element] {
	return Tok(CFloatSpan(), kind)
}
