// Package cvarinfo parses CVARINFO, the lump in which mods declare console
// variables:
//
//	server int egghead_roundabout;
//	user float acidSurge = 0.4;
//	cheat noarchive nosave string NAME = "hi";
//
// Keywords, including true and false, are ASCII-case-insensitive. The
// semicolon follows the name or default value directly. Parse stops at the
// first error; ParseRecov skips malformed declarations and keeps going.
package cvarinfo

import (
	"github.com/dhamidi/doomfront/comb"
	"github.com/dhamidi/doomfront/green"
)

var (
	strictDocument  = document(false)
	recoverDocument = document(true)
)

// Parse parses src and fails on the first syntax error. On success the
// returned tree has no errors; on failure there is no tree.
func Parse(src string) (*green.ParseTree, []green.ParseError) {
	root, errs := comb.Run(strictDocument, Lang, src)
	if len(errs) > 0 {
		return nil, errs
	}
	return green.NewParseTree(root, nil), nil
}

// ParseRecov parses src, recovering from syntax errors. It always returns a
// tree; errors are attached to it in the order they were found.
//
// A declaration that fails to parse is replaced by an Unknown token covering
// everything up to the next semicolon or line break. A semicolon ending the
// skipped text is kept as its own token.
func ParseRecov(src string) *green.ParseTree {
	root, _, errs := comb.RunRecovery(recoverDocument, Lang, src)
	return green.NewParseTree(root, errs)
}

var recoverySync = comb.Sync{
	Chars:          ";\r\n",
	Unknown:        Unknown,
	Terminator:     ";",
	TerminatorKind: Semicolon,
}

func document(recovering bool) comb.Parser[*green.Node] {
	def := comb.StartVec(definition())
	if recovering {
		def = comb.Recover(definition(), recoverySync)
	}
	item := comb.Choice(comb.StartVec(trivia()), def)
	return comb.CollectRoot(comb.RepeatFlat(item, 0), Root)
}

func trivia() comb.Parser[green.Element] {
	return comb.WspExt(comb.Wsp(Whitespace), comb.CCppComment(Comment))
}

func definition() comb.Parser[green.Element] {
	p := comb.StartVec(flags())
	p = comb.ChainPush(p, typeSpec())
	p = comb.ChainAppend(p, comb.Repeat(trivia(), 1))
	p = comb.ChainPush(p, comb.Tok(comb.Ident(), Ident))
	p = comb.ChainPushOpt(p, defaultDef())
	p = comb.ChainPush(p, comb.Just(";", Semicolon))
	return comb.CollectNode(p, Definition)
}

type keyword struct {
	text string
	kind green.Kind
}

var flagKeywords = []keyword{
	{"server", KwServer},
	{"user", KwUser},
	{"nosave", KwNoSave},
	{"noarchive", KwNoArchive},
	{"cheat", KwCheat},
	{"latch", KwLatch},
}

var typeKeywords = []keyword{
	{"int", TypeInt},
	{"float", TypeFloat},
	{"bool", TypeBool},
	{"color", TypeColor},
	{"string", TypeString},
}

func keywords(table []keyword) comb.Parser[green.Element] {
	ps := make([]comb.Parser[green.Element], len(table))
	for i, kw := range table {
		ps[i] = comb.Tok(comb.JustNC(kw.text), kw.kind)
	}
	return comb.Choice(ps...)
}

func flags() comb.Parser[green.Element] {
	p := comb.Repeat(comb.Choice(keywords(flagKeywords), trivia()), 1)
	return comb.Labelled(comb.CollectNode(p, Flags), "flag keyword")
}

func typeSpec() comb.Parser[green.Element] {
	return comb.Labelled(keywords(typeKeywords), "type specifier")
}

func defaultDef() comb.Parser[green.Element] {
	p := comb.Repeat(trivia(), 0)
	p = comb.ChainPush(p, comb.Just("=", Eq))
	p = comb.ChainAppend(p, comb.Repeat(trivia(), 0))
	p = comb.ChainPush(p, literal())
	return comb.CollectNode(p, DefaultDef)
}

func literal() comb.Parser[green.Element] {
	return comb.Choice(
		comb.CFloat(LitFloat),
		comb.CInt(LitInt),
		comb.Tok(comb.JustNC("true"), LitTrue),
		comb.Tok(comb.JustNC("false"), LitFalse),
		stringLiteral(),
	)
}

const escapeIntroducers = `\abcfnrtv'"`

func stringLiteral() comb.Parser[green.Element] {
	hex := comb.OneOf("0123456789abcdefABCDEF")
	escape := comb.Seq(comb.Lit(`\`), comb.OneOf(escapeIntroducers), hex, hex, hex, hex)
	plain := comb.Filter("string character", func(r rune) bool {
		return r != '\\' && r != '"'
	})
	body := comb.Repeated(comb.Choice(plain, escape), 0)
	lit := comb.Labelled(comb.Seq(comb.Lit(`"`), body, comb.Lit(`"`)), "string literal")
	return comb.Validate(comb.Tok(lit, LitString), checkEscapes)
}

// checkEscapes reports escapes naming invalid code points. The literal
// itself is kept as written.
func checkEscapes(e green.Element, span green.Span, s *comb.State) green.Element {
	_, errs := Unescape(e.Text())
	for _, err := range errs {
		err.Span.Start += span.Start
		err.Span.End += span.Start
		s.Emit(err)
	}
	return e
}
