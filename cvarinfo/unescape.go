package cvarinfo

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/doomfront/green"
)

// Unescape returns the value of a string literal. Surrounding quotes are
// removed if present.
//
// An escape is a backslash, one of the introducers \ a b c f n r t v ' ",
// and exactly four hexadecimal digits naming a code point; the introducer
// itself carries no meaning. Escapes naming a surrogate are replaced by
// U+FFFD and reported. A backslash not starting a well-formed escape is kept
// as is and reported. Error spans are byte offsets into lit.
func Unescape(lit string) (string, []green.ParseError) {
	body, offset := lit, 0
	if len(body) >= 2 && body[0] == '"' && body[len(body)-1] == '"' {
		body, offset = body[1:len(body)-1], 1
	}

	var (
		b    strings.Builder
		errs []green.ParseError
	)
	b.Grow(len(body))

	for i := 0; i < len(body); {
		if body[i] != '\\' {
			_, size := utf8.DecodeRuneInString(body[i:])
			b.WriteString(body[i : i+size])
			i += size
			continue
		}

		if i+6 > len(body) || !strings.ContainsRune(escapeIntroducers, rune(body[i+1])) {
			errs = append(errs, green.ParseError{
				Span:    green.Span{Start: offset + i, End: offset + min(i+2, len(body))},
				Message: "malformed escape sequence",
			})
			b.WriteByte('\\')
			i++
			continue
		}

		digits := body[i+2 : i+6]
		cp, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			errs = append(errs, green.ParseError{
				Span:    green.Span{Start: offset + i, End: offset + i + 6},
				Message: "malformed escape sequence",
			})
			b.WriteByte('\\')
			i++
			continue
		}

		r := rune(cp)
		if !utf8.ValidRune(r) {
			errs = append(errs, green.ParseError{
				Span:    green.Span{Start: offset + i + 2, End: offset + i + 6},
				Message: fmt.Sprintf("invalid Unicode code point U+%04X", cp),
			})
			r = utf8.RuneError
		}
		b.WriteRune(r)
		i += 6
	}

	return b.String(), errs
}
