// Package grammar is a JSON grammar built from the function-value parsers of
// package combinator.
//
// Every rule is a constructor returning a fresh parser. Recursion from
// values back into elements goes through combinator.Lazy, so constructing a
// rule never recurses unboundedly.
package grammar

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	c "github.com/mcncl/parsely/internal/combinator"
	"github.com/mcncl/parsely/internal/models"
)

// Parse parses a JSON value from the start of input. Input after the value
// and its trailing whitespace is ignored; use ParsePrefix to inspect it.
func Parse(input string) (models.Value, bool) {
	v, _, ok := Element()(input)
	return v, ok
}

// ParsePrefix parses a JSON value from the start of input and returns the
// unconsumed remainder.
func ParsePrefix(input string) (models.Value, string, bool) {
	return Element()(input)
}

// Element is a value surrounded by optional whitespace.
func Element() c.Parser[models.Value] {
	return c.Lazy(func() c.Parser[models.Value] {
		return c.Between(Whitespace(), Value(), Whitespace())
	})
}

// Value tries null, boolean, number, string, array and object in that order.
func Value() c.Parser[models.Value] {
	return c.Choice(Null(), Boolean(), Number(), String(), Array(), Object())
}

func Null() c.Parser[models.Value] {
	return c.Map(c.Token("null"), func(string) models.Value { return models.Null{} })
}

func Boolean() c.Parser[models.Value] {
	return c.Map(c.Or(c.Token("true"), c.Token("false")), func(lit string) models.Value {
		return models.Bool(lit == "true")
	})
}

// Number accepts an optional minus sign, integer digits, an optional
// fraction and an optional exponent whose sign may be omitted. The digit
// text is kept as written and converted once, so leading fraction zeros and
// long digit runs are preserved. Literals outside the float64 range fail.
func Number() c.Parser[models.Value] {
	integer := c.Map(c.And(c.Optional(c.Char('-')), digits()), func(p c.Pair[c.Option[rune], string]) string {
		if p.First.Present {
			return "-" + p.Second
		}
		return p.Second
	})
	fraction := c.Map(c.And(c.Char('.'), digits()), func(p c.Pair[rune, string]) string {
		return p.Second
	})
	sign := c.Map(c.Optional(c.Or(c.Char('+'), c.Char('-'))), func(o c.Option[rune]) string {
		if o.Present {
			return string(o.Value)
		}
		return ""
	})
	exponent := c.Map(c.And(c.Or(c.Char('e'), c.Char('E')), c.And(sign, digits())), func(p c.Pair[rune, c.Pair[string, string]]) string {
		return p.Second.First + p.Second.Second
	})

	literal := c.Map(
		c.And(c.And(integer, c.Optional(fraction)), c.Optional(exponent)),
		func(p c.Pair[c.Pair[string, c.Option[string]], c.Option[string]]) string {
			var b strings.Builder
			b.WriteString(p.First.First)
			if f, ok := p.First.Second.Get(); ok {
				b.WriteByte('.')
				b.WriteString(f)
			}
			if e, ok := p.Second.Get(); ok {
				b.WriteByte('e')
				b.WriteString(e)
			}
			return b.String()
		},
	)

	converted := c.Filter(c.Map(literal, toFloat), func(r floatResult) bool { return r.err == nil })
	return c.Map(converted, func(r floatResult) models.Value { return models.Number(r.value) })
}

type floatResult struct {
	value float64
	err   error
}

func toFloat(text string) floatResult {
	f, err := strconv.ParseFloat(text, 64)
	return floatResult{value: f, err: err}
}

// digits is a run of one or more decimal digits, as text.
func digits() c.Parser[string] {
	return c.Map(c.Many1(c.Digit()), func(ds []int) string {
		b := make([]byte, len(ds))
		for i, d := range ds {
			b[i] = byte('0' + d)
		}
		return string(b)
	})
}

func String() c.Parser[models.Value] {
	return c.Map(stringLiteral(), func(s string) models.Value { return models.String(s) })
}

func stringLiteral() c.Parser[string] {
	characters := c.Many(c.Or(unescaped(), escaped()))
	return c.Map(c.Between(c.Char('"'), characters, c.Char('"')), func(rs []rune) string {
		return string(rs)
	})
}

// unescaped is any character from U+0020 up except '"' and '\'.
func unescaped() c.Parser[rune] {
	return c.Except(c.CharRange(0x20, unicode.MaxRune), c.Or(c.Char('"'), c.Char('\\')))
}

func escaped() c.Parser[rune] {
	simple := c.Map(
		c.Choice(c.Char('"'), c.Char('\\'), c.Char('/'), c.Char('b'), c.Char('f'), c.Char('n'), c.Char('r'), c.Char('t')),
		func(r rune) rune {
			switch r {
			case 'b':
				return '\b'
			case 'f':
				return '\f'
			case 'n':
				return '\n'
			case 'r':
				return '\r'
			case 't':
				return '\t'
			}
			return r
		},
	)
	return c.Map(c.And(c.Char('\\'), c.Or(simple, unicodeEscape())), func(p c.Pair[rune, rune]) rune {
		return p.Second
	})
}

// unicodeEscape decodes the text after a backslash: u followed by four hex
// digits, or a surrogate pair written as two such escapes. A lone
// surrogate does not match.
func unicodeEscape() c.Parser[rune] {
	high := c.Filter(codeUnit(), func(r rune) bool { return 0xD800 <= r && r <= 0xDBFF })
	low := c.Filter(codeUnit(), func(r rune) bool { return 0xDC00 <= r && r <= 0xDFFF })
	pair := c.Map(c.And(high, c.And(c.Char('\\'), low)), func(p c.Pair[rune, c.Pair[rune, rune]]) rune {
		return utf16.DecodeRune(p.First, p.Second.Second)
	})
	single := c.Filter(codeUnit(), utf8.ValidRune)
	return c.Or(pair, single)
}

func codeUnit() c.Parser[rune] {
	hex4 := c.And(c.And(hexDigit(), hexDigit()), c.And(hexDigit(), hexDigit()))
	return c.Map(c.And(c.Char('u'), hex4), func(p c.Pair[rune, c.Pair[c.Pair[int, int], c.Pair[int, int]]]) rune {
		h := p.Second
		return rune(h.First.First<<12 | h.First.Second<<8 | h.Second.First<<4 | h.Second.Second)
	})
}

func hexDigit() c.Parser[int] {
	return c.Choice(
		c.Digit(),
		c.Map(c.CharRange('a', 'f'), func(r rune) int { return int(r-'a') + 10 }),
		c.Map(c.CharRange('A', 'F'), func(r rune) int { return int(r-'A') + 10 }),
	)
}

func Array() c.Parser[models.Value] {
	empty := c.Map(c.Between(c.Char('['), Whitespace(), c.Char(']')), func(struct{}) models.Value {
		return models.Array{}
	})
	items := c.Map(c.Between(c.Char('['), c.SepBy(Element(), c.Char(',')), c.Char(']')), func(vs []models.Value) models.Value {
		return models.Array(vs)
	})
	return c.Or(empty, items)
}

func Object() c.Parser[models.Value] {
	empty := c.Map(c.Between(c.Char('{'), Whitespace(), c.Char('}')), func(struct{}) models.Value {
		return models.Object{}
	})
	members := c.Map(c.Between(c.Char('{'), c.SepBy(member(), c.Char(',')), c.Char('}')), func(ms []models.Member) models.Value {
		return models.NewObject(ms)
	})
	return c.Or(empty, members)
}

// member is ws string ws ':' element.
func member() c.Parser[models.Member] {
	key := c.Between(Whitespace(), stringLiteral(), Whitespace())
	return c.Map(c.And(key, c.And(c.Char(':'), Element())), func(p c.Pair[string, c.Pair[rune, models.Value]]) models.Member {
		return models.Member{Key: p.First, Value: p.Second.Second}
	})
}

// Whitespace skips spaces, tabs, carriage returns and newlines.
func Whitespace() c.Parser[struct{}] {
	return c.Skip(c.Many(c.Choice(c.Char(' '), c.Char('\n'), c.Char('\r'), c.Char('\t'))))
}
