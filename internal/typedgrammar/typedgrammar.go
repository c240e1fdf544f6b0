// Package typedgrammar is a JSON grammar built from the generic struct
// parsers of package typed. Each rule is a named empty struct whose Parse
// method assembles its parser when called, which is how the rules refer to
// each other recursively.
package typedgrammar

import (
	"strconv"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mcncl/parsely/internal/models"
	t "github.com/mcncl/parsely/internal/typed"
)

// Parse parses a JSON value from the start of input, ignoring whatever
// follows it.
func Parse(input string) (models.Value, bool) {
	v, _, ok := Element{}.Parse(input)
	return v, ok
}

// ParsePrefix is Parse that also returns the unconsumed input.
func ParsePrefix(input string) (models.Value, string, bool) {
	return Element{}.Parse(input)
}

type Element struct{}

func (Element) Parse(input string) (models.Value, string, bool) {
	return t.Between[struct{}, models.Value, struct{}](Whitespace{}, Value{}, Whitespace{}).Parse(input)
}

type Value struct{}

func (Value) Parse(input string) (models.Value, string, bool) {
	null := t.Map[models.Null, models.Value](Null{}, func(n models.Null) models.Value { return n })
	boolean := t.Map[bool, models.Value](Boolean{}, func(b bool) models.Value { return models.Bool(b) })
	number := t.Map[float64, models.Value](Number{}, func(f float64) models.Value { return models.Number(f) })
	str := t.Map[string, models.Value](String{}, func(s string) models.Value { return models.String(s) })
	array := t.Map[models.Array, models.Value](Array{}, func(a models.Array) models.Value { return a })
	object := t.Map[models.Object, models.Value](Object{}, func(o models.Object) models.Value { return o })

	return t.Or[models.Value](
		t.Or[models.Value](
			t.Or[models.Value](
				t.Or[models.Value](
					t.Or[models.Value](null, boolean),
					number),
				str),
			array),
		object,
	).Parse(input)
}

type Null struct{}

func (Null) Parse(input string) (models.Null, string, bool) {
	return t.Map[string, models.Null](t.Token("null"), func(string) models.Null { return models.Null{} }).Parse(input)
}

type Boolean struct{}

func (Boolean) Parse(input string) (bool, string, bool) {
	literal := t.Or[string](t.Token("true"), t.Token("false"))
	return t.Map[string, bool](literal, func(s string) bool { return s == "true" }).Parse(input)
}

type Whitespace struct{}

func (Whitespace) Parse(input string) (struct{}, string, bool) {
	blank := t.Choice[rune](t.Char(' '), t.Char('\n'), t.Char('\r'), t.Char('\t'))
	return t.Skip[[]rune](t.Many[rune](blank)).Parse(input)
}

type Array struct{}

func (Array) Parse(input string) (models.Array, string, bool) {
	empty := t.Map[struct{}, models.Array](
		t.Between[rune, struct{}, rune](t.Char('['), Whitespace{}, t.Char(']')),
		func(struct{}) models.Array { return models.Array{} },
	)
	items := t.Map[[]models.Value, models.Array](
		t.Between[rune, []models.Value, rune](t.Char('['), t.SepBy[models.Value, rune](Element{}, t.Char(',')), t.Char(']')),
		func(vs []models.Value) models.Array { return models.Array(vs) },
	)
	return t.Or[models.Array](empty, items).Parse(input)
}

type Object struct{}

func (Object) Parse(input string) (models.Object, string, bool) {
	empty := t.Map[struct{}, models.Object](
		t.Between[rune, struct{}, rune](t.Char('{'), Whitespace{}, t.Char('}')),
		func(struct{}) models.Object { return models.Object{} },
	)
	members := t.Map[[]models.Member, models.Object](
		t.Between[rune, []models.Member, rune](t.Char('{'), t.SepBy[models.Member, rune](member{}, t.Char(',')), t.Char('}')),
		models.NewObject,
	)
	return t.Or[models.Object](empty, members).Parse(input)
}

type member struct{}

func (member) Parse(input string) (models.Member, string, bool) {
	key := t.Between[struct{}, string, struct{}](Whitespace{}, String{}, Whitespace{})
	value := t.And[rune, models.Value](t.Char(':'), Element{})
	return t.Map[t.Pair[string, t.Pair[rune, models.Value]], models.Member](
		t.And[string, t.Pair[rune, models.Value]](key, value),
		func(p t.Pair[string, t.Pair[rune, models.Value]]) models.Member {
			return models.Member{Key: p.First, Value: p.Second.Second}
		},
	).Parse(input)
}

// Number produces the float64 of a numeric literal. The sign of an
// exponent is optional; digit runs keep their leading zeros.
type Number struct{}

func (Number) Parse(input string) (float64, string, bool) {
	mantissa := t.And[string, t.Option[string]](integerPart{}, t.Optional[string](fractionPart{}))
	literal := t.And[t.Pair[string, t.Option[string]], t.Option[string]](mantissa, t.Optional[string](exponentPart{}))

	text := t.Map[t.Pair[t.Pair[string, t.Option[string]], t.Option[string]], string](literal,
		func(p t.Pair[t.Pair[string, t.Option[string]], t.Option[string]]) string {
			s := p.First.First
			if p.First.Second.Present {
				s += "." + p.First.Second.Value
			}
			if p.Second.Present {
				s += "e" + p.Second.Value
			}
			return s
		})

	// ParseFloat only rejects out-of-range literals here; the grammar
	// guarantees the syntax.
	valid := t.Filter[conversion](t.Map[string, conversion](text, convert), func(c conversion) bool {
		return c.err == nil
	})
	return t.Map[conversion, float64](valid, func(c conversion) float64 { return c.value }).Parse(input)
}

// conversion is a numeric literal converted once, with its error.
type conversion struct {
	value float64
	err   error
}

func convert(text string) conversion {
	f, err := strconv.ParseFloat(text, 64)
	return conversion{value: f, err: err}
}

type digitRun struct{}

func (digitRun) Parse(input string) (string, string, bool) {
	return t.Map[[]int, string](t.Many1[int](t.Digit{}), func(ds []int) string {
		buf := make([]byte, 0, len(ds))
		for _, d := range ds {
			buf = strconv.AppendInt(buf, int64(d), 10)
		}
		return string(buf)
	}).Parse(input)
}

type integerPart struct{}

func (integerPart) Parse(input string) (string, string, bool) {
	signed := t.And[t.Option[rune], string](t.Optional[rune](t.Char('-')), digitRun{})
	return t.Map[t.Pair[t.Option[rune], string], string](signed, func(p t.Pair[t.Option[rune], string]) string {
		if p.First.Present {
			return "-" + p.Second
		}
		return p.Second
	}).Parse(input)
}

type fractionPart struct{}

func (fractionPart) Parse(input string) (string, string, bool) {
	return t.Map[t.Pair[rune, string], string](t.And[rune, string](t.Char('.'), digitRun{}), func(p t.Pair[rune, string]) string {
		return p.Second
	}).Parse(input)
}

type exponentPart struct{}

func (exponentPart) Parse(input string) (string, string, bool) {
	marker := t.Or[rune](t.Char('e'), t.Char('E'))
	sign := t.Optional[rune](t.Or[rune](t.Char('+'), t.Char('-')))
	body := t.And[t.Option[rune], string](sign, digitRun{})
	return t.Map[t.Pair[rune, t.Pair[t.Option[rune], string]], string](
		t.And[rune, t.Pair[t.Option[rune], string]](marker, body),
		func(p t.Pair[rune, t.Pair[t.Option[rune], string]]) string {
			if p.Second.First.Present {
				return string(p.Second.First.Value) + p.Second.Second
			}
			return p.Second.Second
		},
	).Parse(input)
}

// String produces the decoded text of a quoted string.
type String struct{}

func (String) Parse(input string) (string, string, bool) {
	char := t.Or[rune](plainChar{}, escapeSeq{})
	quoted := t.Between[rune, []rune, rune](t.Char('"'), t.Many[rune](char), t.Char('"'))
	return t.Map[[]rune, string](quoted, func(rs []rune) string { return string(rs) }).Parse(input)
}

type plainChar struct{}

func (plainChar) Parse(input string) (rune, string, bool) {
	return t.Except[rune](t.CharRange{Lo: 0x20, Hi: unicode.MaxRune}, t.Or[rune](t.Char('"'), t.Char('\\'))).Parse(input)
}

var escapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

type escapeSeq struct{}

func (escapeSeq) Parse(input string) (rune, string, bool) {
	simple := t.Map[rune, rune](
		t.Choice[rune](t.Char('"'), t.Char('\\'), t.Char('/'), t.Char('b'), t.Char('f'), t.Char('n'), t.Char('r'), t.Char('t')),
		func(r rune) rune { return escapes[r] },
	)
	body := t.Or[rune](simple, unicodeEscape{})
	return t.Map[t.Pair[rune, rune], rune](t.And[rune, rune](t.Char('\\'), body), func(p t.Pair[rune, rune]) rune {
		return p.Second
	}).Parse(input)
}

// unicodeEscape matches uXXXX, or uXXXX\uXXXX for a surrogate pair.
type unicodeEscape struct{}

func (unicodeEscape) Parse(input string) (rune, string, bool) {
	high := t.Filter[rune](codeUnit{}, func(r rune) bool { return utf16.IsSurrogate(r) && r < 0xDC00 })
	low := t.Filter[rune](codeUnit{}, func(r rune) bool { return utf16.IsSurrogate(r) && r >= 0xDC00 })
	pair := t.Map[t.Pair[rune, t.Pair[rune, rune]], rune](
		t.And[rune, t.Pair[rune, rune]](high, t.And[rune, rune](t.Char('\\'), low)),
		func(p t.Pair[rune, t.Pair[rune, rune]]) rune { return utf16.DecodeRune(p.First, p.Second.Second) },
	)
	single := t.Filter[rune](codeUnit{}, utf8.ValidRune)
	return t.Or[rune](pair, single).Parse(input)
}

type codeUnit struct{}

func (codeUnit) Parse(input string) (rune, string, bool) {
	digits := t.And[t.Pair[int, int], t.Pair[int, int]](
		t.And[int, int](hexDigit{}, hexDigit{}),
		t.And[int, int](hexDigit{}, hexDigit{}),
	)
	return t.Map[t.Pair[rune, t.Pair[t.Pair[int, int], t.Pair[int, int]]], rune](
		t.And[rune, t.Pair[t.Pair[int, int], t.Pair[int, int]]](t.Char('u'), digits),
		func(p t.Pair[rune, t.Pair[t.Pair[int, int], t.Pair[int, int]]]) rune {
			d := p.Second
			return rune(((d.First.First*16+d.First.Second)*16+d.Second.First)*16 + d.Second.Second)
		},
	).Parse(input)
}

type hexDigit struct{}

func (hexDigit) Parse(input string) (int, string, bool) {
	lower := t.Map[rune, int](t.CharRange{Lo: 'a', Hi: 'f'}, func(r rune) int { return int(r-'a') + 10 })
	upper := t.Map[rune, int](t.CharRange{Lo: 'A', Hi: 'F'}, func(r rune) int { return int(r-'A') + 10 })
	return t.Or[int](t.Or[int](t.Digit{}, lower), upper).Parse(input)
}
