// Package typed is a parser-combinator engine in which every combinator is a
// generic struct type parameterized by the concrete types of the parsers it
// composes. Parser is only used as a type-parameter constraint, so the calls
// inside a composed parser are made on concrete types rather than through
// interface values.
//
// Constructors take the produced value types as explicit type arguments and
// infer the parser types from their arguments:
//
//	sign := typed.Or[rune](typed.Char('+'), typed.Char('-'))
//	exp := typed.And[rune, typed.Option[rune]](typed.Char('e'), typed.Optional[rune](sign))
//
// Recursive grammars are written as named rule types whose Parse method
// builds its composition when called, or with Lazy.
package typed

import "unicode/utf8"

// Parser parses a prefix of input, returning the value, the unconsumed
// suffix of input and true, or false on failure.
type Parser[T any] interface {
	Parse(input string) (T, string, bool)
}

// Pair holds the values of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Option is the value produced by Optional.
type Option[T any] struct {
	Value   T
	Present bool
}

func none[T any](input string) (T, string, bool) {
	var zero T
	return zero, input, false
}

// AnyChar consumes a single UTF-8 encoded character.
type AnyChar struct{}

func (AnyChar) Parse(input string) (rune, string, bool) {
	if input == "" {
		return none[rune](input)
	}
	r, size := utf8.DecodeRuneInString(input)
	if r == utf8.RuneError && size <= 1 {
		return none[rune](input)
	}
	return r, input[size:], true
}

// Satisfy consumes one character accepted by the predicate.
type Satisfy func(rune) bool

func (s Satisfy) Parse(input string) (rune, string, bool) {
	r, rest, ok := AnyChar{}.Parse(input)
	if !ok || !s(r) {
		return none[rune](input)
	}
	return r, rest, true
}

// Char consumes exactly this character.
type Char rune

func (c Char) Parse(input string) (rune, string, bool) {
	r, rest, ok := AnyChar{}.Parse(input)
	if !ok || r != rune(c) {
		return none[rune](input)
	}
	return r, rest, true
}

// CharRange consumes one character in [Lo, Hi].
type CharRange struct {
	Lo, Hi rune
}

func (cr CharRange) Parse(input string) (rune, string, bool) {
	r, rest, ok := AnyChar{}.Parse(input)
	if !ok || r < cr.Lo || r > cr.Hi {
		return none[rune](input)
	}
	return r, rest, true
}

// Token consumes this literal text.
type Token string

func (t Token) Parse(input string) (string, string, bool) {
	n := len(t)
	if len(input) < n || input[:n] != string(t) {
		return none[string](input)
	}
	return input[:n], input[n:], true
}

// Digit consumes an ASCII decimal digit and produces its value.
type Digit struct{}

func (Digit) Parse(input string) (int, string, bool) {
	return Map[rune, int](CharRange{'0', '9'}, func(r rune) int { return int(r - '0') }).Parse(input)
}
