package combinator

import (
	"strings"
	"unicode/utf8"
)

// AnyChar consumes exactly one character. It fails on empty input and on
// bytes that are not valid UTF-8.
func AnyChar() Parser[rune] {
	return func(input string) (rune, string, bool) {
		if input == "" {
			return fail[rune](input)
		}
		r, size := utf8.DecodeRuneInString(input)
		if r == utf8.RuneError && size <= 1 {
			return fail[rune](input)
		}
		return r, input[size:], true
	}
}

// Satisfy consumes one character for which pred holds.
func Satisfy(pred func(rune) bool) Parser[rune] {
	return Filter(AnyChar(), pred)
}

// Char consumes the character c.
func Char(c rune) Parser[rune] {
	return Satisfy(func(r rune) bool { return r == c })
}

// CharRange consumes one character in the inclusive range [lo, hi].
func CharRange(lo, hi rune) Parser[rune] {
	return Satisfy(func(r rune) bool { return lo <= r && r <= hi })
}

// Token consumes the literal text and produces it.
func Token(literal string) Parser[string] {
	return func(input string) (string, string, bool) {
		if !strings.HasPrefix(input, literal) {
			return fail[string](input)
		}
		return input[:len(literal)], input[len(literal):], true
	}
}

// Digit consumes one ASCII decimal digit and produces its value 0-9.
func Digit() Parser[int] {
	return Map(CharRange('0', '9'), func(r rune) int { return int(r - '0') })
}
