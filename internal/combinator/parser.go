// Package combinator is a parser-combinator engine in which every parser is a
// plain function value.
//
// A Parser receives the remaining input and reports either success, with a
// value and the unconsumed tail of that same input, or failure. Failures
// carry no position or cause. Parsers hold no mutable state and can be
// shared freely between goroutines.
//
// Grammars are built by composing primitives (AnyChar, Char, CharRange,
// Token, Digit) with the combinators in this package. Self-referential rules
// are expressed with Lazy.
package combinator

// Parser parses a prefix of input. On success it returns the produced value,
// the remaining input (always a suffix of input) and true. On failure the
// returned value and remainder must be ignored.
type Parser[T any] func(input string) (T, string, bool)

// Parse runs the parser on input.
func (p Parser[T]) Parse(input string) (T, string, bool) {
	return p(input)
}

// Pair holds the values of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Option is the result of Optional.
type Option[T any] struct {
	Value   T
	Present bool
}

// Get returns the value and whether it was present
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// OrElse returns the value if present, otherwise def
func (o Option[T]) OrElse(def T) T {
	if o.Present {
		return o.Value
	}
	return def
}

func fail[T any](input string) (T, string, bool) {
	var zero T
	return zero, input, false
}
