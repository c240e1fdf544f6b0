package combinator

// And runs p, then q on the remainder of p, and pairs their values.
func And[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return func(input string) (Pair[A, B], string, bool) {
		a, rest, ok := p(input)
		if !ok {
			return fail[Pair[A, B]](input)
		}
		b, rest, ok := q(rest)
		if !ok {
			return fail[Pair[A, B]](input)
		}
		return Pair[A, B]{First: a, Second: b}, rest, true
	}
}

// Or tries p and, if it fails, q from the same position. The first success
// wins.
func Or[T any](p, q Parser[T]) Parser[T] {
	return func(input string) (T, string, bool) {
		if v, rest, ok := p(input); ok {
			return v, rest, true
		}
		return q(input)
	}
}

// Choice is Or folded over ps, in order.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	return func(input string) (T, string, bool) {
		for _, p := range ps {
			if v, rest, ok := p(input); ok {
				return v, rest, true
			}
		}
		return fail[T](input)
	}
}

// Many applies p until it fails and collects the values. It never fails.
// An iteration that succeeds without consuming input ends the repetition.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(input string) ([]T, string, bool) {
		vs := []T{}
		for {
			v, rest, ok := p(input)
			if !ok || len(rest) == len(input) {
				break
			}
			vs = append(vs, v)
			input = rest
		}
		return vs, input, true
	}
}

// Many1 is Many that requires at least one value.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Filter(Many(p), func(vs []T) bool { return len(vs) > 0 })
}

// Optional never fails: if p fails, it succeeds with an absent value
// without consuming input.
func Optional[T any](p Parser[T]) Parser[Option[T]] {
	return func(input string) (Option[T], string, bool) {
		if v, rest, ok := p(input); ok {
			return Option[T]{Value: v, Present: true}, rest, true
		}
		return Option[T]{}, input, true
	}
}

// Skip runs p and discards its value.
func Skip[T any](p Parser[T]) Parser[struct{}] {
	return Map(p, func(T) struct{} { return struct{}{} })
}

// Map transforms the value of p with f.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(input string) (B, string, bool) {
		a, rest, ok := p(input)
		if !ok {
			return fail[B](input)
		}
		return f(a), rest, true
	}
}

// Filter fails when p succeeds with a value rejected by pred.
func Filter[T any](p Parser[T], pred func(T) bool) Parser[T] {
	return func(input string) (T, string, bool) {
		v, rest, ok := p(input)
		if !ok || !pred(v) {
			return fail[T](input)
		}
		return v, rest, true
	}
}

// Except runs p, then probes q from the same starting position (not from
// p's remainder). If q succeeds with a value equal to p's, the whole parse
// fails; otherwise p's result is returned.
func Except[T comparable](p, q Parser[T]) Parser[T] {
	return func(input string) (T, string, bool) {
		v, rest, ok := p(input)
		if !ok {
			return fail[T](input)
		}
		if w, _, ok := q(input); ok && w == v {
			return fail[T](input)
		}
		return v, rest, true
	}
}

// SepBy parses one or more p separated by sep. A separator that is not
// followed by p is left unconsumed and ends the list.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(input string) ([]T, string, bool) {
		v, rest, ok := p(input)
		if !ok {
			return fail[[]T](input)
		}
		vs := []T{v}
		for {
			_, afterSep, ok := sep(rest)
			if !ok {
				break
			}
			v, afterElem, ok := p(afterSep)
			if !ok {
				break
			}
			vs = append(vs, v)
			rest = afterElem
		}
		return vs, rest, true
	}
}

// Between parses start, p and end in order and keeps only p's value.
func Between[O, T, C any](start Parser[O], p Parser[T], end Parser[C]) Parser[T] {
	return func(input string) (T, string, bool) {
		_, rest, ok := start(input)
		if !ok {
			return fail[T](input)
		}
		v, rest, ok := p(rest)
		if !ok {
			return fail[T](input)
		}
		_, rest, ok = end(rest)
		if !ok {
			return fail[T](input)
		}
		return v, rest, true
	}
}

// Lazy defers building a parser until it is run, so that a rule can refer to
// itself, directly or through other rules.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	return func(input string) (T, string, bool) {
		return build()(input)
	}
}
