package typed

// Seq is the parser built by And.
type Seq[A, B any, P Parser[A], Q Parser[B]] struct {
	first  P
	second Q
}

// And runs p and then q on p's remainder, pairing the values.
func And[A, B any, P Parser[A], Q Parser[B]](p P, q Q) Seq[A, B, P, Q] {
	return Seq[A, B, P, Q]{first: p, second: q}
}

func (s Seq[A, B, P, Q]) Parse(input string) (Pair[A, B], string, bool) {
	a, rest, ok := s.first.Parse(input)
	if !ok {
		return none[Pair[A, B]](input)
	}
	b, rest, ok := s.second.Parse(rest)
	if !ok {
		return none[Pair[A, B]](input)
	}
	return Pair[A, B]{First: a, Second: b}, rest, true
}

// Alt is the parser built by Or.
type Alt[T any, P, Q Parser[T]] struct {
	first  P
	second Q
}

// Or tries p, then q from the same position.
func Or[T any, P, Q Parser[T]](p P, q Q) Alt[T, P, Q] {
	return Alt[T, P, Q]{first: p, second: q}
}

func (a Alt[T, P, Q]) Parse(input string) (T, string, bool) {
	if v, rest, ok := a.first.Parse(input); ok {
		return v, rest, true
	}
	return a.second.Parse(input)
}

// Alts is the parser built by Choice.
type Alts[T any, P Parser[T]] struct {
	alts []P
}

// Choice tries each alternative in order. All alternatives share one parser
// type; use nested Or to mix types.
func Choice[T any, P Parser[T]](alts ...P) Alts[T, P] {
	return Alts[T, P]{alts: alts}
}

func (a Alts[T, P]) Parse(input string) (T, string, bool) {
	for _, p := range a.alts {
		if v, rest, ok := p.Parse(input); ok {
			return v, rest, true
		}
	}
	return none[T](input)
}

// Rep is the parser built by Many.
type Rep[T any, P Parser[T]] struct {
	p P
}

// Many applies p zero or more times. It stops at the first failure or at
// the first success that consumes nothing.
func Many[T any, P Parser[T]](p P) Rep[T, P] {
	return Rep[T, P]{p: p}
}

func (r Rep[T, P]) Parse(input string) ([]T, string, bool) {
	out := make([]T, 0)
	for {
		v, rest, ok := r.p.Parse(input)
		if !ok || len(rest) == len(input) {
			return out, input, true
		}
		out = append(out, v)
		input = rest
	}
}

// Rep1 is the parser built by Many1.
type Rep1[T any, P Parser[T]] struct {
	rep Rep[T, P]
}

// Many1 applies p one or more times.
func Many1[T any, P Parser[T]](p P) Rep1[T, P] {
	return Rep1[T, P]{rep: Many[T](p)}
}

func (r Rep1[T, P]) Parse(input string) ([]T, string, bool) {
	vs, rest, _ := r.rep.Parse(input)
	if len(vs) == 0 {
		return none[[]T](input)
	}
	return vs, rest, true
}

// Opt is the parser built by Optional.
type Opt[T any, P Parser[T]] struct {
	p P
}

// Optional succeeds with an absent value, consuming nothing, when p fails.
func Optional[T any, P Parser[T]](p P) Opt[T, P] {
	return Opt[T, P]{p: p}
}

func (o Opt[T, P]) Parse(input string) (Option[T], string, bool) {
	if v, rest, ok := o.p.Parse(input); ok {
		return Option[T]{Value: v, Present: true}, rest, true
	}
	return Option[T]{}, input, true
}

// Skipped is the parser built by Skip.
type Skipped[T any, P Parser[T]] struct {
	p P
}

// Skip runs p and drops its value.
func Skip[T any, P Parser[T]](p P) Skipped[T, P] {
	return Skipped[T, P]{p: p}
}

func (s Skipped[T, P]) Parse(input string) (struct{}, string, bool) {
	if _, rest, ok := s.p.Parse(input); ok {
		return struct{}{}, rest, true
	}
	return none[struct{}](input)
}

// Mapped is the parser built by Map.
type Mapped[A, B any, P Parser[A]] struct {
	p P
	f func(A) B
}

// Map applies f to the value of p.
func Map[A, B any, P Parser[A]](p P, f func(A) B) Mapped[A, B, P] {
	return Mapped[A, B, P]{p: p, f: f}
}

func (m Mapped[A, B, P]) Parse(input string) (B, string, bool) {
	a, rest, ok := m.p.Parse(input)
	if !ok {
		return none[B](input)
	}
	return m.f(a), rest, true
}

// Filtered is the parser built by Filter.
type Filtered[T any, P Parser[T]] struct {
	p    P
	pred func(T) bool
}

// Filter turns a success whose value fails pred into a failure.
func Filter[T any, P Parser[T]](p P, pred func(T) bool) Filtered[T, P] {
	return Filtered[T, P]{p: p, pred: pred}
}

func (f Filtered[T, P]) Parse(input string) (T, string, bool) {
	v, rest, ok := f.p.Parse(input)
	if !ok || !f.pred(v) {
		return none[T](input)
	}
	return v, rest, true
}

// Excluding is the parser built by Except.
type Excluding[T comparable, P, Q Parser[T]] struct {
	p P
	q Q
}

// Except matches p unless q, probed at the same starting position, yields
// an equal value.
func Except[T comparable, P, Q Parser[T]](p P, q Q) Excluding[T, P, Q] {
	return Excluding[T, P, Q]{p: p, q: q}
}

func (e Excluding[T, P, Q]) Parse(input string) (T, string, bool) {
	v, rest, ok := e.p.Parse(input)
	if !ok {
		return none[T](input)
	}
	if w, _, ok := e.q.Parse(input); ok && w == v {
		return none[T](input)
	}
	return v, rest, true
}

// Separated is the parser built by SepBy.
type Separated[T, S any, P Parser[T], Q Parser[S]] struct {
	p   P
	sep Q
}

// SepBy parses p (sep p)*. A dangling separator is not consumed.
func SepBy[T, S any, P Parser[T], Q Parser[S]](p P, sep Q) Separated[T, S, P, Q] {
	return Separated[T, S, P, Q]{p: p, sep: sep}
}

func (s Separated[T, S, P, Q]) Parse(input string) ([]T, string, bool) {
	first, rest, ok := s.p.Parse(input)
	if !ok {
		return none[[]T](input)
	}
	out := []T{first}
	for {
		_, next, ok := s.sep.Parse(rest)
		if !ok {
			break
		}
		v, next, ok := s.p.Parse(next)
		if !ok {
			break
		}
		out = append(out, v)
		rest = next
	}
	return out, rest, true
}

// Bracketed is the parser built by Between.
type Bracketed[O, T, C any, L Parser[O], P Parser[T], R Parser[C]] struct {
	start L
	p     P
	end   R
}

// Between parses start, p, end and keeps p's value.
func Between[O, T, C any, L Parser[O], P Parser[T], R Parser[C]](start L, p P, end R) Bracketed[O, T, C, L, P, R] {
	return Bracketed[O, T, C, L, P, R]{start: start, p: p, end: end}
}

func (b Bracketed[O, T, C, L, P, R]) Parse(input string) (T, string, bool) {
	_, rest, ok := b.start.Parse(input)
	if !ok {
		return none[T](input)
	}
	v, rest, ok := b.p.Parse(rest)
	if !ok {
		return none[T](input)
	}
	if _, rest, ok = b.end.Parse(rest); !ok {
		return none[T](input)
	}
	return v, rest, true
}

// Deferred is the parser built by Lazy.
type Deferred[T any, P Parser[T]] struct {
	build func() P
}

// Lazy builds the parser only when it is run.
func Lazy[T any, P Parser[T]](build func() P) Deferred[T, P] {
	return Deferred[T, P]{build: build}
}

func (d Deferred[T, P]) Parse(input string) (T, string, bool) {
	return d.build().Parse(input)
}
