// Package harness checks that independently built JSON grammars agree.
package harness

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mcncl/parsely/internal/errors"
	"github.com/mcncl/parsely/internal/grammar"
	"github.com/mcncl/parsely/internal/models"
	"github.com/mcncl/parsely/internal/typedgrammar"
)

// Realization is one way of parsing a JSON prefix.
type Realization struct {
	Name  string
	Parse func(input string) (models.Value, string, bool)
}

// Dynamic is the grammar built from function-value combinators.
var Dynamic = Realization{Name: "dynamic", Parse: grammar.ParsePrefix}

// Static is the grammar built from generic struct combinators.
var Static = Realization{Name: "static", Parse: typedgrammar.ParsePrefix}

// Result is the outcome of parsing with a realization.
type Result struct {
	Value models.Value
	Rest  string
	OK    bool
}

// Run parses input with r.
func (r Realization) Run(input string) Result {
	v, rest, ok := r.Parse(input)
	return Result{Value: v, Rest: rest, OK: ok}
}

// Equal reports whether two values are structurally equal: arrays by
// element order, objects by key set, numbers numerically, strings exactly.
func Equal(a, b models.Value) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// Diff describes the differences between two values, or returns "" when
// they are equal.
func Diff(a, b models.Value) string {
	return cmp.Diff(a, b, cmpopts.EquateEmpty())
}

// Compare parses input with both realizations and returns the first one's
// result. It fails with ErrEngineMismatch when they disagree on success,
// on the value or on how much input was consumed.
func Compare(input string, a, b Realization) (Result, error) {
	ra, rb := a.Run(input), b.Run(input)

	if ra.OK != rb.OK {
		return Result{}, errors.NewEquivalenceError(
			fmt.Sprintf("%s ok=%t, %s ok=%t", a.Name, ra.OK, b.Name, rb.OK),
			errors.ErrEngineMismatch,
		)
	}
	if !ra.OK {
		return ra, nil
	}
	if diff := Diff(ra.Value, rb.Value); diff != "" {
		return Result{}, errors.NewEquivalenceError(
			fmt.Sprintf("values differ (-%s +%s):\n%s", a.Name, b.Name, diff),
			errors.ErrEngineMismatch,
		)
	}
	if ra.Rest != rb.Rest {
		return Result{}, errors.NewEquivalenceError(
			fmt.Sprintf("%s left %d bytes unconsumed, %s left %d", a.Name, len(ra.Rest), b.Name, len(rb.Rest)),
			errors.ErrEngineMismatch,
		)
	}
	return ra, nil
}
