package models

import "fmt"

// Kind identifies which case of the JSON value model a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase JSON name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a parsed JSON value. The set of implementations is closed:
// Null, Bool, Number, String, Array and Object.
type Value interface {
	Kind() Kind
	value()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number, held as a double-precision float.
type Number float64

// String is a JSON string with escapes already decoded.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Object maps keys to values. Key order is not significant.
type Object map[string]Value

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Null) value()   {}
func (Bool) value()   {}
func (Number) value() {}
func (String) value() {}
func (Array) value()  {}
func (Object) value() {}

// Member is a single key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value Value
}

// NewObject folds members into an Object. A later duplicate key
// overwrites an earlier one.
func NewObject(members []Member) Object {
	obj := make(Object, len(members))
	for _, m := range members {
		obj[m.Key] = m.Value
	}
	return obj
}

// Document is the result of ingesting a complete input.
type Document struct {
	Root Value
	// Rest is whatever input followed the root value. It is only
	// non-empty when trailing input is tolerated.
	Rest string
}

// RootKind reports the kind of the root value
func (d Document) RootKind() Kind {
	if d.Root == nil {
		return KindNull
	}
	return d.Root.Kind()
}
