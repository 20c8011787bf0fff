// Package value implements the NUML value universe (spec §3.1): the
// arbitrary-precision complex scalar, the immutable character string,
// the N-dimensional array, and the named-field structure. Scalars and
// strings are Go value types; Array and Struct are pointers so
// the evaluator can replace an environment entry wholesale on write
// while every read still hands back an independent copy (Clone).
package value

// Kind discriminates the four value variants.
type Kind int

const (
	KindScalar Kind = iota
	KindString
	KindArray
	KindStruct
)

// Value is implemented by every runtime value variant.
type Value interface {
	Kind() Kind
	// Clone returns an independent copy so the evaluator never exposes
	// aliasing between two reads of the same environment entry.
	Clone() Value
	String() string
}

func (Scalar) Kind() Kind    { return KindScalar }
func (String) Kind() Kind    { return KindString }
func (*Array) Kind() Kind    { return KindArray }
func (*Struct) Kind() Kind   { return KindStruct }
