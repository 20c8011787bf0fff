package value

import "github.com/numl-lang/numl/internal/numeric"

// Scalar wraps the arbitrary-precision numeric kernel value as a
// member of the value universe. It is a Go value type: assigning or
// passing a Scalar already copies it, matching spec §3.1's "copy on
// mutation" rule.
type Scalar struct {
	N numeric.Scalar
}

// NewScalar wraps a numeric.Scalar.
func NewScalar(n numeric.Scalar) Scalar { return Scalar{N: n} }

func (s Scalar) Clone() Value  { return s }
func (s Scalar) String() string { return s.N.String() }

// Truthy implements the boolean projection of spec §4.1's `if` rule
// for a bare scalar.
func (s Scalar) Truthy() bool { return s.N.Truthy() }
