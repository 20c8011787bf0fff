package eval

import (
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/value"
)

// truthy implements the boolean projection used by `if` and the
// short-circuit logical operators: a scalar is its own truth value, a
// string follows value.String.Truthy, and a MultiArray is true when
// every element is non-zero/non-empty ("all non-zero" per spec §4.1).
func truthy(v value.Value) (bool, error) {
	switch t := v.(type) {
	case value.Scalar:
		return t.Truthy(), nil
	case value.String:
		return t.Truthy(), nil
	case *value.Array:
		if t.LinearLength() == 0 {
			return false, nil
		}
		for _, elem := range t.Data {
			ok, err := truthy(elem)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, errors.New(errors.KindEvaluation, "value of type %T has no boolean projection", v)
	}
}
