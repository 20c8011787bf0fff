package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

func requireArgc(pos ast.Position, args []Arg, n int) error {
	if len(args) != n {
		return errors.New(errors.KindEvaluation, "function expects %d argument(s), got %d", n, len(args)).At(pos)
	}
	return nil
}

func requireScalar(a Arg) (numeric.Scalar, error) {
	s, ok := a.Val.(value.Scalar)
	if !ok {
		return numeric.Scalar{}, errors.New(errors.KindEvaluation, "expected a scalar argument")
	}
	return s.N, nil
}

func requireArray(a Arg) (*value.Array, error) {
	arr, ok := value.AsArray(a.Val)
	if !ok {
		return nil, errors.New(errors.KindEvaluation, "expected an array argument")
	}
	return arr, nil
}

func requireIndex(a Arg) (int, error) {
	s, err := requireScalar(a)
	if err != nil {
		return 0, err
	}
	n, ok := s.AsIndex()
	if !ok {
		return 0, errors.New(errors.KindEvaluation, "expected an integer argument")
	}
	return n, nil
}

func wrapScalar(s numeric.Scalar) value.Value { return value.NewScalar(s) }
