package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/numeric"
)

// registerMathBuiltins seeds the numeric-kernel portion of the Base
// function table (spec §4.2): every listed function is a mapper,
// lifted element-wise over MultiArray arguments by dispatch.go.
func registerMathBuiltins(env *Env) {
	mapper := func(name string, fn func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error)) {
		env.Base[name] = &BaseEntry{Mapper: true, ScalarImpl: fn}
	}
	wrap := func(fn func(ctx *numeric.Context, z numeric.Scalar) numeric.Scalar) func(*numeric.Context, numeric.Scalar) (numeric.Scalar, error) {
		return func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) { return fn(ctx, s), nil }
	}

	mapper("sqrt", wrap(numeric.Sqrt))
	mapper("exp", wrap(numeric.Exp))
	mapper("log", wrap(numeric.Log))
	mapper("log10", wrap(numeric.Log10))
	mapper("sin", wrap(numeric.Sin))
	mapper("cos", wrap(numeric.Cos))
	mapper("tan", wrap(numeric.Tan))
	mapper("sinh", wrap(numeric.Sinh))
	mapper("cosh", wrap(numeric.Cosh))
	mapper("tanh", wrap(numeric.Tanh))
	mapper("asin", wrap(numeric.Asin))
	mapper("acos", wrap(numeric.Acos))
	mapper("atan", wrap(numeric.Atan))
	mapper("asinh", wrap(numeric.Asinh))
	mapper("acosh", wrap(numeric.Acosh))
	mapper("atanh", wrap(numeric.Atanh))
	mapper("gamma", wrap(numeric.Gamma))

	mapper("abs", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) {
		return numeric.FromDecimal(s.Abs(ctx)), nil
	})
	mapper("angle", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) {
		return numeric.FromDecimal(s.Arg(ctx)), nil
	})
	mapper("conj", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) { return s.Conj(), nil })
	mapper("sign", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) { return s.Sign(ctx), nil })
	mapper("floor", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) { return s.Floor(), nil })
	mapper("ceil", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) { return s.Ceil(), nil })
	mapper("round", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) { return s.Round(), nil })
	mapper("fix", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) { return s.Fix(), nil })
	mapper("factorial", func(ctx *numeric.Context, s numeric.Scalar) (numeric.Scalar, error) {
		return numeric.Factorial(ctx, s)
	})

	env.Base["logb"] = &BaseEntry{Impl: builtinLogB}
}

func builtinLogB(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
	if err := requireArgc(pos, args, 2); err != nil {
		return nil, err
	}
	base, err := requireScalar(args[0])
	if err != nil {
		return nil, err
	}
	z, err := requireScalar(args[1])
	if err != nil {
		return nil, err
	}
	return wrapScalar(numeric.LogB(ev.Ctx, z, base)), nil
}
