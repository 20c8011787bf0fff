package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

// dimsFromArgs implements the common zeros/ones/eye argument shape:
// zero arguments means 1x1, one argument n means n x n, otherwise each
// argument is one dimension.
func dimsFromArgs(args []Arg) ([]int, error) {
	if len(args) == 0 {
		return []int{1, 1}, nil
	}
	if len(args) == 1 {
		n, err := requireIndex(args[0])
		if err != nil {
			return nil, err
		}
		return []int{n, n}, nil
	}
	dims := make([]int, len(args))
	for i, a := range args {
		n, err := requireIndex(a)
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}
	return dims, nil
}

func fillArray(dims []int, fill numeric.Scalar) *value.Array {
	n := 1
	for _, d := range dims {
		n *= d
	}
	data := make([]value.Value, n)
	for i := range data {
		data[i] = value.NewScalar(fill)
	}
	return &value.Array{Dims: dims, Class: value.ElemNumeric, Data: data}
}

// registerArrayBuiltins seeds the MultiArray-construction and
// -inspection supplements noted in SPEC_FULL.md (zeros, ones, eye,
// size, numel, reshape, find).
func registerArrayBuiltins(env *Env) {
	env.Base["zeros"] = &BaseEntry{Impl: func(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
		dims, err := dimsFromArgs(args)
		if err != nil {
			return nil, err
		}
		return fillArray(dims, numeric.Zero()), nil
	}}
	env.Base["ones"] = &BaseEntry{Impl: func(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
		dims, err := dimsFromArgs(args)
		if err != nil {
			return nil, err
		}
		return fillArray(dims, numeric.One()), nil
	}}
	env.Base["eye"] = &BaseEntry{Impl: func(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
		dims, err := dimsFromArgs(args)
		if err != nil {
			return nil, err
		}
		out := fillArray(dims, numeric.Zero())
		n := dims[0]
		if dims[1] < n {
			n = dims[1]
		}
		for i := 0; i < n; i++ {
			out.SetLinear(out.Dim(1)*i+i, value.NewScalar(numeric.One()))
		}
		return out, nil
	}}
	env.Base["numel"] = &BaseEntry{Impl: func(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
		if err := requireArgc(pos, args, 1); err != nil {
			return nil, err
		}
		a, err := requireArray(args[0])
		if err != nil {
			return nil, err
		}
		return wrapScalar(numeric.FromInt(int64(a.LinearLength()))), nil
	}}
	env.Base["size"] = &BaseEntry{Impl: builtinSize}
	env.Base["reshape"] = &BaseEntry{Impl: func(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
		if len(args) < 2 {
			return nil, errors.New(errors.KindEvaluation, "reshape expects an array and at least one dimension").At(pos)
		}
		a, err := requireArray(args[0])
		if err != nil {
			return nil, err
		}
		dims := make([]int, len(args)-1)
		for i, arg := range args[1:] {
			n, err := requireIndex(arg)
			if err != nil {
				return nil, err
			}
			dims[i] = n
		}
		out, err := a.Reshape(dims)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.ToValue(out), nil
	}}
	env.Base["find"] = &BaseEntry{Impl: func(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
		if err := requireArgc(pos, args, 1); err != nil {
			return nil, err
		}
		a, err := requireArray(args[0])
		if err != nil {
			return nil, err
		}
		idx := a.Find(truthyScalar)
		data := make([]value.Value, len(idx))
		for i, p := range idx {
			data[i] = wrapScalar(numeric.FromInt(int64(p + 1)))
		}
		return &value.Array{Dims: []int{len(idx), 1}, Class: value.ElemNumeric, Data: data}, nil
	}}
}

// builtinSize returns a RETLIST so size(A) in a single-value context
// yields the full dimension row vector, while [r, c] = size(A) binds
// each requested dimension individually (spec §4.1-RETLIST).
func builtinSize(ev *Evaluator, pos ast.Position, args []Arg) (Result, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, errors.New(errors.KindEvaluation, "size expects 1 or 2 arguments").At(pos)
	}
	a, err := requireArray(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 2 {
		d, err := requireIndex(args[1])
		if err != nil {
			return nil, err
		}
		return wrapScalar(numeric.FromInt(int64(a.Dim(d)))), nil
	}
	dims := a.Dims
	return &RetList{N: len(dims), Select: func(expected, index int) (value.Value, error) {
		if expected <= 1 {
			data := make([]value.Value, len(dims))
			for i, d := range dims {
				data[i] = wrapScalar(numeric.FromInt(int64(d)))
			}
			return &value.Array{Dims: []int{1, len(dims)}, Class: value.ElemNumeric, Data: data}, nil
		}
		if index >= len(dims) {
			return nil, selectError(index)
		}
		return wrapScalar(numeric.FromInt(int64(a.Dim(index + 1)))), nil
	}}, nil
}
