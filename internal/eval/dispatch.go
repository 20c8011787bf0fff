package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/value"
)

// callBaseFunction implements the base-function branch of spec §4.1
// IDX resolution: arguments are evaluated left to right except
// positions masked lazy, then dispatched either through the mapper's
// element-wise lift or through the entry's general implementation.
func (ev *Evaluator) callBaseFunction(b *BaseEntry, n *ast.Idx) (Result, error) {
	args := make([]Arg, len(n.Args))
	for i, node := range n.Args {
		args[i] = Arg{Node: node}
		if !b.lazyAt(i) {
			v, err := ev.EvalValue(node)
			if err != nil {
				return nil, err
			}
			args[i].Val, args[i].Evaluated = v, true
		}
	}

	if b.Mapper {
		if len(args) != 1 {
			return nil, errors.New(errors.KindEvaluation, "mapper function expects exactly one argument").At(n.Pos())
		}
		return ev.applyMapper(b, args[0].Val, n.Pos())
	}
	return b.Impl(ev, n.Pos(), args)
}

// applyMapper lifts a scalar implementation element-wise over a
// MultiArray argument, or applies it directly to a bare scalar (spec
// §4.1 "If the entry is a mapper... apply... element-wise").
func (ev *Evaluator) applyMapper(b *BaseEntry, v value.Value, pos ast.Position) (Result, error) {
	switch t := v.(type) {
	case value.Scalar:
		r, err := b.ScalarImpl(ev.Ctx, t.N)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.NewScalar(r), nil
	case *value.Array:
		if t.Cell || t.Class != value.ElemNumeric {
			return nil, errors.New(errors.KindEvaluation, "cannot apply a numeric function to this array").At(pos)
		}
		out := &value.Array{Dims: append([]int(nil), t.Dims...), Class: value.ElemNumeric, Data: make([]value.Value, len(t.Data))}
		for i, elem := range t.Data {
			s, ok := elem.(value.Scalar)
			if !ok {
				return nil, errors.New(errors.KindEvaluation, "cannot apply a numeric function to this array").At(pos)
			}
			r, err := b.ScalarImpl(ev.Ctx, s.N)
			if err != nil {
				return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
			}
			out.Data[i] = value.NewScalar(r)
		}
		return out, nil
	default:
		return nil, errors.New(errors.KindEvaluation, "argument must be numeric").At(pos)
	}
}
