package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

// resolveEnd implements the `end` sentinel (spec §4.1 "end and :
// sentinels"): the total linear length when its enclosing IDX has a
// single argument, otherwise the size of the corresponding dimension.
func (ev *Evaluator) resolveEnd(n *ast.EndRange) (Result, error) {
	if len(ev.IndexStack) == 0 {
		return nil, errors.New(errors.KindSyntax, "`end` used outside an indexing context").At(n.Pos())
	}
	top := ev.IndexStack[len(ev.IndexStack)-1]
	return value.NewScalar(numeric.FromInt(int64(ev.dimSize(top)))), nil
}

// resolveColon implements the `:` sentinel used as a whole-dimension
// subscript: the range 1..N under the same enclosing-IDX rule as end.
func (ev *Evaluator) resolveColon(n *ast.Colon) (Result, error) {
	if len(ev.IndexStack) == 0 {
		return nil, errors.New(errors.KindSyntax, "`:` used outside an indexing context").At(n.Pos())
	}
	top := ev.IndexStack[len(ev.IndexStack)-1]
	limit := ev.dimSize(top)
	data := make([]value.Value, limit)
	for i := 0; i < limit; i++ {
		data[i] = value.NewScalar(numeric.FromInt(int64(i + 1)))
	}
	return &value.Array{Dims: []int{1, limit}, Class: value.ElemNumeric, Data: data}, nil
}

// isLogicalArray reports whether every element of a numeric array
// carries the logical class tag (spec §4.3 "Logical" indexing trigger).
func isLogicalArray(v value.Value) (*value.Array, bool) {
	a, ok := v.(*value.Array)
	if !ok || a.Cell || a.Class != value.ElemNumeric {
		return nil, false
	}
	for _, elem := range a.Data {
		s, ok := elem.(value.Scalar)
		if !ok || !s.N.IsLogical() {
			return nil, false
		}
	}
	return a, true
}

func truthyScalar(v value.Value) bool {
	s, ok := v.(value.Scalar)
	return ok && s.N.Truthy()
}

// indexArgToInts evaluates one subscript expression in dimension
// position `pos` of an `nargs`-argument IDX against `dims`, returning
// 0-based indices.
func (ev *Evaluator) indexArgToInts(arg ast.Node, dims []int, nargs, pos int) ([]int, error) {
	ev.IndexStack = append(ev.IndexStack, indexCtx{Dims: dims, NArgs: nargs, Pos: pos})
	v, err := ev.EvalValue(arg)
	ev.IndexStack = ev.IndexStack[:len(ev.IndexStack)-1]
	if err != nil {
		return nil, err
	}
	a, ok := value.AsArray(v)
	if !ok {
		return nil, errors.New(errors.KindEvaluation, "subscript must be numeric").At(arg.Pos())
	}
	out := make([]int, a.LinearLength())
	for i := 0; i < a.LinearLength(); i++ {
		s, ok := a.GetLinear(i).(value.Scalar)
		if !ok {
			return nil, errors.New(errors.KindEvaluation, "subscript must be numeric").At(arg.Pos())
		}
		idx, ok := s.N.AsIndex()
		if !ok || idx < 1 {
			return nil, errors.New(errors.KindArithmetic, "subscript indices must be positive integers").At(arg.Pos())
		}
		out[i] = idx - 1
	}
	return out, nil
}

// resolved is the outcome of evaluating an IDX's argument list against
// a target array: either a logical mask, a single linear-index vector,
// or one subscript list per dimension.
type resolved struct {
	Logical   *value.Array
	LinearIdx []int
	LinearCol bool
	Subs      [][]int
}

func (ev *Evaluator) resolveArgs(args []ast.Node, dims []int) (resolved, error) {
	if len(args) == 1 {
		ev.IndexStack = append(ev.IndexStack, indexCtx{Dims: dims, NArgs: 1, Pos: 0})
		v, err := ev.EvalValue(args[0])
		ev.IndexStack = ev.IndexStack[:len(ev.IndexStack)-1]
		if err != nil {
			return resolved{}, err
		}
		if mask, ok := isLogicalArray(v); ok {
			return resolved{Logical: mask}, nil
		}
		a, ok := value.AsArray(v)
		if !ok {
			return resolved{}, errors.New(errors.KindEvaluation, "subscript must be numeric").At(args[0].Pos())
		}
		idx := make([]int, a.LinearLength())
		for i := 0; i < a.LinearLength(); i++ {
			s, ok := a.GetLinear(i).(value.Scalar)
			if !ok {
				return resolved{}, errors.New(errors.KindEvaluation, "subscript must be numeric").At(args[0].Pos())
			}
			n, ok := s.N.AsIndex()
			if !ok || n < 1 {
				return resolved{}, errors.New(errors.KindArithmetic, "subscript indices must be positive integers").At(args[0].Pos())
			}
			idx[i] = n - 1
		}
		col := a.Dim(2) == 1 && a.Dim(1) > 1
		return resolved{LinearIdx: idx, LinearCol: col}, nil
	}

	subs := make([][]int, len(args))
	for i, arg := range args {
		ints, err := ev.indexArgToInts(arg, dims, len(args), i)
		if err != nil {
			return resolved{}, err
		}
		subs[i] = ints
	}
	return resolved{Subs: subs}, nil
}

// indexValue implements the read side of spec §4.1 IDX resolution for
// a non-function head: array subscript/logical indexing, or a bare
// scalar/string/structure pass-through with an empty argument list.
func (ev *Evaluator) indexValue(head value.Value, args []ast.Node, pos ast.Position) (Result, error) {
	if len(args) == 0 {
		return head.Clone(), nil
	}
	arr, ok := head.(*value.Array)
	if !ok {
		return nil, errors.New(errors.KindEvaluation, "invalid indexing of a non-array value").At(pos)
	}
	r, err := ev.resolveArgs(args, arr.Dims)
	if err != nil {
		return nil, err
	}
	switch {
	case r.Logical != nil:
		out, err := arr.LogicalGet(r.Logical, truthyScalar)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.ToValue(out), nil
	case r.Subs != nil:
		out, err := arr.SubGet(r.Subs)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.ToValue(out), nil
	default:
		out, err := arr.LinearGet(r.LinearIdx, r.LinearCol)
		if err != nil {
			return nil, errors.New(errors.KindArithmetic, "%v", err).At(pos)
		}
		return value.ToValue(out), nil
	}
}

// evalIdx implements spec §4.1 "IDX resolution".
func (ev *Evaluator) evalIdx(n *ast.Idx) (Result, error) {
	for i, a := range n.Args {
		a.SetParent(n)
		a.SetIndex(i)
	}

	if id, ok := n.Head.(*ast.Identifier); ok {
		if base, ok := ev.Env.resolveBase(id.Name); ok {
			return ev.callBaseFunction(base, n)
		}
		if frame := ev.localFrame(); frame != nil {
			if v, ok := frame[id.Name]; ok {
				return ev.indexValue(v, n.Args, n.Pos())
			}
		}
		entry, ok := ev.Env.Vars[id.Name]
		if !ok {
			return nil, errors.New(errors.KindReference, "'%s' is undefined", id.Name).At(n.Pos())
		}
		if entry.IsFunc {
			return ev.callUserFunction(entry, n)
		}
		return ev.indexValue(entry.Value, n.Args, n.Pos())
	}

	n.Head.SetParent(n)
	headV, err := ev.EvalValue(n.Head)
	if err != nil {
		return nil, err
	}
	return ev.indexValue(headV, n.Args, n.Pos())
}

// callUserFunction implements the user-function branch of IDX
// resolution: arity check, caller-scope argument evaluation, a fresh
// local-scope frame, body evaluation, and frame pop before returning.
func (ev *Evaluator) callUserFunction(entry *NameEntry, n *ast.Idx) (Result, error) {
	if len(n.Args) != len(entry.Params) {
		return nil, errors.New(errors.KindEvaluation, "function expects %d argument(s), got %d", len(entry.Params), len(n.Args)).At(n.Pos())
	}
	bound := make(Frame, len(entry.Params))
	for i, p := range entry.Params {
		v, err := ev.EvalValue(n.Args[i])
		if err != nil {
			return nil, err
		}
		bound[p] = v
	}
	frame := ev.pushFrame()
	frame.Vars = bound
	res, err := ev.Evaluate(entry.Body)
	ev.popFrame()
	return res, err
}
