package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

func asRealScalar(v value.Value, what string, pos ast.Position) (numeric.Scalar, error) {
	s, ok := v.(value.Scalar)
	if !ok {
		return numeric.Scalar{}, errors.New(errors.KindEvaluation, "%s must be a scalar", what).At(pos)
	}
	if !s.N.IsReal() {
		return numeric.Scalar{}, errors.New(errors.KindEvaluation, "%s must be real", what).At(pos)
	}
	return s.N, nil
}

// evalRange implements spec §4.1 "Range": produces the vector
// [start, start+stride, ...] of every value v with (v-start)/stride a
// non-negative integer and v within [start, stop] in the stride's
// direction; an empty array for a zero or direction-mismatched stride.
func (ev *Evaluator) evalRange(n *ast.Range) (Result, error) {
	startV, err := ev.EvalValue(n.Start)
	if err != nil {
		return nil, err
	}
	start, err := asRealScalar(startV, "range start", n.Pos())
	if err != nil {
		return nil, err
	}
	stopV, err := ev.EvalValue(n.Stop)
	if err != nil {
		return nil, err
	}
	stop, err := asRealScalar(stopV, "range stop", n.Pos())
	if err != nil {
		return nil, err
	}
	stride := numeric.One()
	if n.Stride != nil {
		strideV, err := ev.EvalValue(n.Stride)
		if err != nil {
			return nil, err
		}
		stride, err = asRealScalar(strideV, "range stride", n.Pos())
		if err != nil {
			return nil, err
		}
	}

	if stride.Re.IsZero() {
		return &value.Array{Dims: []int{1, 0}, Class: value.ElemNumeric}, nil
	}

	diff := stop.Re.Sub(start.Re)
	if diff.Sign() != 0 && diff.Sign() != stride.Re.Sign() {
		return &value.Array{Dims: []int{1, 0}, Class: value.ElemNumeric}, nil
	}

	count := int(diff.DivRound(stride.Re, ev.Ctx.places()).IntPart()) + 1
	if count < 0 {
		count = 0
	}

	data := make([]value.Value, count)
	cur := start
	for k := 0; k < count; k++ {
		data[k] = value.NewScalar(cur)
		cur = cur.Add(ev.Ctx, stride)
	}
	return &value.Array{Dims: []int{1, count}, Class: value.ElemNumeric, Data: data}, nil
}
