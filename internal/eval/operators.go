package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
)

type scalarBinOp func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error)

// arithmeticOps maps every element-wise arithmetic operator to its
// scalar kernel primitive. `\` is treated as its element-wise `.\`
// counterpart (right/left matrix division is left to the external
// linear algebra provider). `*` and `^`/`**` are NOT in this table:
// against two non-scalar operands they mean true matrix
// multiplication/power (spec §3.2, §4.3), handled by evalStar and
// evalCaret below. `*` falls through to the `.*` element-wise kernel
// when either operand is a scalar; `^` falls through to `.^` only when
// its base is a scalar, since a non-scalar base always means matrix
// power.
var arithmeticOps = map[string]scalarBinOp{
	"+":   func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return a.Add(ctx, b), nil },
	"-":   func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return a.Sub(ctx, b), nil },
	".*":  func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return a.Mul(ctx, b), nil },
	"./":  func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return a.Div(ctx, b), nil },
	"/":   func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return a.Div(ctx, b), nil },
	".\\": func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return a.LeftDiv(ctx, b), nil },
	"\\":  func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return a.LeftDiv(ctx, b), nil },
	".^":  func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return numeric.Pow(ctx, a, b), nil },
	".**": func(ctx *numeric.Context, a, b numeric.Scalar) (numeric.Scalar, error) { return numeric.Pow(ctx, a, b), nil },
}

var comparisonOps = map[string]func(ctx *numeric.Context, a, b numeric.Scalar) bool{
	"<":  func(ctx *numeric.Context, a, b numeric.Scalar) bool { return numeric.Compare(ctx, a, b) < 0 },
	"<=": func(ctx *numeric.Context, a, b numeric.Scalar) bool { return numeric.Compare(ctx, a, b) <= 0 },
	">":  func(ctx *numeric.Context, a, b numeric.Scalar) bool { return numeric.Compare(ctx, a, b) > 0 },
	">=": func(ctx *numeric.Context, a, b numeric.Scalar) bool { return numeric.Compare(ctx, a, b) >= 0 },
	"==": func(ctx *numeric.Context, a, b numeric.Scalar) bool { return a.Equal(ctx, b) },
	"!=": func(ctx *numeric.Context, a, b numeric.Scalar) bool { return !a.Equal(ctx, b) },
	"~=": func(ctx *numeric.Context, a, b numeric.Scalar) bool { return !a.Equal(ctx, b) },
}

var logicalOps = map[string]func(a, b bool) bool{
	"&": func(a, b bool) bool { return a && b },
	"|": func(a, b bool) bool { return a || b },
}

// elementwise applies a scalar-to-scalar op over two operands,
// broadcasting a 1x1 operand against an array and requiring identical
// shapes otherwise (spec §4.3 "Element-wise operators broadcast
// scalars; shape-mismatched non-scalars fail").
func elementwise(ctx *numeric.Context, l, r value.Value, op func(a, b numeric.Scalar) (numeric.Scalar, error)) (value.Value, error) {
	ls, lScalar := l.(value.Scalar)
	rs, rScalar := r.(value.Scalar)
	if lScalar && rScalar {
		v, err := op(ls.N, rs.N)
		if err != nil {
			return nil, err
		}
		return value.NewScalar(v), nil
	}

	la, lok := value.AsArray(l)
	ra, rok := value.AsArray(r)
	if !lok || !rok {
		return nil, errors.New(errors.KindEvaluation, "operator requires numeric operands")
	}
	if la.LinearLength() == 1 && ra.LinearLength() != 1 {
		out := &value.Array{Dims: append([]int(nil), ra.Dims...), Class: value.ElemNumeric, Data: make([]value.Value, ra.LinearLength())}
		ls := mustScalar(la.GetLinear(0))
		for i := 0; i < ra.LinearLength(); i++ {
			v, err := op(ls, mustScalar(ra.GetLinear(i)))
			if err != nil {
				return nil, err
			}
			out.SetLinear(i, value.NewScalar(v))
		}
		return out, nil
	}
	if ra.LinearLength() == 1 && la.LinearLength() != 1 {
		out := &value.Array{Dims: append([]int(nil), la.Dims...), Class: value.ElemNumeric, Data: make([]value.Value, la.LinearLength())}
		rs := mustScalar(ra.GetLinear(0))
		for i := 0; i < la.LinearLength(); i++ {
			v, err := op(mustScalar(la.GetLinear(i)), rs)
			if err != nil {
				return nil, err
			}
			out.SetLinear(i, value.NewScalar(v))
		}
		return out, nil
	}
	if !sameDims(la.Dims, ra.Dims) {
		return nil, errors.New(errors.KindEvaluation, "nonconformant arguments (operand dimensions must agree)")
	}
	out := &value.Array{Dims: append([]int(nil), la.Dims...), Class: value.ElemNumeric, Data: make([]value.Value, la.LinearLength())}
	for i := 0; i < la.LinearLength(); i++ {
		v, err := op(mustScalar(la.GetLinear(i)), mustScalar(ra.GetLinear(i)))
		if err != nil {
			return nil, err
		}
		out.SetLinear(i, value.NewScalar(v))
	}
	return out, nil
}

// collapseArray collapses a 1x1 array result back to a bare scalar;
// elementwise already returns a bare Scalar when both operands were
// scalars, so this only needs to handle the *Array case.
func collapseArray(v value.Value) value.Value {
	if a, ok := v.(*value.Array); ok {
		return value.ToValue(a)
	}
	return v
}

func mustScalar(v value.Value) numeric.Scalar {
	if s, ok := v.(value.Scalar); ok {
		return s.N
	}
	return numeric.Zero()
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// scalarExponent reports whether v is usable as a scalar right-hand
// side (a bare Scalar or a 1x1 Array), unwrapping it to the
// numeric.Scalar underneath.
func scalarExponent(v value.Value) (numeric.Scalar, bool) {
	if s, ok := v.(value.Scalar); ok {
		return s.N, true
	}
	if a, ok := value.AsArray(v); ok && a.LinearLength() == 1 {
		return mustScalar(a.GetLinear(0)), true
	}
	return numeric.Scalar{}, false
}

// matMul computes the true (non-element-wise) matrix product of two
// 2-D arrays with conformable inner dimensions (spec §3.2 `*`).
func matMul(ctx *numeric.Context, l, r *value.Array) (*value.Array, error) {
	if l.Rank() != 2 || r.Rank() != 2 {
		return nil, errors.New(errors.KindEvaluation, "matrix multiplication is only defined for 2-D arrays")
	}
	lr, lc := l.Dim(1), l.Dim(2)
	rr, rc := r.Dim(1), r.Dim(2)
	if lc != rr {
		return nil, errors.New(errors.KindEvaluation, "nonconformant arguments (inner matrix dimensions must agree)")
	}
	out := &value.Array{Dims: []int{lr, rc}, Class: value.ElemNumeric, Data: make([]value.Value, lr*rc)}
	for i := 0; i < lr; i++ {
		for j := 0; j < rc; j++ {
			sum := numeric.Zero()
			for k := 0; k < lc; k++ {
				sum = sum.Add(ctx, mustScalar(l.At(i, k)).Mul(ctx, mustScalar(r.At(k, j))))
			}
			out.Data[i*rc+j] = value.NewScalar(sum)
		}
	}
	return out, nil
}

// identityMatrix builds the n x n multiplicative identity, matPow's
// base case for a zero exponent.
func identityMatrix(n int, class value.ElemClass) *value.Array {
	data := make([]value.Value, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				data[i*n+j] = value.NewScalar(numeric.FromInt(1))
			} else {
				data[i*n+j] = value.NewScalar(numeric.Zero())
			}
		}
	}
	return &value.Array{Dims: []int{n, n}, Class: class, Data: data}
}

// matPow raises a square matrix to a non-negative integer power by
// repeated squaring (spec §3.2 `^`/`**`).
func matPow(ctx *numeric.Context, base *value.Array, exp int) (*value.Array, error) {
	if base.Rank() != 2 || base.Dim(1) != base.Dim(2) {
		return nil, errors.New(errors.KindEvaluation, "matrix power requires a square matrix base")
	}
	if exp < 0 {
		return nil, errors.New(errors.KindEvaluation, "matrix power requires a non-negative integer exponent")
	}
	result := identityMatrix(base.Dim(1), base.Class)
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			var err error
			result, err = matMul(ctx, result, b)
			if err != nil {
				return nil, err
			}
		}
		exp >>= 1
		if exp > 0 {
			var err error
			b, err = matMul(ctx, b, b)
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// evalStar implements `*`: true matrix multiplication when both sides
// are non-scalar arrays, element-wise (scaling) multiplication
// whenever either side is a scalar or a 1x1 array.
func (ev *Evaluator) evalStar(l, r value.Value, pos ast.Position) (value.Value, error) {
	la, lok := value.AsArray(l)
	ra, rok := value.AsArray(r)
	if lok && rok && la.LinearLength() != 1 && ra.LinearLength() != 1 {
		out, err := matMul(ev.Ctx, la, ra)
		if err != nil {
			return nil, errors.New(errors.KindEvaluation, "%v", err).At(pos)
		}
		return collapseArray(out), nil
	}
	v, err := elementwise(ev.Ctx, l, r, func(a, b numeric.Scalar) (numeric.Scalar, error) { return a.Mul(ev.Ctx, b), nil })
	if err != nil {
		return nil, errors.New(errors.KindEvaluation, "%v", err).At(pos)
	}
	return collapseArray(v), nil
}

// evalCaret implements `^`/`**`: element-wise power when the base is a
// scalar or 1x1 array; otherwise true (repeated-squaring) matrix power,
// which is an error unless the base is square and the exponent is a
// non-negative integer scalar.
func (ev *Evaluator) evalCaret(l, r value.Value, pos ast.Position) (value.Value, error) {
	if la, ok := value.AsArray(l); ok && la.LinearLength() != 1 {
		exp, ok := scalarExponent(r)
		if !ok {
			return nil, errors.New(errors.KindEvaluation, "matrix power exponent must be a scalar").At(pos)
		}
		n, ok := exp.AsIndex()
		if !ok {
			return nil, errors.New(errors.KindEvaluation, "matrix power requires an integer exponent").At(pos)
		}
		out, err := matPow(ev.Ctx, la, n)
		if err != nil {
			return nil, errors.New(errors.KindEvaluation, "%v", err).At(pos)
		}
		return collapseArray(out), nil
	}
	v, err := elementwise(ev.Ctx, l, r, func(a, b numeric.Scalar) (numeric.Scalar, error) { return numeric.Pow(ev.Ctx, a, b), nil })
	if err != nil {
		return nil, errors.New(errors.KindEvaluation, "%v", err).At(pos)
	}
	return collapseArray(v), nil
}

func (ev *Evaluator) applyOp(op string, l, r value.Value, pos ast.Position) (value.Value, error) {
	switch op {
	case "*":
		return ev.evalStar(l, r, pos)
	case "^", "**":
		return ev.evalCaret(l, r, pos)
	}
	if fn, ok := arithmeticOps[op]; ok {
		v, err := elementwise(ev.Ctx, l, r, func(a, b numeric.Scalar) (numeric.Scalar, error) { return fn(ev.Ctx, a, b) })
		if err != nil {
			return nil, errors.New(errors.KindEvaluation, "%v", err).At(pos)
		}
		return collapseArray(v), nil
	}
	if fn, ok := comparisonOps[op]; ok {
		v, err := elementwise(ev.Ctx, l, r, func(a, b numeric.Scalar) (numeric.Scalar, error) {
			return numeric.FromBool(fn(ev.Ctx, a, b)), nil
		})
		if err != nil {
			return nil, errors.New(errors.KindEvaluation, "%v", err).At(pos)
		}
		return collapseArray(v), nil
	}
	if fn, ok := logicalOps[op]; ok {
		v, err := elementwise(ev.Ctx, l, r, func(a, b numeric.Scalar) (numeric.Scalar, error) {
			return numeric.FromBool(fn(a.Truthy(), b.Truthy())), nil
		})
		if err != nil {
			return nil, errors.New(errors.KindEvaluation, "%v", err).At(pos)
		}
		return collapseArray(v), nil
	}
	if op == "&&" || op == "||" {
		lt, err := truthy(l)
		if err != nil {
			return nil, err
		}
		rt, err := truthy(r)
		if err != nil {
			return nil, err
		}
		if op == "&&" {
			return value.NewScalar(numeric.FromBool(lt && rt)), nil
		}
		return value.NewScalar(numeric.FromBool(lt || rt)), nil
	}
	return nil, errors.New(errors.KindEvaluation, "unknown operator %q", op).At(pos)
}

func (ev *Evaluator) evalBinary(n *ast.BinaryExpr) (Result, error) {
	n.Left.SetParent(n)
	n.Right.SetParent(n)

	if n.Op == "&&" || n.Op == "||" {
		l, err := ev.EvalValue(n.Left)
		if err != nil {
			return nil, err
		}
		lt, err := truthy(l)
		if err != nil {
			return nil, err
		}
		if n.Op == "&&" && !lt {
			return value.NewScalar(numeric.FromBool(false)), nil
		}
		if n.Op == "||" && lt {
			return value.NewScalar(numeric.FromBool(true)), nil
		}
		r, err := ev.EvalValue(n.Right)
		if err != nil {
			return nil, err
		}
		rt, err := truthy(r)
		if err != nil {
			return nil, err
		}
		return value.NewScalar(numeric.FromBool(rt)), nil
	}

	l, err := ev.EvalValue(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := ev.EvalValue(n.Right)
	if err != nil {
		return nil, err
	}
	return ev.applyOp(n.Op, l, r, n.Pos())
}

func (ev *Evaluator) evalUnary(n *ast.UnaryExpr) (Result, error) {
	n.Operand.SetParent(n)
	switch n.Op {
	case "++_", "--_":
		return ev.incrDecr(n.Operand, n.Op == "++_", true, n.Pos())
	}
	v, err := ev.EvalValue(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "+_":
		return v, nil
	case "-_":
		return mapElementwise(v, func(s numeric.Scalar) numeric.Scalar { return s.Neg() })
	case "!_", "~_":
		return mapElementwise(v, func(s numeric.Scalar) numeric.Scalar { return numeric.FromBool(!s.Truthy()) })
	default:
		return nil, errors.New(errors.KindEvaluation, "unknown unary operator %q", n.Op).At(n.Pos())
	}
}

func (ev *Evaluator) evalPostfix(n *ast.PostfixExpr) (Result, error) {
	n.Operand.SetParent(n)
	switch n.Op {
	case "_++", "_--":
		return ev.incrDecr(n.Operand, n.Op == "_++", false, n.Pos())
	case "'", ".'":
		v, err := ev.EvalValue(n.Operand)
		if err != nil {
			return nil, err
		}
		return transpose(v, n.Op == "'")
	default:
		return nil, errors.New(errors.KindEvaluation, "unknown postfix operator %q", n.Op).At(n.Pos())
	}
}

func mapElementwise(v value.Value, fn func(numeric.Scalar) numeric.Scalar) (value.Value, error) {
	switch t := v.(type) {
	case value.Scalar:
		return value.NewScalar(fn(t.N)), nil
	case *value.Array:
		out := &value.Array{Dims: append([]int(nil), t.Dims...), Class: t.Class, Data: make([]value.Value, len(t.Data))}
		for i, elem := range t.Data {
			out.Data[i] = value.NewScalar(fn(mustScalar(elem)))
		}
		return out, nil
	default:
		return nil, errors.New(errors.KindEvaluation, "operator requires a numeric operand")
	}
}

func transpose(v value.Value, conjugate bool) (value.Value, error) {
	switch t := v.(type) {
	case value.Scalar:
		if conjugate {
			return value.NewScalar(t.N.Conj()), nil
		}
		return t, nil
	case *value.Array:
		if t.Rank() != 2 {
			return nil, errors.New(errors.KindEvaluation, "transpose is only defined for 2-D arrays")
		}
		rows, cols := t.Dim(1), t.Dim(2)
		out := &value.Array{Dims: []int{cols, rows}, Class: t.Class, Cell: t.Cell, Data: make([]value.Value, len(t.Data))}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				src := t.Data[r*cols+c]
				if conjugate {
					if s, ok := src.(value.Scalar); ok {
						src = value.NewScalar(s.N.Conj())
					}
				}
				out.Data[c*rows+r] = src
			}
		}
		return out, nil
	default:
		return nil, errors.New(errors.KindEvaluation, "transpose requires a numeric value")
	}
}
