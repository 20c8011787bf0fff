package eval

import (
	"testing"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalarOf(n int64) value.Value { return value.NewScalar(numeric.FromInt(n)) }

func arrayOf(dims []int, vals ...int64) *value.Array {
	data := make([]value.Value, len(vals))
	for i, v := range vals {
		data[i] = scalarOf(v)
	}
	return &value.Array{Dims: dims, Class: value.ElemNumeric, Data: data}
}

func TestApplyOpScalarAddition(t *testing.T) {
	ev := New(Config{})
	v, err := ev.applyOp("+", scalarOf(2), scalarOf(3), ast.Position{})
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())
}

func TestApplyOpBroadcastsScalarAgainstArray(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{1, 3}, 1, 2, 3)
	v, err := ev.applyOp("*", scalarOf(10), a, ast.Position{})
	require.NoError(t, err)
	arr := v.(*value.Array)
	assert.Equal(t, "10", arr.GetLinear(0).String())
	assert.Equal(t, "20", arr.GetLinear(1).String())
	assert.Equal(t, "30", arr.GetLinear(2).String())
}

func TestApplyOpRejectsMismatchedDims(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{1, 2}, 1, 2)
	b := arrayOf([]int{1, 3}, 1, 2, 3)
	_, err := ev.applyOp("+", a, b, ast.Position{})
	assert.Error(t, err)
}

func TestApplyOpComparisonReturnsLogical(t *testing.T) {
	ev := New(Config{})
	v, err := ev.applyOp("<", scalarOf(2), scalarOf(3), ast.Position{})
	require.NoError(t, err)
	s := v.(value.Scalar)
	assert.True(t, s.N.Truthy())
}

func TestApplyOpCollapsesOneByOneArrayBackToScalar(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{1, 1}, 4)
	b := arrayOf([]int{1, 1}, 5)
	v, err := ev.applyOp("+", a, b, ast.Position{})
	require.NoError(t, err)
	_, isArray := v.(*value.Array)
	assert.False(t, isArray)
	assert.Equal(t, "9", v.String())
}

func TestTransposeConjugatesComplexScalar(t *testing.T) {
	c := numeric.Complex(decimal.New(2, 0), decimal.New(3, 0))
	v, err := transpose(value.NewScalar(c), true)
	require.NoError(t, err)
	s := v.(value.Scalar)
	assert.Equal(t, "2-3i", s.N.String())
}

func TestTransposeWithoutConjugateKeepsScalarUnchanged(t *testing.T) {
	c := numeric.Complex(decimal.New(2, 0), decimal.New(3, 0))
	v, err := transpose(value.NewScalar(c), false)
	require.NoError(t, err)
	s := v.(value.Scalar)
	assert.Equal(t, "2+3i", s.N.String())
}

func TestTransposeSwapsArrayDimensions(t *testing.T) {
	a := arrayOf([]int{2, 3}, 1, 2, 3, 4, 5, 6)
	v, err := transpose(a, false)
	require.NoError(t, err)
	out := v.(*value.Array)
	assert.Equal(t, []int{3, 2}, out.Dims)
	assert.Equal(t, "1", out.At(0, 0).String())
	assert.Equal(t, "4", out.At(0, 1).String())
	assert.Equal(t, "2", out.At(1, 0).String())
}

func TestTransposeRejectsHigherRankArray(t *testing.T) {
	a := &value.Array{Dims: []int{2, 2, 2}, Class: value.ElemNumeric, Data: make([]value.Value, 8)}
	for i := range a.Data {
		a.Data[i] = scalarOf(int64(i))
	}
	_, err := transpose(a, false)
	assert.Error(t, err)
}

func TestLogicalAndOrShortCircuitDoesNotEvaluateRight(t *testing.T) {
	ev := New(Config{})
	n := &ast.BinaryExpr{
		Op:   "&&",
		Left: &ast.ScalarLiteral{Literal: "0"},
		// An unbound name raises a reference error if it is evaluated.
		Right: &ast.Identifier{Name: "undefined_name"},
	}
	v, err := ev.evalBinary(n)
	require.NoError(t, err)
	assert.Equal(t, "0", v.(value.Value).String())
}

func TestApplyOpStarIsTrueMatrixMultiplicationForTwoMatrices(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{2, 2}, 1, 2, 3, 4)
	b := arrayOf([]int{2, 2}, 1, 2, 3, 4)
	v, err := ev.applyOp("*", a, b, ast.Position{})
	require.NoError(t, err)
	out := v.(*value.Array)
	assert.Equal(t, []int{2, 2}, out.Dims)
	assert.Equal(t, "7", out.At(0, 0).String())
	assert.Equal(t, "10", out.At(0, 1).String())
	assert.Equal(t, "15", out.At(1, 0).String())
	assert.Equal(t, "22", out.At(1, 1).String())
}

func TestApplyOpStarRejectsNonconformantMatrices(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{2, 3}, 1, 2, 3, 4, 5, 6)
	b := arrayOf([]int{2, 2}, 1, 2, 3, 4)
	_, err := ev.applyOp("*", a, b, ast.Position{})
	assert.Error(t, err)
}

func TestApplyOpStarScalarTimesMatrixIsStillElementwise(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{1, 3}, 1, 2, 3)
	v, err := ev.applyOp("*", scalarOf(2), a, ast.Position{})
	require.NoError(t, err)
	out := v.(*value.Array)
	assert.Equal(t, "2", out.GetLinear(0).String())
	assert.Equal(t, "4", out.GetLinear(1).String())
	assert.Equal(t, "6", out.GetLinear(2).String())
}

func TestApplyOpCaretIsTrueMatrixPowerForSquareMatrix(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{2, 2}, 1, 1, 0, 1)
	v, err := ev.applyOp("^", a, scalarOf(3), ast.Position{})
	require.NoError(t, err)
	out := v.(*value.Array)
	assert.Equal(t, "1", out.At(0, 0).String())
	assert.Equal(t, "3", out.At(0, 1).String())
	assert.Equal(t, "0", out.At(1, 0).String())
	assert.Equal(t, "1", out.At(1, 1).String())
}

func TestApplyOpCaretZeroPowerIsIdentity(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{2, 2}, 5, 6, 7, 8)
	v, err := ev.applyOp("^", a, scalarOf(0), ast.Position{})
	require.NoError(t, err)
	out := v.(*value.Array)
	assert.Equal(t, "1", out.At(0, 0).String())
	assert.Equal(t, "0", out.At(0, 1).String())
	assert.Equal(t, "0", out.At(1, 0).String())
	assert.Equal(t, "1", out.At(1, 1).String())
}

func TestApplyOpCaretRejectsNonSquareBase(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{2, 3}, 1, 2, 3, 4, 5, 6)
	_, err := ev.applyOp("^", a, scalarOf(2), ast.Position{})
	assert.Error(t, err)
}

func TestApplyOpCaretRejectsNegativeExponent(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{2, 2}, 1, 2, 3, 4)
	_, err := ev.applyOp("^", a, scalarOf(-1), ast.Position{})
	assert.Error(t, err)
}

func TestApplyOpDotStarStaysElementwiseForTwoMatrices(t *testing.T) {
	ev := New(Config{})
	a := arrayOf([]int{2, 2}, 1, 2, 3, 4)
	b := arrayOf([]int{2, 2}, 1, 2, 3, 4)
	v, err := ev.applyOp(".*", a, b, ast.Position{})
	require.NoError(t, err)
	out := v.(*value.Array)
	assert.Equal(t, "1", out.At(0, 0).String())
	assert.Equal(t, "4", out.At(0, 1).String())
	assert.Equal(t, "9", out.At(1, 0).String())
	assert.Equal(t, "16", out.At(1, 1).String())
}

func TestUnaryMinusNegatesScalar(t *testing.T) {
	n := &ast.UnaryExpr{
		Op:      "-_",
		Operand: &ast.ScalarLiteral{Literal: "5"},
	}
	ev := New(Config{})
	v, err := ev.evalUnary(n)
	require.NoError(t, err)
	assert.Equal(t, "-5", v.(value.Value).String())
}
