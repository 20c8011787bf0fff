package linalg

import (
	"testing"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/eval"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrix(rows [][]float64) value.Value {
	r := len(rows)
	c := len(rows[0])
	data := make([]value.Value, r*c)
	arr := &value.Array{Dims: []int{r, c}, Class: value.ElemNumeric, Data: data}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			arr.Data[i*c+j] = value.NewScalar(numeric.FromFloat(rows[i][j]))
		}
	}
	return arr
}

func float(v value.Value) float64 {
	s := v.(value.Scalar)
	f, _ := s.N.Re.Float64()
	return f
}

func TestTableRegistersAllThree(t *testing.T) {
	tbl := Table()
	assert.Contains(t, tbl, "det")
	assert.Contains(t, tbl, "inv")
	assert.Contains(t, tbl, "lu")
}

func TestDetIdentity(t *testing.T) {
	m := matrix([][]float64{{1, 0}, {0, 1}})
	res, err := builtinDet(nil, ast.Position{}, []eval.Arg{{Val: m}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float(res.(value.Scalar)), 1e-9)
}

func TestDetKnownMatrix(t *testing.T) {
	// det([[1,2],[3,4]]) == 1*4 - 2*3 == -2
	m := matrix([][]float64{{1, 2}, {3, 4}})
	res, err := builtinDet(nil, ast.Position{}, []eval.Arg{{Val: m}})
	require.NoError(t, err)
	assert.InDelta(t, -2.0, float(res.(value.Scalar)), 1e-9)
}

func TestDetRejectsNonSquare(t *testing.T) {
	m := matrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	_, err := builtinDet(nil, ast.Position{}, []eval.Arg{{Val: m}})
	assert.Error(t, err)
}

func TestInvIdentity(t *testing.T) {
	m := matrix([][]float64{{1, 0}, {0, 1}})
	res, err := builtinInv(nil, ast.Position{}, []eval.Arg{{Val: m}})
	require.NoError(t, err)
	arr := res.(*value.Array)
	assert.InDelta(t, 1.0, float(arr.At(0, 0)), 1e-9)
	assert.InDelta(t, 0.0, float(arr.At(0, 1)), 1e-9)
	assert.InDelta(t, 1.0, float(arr.At(1, 1)), 1e-9)
}

func TestInvSingularErrors(t *testing.T) {
	m := matrix([][]float64{{1, 2}, {2, 4}})
	_, err := builtinInv(nil, ast.Position{}, []eval.Arg{{Val: m}})
	assert.Error(t, err)
}

func TestLUReturnsRetListOfThree(t *testing.T) {
	m := matrix([][]float64{{4, 3}, {6, 3}})
	res, err := builtinLU(nil, ast.Position{}, []eval.Arg{{Val: m}})
	require.NoError(t, err)
	rl, ok := res.(*eval.RetList)
	require.True(t, ok)
	assert.Equal(t, 3, rl.N)

	l, err := rl.Select(3, 0)
	require.NoError(t, err)
	u, err := rl.Select(3, 1)
	require.NoError(t, err)
	p, err := rl.Select(3, 2)
	require.NoError(t, err)

	assert.Equal(t, value.KindArray, l.Kind())
	assert.Equal(t, value.KindArray, u.Kind())
	assert.Equal(t, value.KindArray, p.Kind())

	_, err = rl.Select(3, 3)
	assert.Error(t, err)
}
