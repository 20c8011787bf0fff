package value

import (
	"testing"

	"github.com/numl-lang/numl/internal/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sc(n int64) Scalar { return Scalar{N: numeric.FromInt(n)} }

func row(vals ...int64) *Array {
	data := make([]Value, len(vals))
	for i, v := range vals {
		data[i] = sc(v)
	}
	return &Array{Dims: []int{1, len(vals)}, Class: ElemNumeric, Data: data}
}

func TestHorzCat(t *testing.T) {
	a, err := HorzCat([]Value{sc(1), sc(2), sc(3)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, a.Dims)
	assert.Equal(t, "1", a.Data[0].String())
	assert.Equal(t, "3", a.Data[2].String())
}

func TestHorzCatDimensionMismatch(t *testing.T) {
	a := &Array{Dims: []int{2, 1}, Class: ElemNumeric, Data: []Value{sc(1), sc(2)}}
	b := &Array{Dims: []int{1, 1}, Class: ElemNumeric, Data: []Value{sc(3)}}
	_, err := HorzCat([]Value{a, b})
	assert.Error(t, err)
}

func TestVertCat(t *testing.T) {
	r1 := row(1, 2)
	r2 := row(3, 4)
	a, err := VertCat([]*Array{r1, r2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, a.Dims)
	// column-major linear index 1 is (row=1,col=0) -> 3
	assert.Equal(t, "3", a.GetLinear(1).String())
	// column-major linear index 2 is (row=0,col=1) -> 2
	assert.Equal(t, "2", a.GetLinear(2).String())
}

func TestVertCatDimensionMismatch(t *testing.T) {
	r1 := row(1, 2)
	r2 := row(3, 4, 5)
	_, err := VertCat([]*Array{r1, r2})
	assert.Error(t, err)
}

func TestColumnMajorLinearIndexing(t *testing.T) {
	// MATLAB-style A = [1 2; 3 4] linearizes to [1 3 2 4].
	r1 := row(1, 2)
	r2 := row(3, 4)
	a, err := VertCat([]*Array{r1, r2})
	require.NoError(t, err)

	want := []string{"1", "3", "2", "4"}
	for i, w := range want {
		assert.Equal(t, w, a.GetLinear(i).String())
	}
}

func TestExtendGrowsAndPreservesExistingData(t *testing.T) {
	a := row(1, 2, 3)
	a.Extend([]int{1, 5})
	assert.Equal(t, []int{1, 5}, a.Dims)
	assert.Equal(t, "1", a.GetLinear(0).String())
	assert.Equal(t, "3", a.GetLinear(2).String())
	assert.Equal(t, "0", a.GetLinear(4).String())
}

func TestLinearSetExtendsOutOfBounds(t *testing.T) {
	a := row(1, 2)
	err := a.LinearSet([]int{4}, sc(9))
	require.NoError(t, err)
	assert.Equal(t, 5, a.LinearLength())
	assert.Equal(t, "9", a.GetLinear(4).String())
}

func TestSubGetAndSubSet(t *testing.T) {
	r1 := row(1, 2)
	r2 := row(3, 4)
	a, err := VertCat([]*Array{r1, r2})
	require.NoError(t, err)

	// A(2,:) -> row [3,4]
	got, err := a.SubGet([][]int{{1}, {0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got.Dims)
	assert.Equal(t, "3", got.Data[0].String())
	assert.Equal(t, "4", got.Data[1].String())

	err = a.SubSet([][]int{{0}, {0}}, sc(99))
	require.NoError(t, err)
	assert.Equal(t, "99", a.At(0, 0).String())
}

func TestReshapePreservesColumnMajorOrder(t *testing.T) {
	a := row(1, 2, 3, 4, 5, 6)
	out, err := a.Reshape([]int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, out.Dims)
	for i := 0; i < 6; i++ {
		assert.Equal(t, a.GetLinear(i).String(), out.GetLinear(i).String())
	}
}

func TestReshapeElementCountMismatch(t *testing.T) {
	a := row(1, 2, 3)
	_, err := a.Reshape([]int{2, 2})
	assert.Error(t, err)
}

func TestFindAndLogicalIndexing(t *testing.T) {
	a := row(10, 20, 30, 40)
	mask := &Array{Dims: []int{1, 4}, Class: ElemNumeric, Data: []Value{
		sc(0), sc(1), sc(1), sc(1),
	}}
	truthy := func(v Value) bool { return v.(Scalar).Truthy() }

	idx := mask.Find(truthy)
	assert.Equal(t, []int{1, 2, 3}, idx)

	got, err := a.LogicalGet(mask, truthy)
	require.NoError(t, err)
	assert.Equal(t, 3, got.LinearLength())
	assert.Equal(t, "20", got.GetLinear(0).String())
	assert.Equal(t, "40", got.GetLinear(2).String())
}

func TestToValueCollapsesOneByOne(t *testing.T) {
	a := ScalarAsArray(sc(7))
	v := ToValue(a)
	_, isScalar := v.(Scalar)
	assert.True(t, isScalar)

	b := row(1, 2)
	v2 := ToValue(b)
	_, isArray := v2.(*Array)
	assert.True(t, isArray)
}

func TestBuildCellLiteralWidthMismatch(t *testing.T) {
	_, err := BuildCellLiteral([][]Value{
		{sc(1), sc(2)},
		{sc(3)},
	})
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	a := row(1, 2, 3)
	b := a.Clone().(*Array)
	b.Data[0] = sc(99)
	assert.Equal(t, "1", a.GetLinear(0).String())
	assert.Equal(t, "99", b.GetLinear(0).String())
}
