package numl

import (
	"testing"

	"github.com/numl-lang/numl/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, in *Interpreter, src string) value.Value {
	t.Helper()
	v, err := in.Evaluate(src)
	require.NoError(t, err)
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "a = 2+3*4; a")
	assert.Equal(t, "14", v.String())
}

func TestRowIndexing(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "A=[1,2;3,4]; A(2,:)")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, arr.Dims)
	assert.Equal(t, "3", arr.Data[0].String())
	assert.Equal(t, "4", arr.Data[1].String())
}

func TestLogicalIndexing(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "x=[10,20,30,40]; x(x>15)")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, 3, arr.LinearLength())
	assert.Equal(t, "20", arr.GetLinear(0).String())
	assert.Equal(t, "30", arr.GetLinear(1).String())
	assert.Equal(t, "40", arr.GetLinear(2).String())
}

func TestFunctionDefinitionVsIndexedAssignment(t *testing.T) {
	in := New(Config{})
	// n is unbound: g(n) = n*2 defines a function.
	v := eval(t, in, "g(n) = n*2; g(7)")
	assert.Equal(t, "14", v.String())
}

func TestIndexedAssignmentWhenBaseIsBound(t *testing.T) {
	in := New(Config{})
	// x already bound as a variable: x(2) = 9 is indexed assignment, not a def.
	v := eval(t, in, "x = [1,2,3]; x(2) = 9; x")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, "9", arr.GetLinear(1).String())
}

func TestNestedStructFieldAssignment(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "s.a.b=5; s.a.b")
	assert.Equal(t, "5", v.String())
}

func TestIfElseifElse(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "if 0;1;elseif 1;2;else;3;endif")
	assert.Equal(t, "2", v.String())
}

func TestIfFallsThroughToElse(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "if 0;1;elseif 0;2;else;3;endif")
	assert.Equal(t, "3", v.String())
}

func TestRetListSelectErrorMessage(t *testing.T) {
	in := New(Config{})
	eval(t, in, "A = [1,2,3]")
	_, err := in.Evaluate("[r,c,d] = size(A)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element number 3 undefined in return list")
}

func TestSizeRetListCollapsesToDimensionVector(t *testing.T) {
	in := New(Config{})
	eval(t, in, "A = [1,2,3;4,5,6]")
	v := eval(t, in, "size(A)")
	// collapsed (not multi-target) use returns the full [rows,cols] vector.
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, arr.Dims)
	assert.Equal(t, "2", arr.Data[0].String())
	assert.Equal(t, "3", arr.Data[1].String())
}

func TestSizeRetListDistributesToTwoTargets(t *testing.T) {
	in := New(Config{})
	eval(t, in, "A = [1,2,3;4,5,6]")
	v := eval(t, in, "[r,c] = size(A); r")
	assert.Equal(t, "2", v.String())
	v = eval(t, in, "c")
	assert.Equal(t, "3", v.String())
}

func TestClearRestoresNativeShadowedName(t *testing.T) {
	in := New(Config{})
	eval(t, in, "pi = 3")
	v := eval(t, in, "pi")
	assert.Equal(t, "3", v.String())

	in.Clear("pi")
	v = eval(t, in, "pi")
	assert.NotEqual(t, "3", v.String())
}

func TestClearWithNoArgsResetsAns(t *testing.T) {
	in := New(Config{})
	eval(t, in, "1+1")
	_, ok := in.Lookup("ans")
	require.True(t, ok)

	in.Clear()
	_, ok = in.Lookup("ans")
	assert.False(t, ok)
}

func TestEndInsideNestedIndex(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "x = [1,2,3,4,5]; x(end)")
	assert.Equal(t, "5", v.String())

	v = eval(t, in, "y = [10,20,30]; y(end-1)")
	assert.Equal(t, "20", v.String())
}

func TestColonAsWholeDimension(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "A = [1,2;3,4]; A(:,1)")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, []int{2, 1}, arr.Dims)
	assert.Equal(t, "1", arr.GetLinear(0).String())
	assert.Equal(t, "3", arr.GetLinear(1).String())
}

func TestRangeExpression(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "1:2:7")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	want := []string{"1", "3", "5", "7"}
	require.Equal(t, len(want), arr.LinearLength())
	for i, w := range want {
		assert.Equal(t, w, arr.GetLinear(i).String())
	}
}

func TestShortCircuitLogical(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "0 && (1/0)")
	assert.Equal(t, "0", v.String())
}

func TestTransposeOperator(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "[1,2,3]'")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, []int{3, 1}, arr.Dims)
}

func TestStringQuoteStyleRoundTrips(t *testing.T) {
	in := New(Config{})
	prog, errs := Parse(`"hi"`)
	require.Empty(t, errs)
	assert.Equal(t, `"hi"`, in.Unparse(prog.Items[0]))

	prog, errs = Parse(`'hi'`)
	require.Empty(t, errs)
	assert.Equal(t, `'hi'`, in.Unparse(prog.Items[0]))
}

func TestMatrixMultiplicationIsTrueMatrixProduct(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "[1,2;3,4] * [1,2;3,4]")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, "7", arr.At(0, 0).String())
	assert.Equal(t, "10", arr.At(0, 1).String())
	assert.Equal(t, "15", arr.At(1, 0).String())
	assert.Equal(t, "22", arr.At(1, 1).String())
}

func TestDotStarStaysElementwiseForMatrices(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "[1,2;3,4] .* [1,2;3,4]")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, "1", arr.At(0, 0).String())
	assert.Equal(t, "4", arr.At(0, 1).String())
	assert.Equal(t, "9", arr.At(1, 0).String())
	assert.Equal(t, "16", arr.At(1, 1).String())
}

func TestMatrixPowerIsRepeatedMatrixMultiplication(t *testing.T) {
	in := New(Config{})
	v := eval(t, in, "[1,1;0,1]^3")
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, "3", arr.At(0, 1).String())
}

func TestUnboundIdentifierError(t *testing.T) {
	in := New(Config{})
	_, err := in.Evaluate("nosuchname")
	assert.Error(t, err)
}
