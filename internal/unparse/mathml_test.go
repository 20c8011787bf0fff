package unparse

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/numl-lang/numl/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMathMLWrapsDisplayAttribute(t *testing.T) {
	n := parseOneStatement(t, "1+1")
	out, err := MathML(n, DisplayBlock, false)
	require.NoError(t, err)
	assert.Contains(t, out, `display="block"`)
	assert.Contains(t, out, mathmlNS)
}

func TestMathMLDefaultsToInlineWhenEmpty(t *testing.T) {
	n := parseOneStatement(t, "1+1")
	out, err := MathML(n, "", false)
	require.NoError(t, err)
	assert.Contains(t, out, `display="inline"`)
}

func TestMathMLInfIdentifierRendersInfinitySymbol(t *testing.T) {
	for _, name := range []string{"inf", "Inf", "INF"} {
		n := parseOneStatement(t, name)
		out, err := MathML(n, DisplayInline, false)
		require.NoError(t, err)
		assert.Contains(t, out, "&infin;")
	}
}

func TestMathMLOrdinaryIdentifierIsNotInfinity(t *testing.T) {
	n := parseOneStatement(t, "information")
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	assert.NotContains(t, out, "&infin;")
}

func TestMathMLSqrtOverride(t *testing.T) {
	n := parseOneStatement(t, "sqrt(x)")
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	assert.Contains(t, out, "<msqrt>")
}

func TestMathMLAbsOverride(t *testing.T) {
	n := parseOneStatement(t, "abs(x)")
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	assert.Contains(t, out, "<mo>|</mo>")
}

func TestMathMLUnregisteredFunctionUsesDefaultRenderer(t *testing.T) {
	n := parseOneStatement(t, "foo(x, y)")
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	assert.Contains(t, out, "<mi>foo</mi>")
	assert.Contains(t, out, "&ApplyFunction;")
}

func TestMathMLEscapesXML(t *testing.T) {
	n := parseOneStatement(t, `"a<b&c"`)
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;")
	assert.Contains(t, out, "&amp;")
	assert.NotContains(t, out, "a<b")
}

func TestMathMLMatrixSnapshot(t *testing.T) {
	n := parseOneStatement(t, "[1, 2; 3, 4]")
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestMathMLIfSnapshot(t *testing.T) {
	n := parseOneStatement(t, "if 0\n1\nelse\n2\nendif")
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestValueMathMLArray(t *testing.T) {
	arr := &value.Array{
		Dims:  []int{1, 2},
		Class: value.ElemNumeric,
		Data: []value.Value{
			value.NewScalar(numeric.FromInt(1)),
			value.NewScalar(numeric.FromInt(2)),
		},
	}
	out := ValueMathML(arr, DisplayInline)
	assert.Contains(t, out, "<mtable>")
	assert.Contains(t, out, "<mn>1</mn>")
	assert.Contains(t, out, "<mn>2</mn>")
}

func TestValueMathMLStruct(t *testing.T) {
	s := value.NewStruct()
	s.Set("a", value.NewScalar(numeric.FromInt(1)))
	out := ValueMathML(s, DisplayInline)
	assert.Contains(t, out, "<mi>a</mi>")
}

func TestRegisterOverrideIsRespected(t *testing.T) {
	RegisterOverride("myfunc", func(a []string) string {
		return "<mrow><mtext>custom</mtext></mrow>"
	})
	n := parseOneStatement(t, "myfunc(x)")
	out, err := MathML(n, DisplayInline, false)
	require.NoError(t, err)
	assert.Contains(t, out, "custom")
}
