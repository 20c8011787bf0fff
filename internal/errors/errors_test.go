package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "SyntaxError", KindSyntax.String())
	assert.Equal(t, "ReferenceError", KindReference.String())
	assert.Equal(t, "EvaluationError", KindEvaluation.String())
	assert.Equal(t, "ArithmeticError", KindArithmetic.String())
}

func TestNewFormatsMessage(t *testing.T) {
	e := New(KindReference, "undefined identifier %q", "x")
	assert.Equal(t, "undefined identifier \"x\"", e.Message)
	assert.Equal(t, KindReference, e.Kind)
}

func TestAtAttachesPositionAndChains(t *testing.T) {
	e := New(KindSyntax, "bad token").At(Position{Line: 3, Column: 5})
	assert.Equal(t, 3, e.Pos.Line)
	assert.Equal(t, 5, e.Pos.Column)
}

func TestErrorWithNoPositionOmitsLocationLine(t *testing.T) {
	e := New(KindEvaluation, "bad arity")
	out := e.Error()
	assert.Contains(t, out, "EvaluationError")
	assert.Contains(t, out, "bad arity")
	assert.NotContains(t, out, " at ")
}

func TestFormatWithSourceShowsCaretUnderColumn(t *testing.T) {
	e := New(KindArithmetic, "division by zero").
		At(Position{Line: 2, Column: 7}).
		WithSource("a = 1\nb = 1/0\n", "test.numl")

	out := e.Format(false)
	assert.Contains(t, out, "ArithmeticError in test.numl:2:7")
	assert.Contains(t, out, "b = 1/0")
	assert.Contains(t, out, "^")
	// caret must be on its own line, after the source line.
	srcIdx := indexOf(out, "b = 1/0")
	caretIdx := indexOf(out, "^")
	assert.Greater(t, caretIdx, srcIdx)
}

func TestFormatWithColorWrapsCaretAndMessage(t *testing.T) {
	e := New(KindSyntax, "boom").At(Position{Line: 1, Column: 1}).WithSource("x\n", "f")
	out := e.Format(true)
	assert.Contains(t, out, "\033[1;31m")
	assert.Contains(t, out, "\033[1m")
}

func TestFormatLineOutOfRangeSkipsSourceBlock(t *testing.T) {
	e := New(KindSyntax, "boom").At(Position{Line: 99, Column: 1}).WithSource("x\n", "f")
	out := e.Format(false)
	assert.NotContains(t, out, "99 | ")
}

func TestFormatErrorsEmpty(t *testing.T) {
	assert.Equal(t, "", FormatErrors(nil, false))
}

func TestFormatErrorsSingleUsesBareFormat(t *testing.T) {
	e := New(KindSyntax, "oops")
	out := FormatErrors([]*CompilerError{e}, false)
	assert.Equal(t, e.Format(false), out)
}

func TestFormatErrorsMultipleNumbersEach(t *testing.T) {
	e1 := New(KindSyntax, "first")
	e2 := New(KindReference, "second")
	out := FormatErrors([]*CompilerError{e1, e2}, false)
	assert.Contains(t, out, "failed with 2 error(s)")
	assert.Contains(t, out, "[1 of 2]")
	assert.Contains(t, out, "[2 of 2]")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
