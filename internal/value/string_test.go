package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringTruthy(t *testing.T) {
	assert.False(t, NewString("", false).Truthy())
	assert.True(t, NewString("hi", false).Truthy())
	assert.False(t, String{Runes: []rune{'a', 0, 'b'}}.Truthy())
}

func TestStringAsArrayShape(t *testing.T) {
	s := NewString("hi", true)
	a := StringAsArray(s)
	assert.Equal(t, []int{1, 2}, a.Dims)
	assert.Equal(t, ElemString, a.Class)
	assert.Equal(t, "h", a.Data[0].String())
	assert.Equal(t, "i", a.Data[1].String())
}

func TestStringAsArrayEmpty(t *testing.T) {
	a := StringAsArray(NewString("", false))
	assert.Equal(t, []int{0, 0}, a.Dims)
}

func TestScalarTruthy(t *testing.T) {
	assert.False(t, sc(0).Truthy())
	assert.True(t, sc(1).Truthy())
}
