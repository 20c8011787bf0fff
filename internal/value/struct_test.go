package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructFieldOrderPreservedOnInsert(t *testing.T) {
	s := NewStruct()
	s.Set("b", sc(2))
	s.Set("a", sc(1))
	s.Set("b", sc(22)) // overwrite, should not move position

	assert.Equal(t, []string{"b", "a"}, s.Fields())

	v, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "22", v.String())
}

func TestStructSortedFields(t *testing.T) {
	s := NewStruct()
	s.Set("z", sc(1))
	s.Set("a", sc(2))
	assert.Equal(t, []string{"a", "z"}, s.SortedFields())
}

func TestStructRemove(t *testing.T) {
	s := NewStruct()
	s.Set("a", sc(1))
	s.Set("b", sc(2))
	s.Remove("a")

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, s.Fields())
}

func TestStructCloneIsIndependent(t *testing.T) {
	s := NewStruct()
	s.Set("a", sc(1))
	clone := s.Clone().(*Struct)
	clone.Set("a", sc(99))

	v, _ := s.Get("a")
	assert.Equal(t, "1", v.String())
	cv, _ := clone.Get("a")
	assert.Equal(t, "99", cv.String())
}

func TestStructString(t *testing.T) {
	s := NewStruct()
	s.Set("a", sc(1))
	s.Set("b", sc(2))
	assert.Equal(t, "struct(a = 1; b = 2)", s.String())
}
