package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPrecision(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, DefaultWorkingDigits, ctx.WorkingDigits)
	assert.Equal(t, DefaultGuardDigits, ctx.GuardDigits)
	assert.Equal(t, DefaultWorkingDigits-DefaultGuardDigits, ctx.DisplayDigits())
}

func TestDisplayDigitsFloor(t *testing.T) {
	ctx := &Context{WorkingDigits: 3, GuardDigits: 10}
	assert.Equal(t, 1, ctx.DisplayDigits())
}

func TestContextsAreIndependent(t *testing.T) {
	a := NewContext()
	b := NewContext()
	a.WorkingDigits = 20

	assert.Equal(t, 20, a.WorkingDigits)
	assert.Equal(t, DefaultWorkingDigits, b.WorkingDigits)
}
