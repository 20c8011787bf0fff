package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	ctx := NewContext()

	a := FromInt(2)
	b := FromInt(3)

	assert.True(t, a.Add(ctx, b).Equal(ctx, FromInt(5)))
	assert.True(t, a.Sub(ctx, b).Equal(ctx, FromInt(-1)))
	assert.True(t, a.Mul(ctx, b).Equal(ctx, FromInt(6)))
	assert.True(t, b.Div(ctx, a).Equal(ctx, FromDecimal(decimal.New(15, -1))))
}

func TestComplexArithmetic(t *testing.T) {
	ctx := NewContext()
	i := ImagUnit()

	// i*i == -1
	assert.True(t, i.Mul(ctx, i).Equal(ctx, FromInt(-1)))

	// (2+3i) + (1-1i) == 3+2i
	z1 := Complex(decimal.New(2, 0), decimal.New(3, 0))
	z2 := Complex(decimal.New(1, 0), decimal.New(-1, 0))
	want := Complex(decimal.New(3, 0), decimal.New(2, 0))
	assert.True(t, z1.Add(ctx, z2).Equal(ctx, want))
}

func TestDivisionByZero(t *testing.T) {
	ctx := NewContext()

	zero := Zero()
	one := FromInt(1)

	got := one.Div(ctx, zero)
	assert.True(t, got.IsInf())

	got = zero.Div(ctx, zero)
	assert.True(t, got.IsNaN())

	neg := FromInt(-1)
	got = neg.Div(ctx, zero)
	assert.True(t, got.IsInf())
	assert.True(t, got.Re.Sign() < 0)
}

func TestConjAbsSign(t *testing.T) {
	ctx := NewContext()
	z := Complex(decimal.New(3, 0), decimal.New(4, 0))

	conj := z.Conj()
	assert.True(t, conj.Re.Equal(decimal.New(3, 0)))
	assert.True(t, conj.Im.Equal(decimal.New(-4, 0)))

	abs := z.Abs(ctx)
	assert.True(t, abs.Sub(decimal.New(5, 0)).Abs().LessThan(decimal.New(1, -10)))

	sign := z.Sign(ctx)
	assert.True(t, sign.Abs(ctx).Sub(decimal.New(1, 0)).Abs().LessThan(decimal.New(1, -10)))
}

func TestFloorCeilFixRound(t *testing.T) {
	half := FromDecimal(decimal.New(5, -1))  // 0.5
	nhalf := FromDecimal(decimal.New(-5, -1)) // -0.5

	assert.True(t, half.Round().Re.Equal(decimal.New(1, 0)))
	assert.True(t, nhalf.Round().Re.Equal(decimal.New(-1, 0)))

	neg := FromDecimal(decimal.New(-15, -1)) // -1.5
	assert.True(t, neg.Floor().Re.Equal(decimal.New(-2, 0)))
	assert.True(t, neg.Ceil().Re.Equal(decimal.New(-1, 0)))
	assert.True(t, neg.Fix().Re.Equal(decimal.New(-1, 0)))
}

func TestPolarCompareRealShortcut(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, -1, Compare(ctx, FromInt(1), FromInt(2)))
	assert.Equal(t, 1, Compare(ctx, FromInt(3), FromInt(2)))
	assert.Equal(t, 0, Compare(ctx, FromInt(2), FromInt(2)))
}

func TestPolarCompareByMagnitudeThenArgument(t *testing.T) {
	ctx := NewContext()
	// Same magnitude (5), different argument: i*3+4 vs -3+4i (both abs 5).
	a := Complex(decimal.New(4, 0), decimal.New(3, 0))
	b := Complex(decimal.New(-3, 0), decimal.New(4, 0))
	assert.NotEqual(t, 0, Compare(ctx, a, b))

	// Smaller magnitude sorts first regardless of argument.
	small := Complex(decimal.New(1, 0), decimal.New(0, 0))
	big := Complex(decimal.New(0, 0), decimal.New(10, 0))
	assert.Equal(t, -1, Compare(ctx, small, big))
}

func TestAsIndex(t *testing.T) {
	n, ok := FromInt(3).AsIndex()
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = FromFloat(3.5).AsIndex()
	assert.False(t, ok)

	_, ok = ImagUnit().AsIndex()
	assert.False(t, ok)
}

func TestFactorial(t *testing.T) {
	ctx := NewContext()

	f, err := Factorial(ctx, FromInt(5))
	require.NoError(t, err)
	assert.True(t, f.Equal(ctx, FromInt(120)))

	f, err = Factorial(ctx, FromInt(0))
	require.NoError(t, err)
	assert.True(t, f.Equal(ctx, FromInt(1)))

	_, err = Factorial(ctx, FromInt(-1))
	assert.Error(t, err)

	_, err = Factorial(ctx, FromFloat(1.5))
	assert.Error(t, err)
}

func TestGammaIntegerMatchesFactorial(t *testing.T) {
	ctx := NewContext()
	// Gamma(6) == 5! == 120
	g := Gamma(ctx, FromInt(6))
	assert.True(t, g.Sub(ctx, FromInt(120)).Abs(ctx).LessThan(decimal.New(1, -20)))
}

func TestTranscendentalRoundTrip(t *testing.T) {
	ctx := NewContext()
	z := Complex(decimal.New(2, 0), decimal.New(1, -1))

	// exp(log(z)) == z
	got := Exp(ctx, Log(ctx, z))
	assert.True(t, got.Sub(ctx, z).Abs(ctx).LessThan(decimal.New(1, -300)))

	// sqrt(z)^2 == z
	sq := Sqrt(ctx, z)
	squared := sq.Mul(ctx, sq)
	assert.True(t, squared.Sub(ctx, z).Abs(ctx).LessThan(decimal.New(1, -300)))
}

func TestSinCosIdentity(t *testing.T) {
	ctx := NewContext()
	z := FromDecimal(decimal.New(12, -1))

	s := Sin(ctx, z)
	c := Cos(ctx, z)
	// sin^2 + cos^2 == 1
	sum := s.Mul(ctx, s).Add(ctx, c.Mul(ctx, c))
	assert.True(t, sum.Sub(ctx, One()).Abs(ctx).LessThan(decimal.New(1, -300)))
}

func TestInfNaNString(t *testing.T) {
	assert.Equal(t, "Inf", Inf(1).String())
	assert.Equal(t, "-Inf", Inf(-1).String())
	assert.Equal(t, "NaN", NaN().String())
	assert.Equal(t, "2", FromInt(2).String())
}

func TestLogicalClass(t *testing.T) {
	b := FromBool(true)
	assert.True(t, b.IsLogical())
	assert.True(t, b.Truthy())

	b = FromBool(false)
	assert.True(t, b.IsLogical())
	assert.False(t, b.Truthy())
}
