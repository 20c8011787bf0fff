package numeric

import (
	"github.com/numl-lang/numl/internal/errors"
	"github.com/shopspring/decimal"
)

// lanczosG and lanczosCoeff are the standard g=7, n=9 Lanczos
// approximation coefficients for the gamma function.
var lanczosCoeff = []float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}

const lanczosG = 7.0

// Gamma returns the exact product (n-1)! for a positive integer
// argument n. Any other complex argument gets the Lanczos approximation
// to the gamma function, reflecting into the convergent half-plane via
// Gamma(z) = pi / (sin(pi*z) * Gamma(1-z)) when Re(z) < 0.5.
func Gamma(ctx *Context, z Scalar) Scalar {
	if n, ok := z.AsIndex(); ok && n >= 1 {
		r := One()
		for k := 2; k < n; k++ {
			r = r.Mul(ctx, FromInt(int64(k)))
		}
		return r
	}
	half := decimal.New(5, -1)
	if z.Re.LessThan(half) {
		pi := Pi(ctx)
		piZ := FromDecimal(pi).Mul(ctx, z)
		oneMinusZ := One().Sub(ctx, z)
		return FromDecimal(pi).Div(ctx, Sin(ctx, piZ).Mul(ctx, Gamma(ctx, oneMinusZ)))
	}

	x := z.Sub(ctx, One())
	a := FromFloat(lanczosCoeff[0])
	for i := 1; i < len(lanczosCoeff); i++ {
		denom := x.Add(ctx, FromInt(int64(i)))
		a = a.Add(ctx, FromFloat(lanczosCoeff[i]).Div(ctx, denom))
	}

	t := x.Add(ctx, FromFloat(lanczosG+0.5))
	sqrt2pi := FromDecimal(realSqrt(ctx, Pi(ctx).Mul(decTwo)))

	exponent := x.Add(ctx, FromFloat(0.5))
	tPow := Pow(ctx, t, exponent)
	expNegT := Exp(ctx, t.Neg())

	return sqrt2pi.Mul(ctx, tPow).Mul(ctx, expNegT).Mul(ctx, a)
}

// Factorial is Gamma(n+1) restricted to non-negative integers (spec
// §4.2); other inputs raise an arithmetic-domain error.
func Factorial(ctx *Context, z Scalar) (Scalar, error) {
	n, ok := z.AsIndex()
	if !ok || n < 0 {
		return Scalar{}, errors.New(errors.KindArithmetic, "factorial: argument must be a non-negative integer")
	}
	return Gamma(ctx, FromInt(int64(n+1))), nil
}
