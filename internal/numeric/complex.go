package numeric

import "github.com/shopspring/decimal"

// Sqrt returns the principal square root: polar form
// sqrt(r)*(cos(theta/2) + i*sin(theta/2)).
func Sqrt(ctx *Context, z Scalar) Scalar {
	if z.Re.IsZero() && z.Im.IsZero() {
		return Zero()
	}
	r := realSqrt(ctx, z.Abs(ctx))
	theta := z.Arg(ctx).DivRound(decTwo, ctx.places())
	sinT, cosT := realSinCos(ctx, theta)
	return Scalar{Re: r.Mul(cosT), Im: r.Mul(sinT)}
}

// Exp is the complex exponential exp(a+bi) = exp(a)*(cos b + i sin b).
func Exp(ctx *Context, z Scalar) Scalar {
	mag := realExp(ctx, z.Re)
	sinB, cosB := realSinCos(ctx, z.Im)
	return Scalar{Re: mag.Mul(cosB), Im: mag.Mul(sinB)}
}

// Log is the principal branch: ln|z| + i*arg(z). Log(0) is treated as
// negative infinity with zero imaginary part.
func Log(ctx *Context, z Scalar) Scalar {
	if z.Re.IsZero() && z.Im.IsZero() {
		return Scalar{Re: Inf(-1).Re}
	}
	return Scalar{Re: realLn(ctx, z.Abs(ctx)), Im: z.Arg(ctx)}
}

// Log10 and LogB are defined in terms of Log per spec §4.2.
func Log10(ctx *Context, z Scalar) Scalar {
	ln10 := realLn(ctx, decimal.New(10, 0))
	l := Log(ctx, z)
	return Scalar{Re: l.Re.DivRound(ln10, ctx.places()), Im: l.Im.DivRound(ln10, ctx.places())}
}

func LogB(ctx *Context, z, base Scalar) Scalar {
	return Log(ctx, z).Div(ctx, Log(ctx, base))
}

// Pow is the complex principal branch exp(y*log(x)), with a real
// shortcut when x is real and non-negative and y is real, avoiding the
// branch cut entirely (spec §4.2).
func Pow(ctx *Context, x, y Scalar) Scalar {
	if x.IsReal() && y.IsReal() && x.Re.Sign() >= 0 {
		if x.Re.IsZero() {
			if y.Re.Sign() > 0 {
				return Zero()
			}
			if y.Re.IsZero() {
				return One()
			}
			return Inf(1)
		}
		return FromDecimal(realExp(ctx, y.Re.Mul(realLn(ctx, x.Re))))
	}
	if x.Re.IsZero() && x.Im.IsZero() {
		return Zero()
	}
	return Exp(ctx, y.Mul(ctx, Log(ctx, x)))
}

var (
	iUnit  = ImagUnit()
	negI   = ImagUnit().Neg()
	half   = Scalar{Re: decHalf}
	twoSc  = Scalar{Re: decTwo}
)

// Sin, Cos, Tan are derived from the complex exponential, the standard
// way arbitrary-precision libraries extend a small set of numeric
// primitives to the full trigonometric family.
func Sin(ctx *Context, z Scalar) Scalar {
	iz := iUnit.Mul(ctx, z)
	num := Exp(ctx, iz).Sub(ctx, Exp(ctx, iz.Neg()))
	return num.Div(ctx, Scalar{Im: decTwo})
}

func Cos(ctx *Context, z Scalar) Scalar {
	iz := iUnit.Mul(ctx, z)
	num := Exp(ctx, iz).Add(ctx, Exp(ctx, iz.Neg()))
	return num.Div(ctx, twoSc)
}

func Tan(ctx *Context, z Scalar) Scalar { return Sin(ctx, z).Div(ctx, Cos(ctx, z)) }

func Sinh(ctx *Context, z Scalar) Scalar {
	return Exp(ctx, z).Sub(ctx, Exp(ctx, z.Neg())).Div(ctx, twoSc)
}

func Cosh(ctx *Context, z Scalar) Scalar {
	return Exp(ctx, z).Add(ctx, Exp(ctx, z.Neg())).Div(ctx, twoSc)
}

func Tanh(ctx *Context, z Scalar) Scalar { return Sinh(ctx, z).Div(ctx, Cosh(ctx, z)) }

// Asin, Acos, Atan and their hyperbolic counterparts are derived via
// the standard logarithmic identities rather than independent series.
func Asin(ctx *Context, z Scalar) Scalar {
	inner := iUnit.Mul(ctx, z).Add(ctx, Sqrt(ctx, One().Sub(ctx, z.Mul(ctx, z))))
	return negI.Mul(ctx, Log(ctx, inner))
}

func Acos(ctx *Context, z Scalar) Scalar {
	inner := z.Add(ctx, iUnit.Mul(ctx, Sqrt(ctx, One().Sub(ctx, z.Mul(ctx, z)))))
	return negI.Mul(ctx, Log(ctx, inner))
}

func Atan(ctx *Context, z Scalar) Scalar {
	num := One().Sub(ctx, iUnit.Mul(ctx, z))
	den := One().Add(ctx, iUnit.Mul(ctx, z))
	return half.Mul(ctx, iUnit).Mul(ctx, Log(ctx, num.Div(ctx, den)))
}

func Asinh(ctx *Context, z Scalar) Scalar {
	return Log(ctx, z.Add(ctx, Sqrt(ctx, z.Mul(ctx, z).Add(ctx, One()))))
}

func Acosh(ctx *Context, z Scalar) Scalar {
	return Log(ctx, z.Add(ctx, Sqrt(ctx, z.Add(ctx, One())).Mul(ctx, Sqrt(ctx, z.Sub(ctx, One())))))
}

func Atanh(ctx *Context, z Scalar) Scalar {
	num := One().Add(ctx, z)
	den := One().Sub(ctx, z)
	return half.Mul(ctx, Log(ctx, num.Div(ctx, den)))
}
