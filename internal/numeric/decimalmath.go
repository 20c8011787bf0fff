package numeric

import "github.com/shopspring/decimal"

var (
	decZero  = decimal.Zero
	decOne   = decimal.New(1, 0)
	decTwo   = decimal.New(2, 0)
	decHalf  = decimal.New(5, -1)
	decMaxIter = 100000
)

// realSqrt computes sqrt(x) for x >= 0 via Newton's method. x == 0
// returns 0 without iterating.
func realSqrt(ctx *Context, x decimal.Decimal) decimal.Decimal {
	if x.Sign() == 0 {
		return decZero
	}
	places := ctx.places()
	guess, _ := decimal.NewFromFloat(1), 0
	if f, ok := x.Float64(); ok && f > 0 {
		guess = decimal.NewFromFloat(sqrtFloat(f))
	} else {
		guess = x
	}
	thresh := ctx.threshold()
	for i := 0; i < decMaxIter; i++ {
		// next = (guess + x/guess) / 2
		quot := x.DivRound(guess, places)
		next := guess.Add(quot).DivRound(decTwo, places)
		diff := next.Sub(guess).Abs()
		guess = next
		if diff.LessThan(thresh) {
			break
		}
	}
	return guess
}

// sqrtFloat is a tiny float64 Newton seed helper; precision doesn't
// matter here, it only bootstraps the decimal Newton iteration above.
func sqrtFloat(f float64) float64 {
	if f == 0 {
		return 0
	}
	z := f
	for i := 0; i < 40; i++ {
		z = z - (z*z-f)/(2*z)
	}
	return z
}

// realAtan computes atan(x) for any real x using the tangent
// half-angle reduction (atan(x) = 2*atan(x/(1+sqrt(1+x^2)))) to bring
// the argument close to 0, then a Taylor series.
func realAtan(ctx *Context, x decimal.Decimal) decimal.Decimal {
	places := ctx.places()
	thresh := ctx.threshold()

	neg := x.Sign() < 0
	if neg {
		x = x.Neg()
	}

	doublings := 0
	for x.GreaterThan(decimal.New(25, -2)) && doublings < 200 { // > 0.25
		denom := decOne.Add(realSqrt(ctx, decOne.Add(x.Mul(x)))) // 1 + sqrt(1+x^2)
		x = x.DivRound(denom, places)
		doublings++
	}

	// Taylor: atan(x) = x - x^3/3 + x^5/5 - ...
	term := x
	sum := x
	x2 := x.Mul(x)
	sign := -1
	for n := 3; n < decMaxIter; n += 2 {
		term = term.Mul(x2)
		contrib := term.DivRound(decimal.New(int64(n), 0), places)
		if sign < 0 {
			sum = sum.Sub(contrib)
		} else {
			sum = sum.Add(contrib)
		}
		sign = -sign
		if contrib.Abs().LessThan(thresh) {
			break
		}
	}

	for i := 0; i < doublings; i++ {
		sum = sum.Mul(decTwo)
	}
	if neg {
		sum = sum.Neg()
	}
	return sum
}

// Pi computes pi to the context's working precision using Machin's
// formula: pi = 16*atan(1/5) - 4*atan(1/239). This avoids any
// hardcoded-digit constant, so precision scales with ctx.WorkingDigits.
func Pi(ctx *Context) decimal.Decimal {
	places := ctx.places()
	a := realAtan(ctx, decOne.DivRound(decimal.New(5, 0), places))
	b := realAtan(ctx, decOne.DivRound(decimal.New(239, 0), places))
	return a.Mul(decimal.New(16, 0)).Sub(b.Mul(decimal.New(4, 0)))
}

// realExp computes e^x via range reduction (halving x until small)
// followed by a Taylor series, then repeated squaring.
func realExp(ctx *Context, x decimal.Decimal) decimal.Decimal {
	places := ctx.places()
	thresh := ctx.threshold()

	neg := x.Sign() < 0
	if neg {
		x = x.Neg()
	}

	halvings := 0
	for x.GreaterThan(decHalf) && halvings < 400 {
		x = x.DivRound(decTwo, places)
		halvings++
	}

	// Taylor: exp(x) = sum x^n/n!
	term := decOne
	sum := decOne
	for n := 1; n < decMaxIter; n++ {
		term = term.Mul(x).DivRound(decimal.New(int64(n), 0), places)
		sum = sum.Add(term)
		if term.Abs().LessThan(thresh) {
			break
		}
	}

	for i := 0; i < halvings; i++ {
		sum = sum.Mul(sum)
	}

	if neg {
		return decOne.DivRound(sum, places)
	}
	return sum
}

// realLn computes ln(x) for x > 0. It repeatedly takes square roots to
// bring the argument near 1 (where the atanh-style series converges
// fast), then undoes the reduction by scaling the result.
func realLn(ctx *Context, x decimal.Decimal) decimal.Decimal {
	if x.Equal(decOne) {
		return decZero
	}
	places := ctx.places()
	thresh := ctx.threshold()

	halvings := 0
	for (x.GreaterThan(decimal.New(11, -1)) || x.LessThan(decimal.New(9, -1))) && halvings < 400 {
		x = realSqrt(ctx, x)
		halvings++
	}

	// ln(x) = 2*atanh((x-1)/(x+1)) = 2*sum u^(2k+1)/(2k+1), u=(x-1)/(x+1)
	u := x.Sub(decOne).DivRound(x.Add(decOne), places)
	u2 := u.Mul(u)
	term := u
	sum := u
	for n := 3; n < decMaxIter; n += 2 {
		term = term.Mul(u2)
		contrib := term.DivRound(decimal.New(int64(n), 0), places)
		sum = sum.Add(contrib)
		if contrib.Abs().LessThan(thresh) {
			break
		}
	}
	sum = sum.Mul(decTwo)

	scale := decOne
	for i := 0; i < halvings; i++ {
		scale = scale.Mul(decTwo)
	}
	return sum.Mul(scale)
}

// realSinCos returns (sin x, cos x) for any real x, reducing modulo
// 2*pi before summing the Taylor series.
func realSinCos(ctx *Context, x decimal.Decimal) (sinX, cosX decimal.Decimal) {
	places := ctx.places()
	thresh := ctx.threshold()
	pi := Pi(ctx)
	twoPi := pi.Mul(decTwo)

	// Reduce x into (-pi, pi].
	if !twoPi.IsZero() {
		k := x.DivRound(twoPi, places)
		kInt := k.Round(0)
		x = x.Sub(kInt.Mul(twoPi))
		for x.GreaterThan(pi) {
			x = x.Sub(twoPi)
		}
		for x.LessThan(pi.Neg()) {
			x = x.Add(twoPi)
		}
	}

	x2 := x.Mul(x)

	sinTerm := x
	sinSum := x
	for n := 3; n < decMaxIter; n += 2 {
		sinTerm = sinTerm.Mul(x2).Neg().DivRound(decimal.New(int64(n*(n-1)), 0), places)
		sinSum = sinSum.Add(sinTerm)
		if sinTerm.Abs().LessThan(thresh) {
			break
		}
	}

	cosTerm := decOne
	cosSum := decOne
	for n := 2; n < decMaxIter; n += 2 {
		cosTerm = cosTerm.Mul(x2).Neg().DivRound(decimal.New(int64(n*(n-1)), 0), places)
		cosSum = cosSum.Add(cosTerm)
		if cosTerm.Abs().LessThan(thresh) {
			break
		}
	}

	return sinSum, cosSum
}

// realAtan2 mirrors math.Atan2 using realAtan as its primitive.
func realAtan2(ctx *Context, y, x decimal.Decimal) decimal.Decimal {
	pi := Pi(ctx)
	switch {
	case x.Sign() > 0:
		return realAtan(ctx, y.DivRound(x, ctx.places()))
	case x.Sign() < 0 && y.Sign() >= 0:
		return realAtan(ctx, y.DivRound(x, ctx.places())).Add(pi)
	case x.Sign() < 0 && y.Sign() < 0:
		return realAtan(ctx, y.DivRound(x, ctx.places())).Sub(pi)
	case x.Sign() == 0 && y.Sign() > 0:
		return pi.DivRound(decTwo, ctx.places())
	case x.Sign() == 0 && y.Sign() < 0:
		return pi.DivRound(decTwo, ctx.places()).Neg()
	default:
		return decZero
	}
}
