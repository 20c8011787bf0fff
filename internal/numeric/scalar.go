package numeric

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Class tags a Scalar as an ordinary decimal number or a logical
// (boolean) value; logical scalars carry only 0 or 1 in both
// components (spec §3.1).
type Class int

const (
	ClassDecimal Class = iota
	ClassLogical
)

// Scalar is an arbitrary-precision complex number: two
// shopspring/decimal components plus a class tag.
type Scalar struct {
	Re, Im decimal.Decimal
	Class  Class
}

// FromInt builds a real integer scalar.
func FromInt(n int64) Scalar { return Scalar{Re: decimal.New(n, 0)} }

// FromFloat builds a real scalar from a float64.
func FromFloat(f float64) Scalar { return Scalar{Re: decimal.NewFromFloat(f)} }

// FromDecimal builds a real scalar from a decimal value.
func FromDecimal(d decimal.Decimal) Scalar { return Scalar{Re: d} }

// FromBool builds a logical scalar.
func FromBool(b bool) Scalar {
	if b {
		return Scalar{Re: decOne, Class: ClassLogical}
	}
	return Scalar{Re: decZero, Class: ClassLogical}
}

// Complex builds a complex scalar from decimal parts.
func Complex(re, im decimal.Decimal) Scalar { return Scalar{Re: re, Im: im} }

// Zero, One and ImagUnit are convenience constants.
func Zero() Scalar     { return Scalar{} }
func One() Scalar      { return Scalar{Re: decOne} }
func ImagUnit() Scalar { return Scalar{Im: decOne} }

// IsReal reports whether the imaginary component is exactly zero.
func (s Scalar) IsReal() bool { return s.Im.IsZero() }

// IsLogical reports whether s carries the logical class tag.
func (s Scalar) IsLogical() bool { return s.Class == ClassLogical }

// Truthy implements the boolean projection used by `if` and logical
// operators: a scalar is true when it is non-zero (either component).
func (s Scalar) Truthy() bool { return !s.Re.IsZero() || !s.Im.IsZero() }

// AsIndex converts a real integral scalar to an int, used for
// subscripts and dimension arguments. ok is false for non-integral or
// non-real values.
func (s Scalar) AsIndex() (int, bool) {
	if !s.IsReal() {
		return 0, false
	}
	if !s.Re.Equal(s.Re.Truncate(0)) {
		return 0, false
	}
	bi := s.Re.BigInt()
	if !bi.IsInt64() {
		return 0, false
	}
	return int(bi.Int64()), true
}

// --- arithmetic ---

func (s Scalar) Add(ctx *Context, o Scalar) Scalar {
	return Scalar{Re: s.Re.Add(o.Re), Im: s.Im.Add(o.Im)}
}

func (s Scalar) Sub(ctx *Context, o Scalar) Scalar {
	return Scalar{Re: s.Re.Sub(o.Re), Im: s.Im.Sub(o.Im)}
}

func (s Scalar) Neg() Scalar { return Scalar{Re: s.Re.Neg(), Im: s.Im.Neg()} }

func (s Scalar) Mul(ctx *Context, o Scalar) Scalar {
	re := s.Re.Mul(o.Re).Sub(s.Im.Mul(o.Im))
	im := s.Re.Mul(o.Im).Add(s.Im.Mul(o.Re))
	return Scalar{Re: re, Im: im}
}

// Div is right division s/o. Division by zero yields signed infinity
// (represented as a very large magnitude decimal, see Inf); 0/0 yields
// NaN, matching spec §4.2.
func (s Scalar) Div(ctx *Context, o Scalar) Scalar {
	if o.Re.IsZero() && o.Im.IsZero() {
		if s.Re.IsZero() && s.Im.IsZero() {
			return NaN()
		}
		return Inf(s.Re.Sign()*1 + boolSign(s.Im.Sign() != 0 && s.Re.Sign() == 0))
	}
	if s.IsInf() {
		if o.IsInf() {
			return NaN()
		}
		return Inf(signOf(s))
	}
	if o.IsInf() {
		if s.IsNaN() {
			return NaN()
		}
		return Zero()
	}
	denom := o.Re.Mul(o.Re).Add(o.Im.Mul(o.Im))
	places := ctx.places()
	re := s.Re.Mul(o.Re).Add(s.Im.Mul(o.Im)).DivRound(denom, places)
	im := s.Im.Mul(o.Re).Sub(s.Re.Mul(o.Im)).DivRound(denom, places)
	return Scalar{Re: re, Im: im}
}

// LeftDiv is o\s = s/o with operands swapped, per spec's `.\ \` ops.
func (s Scalar) LeftDiv(ctx *Context, o Scalar) Scalar { return o.Div(ctx, s) }

func signOf(s Scalar) int {
	if s.Re.Sign() != 0 {
		return s.Re.Sign()
	}
	return s.Im.Sign()
}

func boolSign(b bool) int {
	if b {
		return 1
	}
	return 0
}

// --- unary ---

func (s Scalar) Conj() Scalar { return Scalar{Re: s.Re, Im: s.Im.Neg()} }

func (s Scalar) Abs(ctx *Context) decimal.Decimal {
	if s.IsInf() {
		return posInfSentinel
	}
	return realSqrt(ctx, s.Re.Mul(s.Re).Add(s.Im.Mul(s.Im)))
}

func (s Scalar) Arg(ctx *Context) decimal.Decimal {
	return realAtan2(ctx, s.Im, s.Re)
}

// Sign returns z/|z| (0 for the zero scalar), matching the kernel's
// complex Sign primitive.
func (s Scalar) Sign(ctx *Context) Scalar {
	if s.Re.IsZero() && s.Im.IsZero() {
		return Zero()
	}
	m := s.Abs(ctx)
	places := ctx.places()
	return Scalar{Re: s.Re.DivRound(m, places), Im: s.Im.DivRound(m, places)}
}

func (s Scalar) Floor() Scalar {
	return Scalar{Re: floorDecimal(s.Re), Im: floorDecimal(s.Im)}
}

func (s Scalar) Ceil() Scalar {
	return Scalar{Re: floorDecimal(s.Re.Neg()).Neg(), Im: floorDecimal(s.Im.Neg()).Neg()}
}

func (s Scalar) Fix() Scalar {
	return Scalar{Re: s.Re.Truncate(0), Im: s.Im.Truncate(0)}
}

// Round rounds each component to the nearest integer, half away from
// zero (the usual MATLAB ROUND convention).
func (s Scalar) Round() Scalar {
	return Scalar{Re: roundHalfAway(s.Re), Im: roundHalfAway(s.Im)}
}

func floorDecimal(d decimal.Decimal) decimal.Decimal {
	t := d.Truncate(0)
	if d.Sign() < 0 && !d.Equal(t) {
		return t.Sub(decOne)
	}
	return t
}

func roundHalfAway(d decimal.Decimal) decimal.Decimal {
	if d.Sign() >= 0 {
		return d.Add(decHalf).Truncate(0)
	}
	return d.Sub(decHalf).Truncate(0)
}

// --- equality / comparison ---

// roundDisplay rounds a decimal to the context's display precision
// (significant digits), used by Equal and polar comparisons.
func roundDisplay(ctx *Context, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	digits := int32(ctx.DisplayDigits())
	coeffLen := int32(len(d.Coefficient().String()))
	shift := digits - coeffLen
	places := -d.Exponent() + shift
	return d.Round(places)
}

// Equal compares two scalars at display precision (spec §4.2).
func (s Scalar) Equal(ctx *Context, o Scalar) bool {
	return roundDisplay(ctx, s.Re).Equal(roundDisplay(ctx, o.Re)) &&
		roundDisplay(ctx, s.Im).Equal(roundDisplay(ctx, o.Im))
}

// Compare implements the polar lexicographic order of spec §4.2: by
// absolute value first, ties broken by argument in (-pi, pi]. Real
// operands short-circuit to ordinary real ordering.
func Compare(ctx *Context, a, b Scalar) int {
	if a.IsReal() && b.IsReal() {
		ra, rb := roundDisplay(ctx, a.Re), roundDisplay(ctx, b.Re)
		return ra.Cmp(rb)
	}
	am, bm := roundDisplay(ctx, a.Abs(ctx)), roundDisplay(ctx, b.Abs(ctx))
	if c := am.Cmp(bm); c != 0 {
		return c
	}
	aa, ba := roundDisplay(ctx, a.Arg(ctx)), roundDisplay(ctx, b.Arg(ctx))
	return aa.Cmp(ba)
}

// --- special values ---

// posInfSentinel is used only as the magnitude returned by Abs() for
// an infinite scalar; it is never compared against directly.
var posInfSentinel = decimal.New(1, 1_000_000)

// infMarker/nanMarker mark a Scalar's Re field with an out-of-band
// coefficient so Inf/NaN survive ordinary decimal arithmetic without a
// separate "special value" field on every Scalar.
var (
	infMarker = big.NewInt(1)
	nanMarker = big.NewInt(2)
)

const specialExponent = 1 << 30

// Inf returns signed complex infinity; sign<0 gives -Inf.
func Inf(sign int) Scalar {
	coeff := infMarker
	if sign < 0 {
		coeff = new(big.Int).Neg(infMarker)
	}
	return Scalar{Re: decimal.NewFromBigInt(coeff, specialExponent)}
}

// NaN returns the NaN scalar.
func NaN() Scalar {
	return Scalar{Re: decimal.NewFromBigInt(nanMarker, specialExponent)}
}

func (s Scalar) IsInf() bool {
	return s.Re.Exponent() == specialExponent && s.Re.Coefficient().CmpAbs(infMarker) == 0
}

func (s Scalar) IsNaN() bool {
	return s.Re.Exponent() == specialExponent && s.Re.Coefficient().CmpAbs(nanMarker) == 0
}

func (s Scalar) String() string {
	if s.IsNaN() {
		return "NaN"
	}
	if s.IsInf() {
		if s.Re.Sign() < 0 {
			return "-Inf"
		}
		return "Inf"
	}
	if s.IsReal() {
		return s.Re.String()
	}
	im := s.Im.String()
	if s.Im.Sign() > 0 {
		im = "+" + im
	}
	return fmt.Sprintf("%s%si", s.Re.String(), im)
}
