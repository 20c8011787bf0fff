// Package numeric implements the arbitrary-precision complex scalar
// kernel described in spec §4.2: two shopspring/decimal components
// (real and imaginary) carried at a working precision, truncated to a
// display precision for comparison and rendering.
//
// The precision/rounding configuration lives on Context rather than on
// a package-level global (Design Notes §9: "the precision/rounding
// configuration should be instance-scoped... so two evaluators may
// coexist"), so two interpreter instances never fight over shared
// decimal package state.
package numeric

import "github.com/shopspring/decimal"

// Context carries the working precision for a single evaluator
// instance. All transcendental and division operations are threaded
// through a *Context rather than relying on decimal.DivisionPrecision.
type Context struct {
	// WorkingDigits is the number of significant decimal digits
	// carried through arithmetic (default 336).
	WorkingDigits int
	// GuardDigits is subtracted from WorkingDigits to produce the
	// display/comparison precision, absorbing transcendental rounding
	// error (default 7, per spec §4.2).
	GuardDigits int
	// SciLower/SciUpper are the magnitude boundaries outside which the
	// text unparser renders in scientific notation.
	SciLower, SciUpper decimal.Decimal
}

// DefaultWorkingDigits and DefaultGuardDigits match spec §4.2.
const (
	DefaultWorkingDigits = 336
	DefaultGuardDigits   = 7
)

// NewContext builds a Context at the default working precision.
func NewContext() *Context {
	return &Context{
		WorkingDigits: DefaultWorkingDigits,
		GuardDigits:   DefaultGuardDigits,
		SciLower:      decimal.New(1, -7),
		SciUpper:      decimal.New(1, 20),
	}
}

// DisplayDigits returns the comparison/rendering precision.
func (c *Context) DisplayDigits() int {
	d := c.WorkingDigits - c.GuardDigits
	if d < 1 {
		d = 1
	}
	return d
}

// threshold returns 10^-(WorkingDigits+GuardDigits), the Taylor-series
// convergence cutoff used throughout decimalmath.go.
func (c *Context) threshold() decimal.Decimal {
	return decimal.New(1, -int32(c.WorkingDigits+c.GuardDigits))
}

// places returns a generous per-operation decimal-places budget for
// DivRound calls: enough to carry WorkingDigits significant digits
// even when the quotient's integer part is large.
func (c *Context) places() int32 {
	return int32(c.WorkingDigits) + 16
}
