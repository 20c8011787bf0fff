package eval

import (
	"github.com/numl-lang/numl/internal/numeric"
	"github.com/shopspring/decimal"
)

// parseScalarLiteral converts a lexed numeric literal (already
// stripped of its trailing i/j suffix by the front end, with
// Imaginary recording whether it had one) into a numeric.Scalar.
func parseScalarLiteral(text string, imaginary bool) (numeric.Scalar, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return numeric.Scalar{}, err
	}
	if imaginary {
		return numeric.Complex(decimal.Zero, d), nil
	}
	return numeric.FromDecimal(d), nil
}
