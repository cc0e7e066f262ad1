package billing

import (
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// All money and ratio arithmetic in this package goes through
// shopspring/decimal. Native floats only appear at the package boundary
// (config values, JSON payloads) and are converted exactly once.

var (
	ErrDivideByZero = errors.New("divide by zero")
	ErrInvalidRatio = errors.New("invalid ratio")

	decimalOne     = decimal.NewFromInt(1)
	decimalMillion = decimal.NewFromInt(1_000_000)
)

// Div returns a/b, failing with ErrDivideByZero on a zero divisor.
// Callers are expected to guard the zero case themselves; this is the
// backstop, never a control-flow mechanism.
func Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}
	return a.Div(b), nil
}

// RoundPlaces rounds half away from zero to the given number of decimal
// places. All inputs here are non-negative, so this is plain half-up.
func RoundPlaces(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// FormatTrimmed renders d with at most the given decimal places and the
// trailing zeros removed. Display only: the authoritative value is always
// the decimal itself, never the formatted string.
func FormatTrimmed(d decimal.Decimal, places int32) string {
	return d.Round(places).String()
}

// ratioFromFloat converts a caller-supplied ratio into a decimal, rejecting
// negative and non-finite values. decimal.NewFromFloat panics on NaN/Inf,
// so the check has to happen here.
func ratioFromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, errors.Wrapf(ErrInvalidRatio, "non-finite ratio %v", v)
	}
	if v < 0 {
		return decimal.Zero, errors.Wrapf(ErrInvalidRatio, "negative ratio %v", v)
	}
	return decimal.NewFromFloat(v), nil
}
