// Package num is the exact decimal model used by every indicator.
//
// Values are github.com/shopspring/decimal decimals. Addition, subtraction and
// multiplication are exact; operations that may not terminate (division,
// square root) are rounded to Precision fractional digits.
package num

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Decimal is an immutable arbitrary-precision decimal number.
type Decimal = decimal.Decimal

// Precision is the number of fractional digits kept by Div, Sqrt and Round
// steps inside recursive averages.
const Precision int32 = 20

var ErrNegativeSqrt = errors.New("square root of negative number")

var (
	Zero    = decimal.Zero
	One     = decimal.NewFromInt(1)
	Two     = decimal.NewFromInt(2)
	Hundred = decimal.NewFromInt(100)
)

// New returns the decimal for an integer.
func New(v int64) Decimal {
	return decimal.NewFromInt(v)
}

// Parse converts a numeric string such as "1.0851" or "-3e2".
func Parse(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts a float64 using its shortest decimal representation.
func FromFloat(f float64) Decimal {
	return decimal.NewFromFloat(f)
}

// Div divides a by b rounding to Precision digits. It panics when b is zero;
// callers with a dynamic denominator should use DivOr.
func Div(a, b Decimal) Decimal {
	return a.DivRound(b, Precision)
}

// DivOr divides a by b, returning fallback when b is exactly zero.
func DivOr(a, b, fallback Decimal) Decimal {
	if b.IsZero() {
		return fallback
	}
	return Div(a, b)
}

// Round rounds d to the given number of fractional digits (half away from zero).
func Round(d Decimal, places int32) Decimal {
	return d.Round(places)
}

// Pow raises d to an integer power. Non-negative exponents are exact.
func Pow(d Decimal, n int) Decimal {
	if n < 0 {
		return Div(One, Pow(d, -n))
	}
	result := One
	for i := 0; i < n; i++ {
		result = result.Mul(d)
	}
	return result
}

// Sqrt computes the square root of d to Precision digits using Newton's method.
func Sqrt(d Decimal) (Decimal, error) {
	if d.IsNegative() {
		return Zero, fmt.Errorf("%w: %s", ErrNegativeSqrt, d)
	}
	if d.IsZero() {
		return Zero, nil
	}

	work := Precision + 4
	x := seed(d)
	for i := 0; i < 100; i++ {
		next := x.Add(d.DivRound(x, work)).DivRound(Two, work)
		if next.Equal(x) || next.IsZero() {
			x = next
			break
		}
		x = next
	}
	return x.Round(Precision), nil
}

// seed is the Newton start value. Magnitudes outside float64 range start from
// 10^(digits/2) instead.
func seed(d Decimal) Decimal {
	f := math.Sqrt(d.InexactFloat64())
	if f == 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.New(1, (d.Exponent()+int32(d.NumDigits()))/2)
	}
	return decimal.NewFromFloat(f)
}

func Abs(d Decimal) Decimal { return d.Abs() }
func Neg(d Decimal) Decimal { return d.Neg() }

func IsZero(d Decimal) bool { return d.IsZero() }

func LT(a, b Decimal) bool  { return a.LessThan(b) }
func LTE(a, b Decimal) bool { return a.LessThanOrEqual(b) }
func GT(a, b Decimal) bool  { return a.GreaterThan(b) }
func GTE(a, b Decimal) bool { return a.GreaterThanOrEqual(b) }
func EQ(a, b Decimal) bool  { return a.Equal(b) }

// Max returns the largest of its arguments.
func Max(first Decimal, rest ...Decimal) Decimal {
	m := first
	for _, d := range rest {
		if d.GreaterThan(m) {
			m = d
		}
	}
	return m
}

// Min returns the smallest of its arguments.
func Min(first Decimal, rest ...Decimal) Decimal {
	m := first
	for _, d := range rest {
		if d.LessThan(m) {
			m = d
		}
	}
	return m
}

// Sum adds values exactly.
func Sum(values []Decimal) Decimal {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Mean is the arithmetic mean of values, zero for an empty slice.
func Mean(values []Decimal) Decimal {
	return DivOr(Sum(values), New(int64(len(values))), Zero)
}
