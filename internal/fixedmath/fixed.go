// Package fixedmath implements Q20.12 fixed-point arithmetic and CORDIC
// trigonometry, suitable for a microcontroller with no FPU.
package fixedmath

import "math"

// FracBits is the number of fractional bits in the Q20.12 representation.
const FracBits = 12

// Fixed is a signed Q20.12 fixed-point scalar backed by int32. Arithmetic
// wraps on overflow rather than saturating; callers (Geometry, in
// particular) are responsible for keeping inputs within the representable
// range.
type Fixed int32

const (
	One     Fixed = 1 << FracBits
	Zero    Fixed = 0
	HalfOne Fixed = One / 2
)

// FromInt converts a plain integer to Fixed.
func FromInt(v int32) Fixed {
	return Fixed(v << FracBits)
}

// Int rounds down (toward negative infinity) to a plain integer.
func (f Fixed) Int() int32 {
	return int32(f) >> FracBits
}

// FromFloat64 converts a float64 to Fixed. Used only at configuration/test
// time (constants, calibration tables, test oracles), never inside the
// on-device geometry or motion hot path.
func FromFloat64(v float64) Fixed {
	return Fixed(math.Round(v * float64(One)))
}

// Float64 converts back to float64, for logging, tests and host-side
// diagnostics.
func (f Fixed) Float64() float64 {
	return float64(f) / float64(One)
}

func (f Fixed) Add(g Fixed) Fixed { return f + g }
func (f Fixed) Sub(g Fixed) Fixed { return f - g }
func (f Fixed) Neg() Fixed        { return -f }

func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Mul multiplies two Q20.12 values via int64 to avoid intermediate overflow.
func (f Fixed) Mul(g Fixed) Fixed {
	return Fixed((int64(f) * int64(g)) >> FracBits)
}

// Div divides two Q20.12 values via int64. Division by zero panics, same as
// plain integer division; callers in Geometry never divide by a
// zero-length link or zero coordinate.
func (f Fixed) Div(g Fixed) Fixed {
	return Fixed((int64(f) << FracBits) / int64(g))
}

func (f Fixed) Clamp(lo, hi Fixed) Fixed {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

func (f Fixed) LessThan(g Fixed) bool    { return f < g }
func (f Fixed) GreaterThan(g Fixed) bool { return f > g }

// Angle wraps a Fixed value interpreted as degrees. No normalization is
// applied on construction or arithmetic; callers own the range.
type Angle struct {
	Deg Fixed
}

func FromDegrees(deg Fixed) Angle { return Angle{Deg: deg} }

func FromRadians(rad Fixed) Angle {
	return Angle{Deg: rad.Mul(radToDeg)}
}

func (a Angle) Radians() Fixed {
	return Fixed((int64(a.Deg) * int64(Pi)) / (180 << FracBits))
}

func (a Angle) Clamp(lo, hi Angle) Angle {
	return Angle{Deg: a.Deg.Clamp(lo.Deg, hi.Deg)}
}

// Interpolate returns the point ratio of the way from a to b, ratio clamped
// to [0,1].
func (a Angle) Interpolate(b Angle, ratio Fixed) Angle {
	ratio = ratio.Clamp(Zero, One)
	delta := b.Deg.Sub(a.Deg)
	return Angle{Deg: a.Deg.Add(delta.Mul(ratio))}
}

func (a Angle) Add(b Angle) Angle { return Angle{Deg: a.Deg.Add(b.Deg)} }
func (a Angle) Sub(b Angle) Angle { return Angle{Deg: a.Deg.Sub(b.Deg)} }
func (a Angle) Neg() Angle        { return Angle{Deg: a.Deg.Neg()} }

var (
	radToDeg = FromFloat64(180.0 / math.Pi)
)
