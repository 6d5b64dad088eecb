package fixedmath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const angleTolerance = 0.01

func TestSinCos(t *testing.T) {
	cases := []float64{0, 30, 45, 60, 90, 120, 180, -45, -90, -150}
	for _, deg := range cases {
		theta := FromDegrees(FromFloat64(deg)).Radians()
		gotSin := Sin(theta).Float64()
		gotCos := Cos(theta).Float64()
		wantSin := float64(math32.Sin(math32.Pi * float32(deg) / 180))
		wantCos := float64(math32.Cos(math32.Pi * float32(deg) / 180))
		assert.InDelta(t, wantSin, gotSin, angleTolerance, "sin(%v)", deg)
		assert.InDelta(t, wantCos, gotCos, angleTolerance, "cos(%v)", deg)
	}
}

func TestAtan(t *testing.T) {
	cases := []float64{0, 0.25, 0.5, 1, 2, 5, -0.5, -2}
	for _, r := range cases {
		got := Atan(FromFloat64(r)).Float64()
		want := float64(math32.Atan(float32(r)))
		assert.InDelta(t, want, got, angleTolerance, "atan(%v)", r)
	}
}

func TestAsin(t *testing.T) {
	cases := []float64{0, 0.25, 0.5, 0.9, -0.5, -0.9, 1, -1}
	for _, r := range cases {
		got := Asin(FromFloat64(r)).Float64()
		want := float64(math32.Asin(float32(r)))
		assert.InDelta(t, want, got, angleTolerance, "asin(%v)", r)
	}
}

func TestSqrt(t *testing.T) {
	cases := []float64{0, 1, 2, 4, 8.5, 64, 100.25}
	for _, v := range cases {
		got := Sqrt(FromFloat64(v)).Float64()
		want := math32.Sqrt(float32(v))
		assert.InDelta(t, float64(want), got, 0.02, "sqrt(%v)", v)
	}
}

func TestClampAndInterpolate(t *testing.T) {
	a := FromDegrees(FromFloat64(-10))
	b := FromDegrees(FromFloat64(110))

	assert.Equal(t, a.Deg, a.Interpolate(b, Zero).Deg)
	assert.Equal(t, b.Deg, a.Interpolate(b, One).Deg)

	mid := a.Interpolate(b, FromFloat64(0.5))
	assert.InDelta(t, 50.0, mid.Deg.Float64(), angleTolerance)

	// Ratios outside [0,1] are clamped to the endpoints.
	assert.Equal(t, a.Deg, a.Interpolate(b, FromFloat64(-0.5)).Deg)
	assert.Equal(t, b.Deg, a.Interpolate(b, FromFloat64(1.5)).Deg)
}
