package geometry

import (
	"testing"

	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) Point {
	return Point{X: fixedmath.FromFloat64(x), Y: fixedmath.FromFloat64(y)}
}

const angleTolerance = 0.5 // degrees, per spec.md §8 invariant 1

func TestDefaultConfigIsValid(t *testing.T) {
	assert.True(t, Default().IsValid())
}

func TestAtCoordScenarios(t *testing.T) {
	cfg := Default()

	cases := []struct {
		name             string
		x, y             float64
		shoulder, elbow  float64
	}{
		{"S1", -8, 8, 0, 0},
		{"S2", 0, 11.313, 45, 0},
		{"S3", 0, 8, 30, -30},
		{"S4", 8, 8, 90, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			angles, err := cfg.AtCoord(pt(c.x, c.y))
			require.NoError(t, err)
			assert.InDelta(t, c.shoulder, angles.Shoulder.Deg.Float64(), angleTolerance)
			assert.InDelta(t, c.elbow, angles.Elbow.Deg.Float64(), angleTolerance)
		})
	}
}

func TestCoordAtAngleS5(t *testing.T) {
	cfg := Default()
	deg := func(v float64) fixedmath.Angle { return fixedmath.FromDegrees(fixedmath.FromFloat64(v)) }
	p := cfg.CoordAtAngle(Angles{Shoulder: deg(0), Elbow: deg(0)})
	assert.InDelta(t, -8, p.X.Float64(), 0.01)
	assert.InDelta(t, 8, p.Y.Float64(), 0.01)
}

func TestAtCoordOutOfRange(t *testing.T) {
	cfg := Default()
	_, err := cfg.AtCoord(pt(100, 100))
	require.Error(t, err)
}

func TestKinematicRoundTrip(t *testing.T) {
	cfg := Default()
	deg := func(v float64) fixedmath.Angle { return fixedmath.FromDegrees(fixedmath.FromFloat64(v)) }

	samples := []Angles{
		{Shoulder: deg(0), Elbow: deg(0)},
		{Shoulder: deg(30), Elbow: deg(-20)},
		{Shoulder: deg(60), Elbow: deg(10)},
		{Shoulder: deg(90), Elbow: deg(0)},
	}
	for _, a := range samples {
		p := cfg.CoordAtAngle(a)
		if !cfg.inRect(p) {
			continue
		}
		got, err := cfg.AtCoord(p)
		require.NoError(t, err)
		assert.InDelta(t, a.Shoulder.Deg.Float64(), got.Shoulder.Deg.Float64(), angleTolerance)
		assert.InDelta(t, a.Elbow.Deg.Float64(), got.Elbow.Deg.Float64(), angleTolerance)
	}
}

func TestIsValidRejectsUnreachableY(t *testing.T) {
	cfg := Default()
	cfg.YRange = [2]fixedmath.Fixed{fixedmath.FromFloat64(2), fixedmath.FromFloat64(13)}
	cfg.XRange = [2]fixedmath.Fixed{fixedmath.FromFloat64(-8), fixedmath.FromFloat64(8)}
	assert.False(t, cfg.IsValid())
}

func TestIsValidNarrowerXRangeRecovers(t *testing.T) {
	cfg := Default()
	cfg.YRange = [2]fixedmath.Fixed{fixedmath.FromFloat64(2), fixedmath.FromFloat64(13)}
	cfg.XRange = [2]fixedmath.Fixed{fixedmath.FromFloat64(4), fixedmath.FromFloat64(8)}
	assert.True(t, cfg.IsValid())
}

func TestIsValidRejectsUnreachableCorners(t *testing.T) {
	cfg := Default()
	cfg.YRange = [2]fixedmath.Fixed{fixedmath.FromFloat64(5), fixedmath.FromFloat64(14)}
	cfg.XRange = [2]fixedmath.Fixed{fixedmath.FromFloat64(-8), fixedmath.FromFloat64(8)}
	assert.False(t, cfg.IsValid())
}
