// Package geometry implements the brachiograph's two-link planar inverse
// and forward kinematics and workspace-reachability analysis, over
// fixedmath.Fixed so it runs identically on an MCU without an FPU.
package geometry

import (
	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/plotterr"
)

// Point is a drawing-surface coordinate in arm-length units.
type Point struct {
	X, Y fixedmath.Fixed
}

// Angles is a (shoulder, elbow) joint-angle pair.
type Angles struct {
	Shoulder, Elbow fixedmath.Angle
}

// GeomConfig describes one arm's physical envelope. It is immutable after
// construction; IsValid checks the invariant that every (x,y) in
// [x0,x1]x[y0,y1] is reachable by some (shoulder,elbow) within their
// ranges.
type GeomConfig struct {
	ArmLen        fixedmath.Fixed
	ShoulderRange [2]fixedmath.Angle // lo, hi
	ElbowRange    [2]fixedmath.Angle // lo, hi
	XRange        [2]fixedmath.Fixed
	YRange        [2]fixedmath.Fixed
}

// Default mirrors spec.md §6's default GeomConfig (arm_len=8,
// shoulder=[-45,120], elbow=[-60,75], x=[-8,8], y=[5,13]).
func Default() GeomConfig {
	deg := func(v float64) fixedmath.Angle { return fixedmath.FromDegrees(fixedmath.FromFloat64(v)) }
	return GeomConfig{
		ArmLen:        fixedmath.FromFloat64(8),
		ShoulderRange: [2]fixedmath.Angle{deg(-45), deg(120)},
		ElbowRange:    [2]fixedmath.Angle{deg(-60), deg(75)},
		XRange:        [2]fixedmath.Fixed{fixedmath.FromFloat64(-8), fixedmath.FromFloat64(8)},
		YRange:        [2]fixedmath.Fixed{fixedmath.FromFloat64(5), fixedmath.FromFloat64(13)},
	}
}

func (c GeomConfig) inRect(p Point) bool {
	return p.X >= c.XRange[0] && p.X <= c.XRange[1] &&
		p.Y >= c.YRange[0] && p.Y <= c.YRange[1]
}

// Clamp pulls p into the workspace rectangle, coordinate by coordinate.
// Host-side callers (internal/turtle) use this to keep a generated path
// inside the configured envelope before it's ever sent as an OpMoveTo;
// AtCoord still rejects an out-of-range point rather than clamping it,
// since by the time a move reaches the controller it's a protocol error.
func (c GeomConfig) Clamp(p Point) Point {
	return Point{
		X: p.X.Clamp(c.XRange[0], c.XRange[1]),
		Y: p.Y.Clamp(c.YRange[0], c.YRange[1]),
	}
}

// AtCoord computes the joint angles that place the hand at p. It does not
// check the result against the joint-angle ranges; callers decide whether
// the returned angles are acceptable.
func (c GeomConfig) AtCoord(p Point) (Angles, error) {
	if !c.inRect(p) {
		return Angles{}, plotterr.New(plotterr.InputRange, "point (%v,%v) outside workspace", p.X.Float64(), p.Y.Float64())
	}

	x, y := p.X, p.Y
	theta := polarAngle(x, y)

	l := c.ArmLen
	r2 := x.Mul(x).Add(y.Mul(y))
	twoLSq := fixedmath.FromInt(2).Mul(l).Mul(l)
	sinElbow := fixedmath.One.Sub(r2.Div(twoLSq)).Clamp(-fixedmath.One, fixedmath.One)

	alpha := fixedmath.Asin(sinElbow).Neg()
	beta := fixedmath.HalfPi.Add(fixedmath.HalfPi / 2).Sub(theta).Add(alpha / 2)

	return Angles{
		Shoulder: fixedmath.FromRadians(beta),
		Elbow:    fixedmath.FromRadians(alpha),
	}, nil
}

// polarAngle computes theta, the polar angle of (x,y) with y>=0, using the
// branch on |x| vs |y| from spec.md §4.2 to avoid the y/x overflow a naive
// atan2 would hit when x is small.
func polarAngle(x, y fixedmath.Fixed) fixedmath.Fixed {
	ax, ay := x.Abs(), y.Abs()
	if ax > ay {
		theta := fixedmath.Atan(y.Div(x))
		if theta < 0 {
			theta += fixedmath.Pi
		}
		return theta
	}
	return fixedmath.HalfPi.Sub(fixedmath.Atan(x.Div(y)))
}

// CoordAtAngle is the forward-kinematics inverse of AtCoord.
func (c GeomConfig) CoordAtAngle(a Angles) Point {
	alpha := a.Elbow.Radians()
	beta := a.Shoulder.Radians()
	l := c.ArmLen

	onePlusSin := fixedmath.One.Add(fixedmath.Sin(alpha))
	r := fixedmath.FromFloat64(1.41421356).Mul(l).Mul(fixedmath.Sqrt(onePlusSin))

	phi := fixedmath.HalfPi.Add(fixedmath.HalfPi / 2).Add(alpha / 2).Sub(beta)

	return Point{
		X: r.Mul(fixedmath.Cos(phi)),
		Y: r.Mul(fixedmath.Sin(phi)),
	}
}

// IsValid checks the reachability invariant from spec.md §4.2: the
// rectangle must lie inside the radial reach of the two links and inside
// the shoulder/elbow angle box, verified at the four corners plus the
// boundary critical points where the forearm is perpendicular to that
// edge.
func (c GeomConfig) IsValid() bool {
	x0, x1 := c.XRange[0], c.XRange[1]
	y0, y1 := c.YRange[0], c.YRange[1]
	l := c.ArmLen

	if !(y0 > 0 && y1 > y0 && x1 > x0) {
		return false
	}

	maxAbsX := x0.Abs()
	if x1.Abs() > maxAbsX {
		maxAbsX = x1.Abs()
	}
	fourLSq := fixedmath.FromInt(4).Mul(l).Mul(l)
	if maxAbsX.Mul(maxAbsX).Add(y1.Mul(y1)) >= fourLSq {
		return false
	}

	if c.ElbowRange[0].Deg < fixedmath.FromFloat64(-90) {
		return false
	}

	corners := []Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1},
	}
	for _, p := range corners {
		if !c.cornerReachable(p) {
			return false
		}
	}

	for _, a := range []fixedmath.Fixed{y0, y1} {
		if !c.horizontalBoundaryOK(a, x0, x1) {
			return false
		}
	}
	for _, b := range []fixedmath.Fixed{x0, x1} {
		if b <= 0 {
			continue
		}
		if !c.verticalBoundaryOK(b, y0, y1) {
			return false
		}
	}

	return true
}

func (c GeomConfig) cornerReachable(p Point) bool {
	angles, err := c.AtCoord(p)
	if err != nil {
		return false
	}
	return angles.Shoulder.Deg >= c.ShoulderRange[0].Deg && angles.Shoulder.Deg <= c.ShoulderRange[1].Deg &&
		angles.Elbow.Deg >= c.ElbowRange[0].Deg && angles.Elbow.Deg <= c.ElbowRange[1].Deg
}

// horizontalBoundaryOK checks the critical point on the horizontal
// boundary y=a, where the forearm is vertical: shoulder=asin((a-l)/l),
// elbow=-shoulder, x=-sqrt(l^2-(a-l)^2).
func (c GeomConfig) horizontalBoundaryOK(a, x0, x1 fixedmath.Fixed) bool {
	l := c.ArmLen
	ratio := a.Sub(l).Div(l).Clamp(-fixedmath.One, fixedmath.One)
	shoulder := fixedmath.Asin(ratio)
	under := l.Mul(l).Sub(a.Sub(l).Mul(a.Sub(l)))
	if under < 0 {
		return true // no real critical point on this boundary
	}
	x := fixedmath.Sqrt(under).Neg()
	if x < x0 || x > x1 {
		return true // critical point not on this segment, nothing to check
	}
	shoulderDeg := fixedmath.FromRadians(shoulder).Deg
	elbowDeg := fixedmath.FromRadians(shoulder.Neg()).Deg
	return shoulderDeg >= c.ShoulderRange[0].Deg && shoulderDeg <= c.ShoulderRange[1].Deg &&
		elbowDeg >= c.ElbowRange[0].Deg && elbowDeg <= c.ElbowRange[1].Deg
}

// verticalBoundaryOK checks the critical point on the vertical boundary
// x=b>0, where the forearm is horizontal: elbow=-asin((b-l)/l),
// shoulder=pi/2+elbow, y=sqrt(l^2-(b-l)^2).
func (c GeomConfig) verticalBoundaryOK(b, y0, y1 fixedmath.Fixed) bool {
	l := c.ArmLen
	ratio := b.Sub(l).Div(l).Clamp(-fixedmath.One, fixedmath.One)
	elbow := fixedmath.Asin(ratio).Neg()
	under := l.Mul(l).Sub(b.Sub(l).Mul(b.Sub(l)))
	if under < 0 {
		return true
	}
	y := fixedmath.Sqrt(under)
	if y < y0 || y > y1 {
		return true
	}
	shoulder := fixedmath.HalfPi.Add(elbow)
	shoulderDeg := fixedmath.FromRadians(shoulder).Deg
	elbowDeg := fixedmath.FromRadians(elbow).Deg
	return shoulderDeg >= c.ShoulderRange[0].Deg && shoulderDeg <= c.ShoulderRange[1].Deg &&
		elbowDeg >= c.ElbowRange[0].Deg && elbowDeg <= c.ElbowRange[1].Deg
}
