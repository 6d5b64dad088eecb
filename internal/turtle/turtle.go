// Package turtle translates a Logo-like turtle program (forward, back,
// left, right, pen up/down, arc) into the sequence of Ops the controller
// understands. It carries its own (position, heading) state rather than
// the controller's, since a turtle program is planned entirely on the
// host before anything is sent over the wire.
package turtle

import (
	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/protocol"
)

// Kind tags which turtle primitive a Cmd represents.
type Kind int

const (
	Forward Kind = iota
	Back
	Left
	Right
	PenUp
	PenDown
	Arc
)

// Cmd is one turtle-language primitive. Dist holds the Forward/Back
// distance or the Arc radius; Deg holds the Left/Right/Arc angle, in
// degrees.
type Cmd struct {
	Kind Kind
	Dist fixedmath.Fixed
	Deg  fixedmath.Fixed
}

func forwardCmd(kind Kind, dist fixedmath.Fixed) Cmd { return Cmd{Kind: kind, Dist: dist} }

func MoveForward(dist fixedmath.Fixed) Cmd { return forwardCmd(Forward, dist) }
func MoveBack(dist fixedmath.Fixed) Cmd    { return forwardCmd(Back, dist) }
func TurnLeft(deg fixedmath.Fixed) Cmd     { return Cmd{Kind: Left, Deg: deg} }
func TurnRight(deg fixedmath.Fixed) Cmd    { return Cmd{Kind: Right, Deg: deg} }
func LiftPen() Cmd                         { return Cmd{Kind: PenUp} }
func DropPen() Cmd                         { return Cmd{Kind: PenDown} }
func Curve(degrees, radius fixedmath.Fixed) Cmd {
	return Cmd{Kind: Arc, Deg: degrees, Dist: radius}
}

// startHeadingDeg is the turtle's initial heading: straight up, matching
// the brachiologo interpreter's convention so that a program written for
// it draws the same picture here.
const startHeadingDeg = 90

// arcStepDegrees is the angular increment an Arc is flattened into. The
// arc's last partial step (when Deg isn't a multiple of this) is dropped
// rather than rounded up, same as the upstream interpreter.
const arcStepDegrees = 10

// Interpret walks cmds from the origin, heading straight up with the pen
// up, and returns the Ops a host would stream to the controller to draw
// the resulting path. Each Forward/Back/Arc step emits one OpMoveTo (or,
// for Arc, several plus the PenUp/PenDown bracketing its approach and
// retreat); Left/Right only change heading and emit nothing. Every emitted
// point is clamped to geom's workspace rectangle first, so a turtle program
// that overshoots the drawable area gets flattened against its edge
// instead of reaching the controller as an out-of-range move it would only
// Nack.
func Interpret(geom geometry.GeomConfig, cmds []Cmd) []protocol.Op {
	pos := geometry.Point{}
	heading := fixedmath.FromDegrees(fixedmath.FromInt(startHeadingDeg))

	var ops []protocol.Op
	for _, c := range cmds {
		switch c.Kind {
		case Forward:
			pos = step(pos, heading, c.Dist)
			ops = append(ops, moveTo(geom, pos))
		case Back:
			pos = step(pos, heading, c.Dist.Neg())
			ops = append(ops, moveTo(geom, pos))
		case Left:
			heading = heading.Add(fixedmath.FromDegrees(c.Deg))
		case Right:
			heading = heading.Sub(fixedmath.FromDegrees(c.Deg))
		case PenUp:
			ops = append(ops, protocol.Op{Kind: protocol.OpPenUp})
		case PenDown:
			ops = append(ops, protocol.Op{Kind: protocol.OpPenDown})
		case Arc:
			ops = append(ops, arcOps(geom, pos, heading, c.Deg, c.Dist)...)
		}
	}
	return ops
}

func moveTo(geom geometry.GeomConfig, p geometry.Point) protocol.Op {
	return protocol.Op{Kind: protocol.OpMoveTo, MoveTo: geom.Clamp(p)}
}

// step advances pos by dist along heading.
func step(pos geometry.Point, heading fixedmath.Angle, dist fixedmath.Fixed) geometry.Point {
	r := heading.Radians()
	return geometry.Point{
		X: pos.X.Add(dist.Mul(fixedmath.Cos(r))),
		Y: pos.Y.Add(dist.Mul(fixedmath.Sin(r))),
	}
}

// arcOps draws a circular arc of the given radius centered on pos,
// starting at the point radius away along heading and sweeping clockwise
// through degrees. It neither moves the turtle nor changes its heading:
// the pen lifts to approach the arc's start and lifts again to return to
// pos once it's done, so the turtle ends exactly where it began.
func arcOps(geom geometry.GeomConfig, pos geometry.Point, heading fixedmath.Angle, degrees, radius fixedmath.Fixed) []protocol.Op {
	pointAt := func(a fixedmath.Angle) geometry.Point {
		r := a.Radians()
		return geometry.Point{
			X: pos.X.Add(radius.Mul(fixedmath.Cos(r))),
			Y: pos.Y.Add(radius.Mul(fixedmath.Sin(r))),
		}
	}

	ops := []protocol.Op{
		{Kind: protocol.OpPenUp},
		moveTo(geom, pointAt(heading)),
		{Kind: protocol.OpPenDown},
	}

	steps := degrees.Int()
	for i := int32(0); i <= steps; i += arcStepDegrees {
		a := heading.Sub(fixedmath.FromDegrees(fixedmath.FromInt(i)))
		ops = append(ops, moveTo(geom, pointAt(a)))
	}

	ops = append(ops,
		protocol.Op{Kind: protocol.OpPenUp},
		moveTo(geom, pos),
		protocol.Op{Kind: protocol.OpPenDown},
	)
	return ops
}
