package turtle

import (
	"testing"

	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) fixedmath.Fixed { return fixedmath.FromFloat64(v) }

// wideGeom is a workspace rectangle that comfortably contains every point
// the non-clamping tests below draw, so Clamp never alters them; the
// clamping behavior itself gets its own test against a tight rectangle.
func wideGeom() geometry.GeomConfig {
	g := geometry.Default()
	g.XRange = [2]fixedmath.Fixed{f(-100), f(100)}
	g.YRange = [2]fixedmath.Fixed{f(-100), f(100)}
	return g
}

func TestForwardFromStartHeadingMovesStraightUp(t *testing.T) {
	ops := Interpret(wideGeom(), []Cmd{MoveForward(f(4))})
	require.Len(t, ops, 1)
	assert.Equal(t, protocol.OpMoveTo, ops[0].Kind)
	assert.InDelta(t, 0, ops[0].MoveTo.X.Float64(), 0.05)
	assert.InDelta(t, 4, ops[0].MoveTo.Y.Float64(), 0.05)
}

func TestRightTurnThenForwardMovesInNewHeading(t *testing.T) {
	ops := Interpret(wideGeom(), []Cmd{TurnRight(f(90)), MoveForward(f(4))})
	require.Len(t, ops, 1)
	assert.InDelta(t, 4, ops[0].MoveTo.X.Float64(), 0.05)
	assert.InDelta(t, 0, ops[0].MoveTo.Y.Float64(), 0.05)
}

func TestLeftAndRightTurnOppositeWays(t *testing.T) {
	left := Interpret(wideGeom(), []Cmd{TurnLeft(f(90)), MoveForward(f(4))})
	right := Interpret(wideGeom(), []Cmd{TurnRight(f(90)), MoveForward(f(4))})
	require.Len(t, left, 1)
	require.Len(t, right, 1)
	assert.InDelta(t, -right[0].MoveTo.X.Float64(), left[0].MoveTo.X.Float64(), 0.05)
}

func TestBackMovesOppositeOfForward(t *testing.T) {
	ops := Interpret(wideGeom(), []Cmd{MoveBack(f(4))})
	require.Len(t, ops, 1)
	assert.InDelta(t, -4, ops[0].MoveTo.Y.Float64(), 0.05)
}

func TestPenCommandsPassThroughUnchanged(t *testing.T) {
	ops := Interpret(wideGeom(), []Cmd{LiftPen(), MoveForward(f(1)), DropPen()})
	require.Len(t, ops, 3)
	assert.Equal(t, protocol.OpPenUp, ops[0].Kind)
	assert.Equal(t, protocol.OpMoveTo, ops[1].Kind)
	assert.Equal(t, protocol.OpPenDown, ops[2].Kind)
}

func TestMoveToIsClampedToWorkspaceRectangle(t *testing.T) {
	tight := geometry.Default()
	tight.XRange = [2]fixedmath.Fixed{f(-1), f(1)}
	tight.YRange = [2]fixedmath.Fixed{f(-1), f(1)}

	ops := Interpret(tight, []Cmd{MoveForward(f(4))})
	require.Len(t, ops, 1)
	assert.InDelta(t, 1, ops[0].MoveTo.Y.Float64(), 0.05)
}

func TestArcReturnsToStartingPositionAndBracketsWithPenLifts(t *testing.T) {
	ops := Interpret(wideGeom(), []Cmd{MoveForward(f(2)), Curve(f(90), f(1))})
	require.True(t, len(ops) > 5)

	// First op is the plain forward move; everything after is the arc.
	arc := ops[1:]
	assert.Equal(t, protocol.OpPenUp, arc[0].Kind)
	assert.Equal(t, protocol.OpMoveTo, arc[1].Kind)
	assert.Equal(t, protocol.OpPenDown, arc[2].Kind)

	last := arc[len(arc)-1]
	secondToLast := arc[len(arc)-2]
	thirdToLast := arc[len(arc)-3]
	assert.Equal(t, protocol.OpPenDown, last.Kind)
	assert.Equal(t, protocol.OpMoveTo, secondToLast.Kind)
	assert.Equal(t, protocol.OpPenUp, thirdToLast.Kind)

	// The final move-to before pen-down returns to where Forward left off.
	assert.InDelta(t, 0, secondToLast.MoveTo.X.Float64(), 0.05)
	assert.InDelta(t, 2, secondToLast.MoveTo.Y.Float64(), 0.05)
}

func TestArcDoesNotChangeSubsequentHeadingOrPosition(t *testing.T) {
	ops := Interpret(wideGeom(), []Cmd{Curve(f(90), f(1)), MoveForward(f(3))})
	last := ops[len(ops)-1]
	assert.InDelta(t, 0, last.MoveTo.X.Float64(), 0.05)
	assert.InDelta(t, 3, last.MoveTo.Y.Float64(), 0.05)
}
