// Package motion implements the brachiograph's motion state machine: a
// tagged variant {Resting, Moving, Lifting} that produces, at every
// controller tick, the current hand position and pen state, and accepts
// new commands only while Resting. Trajectories are pure functions of
// time plus a start state, not coroutines, so a tick is just a query.
package motion

import (
	"math"
	"time"

	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/model"
)

// DefaultTLift is spec.md §4.4's example pen-transition dwell time.
const DefaultTLift = 800 * time.Millisecond

// DefaultTargetSpeed is spec.md §4.4's example MoveTo velocity, in
// arm-length units per second.
const DefaultTargetSpeed = 4.0

// Movement is an immutable linear trajectory from init to target over
// [start, start+dur).
type Movement struct {
	Init, Target geometry.Point
	Start        time.Time
	Dur          time.Duration
}

// interpolate returns the convex combination of Init/Target at time now,
// clamped to [0,1] so calls at or past completion return Target exactly.
func (m Movement) interpolate(now time.Time) geometry.Point {
	if m.Dur <= 0 {
		return m.Target
	}
	ratio := fixedmath.FromFloat64(float64(now.Sub(m.Start)) / float64(m.Dur)).Clamp(fixedmath.Zero, fixedmath.One)
	return geometry.Point{
		X: m.Init.X.Add(m.Target.X.Sub(m.Init.X).Mul(ratio)),
		Y: m.Init.Y.Add(m.Target.Y.Sub(m.Init.Y).Mul(ratio)),
	}
}

func (m Movement) done(now time.Time) bool {
	return !now.Before(m.Start.Add(m.Dur))
}

// phase is the MotionState tag.
type phase int

const (
	phaseResting phase = iota
	phaseMoving
	phaseLifting
)

// State is the motion state machine. The zero value is Resting at the
// origin with the pen up; callers normally construct one via New with a
// sensible starting position.
type State struct {
	phase phase

	// Resting / common
	pos geometry.Point
	pen model.PenState

	// Moving
	movement Movement

	// Lifting
	targetPen model.PenState
	liftStart time.Time
	liftDur   time.Duration

	targetSpeed float64
	tLift       time.Duration
}

// New constructs a Resting state at pos with the pen up.
func New(pos geometry.Point, targetSpeed float64, tLift time.Duration) *State {
	return &State{
		phase:       phaseResting,
		pos:         pos,
		pen:         model.PenUp,
		targetSpeed: targetSpeed,
		tLift:       tLift,
	}
}

// IsResting reports whether the state machine will accept a new MoveTo,
// PenUp, or PenDown command.
func (s *State) IsResting() bool {
	return s.phase == phaseResting
}

// Update advances the state machine's latched transitions (Moving ->
// Resting, Lifting -> Resting) as of now, and returns the current hand
// position and reported pen state. It must be called once per controller
// tick; IsResting reflects these transitions only after Update has run.
func (s *State) Update(now time.Time) (geometry.Point, model.PenState) {
	switch s.phase {
	case phaseMoving:
		s.pos = s.movement.interpolate(now)
		if s.movement.done(now) {
			s.pos = s.movement.Target
			s.phase = phaseResting
		}
	case phaseLifting:
		if !now.Before(s.liftStart.Add(s.liftDur / 2)) {
			s.pen = s.targetPen
		}
		if !now.Before(s.liftStart.Add(s.liftDur)) {
			s.phase = phaseResting
		}
	}
	return s.pos, s.pen
}

// MoveTo starts a Movement toward target, refused unless Resting.
func (s *State) MoveTo(now time.Time, target geometry.Point) bool {
	if s.phase != phaseResting {
		return false
	}
	dist := distance(s.pos, target)
	dur := time.Duration(dist / s.targetSpeed * float64(time.Second))
	s.movement = Movement{Init: s.pos, Target: target, Start: now, Dur: dur}
	s.phase = phaseMoving
	return true
}

// PenDown begins a Lifting transition to Down, refused unless Resting and
// currently Up (a no-op request is simply refused; callers treat refusal
// as Ack of an already-satisfied state at the Controller layer if desired).
func (s *State) PenDown(now time.Time) bool {
	return s.startLift(now, model.PenDown)
}

// PenUp begins a Lifting transition to Up.
func (s *State) PenUp(now time.Time) bool {
	return s.startLift(now, model.PenUp)
}

func (s *State) startLift(now time.Time, target model.PenState) bool {
	if s.phase != phaseResting || s.pen == target {
		return false
	}
	s.targetPen = target
	s.liftStart = now
	s.liftDur = s.tLift
	s.phase = phaseLifting
	return true
}

// Cancel clears no in-flight Movement/Lifting (spec.md §4.4: it is the
// OpQueue that Cancel empties) and does nothing. Controller does not call
// it: an OpCancel only clears the OpQueue.
func (s *State) Cancel() {}

// distance runs once per MoveTo command, not per tick, so using float64
// math.Sqrt here (rather than fixedmath.Sqrt) is immaterial to the
// no-floating-point-per-tick goal that motivates Fixed elsewhere.
func distance(a, b geometry.Point) float64 {
	dx := b.X.Sub(a.X).Float64()
	dy := b.Y.Sub(a.Y).Float64()
	return math.Sqrt(dx*dx + dy*dy)
}
