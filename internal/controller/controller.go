// Package controller implements the periodic tick task that ties every
// other subsystem together: it advances Motion, computes joint angles via
// geometry, maps them to PWM duties via pwmmap, writes the PWM lines, and
// drains one Op from the OpQueue per tick while Motion is Resting.
// Op/Resp dispatch (the USB RX handler's job in spec.md §4.7) lives here
// too, since on this single-goroutine Go port there is no separate
// interrupt priority level to express it at.
package controller

import (
	"time"

	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/internal/model"
	"github.com/jneem/brachiograph/internal/motion"
	"github.com/jneem/brachiograph/internal/opqueue"
	"github.com/jneem/brachiograph/internal/protocol"
	"github.com/jneem/brachiograph/internal/pwmmap"
)

// PwmWriter is the hardware boundary: whatever drives the three PWM
// lines. internal/pwmhw provides the PCA9685 and TinyGo-servo
// implementations.
type PwmWriter interface {
	WriteShoulder(dutyUs uint16)
	WriteElbow(dutyUs uint16)
	WritePen(dutyUs uint16)
}

// Controller owns the mutable state spec.md §5 describes as a single
// critical-section-protected bundle: Motion, OpQueue, and the PwmMap
// tables. On this Go port there is one goroutine driving Tick and
// HandleOp sequentially (see cmd/plotterfw), so no separate lock is
// needed; the struct fields simply aren't safe for concurrent access by
// design, matching the original's single-core assumption.
type Controller struct {
	Geom   geometry.GeomConfig
	Motion *motion.State
	Queue  opqueue.Queue
	Tables pwmmap.Tables
	Pwm    PwmWriter
	Log    logging.Logger

	lastAngles geometry.Angles
	lastDuty   model.ServoPosition
	manualDx   int32
	manualDy   int32
}

func New(geom geometry.GeomConfig, m *motion.State, tables pwmmap.Tables, pwm PwmWriter, log logging.Logger) *Controller {
	return &Controller{
		Geom:   geom,
		Motion: m,
		Tables: tables,
		Pwm:    pwm,
		Log:    log,
	}
}

// Tick runs one iteration of spec.md §4.8's three steps.
func (c *Controller) Tick(now time.Time) {
	p, pen := c.Motion.Update(now)

	angles, err := c.Geom.AtCoord(p)
	if err != nil {
		// Numeric/InputRange here indicates a Movement target outside the
		// workspace, which MoveTo validation should have already excluded;
		// hold the last good angles rather than writing garbage duties.
		c.Log.Warn().Err(err).Msg("at_coord failed mid-tick, holding last angles")
		angles = c.lastAngles
	}

	shoulderDuty, _ := c.Tables.Shoulder.Duty(c.lastAngles.Shoulder, angles.Shoulder)
	elbowDuty, _ := c.Tables.Elbow.Duty(c.lastAngles.Elbow, angles.Elbow)
	penDuty := c.Tables.Pen.Duty(pen)

	shoulderDuty = clampedAdd(shoulderDuty, c.manualDx)
	elbowDuty = clampedAdd(elbowDuty, c.manualDy)

	c.Pwm.WriteShoulder(shoulderDuty)
	c.Pwm.WriteElbow(elbowDuty)
	c.Pwm.WritePen(penDuty)

	c.lastAngles = angles
	c.lastDuty = model.ServoPosition{Shoulder: shoulderDuty, Elbow: elbowDuty, Pen: penDuty}

	if c.Motion.IsResting() {
		if op, ok := c.Queue.Pop(); ok {
			c.applySlowOp(now, op)
		}
	}
}

func clampedAdd(duty uint16, delta int32) uint16 {
	v := int32(duty) + delta
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

func (c *Controller) applySlowOp(now time.Time, op protocol.Op) {
	switch op.Kind {
	case protocol.OpMoveTo:
		c.Motion.MoveTo(now, op.MoveTo)
	case protocol.OpPenDown:
		c.Motion.PenDown(now)
	case protocol.OpPenUp:
		c.Motion.PenUp(now)
	case protocol.OpChangePosition:
		c.manualDx += int32(op.ChangePosition.Shoulder)
		c.manualDy += int32(op.ChangePosition.Elbow)
	}
}

// HandleOp dispatches a received Op per spec.md §4.7: fast ops run
// synchronously; slow ops are validated then enqueued. Exactly one Resp
// is returned for every Op.
func (c *Controller) HandleOp(op protocol.Op) protocol.Resp {
	if op.Kind.IsFast() {
		return c.handleFast(op)
	}
	return c.handleSlow(op)
}

func (c *Controller) handleFast(op protocol.Op) protocol.Resp {
	switch op.Kind {
	case protocol.OpCancel:
		c.Queue.Clear()
		return protocol.Ack()
	case protocol.OpCalibrate:
		c.Tables.Calibrate(op.Joint, op.Direction, op.Table)
		return protocol.Ack()
	case protocol.OpGetPosition:
		return protocol.CurPositionResp(c.lastDuty)
	default:
		return protocol.Nack()
	}
}

func (c *Controller) handleSlow(op protocol.Op) protocol.Resp {
	if op.Kind == protocol.OpMoveTo {
		if _, err := c.Geom.AtCoord(op.MoveTo); err != nil {
			return protocol.Nack()
		}
	}
	if err := c.Queue.Push(op); err != nil {
		return protocol.QueueFull()
	}
	return protocol.Ack()
}
