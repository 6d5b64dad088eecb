// Package protocol defines the Op/Resp wire types the host and
// controller exchange, and two codecs for them: a compact binary frame
// codec for the USB link, and a human-readable debug line codec for the
// CLI's -debug REPL (see SPEC_FULL.md §3).
package protocol

import (
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/model"
	"github.com/jneem/brachiograph/internal/pwmmap"
)

// OpKind tags the Op variant. Values are also the wire tag byte.
type OpKind uint8

const (
	OpMoveTo OpKind = iota
	OpPenUp
	OpPenDown
	OpChangePosition
	OpCancel
	OpCalibrate
	OpGetPosition
)

func (k OpKind) String() string {
	switch k {
	case OpMoveTo:
		return "MoveTo"
	case OpPenUp:
		return "PenUp"
	case OpPenDown:
		return "PenDown"
	case OpChangePosition:
		return "ChangePosition"
	case OpCancel:
		return "Cancel"
	case OpCalibrate:
		return "Calibrate"
	case OpGetPosition:
		return "GetPosition"
	default:
		return "Unknown"
	}
}

// IsFast reports whether the op is handled synchronously by Transport
// rather than enqueued on the OpQueue (spec.md §4.7).
func (k OpKind) IsFast() bool {
	return k == OpCancel || k == OpCalibrate || k == OpGetPosition
}

// Op is the tagged variant of every command the host can send. Only the
// fields relevant to Kind are populated; Go has no sum types, so this
// mirrors the original Rust enum as a struct-of-variants, the common Go
// idiom for a small fixed set of wire messages.
type Op struct {
	Kind OpKind

	MoveTo         geometry.Point
	ChangePosition model.ServoPositionDelta
	Joint          model.Joint
	Direction      model.Direction
	Table          []pwmmap.Entry
}

// RespKind tags the Resp variant.
type RespKind uint8

const (
	RespAck RespKind = iota
	RespNack
	RespQueueFull
	RespAngles
	RespCurPosition
)

func (k RespKind) String() string {
	switch k {
	case RespAck:
		return "Ack"
	case RespNack:
		return "Nack"
	case RespQueueFull:
		return "QueueFull"
	case RespAngles:
		return "Angles"
	case RespCurPosition:
		return "CurPosition"
	default:
		return "Unknown"
	}
}

// Resp is the tagged variant of every reply the controller can send,
// exactly one per received Op (spec.md §4.7).
type Resp struct {
	Kind        RespKind
	Angles      geometry.Angles
	CurPosition model.ServoPosition
}

func Ack() Resp       { return Resp{Kind: RespAck} }
func Nack() Resp      { return Resp{Kind: RespNack} }
func QueueFull() Resp { return Resp{Kind: RespQueueFull} }

func AnglesResp(a geometry.Angles) Resp { return Resp{Kind: RespAngles, Angles: a} }

func CurPositionResp(p model.ServoPosition) Resp {
	return Resp{Kind: RespCurPosition, CurPosition: p}
}
