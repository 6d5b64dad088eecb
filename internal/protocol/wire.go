package protocol

import (
	"encoding/binary"

	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/model"
	"github.com/jneem/brachiograph/internal/plotterr"
	"github.com/jneem/brachiograph/internal/pwmmap"
)

// MaxTableLen is spec.md §4.6's calibration-table wire limit.
const MaxTableLen = 16

// EncodeOp writes op's fixed-width little-endian wire encoding. Fixed
// values are transported as their underlying int32 bit pattern, per
// spec.md §4.6.
func EncodeOp(op Op) []byte {
	buf := []byte{byte(op.Kind)}

	switch op.Kind {
	case OpMoveTo:
		buf = appendFixed(buf, op.MoveTo.X)
		buf = appendFixed(buf, op.MoveTo.Y)
	case OpChangePosition:
		buf = appendInt16(buf, op.ChangePosition.Shoulder)
		buf = appendInt16(buf, op.ChangePosition.Elbow)
	case OpCalibrate:
		buf = append(buf, byte(op.Joint), byte(op.Direction))
		buf = append(buf, byte(len(op.Table)))
		for _, e := range op.Table {
			buf = appendInt16(buf, e.Degrees)
			buf = appendUint16(buf, e.DutyUs)
		}
	case OpPenUp, OpPenDown, OpCancel, OpGetPosition:
		// no payload
	}
	return buf
}

// DecodeOp parses a frame produced by EncodeOp. It returns a
// plotterr.FrameDecode error on truncated or malformed input;
// Transport.Poll drops such a frame without emitting an Op or a Resp.
func DecodeOp(buf []byte) (Op, error) {
	if len(buf) < 1 {
		return Op{}, plotterr.New(plotterr.FrameDecode, "empty frame")
	}
	kind := OpKind(buf[0])
	rest := buf[1:]

	switch kind {
	case OpMoveTo:
		if len(rest) < 8 {
			return Op{}, plotterr.New(plotterr.FrameDecode, "MoveTo frame too short")
		}
		x := readFixed(rest[0:4])
		y := readFixed(rest[4:8])
		return Op{Kind: OpMoveTo, MoveTo: geometry.Point{X: x, Y: y}}, nil

	case OpPenUp:
		return Op{Kind: OpPenUp}, nil
	case OpPenDown:
		return Op{Kind: OpPenDown}, nil
	case OpCancel:
		return Op{Kind: OpCancel}, nil
	case OpGetPosition:
		return Op{Kind: OpGetPosition}, nil

	case OpChangePosition:
		if len(rest) < 4 {
			return Op{}, plotterr.New(plotterr.FrameDecode, "ChangePosition frame too short")
		}
		return Op{
			Kind: OpChangePosition,
			ChangePosition: model.ServoPositionDelta{
				Shoulder: readInt16(rest[0:2]),
				Elbow:    readInt16(rest[2:4]),
			},
		}, nil

	case OpCalibrate:
		if len(rest) < 3 {
			return Op{}, plotterr.New(plotterr.FrameDecode, "Calibrate frame too short")
		}
		joint := model.Joint(rest[0])
		dir := model.Direction(rest[1])
		count := int(rest[2])
		if count > MaxTableLen {
			return Op{}, plotterr.New(plotterr.FrameDecode, "calibration table count %d exceeds max %d", count, MaxTableLen)
		}
		need := 3 + count*4
		if len(rest) < need {
			return Op{}, plotterr.New(plotterr.FrameDecode, "Calibrate frame too short for count %d", count)
		}
		table := make([]pwmmap.Entry, count)
		off := 3
		for i := 0; i < count; i++ {
			table[i] = pwmmap.Entry{
				Degrees: readInt16(rest[off : off+2]),
				DutyUs:  readUint16(rest[off+2 : off+4]),
			}
			off += 4
		}
		return Op{Kind: OpCalibrate, Joint: joint, Direction: dir, Table: table}, nil

	default:
		return Op{}, plotterr.New(plotterr.FrameDecode, "unknown op kind %d", kind)
	}
}

// EncodeResp writes resp's fixed-width little-endian wire encoding.
func EncodeResp(resp Resp) []byte {
	buf := []byte{byte(resp.Kind)}
	switch resp.Kind {
	case RespAngles:
		buf = appendFixed(buf, resp.Angles.Shoulder.Deg)
		buf = appendFixed(buf, resp.Angles.Elbow.Deg)
	case RespCurPosition:
		buf = appendUint16(buf, resp.CurPosition.Shoulder)
		buf = appendUint16(buf, resp.CurPosition.Elbow)
		buf = appendUint16(buf, resp.CurPosition.Pen)
	case RespAck, RespNack, RespQueueFull:
		// no payload
	}
	return buf
}

// DecodeResp parses a frame produced by EncodeResp.
func DecodeResp(buf []byte) (Resp, error) {
	if len(buf) < 1 {
		return Resp{}, plotterr.New(plotterr.FrameDecode, "empty frame")
	}
	kind := RespKind(buf[0])
	rest := buf[1:]

	switch kind {
	case RespAck:
		return Resp{Kind: RespAck}, nil
	case RespNack:
		return Resp{Kind: RespNack}, nil
	case RespQueueFull:
		return Resp{Kind: RespQueueFull}, nil
	case RespAngles:
		if len(rest) < 8 {
			return Resp{}, plotterr.New(plotterr.FrameDecode, "Angles frame too short")
		}
		return Resp{Kind: RespAngles, Angles: geometry.Angles{
			Shoulder: fixedmath.FromDegrees(readFixed(rest[0:4])),
			Elbow:    fixedmath.FromDegrees(readFixed(rest[4:8])),
		}}, nil
	case RespCurPosition:
		if len(rest) < 6 {
			return Resp{}, plotterr.New(plotterr.FrameDecode, "CurPosition frame too short")
		}
		return Resp{Kind: RespCurPosition, CurPosition: model.ServoPosition{
			Shoulder: readUint16(rest[0:2]),
			Elbow:    readUint16(rest[2:4]),
			Pen:      readUint16(rest[4:6]),
		}}, nil
	default:
		return Resp{}, plotterr.New(plotterr.FrameDecode, "unknown resp kind %d", kind)
	}
}

func appendFixed(buf []byte, f fixedmath.Fixed) []byte {
	return appendUint32(buf, uint32(int32(f)))
}

func readFixed(b []byte) fixedmath.Fixed {
	return fixedmath.Fixed(int32(binary.LittleEndian.Uint32(b)))
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendInt16(buf []byte, v int16) []byte {
	return appendUint16(buf, uint16(v))
}

func readUint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

func readInt16(b []byte) int16 {
	return int16(readUint16(b))
}
