package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/plotterr"
)

// ParseLine parses one line of the human-readable debug protocol used by
// cmd/plotterctl's -debug REPL: "moveto X Y" (X, Y in tenths of a unit),
// "penup", "pendown", "cancel". This is a host convenience only — the
// firmware never speaks it, only the framed binary codec in wire.go.
func ParseLine(s string) (Op, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return Op{}, plotterr.New(plotterr.FrameDecode, "empty debug line")
	}

	switch words[0] {
	case "moveto":
		if len(words) != 3 {
			return Op{}, plotterr.New(plotterr.FrameDecode, "moveto requires X and Y")
		}
		x, err := parseTenths(words[1])
		if err != nil {
			return Op{}, err
		}
		y, err := parseTenths(words[2])
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: OpMoveTo, MoveTo: geometry.Point{X: x, Y: y}}, nil
	case "penup":
		return Op{Kind: OpPenUp}, nil
	case "pendown":
		return Op{Kind: OpPenDown}, nil
	case "cancel":
		return Op{Kind: OpCancel}, nil
	default:
		return Op{}, plotterr.New(plotterr.FrameDecode, "unknown debug op %q", words[0])
	}
}

// parseTenths parses an integer number of tenths-of-a-unit into a Fixed,
// matching original_source's "i16 / 10" debug-line coordinate encoding.
func parseTenths(s string) (fixedmath.Fixed, error) {
	v, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, plotterr.New(plotterr.FrameDecode, "bad coordinate %q", s)
	}
	return fixedmath.FromFloat64(float64(v) / 10), nil
}

// FormatResp renders resp for the -debug REPL's output.
func FormatResp(resp Resp) string {
	switch resp.Kind {
	case RespAck:
		return "ack"
	case RespNack:
		return "nack"
	case RespQueueFull:
		return "queue_full"
	case RespAngles:
		return fmt.Sprintf("angles %.2f %.2f", resp.Angles.Shoulder.Deg.Float64(), resp.Angles.Elbow.Deg.Float64())
	case RespCurPosition:
		return fmt.Sprintf("position %d %d %d", resp.CurPosition.Shoulder, resp.CurPosition.Elbow, resp.CurPosition.Pen)
	default:
		return "unknown"
	}
}
