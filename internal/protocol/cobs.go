package protocol

import "github.com/jneem/brachiograph/internal/plotterr"

// Frames are COBS-encoded with a trailing zero-byte terminator, the same
// scheme original_source/embedded/src/serial.rs uses via postcard's
// CobsAccumulator: zero bytes cannot appear mid-frame, so the terminator
// unambiguously marks a boundary and a partial read can always be
// retried by waiting for more bytes.

// EncodeFrame COBS-encodes payload and appends the 0x00 terminator.
func EncodeFrame(payload []byte) []byte {
	encoded := cobsEncode(payload)
	return append(encoded, 0)
}

func cobsEncode(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/254+2)
	codeIdx := len(out)
	out = append(out, 0) // placeholder
	code := byte(1)

	flush := func() {
		out[codeIdx] = code
	}

	for _, b := range data {
		if b == 0 {
			flush()
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
			continue
		}
		out = append(out, b)
		code++
		if code == 0xFF {
			flush()
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
		}
	}
	flush()
	return out
}

func cobsDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		code := data[i]
		if code == 0 {
			return nil, plotterr.New(plotterr.FrameDecode, "zero byte inside COBS block")
		}
		i++
		blockLen := int(code) - 1
		if i+blockLen > len(data) {
			return nil, plotterr.New(plotterr.FrameDecode, "truncated COBS block")
		}
		out = append(out, data[i:i+blockLen]...)
		i += blockLen
		if code != 0xFF && i < len(data) {
			out = append(out, 0)
		}
	}
	return out, nil
}

// FrameAccumulator splits a byte stream into COBS frames terminated by
// 0x00, bounded to MaxFrameSize bytes so a misbehaving sender cannot grow
// it unbounded (spec.md §4.7 caps the USB accumulator at 128 B).
type FrameAccumulator struct {
	buf []byte
	max int
}

// MaxFrameSize mirrors original_source/embedded/src/serial.rs's BUF_SIZE.
const MaxFrameSize = 128

func NewFrameAccumulator() *FrameAccumulator {
	return &FrameAccumulator{max: MaxFrameSize}
}

// Feed appends data and returns every complete, decoded frame payload it
// now contains. On overflow (more than max bytes buffered with no
// terminator) it drops the accumulated bytes and reports FrameDecode.
func (f *FrameAccumulator) Feed(data []byte) ([][]byte, error) {
	f.buf = append(f.buf, data...)

	var frames [][]byte
	for {
		idx := indexZero(f.buf)
		if idx < 0 {
			break
		}
		encoded := f.buf[:idx]
		f.buf = f.buf[idx+1:]
		if len(encoded) == 0 {
			continue
		}
		payload, err := cobsDecode(encoded)
		if err != nil {
			continue // spec.md §7: corrupt frame consumed and dropped
		}
		frames = append(frames, payload)
	}

	if len(f.buf) > f.max {
		f.buf = nil
		return frames, plotterr.New(plotterr.FrameDecode, "frame accumulator overflow")
	}
	return frames, nil
}

func indexZero(b []byte) int {
	for i, v := range b {
		if v == 0 {
			return i
		}
	}
	return -1
}
