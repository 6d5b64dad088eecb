// Package transport drives the USB serial link: it reads available bytes
// without blocking, decodes complete frames into protocol.Op values, and
// queues protocol.Resp frames to be written out opportunistically. It
// never blocks the RX path on a slow or stalled writer.
package transport

import (
	"io"

	"github.com/jneem/brachiograph/internal/plotterr"
	"github.com/jneem/brachiograph/internal/protocol"
)

// readChunk bounds a single non-blocking Read call, mirroring
// original_source/embedded/src/serial.rs's fixed read buffer.
const readChunk = 64

// Transport is the single per-direction handler spec.md §4.7 describes:
// Poll feeds bytes in and returns the decoded Ops, dispatching them is the
// caller's job, and Write drains queued response bytes out.
type Transport struct {
	rw       io.ReadWriter
	acc      *protocol.FrameAccumulator
	writeBuf []byte
	readBuf  []byte
}

func New(rw io.ReadWriter) *Transport {
	return &Transport{
		rw:      rw,
		acc:     protocol.NewFrameAccumulator(),
		readBuf: make([]byte, readChunk),
	}
}

// Poll drains available bytes from the link and returns every Op decoded
// from a complete frame since the last call. A malformed frame is
// consumed and dropped (spec.md §7). Poll returns a TransportLost error
// when the underlying Read itself fails (io.EOF counts as no data), and
// the accumulator's FrameDecode error, alongside any Ops decoded, when
// more than protocol.MaxFrameSize bytes pile up without a terminator.
func (t *Transport) Poll() ([]protocol.Op, error) {
	n, err := t.rw.Read(t.readBuf)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, plotterr.New(plotterr.TransportLost, "read: %v", err)
	}
	if n == 0 {
		return nil, nil
	}

	frames, accErr := t.acc.Feed(t.readBuf[:n])
	ops := make([]protocol.Op, 0, len(frames))
	for _, f := range frames {
		op, decodeErr := protocol.DecodeOp(f)
		if decodeErr != nil {
			continue // spec.md §7: discard the frame, no Op emitted
		}
		ops = append(ops, op)
	}
	return ops, accErr
}

// Send queues a Resp for writing, encoded and COBS-framed.
func (t *Transport) Send(resp protocol.Resp) {
	frame := protocol.EncodeFrame(protocol.EncodeResp(resp))
	t.writeBuf = append(t.writeBuf, frame...)
}

// Write pushes as much of the queued response bytes as the link accepts
// right now, never blocking. It returns a TransportLost error (and drops
// the buffered bytes) if the underlying Write fails.
func (t *Transport) Write() error {
	if len(t.writeBuf) == 0 {
		return nil
	}
	n, err := t.rw.Write(t.writeBuf)
	if err != nil {
		t.writeBuf = nil
		return plotterr.New(plotterr.TransportLost, "write: %v", err)
	}
	t.writeBuf = t.writeBuf[n:]
	return nil
}

// PendingWrites reports how many response bytes are still queued.
func (t *Transport) PendingWrites() int {
	return len(t.writeBuf)
}
