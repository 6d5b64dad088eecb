package main

import (
	"time"

	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/internal/plotterr"
	"github.com/jneem/brachiograph/internal/protocol"
)

// readTimeout bounds one port.Read call so the retry loop in send can
// notice a QueueFull reply and resend without blocking forever, per
// spec.md §4.8: "the host's serial read uses a short (<=50ms) timeout so
// the writer thread can retry on QueueFull without starving."
const readTimeout = 50 * time.Millisecond

// queueFullRetryDelay is how long send waits before resending an Op the
// board reported QueueFull for, grounded on
// original_source/crates/brachiograph_host/src/lib.rs's Serial::send loop.
const queueFullRetryDelay = 500 * time.Millisecond

// maxRetries bounds the QueueFull retry loop so a CLI invocation against a
// wedged board fails instead of hanging forever.
const maxRetries = 20

// portReadWriter is the subset of go.bug.st/serial.Port client needs.
type portReadWriter interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// client is the host-side mirror of internal/transport.Transport: it
// encodes one Op per call, frames it, and blocks (up to the configured
// read timeout, retried) for the board's one Resp.
type client struct {
	port portReadWriter
	acc  *protocol.FrameAccumulator
	log  logging.Logger

	// pending holds Resps decoded from a Read that returned more than one
	// complete frame at once, so a later frame never gets silently
	// dropped while an earlier one is handled.
	pending []protocol.Resp
}

func newClient(port portReadWriter, log logging.Logger) *client {
	return &client{port: port, acc: protocol.NewFrameAccumulator(), log: log}
}

// send writes op and waits for the board's Resp, resending on QueueFull.
func (c *client) send(op protocol.Op) (protocol.Resp, error) {
	frame := protocol.EncodeFrame(protocol.EncodeOp(op))

	for attempt := 0; attempt < maxRetries; attempt++ {
		if _, err := c.port.Write(frame); err != nil {
			return protocol.Resp{}, plotterr.New(plotterr.TransportLost, "write: %v", err)
		}

		resp, err := c.readResp()
		if err != nil {
			return protocol.Resp{}, err
		}
		if resp.Kind == protocol.RespQueueFull {
			c.log.Warn().Msg("queue full, retrying")
			time.Sleep(queueFullRetryDelay)
			continue
		}
		return resp, nil
	}
	return protocol.Resp{}, plotterr.New(plotterr.TransportLost, "board never drained its queue")
}

// readResp blocks, polling the port in readTimeout-bounded chunks, until a
// complete Resp frame arrives. A single Read can return more than one
// frame's worth of bytes; any extra decoded Resps are queued in pending
// rather than discarded.
func (c *client) readResp() (protocol.Resp, error) {
	if len(c.pending) > 0 {
		resp := c.pending[0]
		c.pending = c.pending[1:]
		return resp, nil
	}

	buf := make([]byte, 64)
	for {
		n, err := c.port.Read(buf)
		if err != nil {
			return protocol.Resp{}, plotterr.New(plotterr.TransportLost, "read: %v", err)
		}
		if n == 0 {
			continue
		}

		frames, accErr := c.acc.Feed(buf[:n])
		for _, f := range frames {
			resp, decodeErr := protocol.DecodeResp(f)
			if decodeErr != nil {
				c.log.Warn().Err(decodeErr).Msg("dropping malformed response frame")
				continue
			}
			c.pending = append(c.pending, resp)
		}
		if accErr != nil {
			c.log.Warn().Err(accErr).Msg("frame accumulator overflow, resynchronizing")
		}
		if len(c.pending) > 0 {
			resp := c.pending[0]
			c.pending = c.pending[1:]
			return resp, nil
		}
	}
}
