package main

import (
	"bytes"
	"testing"

	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort mimics go.bug.st/serial.Port's read-timeout behavior: Read
// returns (0, nil), not an error, when there's nothing buffered yet.
type fakePort struct {
	in  *bytes.Buffer
	out *bytes.Buffer
}

func newFakePort() *fakePort {
	return &fakePort{in: &bytes.Buffer{}, out: &bytes.Buffer{}}
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.in.Len() == 0 {
		return 0, nil
	}
	return p.in.Read(b)
}

func (p *fakePort) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

func TestClientSendReceivesAck(t *testing.T) {
	port := newFakePort()
	port.in.Write(protocol.EncodeFrame(protocol.EncodeResp(protocol.Ack())))
	c := newClient(port, logging.Nop())

	resp, err := c.send(protocol.Op{Kind: protocol.OpPenUp})
	require.NoError(t, err)
	assert.Equal(t, protocol.RespAck, resp.Kind)

	sentOp, err := protocol.DecodeOp(firstFrame(t, port.out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, protocol.OpPenUp, sentOp.Kind)
}

func TestClientSendRetriesOnQueueFull(t *testing.T) {
	port := newFakePort()
	port.in.Write(protocol.EncodeFrame(protocol.EncodeResp(protocol.QueueFull())))
	c := newClient(port, logging.Nop())

	// Prime the second (post-retry) response before send starts, since
	// this fake port has no concurrent writer to append it later.
	port.in.Write(protocol.EncodeFrame(protocol.EncodeResp(protocol.Ack())))

	resp, err := c.send(protocol.Op{Kind: protocol.OpMoveTo})
	require.NoError(t, err)
	assert.Equal(t, protocol.RespAck, resp.Kind)
}

func firstFrame(t *testing.T, b []byte) []byte {
	t.Helper()
	acc := protocol.NewFrameAccumulator()
	frames, err := acc.Feed(b)
	require.NoError(t, err)
	require.NotEmpty(t, frames)
	return frames[0]
}
