package transport

import (
	"bytes"
	"io"
	"testing"

	"github.com/jneem/brachiograph/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipe is a minimal in-memory io.ReadWriter: writes go to out, reads come
// from a preloaded in buffer, one chunk at a time.
type pipe struct {
	in  *bytes.Buffer
	out *bytes.Buffer
}

func newPipe(preloaded []byte) *pipe {
	return &pipe{in: bytes.NewBuffer(preloaded), out: &bytes.Buffer{}}
}

func (p *pipe) Read(b []byte) (int, error) {
	if p.in.Len() == 0 {
		return 0, io.EOF
	}
	return p.in.Read(b)
}

func (p *pipe) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

func TestPollDecodesFramedOp(t *testing.T) {
	frame := protocol.EncodeFrame(protocol.EncodeOp(protocol.Op{Kind: protocol.OpPenDown}))
	tr := New(newPipe(frame))

	ops, err := tr.Poll()
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, protocol.OpPenDown, ops[0].Kind)
}

func TestPollHandlesMultipleFramesAcrossCalls(t *testing.T) {
	frame1 := protocol.EncodeFrame(protocol.EncodeOp(protocol.Op{Kind: protocol.OpCancel}))
	frame2 := protocol.EncodeFrame(protocol.EncodeOp(protocol.Op{Kind: protocol.OpGetPosition}))
	p := newPipe(append(frame1, frame2...))
	tr := New(p)

	var all []protocol.Op
	for {
		ops, err := tr.Poll()
		require.NoError(t, err)
		if len(ops) == 0 {
			break
		}
		all = append(all, ops...)
	}
	require.Len(t, all, 2)
	assert.Equal(t, protocol.OpCancel, all[0].Kind)
	assert.Equal(t, protocol.OpGetPosition, all[1].Kind)
}

func TestSendAndWriteRoundTrip(t *testing.T) {
	p := newPipe(nil)
	tr := New(p)

	tr.Send(protocol.Ack())
	require.NoError(t, tr.Write())
	assert.Equal(t, 0, tr.PendingWrites())

	decoded, err := decodeFirstFrame(p.out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, protocol.RespAck, decoded.Kind)
}

func decodeFirstFrame(b []byte) (protocol.Resp, error) {
	acc := protocol.NewFrameAccumulator()
	frames, err := acc.Feed(b)
	if err != nil {
		return protocol.Resp{}, err
	}
	return protocol.DecodeResp(frames[0])
}

func TestPollOnEmptyReturnsNoOps(t *testing.T) {
	tr := New(newPipe(nil))
	ops, err := tr.Poll()
	require.NoError(t, err)
	assert.Empty(t, ops)
}
