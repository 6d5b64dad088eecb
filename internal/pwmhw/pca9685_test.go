package pwmhw

import (
	"testing"

	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/x/devices/pca9685"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeI2C records every Tx call's write buffer, keyed by its leading
// register address byte, so a test can inspect the last write to a
// channel's registers without modeling real PCA9685 register semantics.
type fakeI2C struct {
	writes map[uint8][]byte
}

func newFakeI2C() *fakeI2C { return &fakeI2C{writes: map[uint8][]byte{}} }

func (f *fakeI2C) ReadRegister(addr, r uint8, buf []byte) error { return nil }
func (f *fakeI2C) WriteRegister(addr, r uint8, buf []byte) error {
	f.writes[r] = append([]byte{}, buf...)
	return nil
}
func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0 {
		f.writes[w[0]] = append([]byte{}, w[1:]...)
	}
	return nil
}

func TestPCA9685RoutesChannelsAndEncodesDutyRatio(t *testing.T) {
	bus := newFakeI2C()
	dev := pca9685.New(bus, 0)
	p, err := NewPCA9685(dev, 0, 1, 2, logging.Nop())
	require.NoError(t, err)

	p.WriteShoulder(1000) // 1000us of the 20000us 50Hz period
	shoulderReg := uint8(pca9685.LED0OnL + 4*0)
	assert.Contains(t, bus.writes, shoulderReg)

	p.WriteElbow(1500)
	elbowReg := uint8(pca9685.LED0OnL + 4*1)
	assert.Contains(t, bus.writes, elbowReg)

	p.WritePen(1800)
	penReg := uint8(pca9685.LED0OnL + 4*2)
	assert.Contains(t, bus.writes, penReg)
}
