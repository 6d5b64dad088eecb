// Package pwmhw provides controller.PwmWriter backends: HobbyServo (the
// XIAO firmware build's tinygo.org/x/drivers/servo backend), PCA9685 (an
// I2C PWM board for host/Raspberry Pi builds), and ThreeChannel (a
// portable devices.PWMDevice-based backend for other boards), so the same
// Controller drives whichever is wired in without knowing which.
package pwmhw

import (
	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/x/devices"
)

// ThreeChannel implements controller.PwmWriter over three devices.PWM
// channels obtained from any devices.PWMDevice — a TinyGo machine.PWM, or
// a stub for tests. (A PCA9685 board goes through the PCA9685 backend
// instead.) controller.PwmWriter's methods
// don't return errors (the tick task has nowhere to propagate one to), so
// a failing SetMicroseconds is logged and otherwise ignored; the next
// tick tries again with a fresh duty value.
type ThreeChannel struct {
	shoulder, elbow, pen devices.PWM
	log                  logging.Logger
}

// NewThreeChannel configures dev for 50Hz servo PWM and opens one
// channel per pin.
func NewThreeChannel(dev devices.PWMDevice, shoulderPin, elbowPin, penPin devices.Pin, log logging.Logger) (*ThreeChannel, error) {
	if err := dev.Configure(50); err != nil {
		return nil, err
	}
	shoulder, err := dev.Channel(shoulderPin)
	if err != nil {
		return nil, err
	}
	elbow, err := dev.Channel(elbowPin)
	if err != nil {
		return nil, err
	}
	pen, err := dev.Channel(penPin)
	if err != nil {
		return nil, err
	}
	return &ThreeChannel{shoulder: shoulder, elbow: elbow, pen: pen, log: log}, nil
}

func (t *ThreeChannel) WriteShoulder(dutyUs uint16) {
	if err := t.shoulder.SetMicroseconds(uint32(dutyUs)); err != nil {
		t.log.Error().Err(err).Msg("shoulder pwm write failed")
	}
}

func (t *ThreeChannel) WriteElbow(dutyUs uint16) {
	if err := t.elbow.SetMicroseconds(uint32(dutyUs)); err != nil {
		t.log.Error().Err(err).Msg("elbow pwm write failed")
	}
}

func (t *ThreeChannel) WritePen(dutyUs uint16) {
	if err := t.pen.SetMicroseconds(uint32(dutyUs)); err != nil {
		t.log.Error().Err(err).Msg("pen pwm write failed")
	}
}
