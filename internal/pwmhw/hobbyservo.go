//go:build tinygo && sam && xiao

package pwmhw

import (
	"errors"
	"math"

	"machine"

	"tinygo.org/x/drivers/servo"
)

// xiaoTimerMapping assigns each Seeed XIAO pin to the SAMD21 TCC timer that
// drives it, grounded on pkg/robot/actuator/servos/samd21_xiao.go's
// timerMapping table.
var xiaoTimerMapping = map[machine.Pin]servo.PWM{
	machine.D9:  machine.TCC0,
	machine.D8:  machine.TCC1,
	machine.D10: machine.TCC1,
}

var errUnmappedPin = errors.New("pwmhw: pin has no XIAO TCC mapping")

// HobbyServo implements controller.PwmWriter directly on top of
// tinygo.org/x/drivers/servo, the same driver
// pkg/robot/actuator/servos/samd21_xiao.go used: each joint gets its own
// servo.Servo bound to the TCC timer its pin belongs to. Unlike ThreeChannel
// this bypasses x/devices.PWMDevice entirely, since servo.New wants the TCC
// timer and machine.Pin directly.
type HobbyServo struct {
	shoulder, elbow, pen servo.Servo
}

// NewHobbyServo builds one servo.Servo per joint pin. Every pin must have an
// entry in xiaoTimerMapping.
func NewHobbyServo(shoulderPin, elbowPin, penPin machine.Pin) (*HobbyServo, error) {
	shoulder, err := newJointServo(shoulderPin)
	if err != nil {
		return nil, err
	}
	elbow, err := newJointServo(elbowPin)
	if err != nil {
		return nil, err
	}
	pen, err := newJointServo(penPin)
	if err != nil {
		return nil, err
	}
	return &HobbyServo{shoulder: shoulder, elbow: elbow, pen: pen}, nil
}

func newJointServo(pin machine.Pin) (servo.Servo, error) {
	timer, ok := xiaoTimerMapping[pin]
	if !ok {
		return servo.Servo{}, errUnmappedPin
	}
	return servo.New(timer, pin)
}

func (h *HobbyServo) WriteShoulder(dutyUs uint16) { writeServo(h.shoulder, dutyUs) }
func (h *HobbyServo) WriteElbow(dutyUs uint16)    { writeServo(h.elbow, dutyUs) }
func (h *HobbyServo) WritePen(dutyUs uint16)      { writeServo(h.pen, dutyUs) }

// writeServo clamps dutyUs to int16 range before handing it to
// servo.Servo.SetMicroseconds, which takes a signed pulse width. Errors
// are discarded, not logged (unlike ThreeChannel, HobbyServo holds no
// Logger), since the tick loop has nowhere to propagate one to.
func writeServo(s servo.Servo, dutyUs uint16) {
	us := dutyUs
	if us > math.MaxInt16 {
		us = math.MaxInt16
	}
	_ = s.SetMicroseconds(int16(us))
}
