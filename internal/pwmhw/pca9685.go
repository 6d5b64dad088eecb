package pwmhw

import (
	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/x/devices/pca9685"
)

// pca9685PeriodUs is the pulse period at the 50Hz servo frequency this
// driver configures the board for.
const pca9685PeriodUs = 20000

// PCA9685 implements controller.PwmWriter directly against a PCA9685
// 16-channel I2C PWM driver, rather than going through devices.PWMDevice:
// a PCA9685 output channel is an I2C register index, not a GPIO devices.Pin,
// so the Pin-keyed abstraction ThreeChannel uses doesn't fit here. This is
// the alternate backend for host/Raspberry Pi builds; the XIAO firmware
// build uses HobbyServo.
type PCA9685 struct {
	dev                        *pca9685.Device
	shoulderCh, elbowCh, penCh uint8
	log                        logging.Logger
}

// NewPCA9685 resets dev and configures it for 50Hz servo PWM, then returns
// a PwmWriter routing shoulder/elbow/pen to the given channel numbers.
func NewPCA9685(dev *pca9685.Device, shoulderCh, elbowCh, penCh uint8, log logging.Logger) (*PCA9685, error) {
	if err := dev.Configure(true); err != nil {
		return nil, err
	}
	if err := dev.SetFrequency(50); err != nil {
		return nil, err
	}
	return &PCA9685{dev: dev, shoulderCh: shoulderCh, elbowCh: elbowCh, penCh: penCh, log: log}, nil
}

func (p *PCA9685) WriteShoulder(dutyUs uint16) { p.write(p.shoulderCh, dutyUs, "shoulder") }
func (p *PCA9685) WriteElbow(dutyUs uint16)    { p.write(p.elbowCh, dutyUs, "elbow") }
func (p *PCA9685) WritePen(dutyUs uint16)      { p.write(p.penCh, dutyUs, "pen") }

func (p *PCA9685) write(channel uint8, dutyUs uint16, name string) {
	ratio := float32(dutyUs) / float32(pca9685PeriodUs)
	if err := p.dev.SetPWM(channel, ratio, false); err != nil {
		p.log.Error().Err(err).Msg(name + " pwm write failed")
	}
}
