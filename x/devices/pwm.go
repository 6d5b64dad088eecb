// Package devices declares the small hardware interfaces internal/pwmhw's
// backends are built against, so a PwmWriter can target either a
// pin-addressed PWM controller (ThreeChannel) or an I2C-addressed one
// (pca9685) without either depending on TinyGo's machine package directly.
// There is no per-platform implementation here: both backends take their
// concrete device from the caller, such as a TinyGo machine.PWM/I2C or a
// fake in tests. No cmd/ in this module constructs either backend; the
// firmware build drives its servos through pwmhw.HobbyServo.
package devices

// PWM is one channel of a PWM controller, driven by servo pulse width
// rather than raw duty cycle since every caller in this module drives a
// hobby servo.
type PWM interface {
	// Set sets the duty cycle as a fraction of the period, 0.0-1.0.
	Set(duty float32) error

	// SetMicroseconds sets the pulse width in microseconds. Hobby servos
	// expect roughly 500-2500us within a 20ms (50Hz) period.
	SetMicroseconds(us uint32) error

	// Stop drives the channel to 0% duty.
	Stop() error
}

// PWMDevice hands out PWM channels by pin and fixes the frequency shared
// by all of them.
type PWMDevice interface {
	// Channel returns the PWM channel for pin, configuring it on first use.
	Channel(pin Pin) (PWM, error)

	// Configure sets the shared PWM frequency in Hz; 50 for servo pulses.
	Configure(frequency uint32) error

	// SetFrequency changes the frequency of every channel already handed
	// out by Channel.
	SetFrequency(frequency uint32) error
}
