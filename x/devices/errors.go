package devices

import "errors"

// ErrInvalidInputPin is returned when a PWM channel number is out of range
// for the controller, used by x/devices/pca9685 for its 16-channel board.
var ErrInvalidInputPin = errors.New("invalid input pin")
