package devices

// Pin is a GPIO pin, the shape ThreeChannel's PWMDevice keys its channels
// by. Nothing in this module wires a real GPIO implementation to it yet
// (the firmware build drives servos through tinygo.org/x/drivers/servo
// directly); it exists so ThreeChannel and its tests share one pin type
// regardless of what eventually provides it.
type Pin interface {
	PinInterrupt

	// Get returns the current pin state (high = true, low = false).
	Get() bool

	// Set sets the pin state.
	Set(value bool)

	// High sets the pin high.
	High()

	// Low sets the pin low.
	Low()
}

// PinInterrupt lets a caller register an edge-triggered callback on a pin.
type PinInterrupt interface {
	// SetInterrupt arms change as the trigger; callback runs with the pin
	// that fired.
	SetInterrupt(change PinChange, callback func(Pin)) error
}

// PinChange selects which edge(s) arm a SetInterrupt callback.
type PinChange uint8

const (
	PinFalling PinChange = 1 << iota
	PinRising
	PinToggle = PinFalling | PinRising
)
