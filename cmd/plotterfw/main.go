//go:build tinygo && sam && xiao

// Command plotterfw is the brachiograph's firmware: it wires
// internal/controller to a USB-serial UART and three PWM-driven servos and
// runs the periodic tick loop, following cmd/fw/manipulator/main.xiao.go's
// structure (board init, heartbeat blink, read-dispatch loop) adapted from
// the dndm actuator-config protocol to spec.md's Op/Resp protocol.
package main

//go:generate tinygo flash -target=xiao

import (
	"machine"
	"time"

	"github.com/jneem/brachiograph/internal/config"
	"github.com/jneem/brachiograph/internal/controller"
	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/internal/motion"
	"github.com/jneem/brachiograph/internal/pwmhw"
	"github.com/jneem/brachiograph/internal/transport"
)

// tickInterval is the controller's periodic tick period. spec.md leaves
// this as an implementation choice; 20ms (50Hz) keeps Movement
// interpolation smooth relative to T_lift (800ms) and typical move
// durations.
const tickInterval = 20 * time.Millisecond

var (
	uart = machine.Serial

	shoulderPin = machine.D8
	elbowPin    = machine.D9
	penPin      = machine.D10

	led = machine.LED
)

// workspaceCenter picks the midpoint of the configured workspace
// rectangle as the position the controller assumes at power-on, since the
// board has no encoders to report where the arm actually is.
func workspaceCenter(geom geometry.GeomConfig) geometry.Point {
	two := fixedmath.FromInt(2)
	return geometry.Point{
		X: geom.XRange[0].Add(geom.XRange[1]).Div(two),
		Y: geom.YRange[0].Add(geom.YRange[1]).Div(two),
	}
}

func blink(period time.Duration) {
	for {
		time.Sleep(period)
		led.Set(!led.Get())
	}
}

func main() {
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	uart.Configure(machine.UARTConfig{})

	log := logging.New()

	geom := geometry.Default()
	tables := config.DefaultTables()
	m := motion.New(workspaceCenter(geom), motion.DefaultTargetSpeed, motion.DefaultTLift)

	pwm, err := pwmhw.NewHobbyServo(shoulderPin, elbowPin, penPin)
	if err != nil {
		log.Error().Err(err).Msg("pwm init failed")
		go blink(100 * time.Millisecond)
		select {}
	}

	ctl := controller.New(geom, m, tables, pwm, log)
	tr := transport.New(uart)

	go blink(1500 * time.Millisecond)

	for {
		now := time.Now()

		ops, err := tr.Poll()
		if err != nil {
			log.Warn().Err(err).Msg("transport poll failed")
		}
		for _, op := range ops {
			tr.Send(ctl.HandleOp(op))
		}
		if err := tr.Write(); err != nil {
			log.Warn().Err(err).Msg("transport write failed")
		}

		ctl.Tick(now)

		time.Sleep(tickInterval)
	}
}
