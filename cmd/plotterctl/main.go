// Command plotterctl is the host-side client for a brachiograph
// controller: a thin go.bug.st/serial wrapper that sends one Op per
// invocation, or drives an interactive debug-line REPL, following
// itohio-EasyRobot's cmd/clients/manipulator/main.go for flag layout and
// serial-port handling.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jneem/brachiograph/internal/config"
	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/logging"
	"github.com/jneem/brachiograph/internal/model"
	"github.com/jneem/brachiograph/internal/protocol"
	"github.com/jneem/brachiograph/internal/pwmmap"
	"go.bug.st/serial"
)

// Exit codes per spec.md §6.
const (
	exitOK    = 0
	exitUsage = 1
	exitConn  = 2
	exitProto = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("plotterctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	portName := fs.String("port", "", "serial port device, e.g. /dev/ttyACM0")
	baud := fs.Int("baud", 9600, "baud rate (nominal over USB-CDC)")
	listPorts := fs.Bool("list", false, "list available serial ports and exit")
	debug := fs.Bool("debug", false, "interactive human-readable line-protocol REPL")
	configPath := fs.String("config", "", "calibration/geometry YAML sidecar file")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *listPorts {
		ports, err := serial.GetPortsList()
		if err != nil {
			fmt.Fprintln(stderr, "list ports:", err)
			return exitConn
		}
		fmt.Fprintln(stdout, "Available serial ports:")
		for _, p := range ports {
			fmt.Fprintln(stdout, " ", p)
		}
		return exitOK
	}

	if *portName == "" {
		fmt.Fprintln(stderr, "-port is required")
		fs.Usage()
		return exitUsage
	}

	tables := config.DefaultTables()
	if *configPath != "" {
		if _, loaded, err := config.LoadFile(*configPath); err == nil {
			tables = loaded
		} else {
			fmt.Fprintln(stderr, "load config:", err)
			return exitUsage
		}
	}

	mode := &serial.Mode{BaudRate: *baud}
	port, err := serial.Open(*portName, mode)
	if err != nil {
		fmt.Fprintln(stderr, "open port:", err)
		return exitConn
	}
	defer port.Close()
	if err := port.SetReadTimeout(readTimeout); err != nil {
		fmt.Fprintln(stderr, "set read timeout:", err)
		return exitConn
	}

	log := logging.New()
	c := newClient(port, log)

	if *debug {
		return runDebugREPL(c, stdin, stdout, stderr)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "usage: plotterctl -port <dev> <move|penup|pendown|cancel|position|calibrate> ...")
		return exitUsage
	}

	op, err := buildOp(rest, tables)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	resp, err := c.send(op)
	if err != nil {
		fmt.Fprintln(stderr, "send:", err)
		return exitConn
	}
	fmt.Fprintln(stdout, protocol.FormatResp(resp))
	if resp.Kind == protocol.RespNack {
		return exitProto
	}
	return exitOK
}

// buildOp translates a CLI subcommand and its arguments into an Op.
// "move X Y" takes coordinates in the arm's native units (not the debug
// line codec's tenths-of-a-unit); calibrate re-sends the joint/direction
// table already present in the loaded config sidecar.
func buildOp(args []string, tables pwmmap.Tables) (protocol.Op, error) {
	switch args[0] {
	case "move":
		if len(args) != 3 {
			return protocol.Op{}, fmt.Errorf("move requires X and Y")
		}
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return protocol.Op{}, fmt.Errorf("bad X: %w", err)
		}
		y, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return protocol.Op{}, fmt.Errorf("bad Y: %w", err)
		}
		return protocol.Op{
			Kind: protocol.OpMoveTo,
			MoveTo: geometry.Point{
				X: fixedmath.FromFloat64(x),
				Y: fixedmath.FromFloat64(y),
			},
		}, nil
	case "penup":
		return protocol.Op{Kind: protocol.OpPenUp}, nil
	case "pendown":
		return protocol.Op{Kind: protocol.OpPenDown}, nil
	case "cancel":
		return protocol.Op{Kind: protocol.OpCancel}, nil
	case "position":
		return protocol.Op{Kind: protocol.OpGetPosition}, nil
	case "calibrate":
		if len(args) != 3 {
			return protocol.Op{}, fmt.Errorf("calibrate requires <shoulder|elbow> <inc|dec>")
		}
		joint, err := parseJoint(args[1])
		if err != nil {
			return protocol.Op{}, err
		}
		dir, err := parseDirection(args[2])
		if err != nil {
			return protocol.Op{}, err
		}
		table := tables.Shoulder
		if joint == model.Elbow {
			table = tables.Elbow
		}
		entries := table.Inc
		if dir == model.Decreasing {
			entries = table.Dec
		}
		return protocol.Op{Kind: protocol.OpCalibrate, Joint: joint, Direction: dir, Table: entries}, nil
	default:
		return protocol.Op{}, fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func parseJoint(s string) (model.Joint, error) {
	switch s {
	case "shoulder":
		return model.Shoulder, nil
	case "elbow":
		return model.Elbow, nil
	default:
		return 0, fmt.Errorf("unknown joint %q", s)
	}
}

func parseDirection(s string) (model.Direction, error) {
	switch s {
	case "inc":
		return model.Increasing, nil
	case "dec":
		return model.Decreasing, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// runDebugREPL reads human-readable debug lines from stdin (see
// internal/protocol/debugline.go) and prints the board's response, one per
// line, until stdin closes.
func runDebugREPL(c *client, stdin *os.File, stdout, stderr *os.File) int {
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		op, err := protocol.ParseLine(line)
		if err != nil {
			fmt.Fprintln(stderr, "parse error:", err)
			continue
		}
		resp, err := c.send(op)
		if err != nil {
			fmt.Fprintln(stderr, "send:", err)
			return exitConn
		}
		fmt.Fprintln(stdout, protocol.FormatResp(resp))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(stderr, "stdin:", err)
		return exitProto
	}
	return exitOK
}
