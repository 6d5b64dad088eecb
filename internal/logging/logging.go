//go:build !logless

// Package logging wraps zerolog for every subsystem's diagnostic
// logging, following pkg/logger/logger.go's console-writer setup. The
// logless build tag swaps this file for logging_logless.go's no-op
// Logger, so Controller's Log field stays the same exported type either
// way; firmware builds that can't afford zerolog's footprint pick the
// no-op variant at compile time instead of threading an interface
// through every call site.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// Event wraps *zerolog.Event so both build variants expose the same
// chainable Err/Msg API regardless of which is compiled in.
type Event struct {
	ev *zerolog.Event
}

func (e Event) Err(err error) Event { return Event{ev: e.ev.Err(err)} }
func (e Event) Msg(msg string)      { e.ev.Msg(msg) }

// Logger is the subset of zerolog.Logger every subsystem here uses.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger with caller info, Unix timestamps, and a
// human-readable console writer, matching pkg/logger/logger.go.
func New() Logger {
	z := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Caller().Logger()
	return Logger{z: z}
}

// Nop returns a Logger that discards everything, for tests.
func Nop() Logger {
	return Logger{z: zerolog.Nop()}
}

func (l Logger) Debug() Event { return Event{ev: l.z.Debug()} }
func (l Logger) Info() Event  { return Event{ev: l.z.Info()} }
func (l Logger) Warn() Event  { return Event{ev: l.z.Warn()} }
func (l Logger) Error() Event { return Event{ev: l.z.Error()} }
