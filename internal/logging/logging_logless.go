//go:build logless

// Package logging, logless variant: every call is a no-op, so a firmware
// build tagged `logless` carries no zerolog dependency at all, matching
// pkg/core/logger/logger.empty.go's EmptyLog.
package logging

type Event struct{}

func (e Event) Err(err error) Event { return e }
func (e Event) Msg(msg string)      {}

type Logger struct{}

func New() Logger { return Logger{} }
func Nop() Logger { return Logger{} }

func (l Logger) Debug() Event { return Event{} }
func (l Logger) Info() Event  { return Event{} }
func (l Logger) Warn() Event  { return Event{} }
func (l Logger) Error() Event { return Event{} }
