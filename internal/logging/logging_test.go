//go:build !logless

package logging

import "testing"

func TestChainedCallsDoNotPanic(t *testing.T) {
	log := Nop()
	log.Warn().Err(nil).Msg("test")
	log.Error().Msg("test")
	log.Info().Msg("test")
	log.Debug().Msg("test")
}
