package main

import (
	"testing"

	"github.com/jneem/brachiograph/internal/config"
	"github.com/jneem/brachiograph/internal/model"
	"github.com/jneem/brachiograph/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOpMove(t *testing.T) {
	op, err := buildOp([]string{"move", "0", "8"}, config.DefaultTables())
	require.NoError(t, err)
	assert.Equal(t, protocol.OpMoveTo, op.Kind)
	assert.InDelta(t, 0, op.MoveTo.X.Float64(), 0.01)
	assert.InDelta(t, 8, op.MoveTo.Y.Float64(), 0.01)
}

func TestBuildOpPenAndCancelAndPosition(t *testing.T) {
	tables := config.DefaultTables()
	for _, tc := range []struct {
		arg  string
		kind protocol.OpKind
	}{
		{"penup", protocol.OpPenUp},
		{"pendown", protocol.OpPenDown},
		{"cancel", protocol.OpCancel},
		{"position", protocol.OpGetPosition},
	} {
		op, err := buildOp([]string{tc.arg}, tables)
		require.NoError(t, err)
		assert.Equal(t, tc.kind, op.Kind)
	}
}

func TestBuildOpCalibrateSelectsJointAndDirection(t *testing.T) {
	tables := config.DefaultTables()
	op, err := buildOp([]string{"calibrate", "elbow", "dec"}, tables)
	require.NoError(t, err)
	assert.Equal(t, protocol.OpCalibrate, op.Kind)
	assert.Equal(t, model.Elbow, op.Joint)
	assert.Equal(t, model.Decreasing, op.Direction)
	assert.Equal(t, tables.Elbow.Dec, op.Table)
}

func TestBuildOpRejectsUnknownSubcommand(t *testing.T) {
	_, err := buildOp([]string{"spin"}, config.DefaultTables())
	assert.Error(t, err)
}

func TestBuildOpRejectsMoveMissingArgs(t *testing.T) {
	_, err := buildOp([]string{"move", "0"}, config.DefaultTables())
	assert.Error(t, err)
}
