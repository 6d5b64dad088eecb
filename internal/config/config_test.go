package config

import (
	"bytes"
	"testing"

	"github.com/jneem/brachiograph/internal/geometry"
	"github.com/jneem/brachiograph/internal/pwmmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	geom := geometry.Default()
	tables := DefaultTables()

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, geom, tables))

	gotGeom, gotTables, err := Load(&buf)
	require.NoError(t, err)

	assert.InDelta(t, geom.ArmLen.Float64(), gotGeom.ArmLen.Float64(), 0.01)
	assert.InDelta(t, geom.ShoulderRange[0].Deg.Float64(), gotGeom.ShoulderRange[0].Deg.Float64(), 0.01)
	assert.InDelta(t, geom.ShoulderRange[1].Deg.Float64(), gotGeom.ShoulderRange[1].Deg.Float64(), 0.01)
	assert.Equal(t, tables.Shoulder, gotTables.Shoulder)
	assert.Equal(t, tables.Elbow, gotTables.Elbow)
	assert.Equal(t, tables.Pen, gotTables.Pen)
}

func TestLoadedGeomConfigIsValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, geometry.Default(), DefaultTables()))

	gotGeom, _, err := Load(&buf)
	require.NoError(t, err)
	assert.True(t, gotGeom.IsValid())
}

func TestDefaultTablesAreMonotonic(t *testing.T) {
	tables := DefaultTables()
	checkMonotone(t, tables.Shoulder.Inc)
	checkMonotone(t, tables.Shoulder.Dec)
	checkMonotone(t, tables.Elbow.Inc)
	checkMonotone(t, tables.Elbow.Dec)
}

func checkMonotone(t *testing.T, entries []pwmmap.Entry) {
	t.Helper()
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].DutyUs, entries[i-1].DutyUs)
		assert.Greater(t, entries[i].Degrees, entries[i-1].Degrees)
	}
}
