package gauge

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCalibration(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoadSpecsConvertsDegreesToRadians(t *testing.T) {
	path := writeCalibration(t, `
[gauge_a]
min_deg = 10.0
sweep_deg = 180.0
min_value = 0.0
max_value = 100.0

[gauge_b]
min_deg = 45.0
sweep_deg = 270.0
min_value = -20.0
max_value = 40.0
`)

	table, err := LoadSpecs(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"gauge_a", "gauge_b"}, table.IDs())

	specA, err := table.Get("gauge_a")
	require.NoError(t, err)
	assert.Equal(t, "gauge_a", specA.GaugeID)
	assert.InDelta(t, 10*math.Pi/180, specA.MinAngleRad, 1e-12)
	assert.InDelta(t, math.Pi, specA.SweepRad, 1e-12)
	assert.Equal(t, 0.0, specA.MinValue)
	assert.Equal(t, 100.0, specA.MaxValue)

	specB, err := table.Get("gauge_b")
	require.NoError(t, err)
	assert.InDelta(t, 270*math.Pi/180, specB.SweepRad, 1e-12)
	assert.Equal(t, -20.0, specB.MinValue)
}

func TestLoadSpecsMalformedFile(t *testing.T) {
	path := writeCalibration(t, "[gauge_a\nmin_deg = oops")
	_, err := LoadSpecs(path)
	assert.Error(t, err)
}

func TestLoadSpecsMissingFile(t *testing.T) {
	_, err := LoadSpecs(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadSpecsRejectsNonPositiveSweep(t *testing.T) {
	path := writeCalibration(t, `
[bad_gauge]
min_deg = 0.0
sweep_deg = 0.0
min_value = 0.0
max_value = 100.0
`)
	_, err := LoadSpecs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep must be positive")
}

func TestSpecTableUnknownGauge(t *testing.T) {
	table := SpecTable{
		"known": {GaugeID: "known", SweepRad: math.Pi, MaxValue: 1},
	}
	_, err := table.Get("mystery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
	assert.Contains(t, err.Error(), "known", "error should list available ids")
}
