package gauge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gauge-reader/pkg/geometry"
)

func testSpec(minAngle, sweep, minValue, maxValue float64) Spec {
	return Spec{
		GaugeID:     "test_gauge",
		MinAngleRad: minAngle,
		SweepRad:    sweep,
		MinValue:    minValue,
		MaxValue:    maxValue,
	}
}

func TestNeedleAngleCardinalDirections(t *testing.T) {
	center := geometry.Point2D{}
	tests := []struct {
		name string
		tip  geometry.Point2D
		want float64
	}{
		{"right is zero", geometry.Point2D{X: 1, Y: 0}, 0},
		{"down is +pi/2", geometry.Point2D{X: 0, Y: 1}, math.Pi / 2},
		{"left is pi", geometry.Point2D{X: -1, Y: 0}, math.Pi},
		{"up is -pi/2", geometry.Point2D{X: 0, Y: -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NeedleAngleRad(center, tt.tip), 1e-12)
		})
	}
}

func TestSweepFractionWithinSweep(t *testing.T) {
	spec := testSpec(0, math.Pi, 0, 100)
	center := geometry.Point2D{}

	at0, err := NeedleFraction(center, geometry.Point2D{X: 1, Y: 0}, spec, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, at0, 1e-12)

	atHalf, err := NeedleFraction(center, geometry.Point2D{X: 0, Y: 1}, spec, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, atHalf, 1e-12)

	atFull, err := NeedleFraction(center, geometry.Point2D{X: -1, Y: 0}, spec, true)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, atFull, 1e-12)
}

func TestSweepFractionOutsideSweep(t *testing.T) {
	spec := testSpec(0, math.Pi, 0, 100)
	center := geometry.Point2D{}
	// Straight up is -pi/2, which wraps to 3pi/2 against a pi sweep.
	up := geometry.Point2D{X: 0, Y: -1}

	t.Run("strict rejects", func(t *testing.T) {
		_, err := NeedleFraction(center, up, spec, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfSweep)
	})

	t.Run("non-strict clamps to max", func(t *testing.T) {
		fraction, err := NeedleFraction(center, up, spec, false)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, fraction, 1e-12)
	})
}

func TestNeedleValueScalesLinearly(t *testing.T) {
	spec := testSpec(0, math.Pi, -30, 50)
	center := geometry.Point2D{}

	value, err := NeedleValue(center, geometry.Point2D{X: 0, Y: 1}, spec, true)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, value, 1e-9)
}

func TestNeedleValueSweepScaling(t *testing.T) {
	spec := testSpec(0, math.Pi, 0, 100)
	center := geometry.Point2D{}

	tests := []struct {
		name string
		tip  geometry.Point2D
		want float64
	}{
		{"sweep start reads min", geometry.Point2D{X: 1, Y: 0}, 0},
		{"half sweep reads midpoint", geometry.Point2D{X: 0, Y: 1}, 50},
		{"sweep end reads max", geometry.Point2D{X: -1, Y: 0}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := NeedleValue(center, tt.tip, spec, true)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, value, 1e-9)
		})
	}
}

func TestVectorValueMatchesNeedleValue(t *testing.T) {
	// The detector's vector path and the label path share one
	// calibration, so in-sweep directions must agree exactly.
	spec := testSpec(math.Pi/6, 3*math.Pi/2, 0, 120)
	center := geometry.Point2D{}
	tip := geometry.Point2D{X: math.Cos(math.Pi / 3), Y: math.Sin(math.Pi / 3)}

	fromLabels, err := NeedleValue(center, tip, spec, false)
	require.NoError(t, err)
	fromVector := VectorValue(tip, spec)
	assert.InDelta(t, fromLabels, fromVector, 1e-12)
}
