package label

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"gauge-reader/internal/gauge"
)

func pointSample(tipX, tipY float64) Sample {
	return Sample{
		ImagePath: "dummy.jpg",
		Dial:      EllipseLabel{RX: 1, RY: 1, Label: LabelDial},
		Center:    PointLabel{X: 0, Y: 0, Label: LabelCenter},
		Tip:       PointLabel{X: tipX, Y: tipY, Label: LabelTip},
	}
}

func halfSweepSpec() gauge.Spec {
	return gauge.Spec{
		GaugeID:  "test_gauge",
		SweepRad: math.Pi,
		MinValue: 0,
		MaxValue: 100,
	}
}

func TestSummarizeSweepCountsAndBounds(t *testing.T) {
	samples := []Sample{
		pointSample(1, 0),  // fraction 0.0
		pointSample(0, 1),  // fraction 0.5
		pointSample(0, -1), // wraps to 3pi/2, out of sweep
	}

	summary := SummarizeSweep(samples, halfSweepSpec())
	assert.Equal(t, 3, summary.TotalSamples)
	assert.Equal(t, 2, summary.InSweep)
	assert.Equal(t, 1, summary.OutOfSweep)
	assert.InDelta(t, 0.0, summary.MinFraction, 1e-12)
	assert.InDelta(t, 0.5, summary.MaxFraction, 1e-12)
}

func TestSummarizeSweepEmptyInput(t *testing.T) {
	summary := SummarizeSweep(nil, halfSweepSpec())
	assert.Equal(t, Summary{}, summary)
}

func TestSummarizeSweepAllInvalid(t *testing.T) {
	samples := []Sample{
		pointSample(0, -1),
		pointSample(-1, -1),
	}

	summary := SummarizeSweep(samples, halfSweepSpec())
	assert.Equal(t, 2, summary.TotalSamples)
	assert.Equal(t, 0, summary.InSweep)
	assert.Equal(t, 2, summary.OutOfSweep)
	assert.Equal(t, 0.0, summary.MinFraction)
	assert.Equal(t, 0.0, summary.MaxFraction)
	assert.False(t, math.IsNaN(summary.MinFraction))
}
