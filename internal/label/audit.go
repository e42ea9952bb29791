package label

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"gauge-reader/internal/gauge"
)

// Summary reports sweep coverage across a sample set. It is a
// diagnostic aid for annotation quality, recomputed fresh per run.
type Summary struct {
	TotalSamples int     `json:"total_samples"`
	InSweep      int     `json:"in_sweep"`
	OutOfSweep   int     `json:"out_of_sweep"`
	MinFraction  float64 `json:"min_fraction"`
	MaxFraction  float64 `json:"max_fraction"`
}

// SummarizeSweep runs the strict fraction conversion over every sample
// and tallies how many land inside the calibrated sweep. Min and max
// fractions cover the in-sweep samples only; with none, both are zero.
// This is a reporting function and never fails.
func SummarizeSweep(samples []Sample, spec gauge.Spec) Summary {
	var fractions []float64
	outOfSweep := 0

	for _, sample := range samples {
		fraction, err := gauge.NeedleFraction(sample.CenterPoint(), sample.TipPoint(), spec, true)
		if err != nil {
			if errors.Is(err, gauge.ErrOutOfSweep) {
				outOfSweep++
			}
			continue
		}
		fractions = append(fractions, fraction)
	}

	summary := Summary{
		TotalSamples: len(samples),
		InSweep:      len(fractions),
		OutOfSweep:   outOfSweep,
	}
	if len(fractions) > 0 {
		summary.MinFraction = floats.Min(fractions)
		summary.MaxFraction = floats.Max(fractions)
	}
	return summary
}
