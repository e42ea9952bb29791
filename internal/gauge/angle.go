package gauge

import (
	"errors"
	"fmt"
	"math"

	"gauge-reader/pkg/geometry"
)

// ErrOutOfSweep reports a needle angle outside the gauge's calibrated
// sweep. In strict mode this usually means a mislabeled sample or a
// miscalibrated gauge, and callers must not silently train on it.
var ErrOutOfSweep = errors.New("needle angle outside gauge sweep")

// NeedleAngleRad returns the raw needle angle in image coordinates:
// zero at 3 o'clock, increasing clockwise because y points down.
// Range is (-pi, pi].
func NeedleAngleRad(center, tip geometry.Point2D) float64 {
	return tip.Sub(center).AngleRad()
}

// SweepFraction normalizes a raw needle angle into the gauge's sweep,
// returning a position in [0, 1].
//
// Strict mode rejects angles past the end of the sweep with
// ErrOutOfSweep; non-strict mode clamps them to 1. Fractions of exactly
// 0 or 1 are legal boundary readings, not errors.
func SweepFraction(angleRad float64, spec Spec, strict bool) (float64, error) {
	shifted := math.Mod(angleRad-spec.MinAngleRad, 2*math.Pi)
	if shifted < 0 {
		shifted += 2 * math.Pi
	}

	fraction := shifted / spec.SweepRad
	if fraction > 1.0 {
		if strict {
			return 0, fmt.Errorf("gauge %q: %w (fraction %.4f)", spec.GaugeID, ErrOutOfSweep, fraction)
		}
		fraction = 1.0
	}
	if fraction < 0 {
		fraction = 0
	}
	return fraction, nil
}

// FractionValue scales a sweep fraction linearly into the gauge's value
// range. Non-linear dial faces are not supported.
func FractionValue(fraction float64, spec Spec) float64 {
	return spec.MinValue + fraction*(spec.MaxValue-spec.MinValue)
}

// NeedleFraction computes the sweep fraction for a center/tip pair.
func NeedleFraction(center, tip geometry.Point2D, spec Spec, strict bool) (float64, error) {
	return SweepFraction(NeedleAngleRad(center, tip), spec, strict)
}

// NeedleValue converts a center/tip pair into a calibrated reading.
func NeedleValue(center, tip geometry.Point2D, spec Spec, strict bool) (float64, error) {
	fraction, err := NeedleFraction(center, tip, spec, strict)
	if err != nil {
		return 0, err
	}
	return FractionValue(fraction, spec), nil
}

// VectorValue converts a needle direction vector into a calibrated
// reading, clamping out-of-sweep directions to the nearest end of the
// range. The classical detector uses this for its predictions so that
// detected and labelled angles go through the same calibration math.
func VectorValue(direction geometry.Point2D, spec Spec) float64 {
	fraction, _ := SweepFraction(direction.AngleRad(), spec, false)
	return FractionValue(fraction, spec)
}
