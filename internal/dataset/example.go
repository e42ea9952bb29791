// Package dataset turns annotated samples into supervised-learning
// examples: target values, dial crop boxes, needle directions, and
// reproducible train/val/test splits.
package dataset

import (
	"gauge-reader/internal/gauge"
	"gauge-reader/internal/label"
	"gauge-reader/pkg/geometry"
)

// Example is one training row. Immutable after construction.
type Example struct {
	ImagePath  string           `json:"image_path"`
	Value      float64          `json:"value"`
	CropBox    [4]float64       `json:"crop_box_xyxy"`
	NeedleUnit geometry.Point2D `json:"needle_unit_xy"`
}

// BuildOptions configures example construction.
type BuildOptions struct {
	// StrictValues controls the strictness of the value computation
	// only. Sweep validation is always strict regardless: a sample with
	// an out-of-sweep needle is dropped, never trained on.
	StrictValues bool

	// CropPadRatio widens the dial crop box beyond the ellipse bounding
	// box by this fraction of each radius, so the model sees context
	// around the needle tip.
	CropPadRatio float64
}

// DefaultBuildOptions returns the build settings used for training runs.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		StrictValues: true,
		CropPadRatio: 0.15,
	}
}

// BuildExamples converts samples into training examples, dropping
// invalid geometry instead of failing: out-of-sweep needles and
// degenerate zero-length needle vectors each increment the returned
// dropped count.
func BuildExamples(samples []label.Sample, spec gauge.Spec, opts BuildOptions) ([]Example, int) {
	examples := make([]Example, 0, len(samples))
	dropped := 0

	for _, sample := range samples {
		center := sample.CenterPoint()
		tip := sample.TipPoint()

		// Validate sweep membership strictly before anything else.
		if _, err := gauge.NeedleFraction(center, tip, spec, true); err != nil {
			dropped++
			continue
		}

		unit, ok := tip.Sub(center).Unit()
		if !ok {
			// Tip on top of center: direction undefined.
			dropped++
			continue
		}

		value, err := gauge.NeedleValue(center, tip, spec, opts.StrictValues)
		if err != nil {
			dropped++
			continue
		}

		box := sample.Dial.Ellipse().BoundingBox(opts.CropPadRatio)
		x0, y0, x1, y1 := box.XYXY()

		examples = append(examples, Example{
			ImagePath:  sample.ImagePath,
			Value:      value,
			CropBox:    [4]float64{x0, y0, x1, y1},
			NeedleUnit: unit,
		})
	}

	return examples, dropped
}
