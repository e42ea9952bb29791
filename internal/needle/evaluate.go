package needle

import (
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"gauge-reader/internal/gauge"
	"gauge-reader/internal/label"
)

// Prediction records the baseline's output for one sample.
type Prediction struct {
	ImagePath      string  `json:"image_path"`
	TrueValue      float64 `json:"true_value"`
	PredictedValue float64 `json:"predicted_value"`
	AbsError       float64 `json:"abs_error"`
	Confidence     float64 `json:"confidence"`
}

// BaselineResult aggregates a full baseline run. MAE and RMSE cover
// successful detections only, in the gauge's physical units; both are
// NaN when nothing succeeded.
type BaselineResult struct {
	AttemptedSamples  int          `json:"attempted_samples"`
	SuccessfulSamples int          `json:"successful_samples"`
	FailedSamples     int          `json:"failed_samples"`
	MAE               float64      `json:"mae"`
	RMSE              float64      `json:"rmse"`
	Predictions       []Prediction `json:"predictions"`
}

// EvalOptions configures a baseline evaluation run.
type EvalOptions struct {
	// MaxSamples caps the number of samples attempted; zero means all.
	MaxSamples int
	Params     DetectionParams
}

// DefaultEvalOptions returns evaluation options with the tuned
// detection parameters and no sample cap.
func DefaultEvalOptions() EvalOptions {
	return EvalOptions{Params: DefaultParams()}
}

// EvaluateBaseline runs the classical detector over labelled samples
// and scores it against the annotation-derived values. Unreadable
// images and failed detections are counted as failures and excluded
// from the error statistics; they never abort the batch.
func EvaluateBaseline(samples []label.Sample, spec gauge.Spec, opts EvalOptions) BaselineResult {
	var predictions []Prediction
	attempted := 0

	for _, sample := range samples {
		if opts.MaxSamples > 0 && attempted >= opts.MaxSamples {
			break
		}
		attempted++

		img := gocv.IMRead(sample.ImagePath, gocv.IMReadColor)
		if img.Empty() {
			continue
		}

		detection := Detect(img, sample.CenterPoint(), sample.DialRadius(), opts.Params)
		img.Close()
		if detection == nil {
			continue
		}

		trueValue, err := gauge.NeedleValue(sample.CenterPoint(), sample.TipPoint(), spec, false)
		if err != nil {
			continue
		}
		predictedValue := gauge.VectorValue(detection.Direction, spec)

		predictions = append(predictions, Prediction{
			ImagePath:      sample.ImagePath,
			TrueValue:      trueValue,
			PredictedValue: predictedValue,
			AbsError:       math.Abs(predictedValue - trueValue),
			Confidence:     detection.Confidence,
		})
	}

	result := BaselineResult{
		AttemptedSamples:  attempted,
		SuccessfulSamples: len(predictions),
		FailedSamples:     attempted - len(predictions),
		Predictions:       predictions,
	}

	if len(predictions) == 0 {
		result.MAE = math.NaN()
		result.RMSE = math.NaN()
		return result
	}

	absErrors := make([]float64, len(predictions))
	sqErrors := make([]float64, len(predictions))
	for i, p := range predictions {
		absErrors[i] = p.AbsError
		sqErrors[i] = p.AbsError * p.AbsError
	}
	result.MAE = stat.Mean(absErrors, nil)
	result.RMSE = math.Sqrt(stat.Mean(sqErrors, nil))
	return result
}
