// Command baseline runs the classical needle detector over a labelled
// dataset and reports its error against the annotation-derived values.
package main

import (
	"flag"
	"fmt"
	"os"

	"gauge-reader/internal/gauge"
	"gauge-reader/internal/label"
	"gauge-reader/internal/needle"
)

func main() {
	labelledDir := flag.String("labelled", "data/labelled", "Directory of CVAT zip exports")
	rawDir := flag.String("raw", "data/raw", "Directory of raw gauge photographs")
	calibration := flag.String("calibration", gauge.DefaultCalibrationPath, "Path to gauge calibration TOML")
	gaugeID := flag.String("gauge-id", "", "Gauge identifier from the calibration table")
	maxSamples := flag.Int("max-samples", 0, "Cap on samples attempted (0 = all)")
	verbose := flag.Bool("verbose", false, "Print per-sample predictions")
	flag.Parse()

	if *gaugeID == "" {
		fmt.Println("Usage: baseline -gauge-id <id> [-labelled <dir>] [-raw <dir>] [-max-samples N]")
		os.Exit(1)
	}

	table, err := gauge.LoadSpecs(*calibration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load calibration: %v\n", err)
		os.Exit(1)
	}
	spec, err := table.Get(*gaugeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	samples, err := label.LoadDataset(*labelledDir, *rawDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d samples, evaluating classical baseline...\n", len(samples))

	opts := needle.DefaultEvalOptions()
	opts.MaxSamples = *maxSamples
	result := needle.EvaluateBaseline(samples, spec, opts)

	if *verbose {
		fmt.Printf("\n%-40s %10s %10s %10s %10s\n", "Image", "True", "Predicted", "AbsErr", "Conf")
		for _, p := range result.Predictions {
			fmt.Printf("%-40s %10.2f %10.2f %10.2f %10.1f\n",
				p.ImagePath, p.TrueValue, p.PredictedValue, p.AbsError, p.Confidence)
		}
	}

	fmt.Printf("\nAttempted:  %d\n", result.AttemptedSamples)
	fmt.Printf("Successful: %d\n", result.SuccessfulSamples)
	fmt.Printf("Failed:     %d\n", result.FailedSamples)
	fmt.Printf("MAE:        %.3f\n", result.MAE)
	fmt.Printf("RMSE:       %.3f\n", result.RMSE)
}
