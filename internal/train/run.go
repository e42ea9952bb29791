package train

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"

	"gauge-reader/internal/dataset"
)

// runTimestampLayout names run directories when no explicit name is given.
const runTimestampLayout = "20060102_150405"

// ResolveRunDir returns the artifact directory for one run: an explicit
// run name if given, otherwise a timestamp, so repeated runs never
// overwrite each other.
func ResolveRunDir(artifactsDir, runName string, now time.Time) string {
	if runName == "" {
		runName = now.Format(runTimestampLayout)
	}
	return filepath.Join(artifactsDir, runName)
}

// WriteRunArtifacts persists the run configuration, per-epoch history,
// and final metrics as JSON files under the run directory.
func WriteRunArtifacts(runDir string, cfg Config, result Result) error {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run dir %s: %w", runDir, err)
	}

	files := map[string]any{
		"config.json":  cfg,
		"history.json": result.History,
		"metrics.json": result.Metrics,
	}
	for name, payload := range files {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(runDir, name), data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// MeanBaselineMAE computes the error of a trivial predictor that always
// outputs the train-set mean value. A model that cannot beat this
// number has learned nothing from the images.
func MeanBaselineMAE(trainExamples, testExamples []dataset.Example) float64 {
	if len(trainExamples) == 0 || len(testExamples) == 0 {
		return math.NaN()
	}

	trainValues := make([]float64, len(trainExamples))
	for i, ex := range trainExamples {
		trainValues[i] = ex.Value
	}
	meanPred := stat.Mean(trainValues, nil)

	absErrors := make([]float64, len(testExamples))
	for i, ex := range testExamples {
		absErrors[i] = math.Abs(ex.Value - meanPred)
	}
	return stat.Mean(absErrors, nil)
}
