// Command datasetbuild turns a labelled gauge dataset into exported
// train/val/test crops plus manifests, ready for the external model
// trainer. The run configuration and the mean-predictor reference MAE
// are written alongside so every dataset build is reproducible.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gauge-reader/internal/dataset"
	"gauge-reader/internal/gauge"
	"gauge-reader/internal/label"
	"gauge-reader/internal/train"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	labelledDir := flag.String("labelled", "data/labelled", "Directory of CVAT zip exports")
	rawDir := flag.String("raw", "data/raw", "Directory of raw gauge photographs")
	calibration := flag.String("calibration", gauge.DefaultCalibrationPath, "Path to gauge calibration TOML")
	gaugeID := flag.String("gauge-id", "", "Gauge identifier from the calibration table")
	artifactsDir := flag.String("artifacts", "artifacts/datasets", "Root directory for dataset builds")
	runName := flag.String("run-name", "", "Build folder name (default: timestamp)")
	familyTag := flag.String("model-family", train.FamilyMobileNetV2.String(), "Target model family: compact or mobilenet_v2")
	imageSize := flag.Int("image-size", 224, "Exported crop size in pixels (square)")
	seed := flag.Int64("seed", 21, "Split shuffle seed")
	valFraction := flag.Float64("val-fraction", 0.15, "Validation fraction")
	testFraction := flag.Float64("test-fraction", 0.15, "Test fraction")
	cropPad := flag.Float64("crop-pad-ratio", 0.25, "Crop padding as a fraction of each dial radius")
	strictValues := flag.Bool("strict-values", true, "Strict value computation for targets")
	flag.Parse()

	if *gaugeID == "" {
		fmt.Println("Usage: datasetbuild -gauge-id <id> [-labelled <dir>] [-raw <dir>] [-artifacts <dir>]")
		os.Exit(1)
	}

	family, err := train.ParseModelFamily(*familyTag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg := train.DefaultConfig()
	cfg.GaugeID = *gaugeID
	cfg.ImageHeight = *imageSize
	cfg.ImageWidth = *imageSize
	cfg.Seed = *seed
	cfg.ValFraction = *valFraction
	cfg.TestFraction = *testFraction
	cfg.StrictValues = *strictValues
	cfg.CropPadRatio = *cropPad
	cfg.Family = family
	cfg.FamilyTag = family.String()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	table, err := gauge.LoadSpecs(*calibration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load calibration: %v\n", err)
		os.Exit(1)
	}
	spec, err := table.Get(cfg.GaugeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	samples, err := label.LoadDataset(*labelledDir, *rawDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dataset: %v\n", err)
		os.Exit(1)
	}
	if len(samples) == 0 {
		fmt.Fprintf(os.Stderr, "No samples found in %s\n", *labelledDir)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d samples\n", len(samples))

	summary := label.SummarizeSweep(samples, spec)
	fmt.Printf("Sweep audit: %d in sweep, %d out of sweep, fractions %.4f-%.4f\n",
		summary.InSweep, summary.OutOfSweep, summary.MinFraction, summary.MaxFraction)

	buildOpts := dataset.BuildOptions{
		StrictValues: cfg.StrictValues,
		CropPadRatio: cfg.CropPadRatio,
	}
	examples, dropped := dataset.BuildExamples(samples, spec, buildOpts)
	fmt.Printf("Built %d examples (%d dropped for invalid geometry)\n", len(examples), dropped)

	split, err := dataset.SplitExamples(examples, cfg.SplitConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to split examples: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Split: %d train / %d val / %d test\n",
		len(split.Train), len(split.Val), len(split.Test))

	runDir := train.ResolveRunDir(*artifactsDir, *runName, time.Now())
	exportOpts := dataset.ExportOptions{
		OutDir:      runDir,
		ImageWidth:  cfg.ImageWidth,
		ImageHeight: cfg.ImageHeight,
	}
	fmt.Printf("Exporting crops to %s...\n", runDir)
	if err := dataset.ExportSplit(split, exportOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	baselineMAE := train.MeanBaselineMAE(split.Train, split.Test)
	result := train.Result{
		History: map[string][]float64{},
		Metrics: map[string]float64{"baseline_mae_mean_predictor": baselineMAE},
	}
	if err := train.WriteRunArtifacts(runDir, cfg, result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write run artifacts: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDone. Mean-predictor baseline MAE: %.3f\n", baselineMAE)
}
