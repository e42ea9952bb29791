// Command labelaudit checks annotation quality for a labelled gauge
// dataset by reporting sweep coverage per the gauge calibration.
package main

import (
	"flag"
	"fmt"
	"os"

	"gauge-reader/internal/gauge"
	"gauge-reader/internal/label"
)

func main() {
	labelledDir := flag.String("labelled", "data/labelled", "Directory of CVAT zip exports")
	rawDir := flag.String("raw", "data/raw", "Directory of raw gauge photographs")
	calibration := flag.String("calibration", gauge.DefaultCalibrationPath, "Path to gauge calibration TOML")
	gaugeID := flag.String("gauge-id", "", "Gauge identifier from the calibration table")
	flag.Parse()

	if *gaugeID == "" {
		fmt.Println("Usage: labelaudit -gauge-id <id> [-labelled <dir>] [-raw <dir>] [-calibration <path>]")
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
	fmt.Printf("Loaded %d samples from %s\n", len(samples), *labelledDir)

	summary := label.SummarizeSweep(samples, spec)
	fmt.Printf("\nSweep audit for gauge %q:\n", spec.GaugeID)
	fmt.Printf("  Total samples:  %d\n", summary.TotalSamples)
	fmt.Printf("  In sweep:       %d\n", summary.InSweep)
	fmt.Printf("  Out of sweep:   %d\n", summary.OutOfSweep)
	fmt.Printf("  Fraction range: %.4f - %.4f\n", summary.MinFraction, summary.MaxFraction)

	if summary.OutOfSweep > 0 {
		fmt.Printf("\n%d samples fall outside the calibrated sweep; check the labels or the calibration.\n",
			summary.OutOfSweep)
	}
}
