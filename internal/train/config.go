// Package train defines the boundary to the external model-training
// collaborator: run configuration, the model-family variants, and
// run-artifact handling. The gradient-descent training itself lives outside
// this repository and consumes the exported dataset splits.
package train

import (
	"context"
	"fmt"

	"gauge-reader/internal/dataset"
)

// ModelFamily selects which architecture family a run trains.
type ModelFamily int

const (
	// FamilyCompact is the small from-scratch CNN regressor.
	FamilyCompact ModelFamily = iota
	// FamilyMobileNetV2 is the transfer-learning backbone with a
	// frozen-warmup-then-fine-tune schedule.
	FamilyMobileNetV2
)

var familyTags = map[ModelFamily]string{
	FamilyCompact:     "compact",
	FamilyMobileNetV2: "mobilenet_v2",
}

func (f ModelFamily) String() string {
	if tag, ok := familyTags[f]; ok {
		return tag
	}
	return "unknown"
}

// ParseModelFamily resolves a string tag to a family once, at
// orchestration start. Unknown tags are a configuration error.
func ParseModelFamily(tag string) (ModelFamily, error) {
	for family, known := range familyTags {
		if known == tag {
			return family, nil
		}
	}
	return 0, fmt.Errorf("unknown model family %q, valid: %q and %q",
		tag, familyTags[FamilyCompact], familyTags[FamilyMobileNetV2])
}

// Config holds every setting of one training run, so runs are explicit
// and reproducible. Saved verbatim into the run's artifact directory.
type Config struct {
	GaugeID string `json:"gauge_id"`

	ImageHeight  int     `json:"image_height"`
	ImageWidth   int     `json:"image_width"`
	BatchSize    int     `json:"batch_size"`
	Epochs       int     `json:"epochs"`
	LearningRate float64 `json:"learning_rate"`
	Seed         int64   `json:"seed"`

	ValFraction  float64 `json:"val_fraction"`
	TestFraction float64 `json:"test_fraction"`

	StrictValues    bool    `json:"strict_values"`
	CropPadRatio    float64 `json:"crop_pad_ratio"`
	AugmentTraining bool    `json:"augment_training"`

	Family            ModelFamily `json:"-"`
	FamilyTag         string      `json:"model_family"`
	Pretrained        bool        `json:"pretrained"`
	BackboneTrainable bool        `json:"backbone_trainable"`
	// WarmupEpochs is how long the backbone stays frozen before
	// fine-tuning. Only meaningful for the transfer-learning family.
	WarmupEpochs int `json:"warmup_epochs"`
}

// DefaultConfig returns the settings of the best-performing runs.
func DefaultConfig() Config {
	return Config{
		GaugeID:           "littlegood_home_temp_gauge_c",
		ImageHeight:       224,
		ImageWidth:        224,
		BatchSize:         8,
		Epochs:            40,
		LearningRate:      1e-4,
		Seed:              21,
		ValFraction:       0.15,
		TestFraction:      0.15,
		StrictValues:      true,
		CropPadRatio:      0.25,
		AugmentTraining:   true,
		Family:            FamilyMobileNetV2,
		FamilyTag:         FamilyMobileNetV2.String(),
		Pretrained:        true,
		BackboneTrainable: true,
		WarmupEpochs:      8,
	}
}

// Validate fails fast on configuration errors before any data is read.
func (c Config) Validate() error {
	if c.GaugeID == "" {
		return fmt.Errorf("gauge_id is required")
	}
	if c.ImageHeight <= 0 || c.ImageWidth <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.ImageWidth, c.ImageHeight)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %g", c.LearningRate)
	}
	if c.Family == FamilyMobileNetV2 && c.WarmupEpochs <= 0 {
		return fmt.Errorf("warmup epochs must be positive for the %s family, got %d",
			FamilyMobileNetV2, c.WarmupEpochs)
	}
	splitCfg := dataset.SplitConfig{
		Seed:         c.Seed,
		ValFraction:  c.ValFraction,
		TestFraction: c.TestFraction,
	}
	return splitCfg.Validate()
}

// SplitConfig returns the partitioning settings embedded in the run
// configuration.
func (c Config) SplitConfig() dataset.SplitConfig {
	return dataset.SplitConfig{
		Seed:         c.Seed,
		ValFraction:  c.ValFraction,
		TestFraction: c.TestFraction,
	}
}

// BuiltModel pairs a constructed predictor with the optional backbone
// handle that staged fine-tuning needs. The backbone is an explicit
// field here, not state stashed on the model.
type BuiltModel struct {
	Predictor any
	Backbone  any
}

// Result is what a trainer hands back: per-epoch metric history and a
// final metric mapping, at minimum "mae" and "rmse" in the gauge's
// physical units.
type Result struct {
	History map[string][]float64 `json:"history"`
	Metrics map[string]float64   `json:"metrics"`
}

// Trainer is the external learning collaborator. Implementations
// consume the dataset split and return a fitted predictor's metrics.
type Trainer interface {
	Train(ctx context.Context, split dataset.Split, cfg Config) (Result, error)
}
