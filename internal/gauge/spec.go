// Package gauge provides per-gauge calibration and the math that converts
// a needle direction into a physical reading.
package gauge

import (
	"fmt"
	"math"
	"sort"

	"github.com/BurntSushi/toml"
)

// DefaultCalibrationPath is the conventional location of the calibration
// table relative to the working directory. Callers that keep the table
// elsewhere pass their own path to LoadSpecs.
const DefaultCalibrationPath = "config/gauge_calibration.toml"

// Spec holds the calibration for one physical gauge: where the sweep
// starts, how far it extends, and the value range it maps to.
// Angles are stored in radians; the on-disk table is authored in degrees.
type Spec struct {
	GaugeID     string
	MinAngleRad float64 // Angle where the gauge reads MinValue
	SweepRad    float64 // Total clockwise sweep
	MinValue    float64 // Reading at MinAngleRad
	MaxValue    float64 // Reading at MinAngleRad + SweepRad
}

// Validate checks the spec invariants.
func (s Spec) Validate() error {
	if s.GaugeID == "" {
		return fmt.Errorf("gauge id is required")
	}
	if s.SweepRad <= 0 {
		return fmt.Errorf("gauge %q: sweep must be positive, got %g rad", s.GaugeID, s.SweepRad)
	}
	return nil
}

// specEntry mirrors one [gauge_id] section of the calibration TOML.
// Angles are authored in degrees for readability.
type specEntry struct {
	MinDeg   float64 `toml:"min_deg"`
	SweepDeg float64 `toml:"sweep_deg"`
	MinValue float64 `toml:"min_value"`
	MaxValue float64 `toml:"max_value"`
}

// SpecTable maps gauge identifiers to their calibration.
type SpecTable map[string]Spec

// Get returns the spec for a gauge id, or an error listing the known ids.
// There is no default gauge: callers must ask for one by name.
func (t SpecTable) Get(gaugeID string) (Spec, error) {
	spec, ok := t[gaugeID]
	if !ok {
		return Spec{}, fmt.Errorf("unknown gauge_id %q, available: %v", gaugeID, t.IDs())
	}
	return spec, nil
}

// IDs returns the known gauge identifiers, sorted.
func (t SpecTable) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadSpecs loads the per-gauge calibration table from a TOML file.
// Degrees on disk are converted to radians here, once.
func LoadSpecs(path string) (SpecTable, error) {
	var raw map[string]specEntry
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to load calibration table %s: %w", path, err)
	}

	table := make(SpecTable, len(raw))
	for gaugeID, entry := range raw {
		spec := Spec{
			GaugeID:     gaugeID,
			MinAngleRad: entry.MinDeg * math.Pi / 180.0,
			SweepRad:    entry.SweepDeg * math.Pi / 180.0,
			MinValue:    entry.MinValue,
			MaxValue:    entry.MaxValue,
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid calibration in %s: %w", path, err)
		}
		table[gaugeID] = spec
	}
	return table, nil
}
