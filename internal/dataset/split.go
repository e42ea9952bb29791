package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

// Split holds disjoint train/validation/test partitions whose union is
// the input example set exactly once each. Each part preserves the
// input ordering of its members.
type Split struct {
	Train []Example `json:"train"`
	Val   []Example `json:"val"`
	Test  []Example `json:"test"`
}

// SplitConfig controls the seeded partitioning.
type SplitConfig struct {
	Seed         int64   `json:"seed"`
	ValFraction  float64 `json:"val_fraction"`
	TestFraction float64 `json:"test_fraction"`
}

// Validate checks the fraction constraints.
func (c SplitConfig) Validate() error {
	if c.ValFraction <= 0 || c.ValFraction >= 1 {
		return fmt.Errorf("val_fraction must be in (0, 1), got %g", c.ValFraction)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in (0, 1), got %g", c.TestFraction)
	}
	if c.ValFraction+c.TestFraction >= 1 {
		return fmt.Errorf("val_fraction + test_fraction must be < 1, got %g", c.ValFraction+c.TestFraction)
	}
	return nil
}

// SplitExamples partitions examples deterministically: the same
// examples, seed, and fractions always produce bit-identical splits.
//
// The test part is split off the full index set first; validation then
// takes val/(1-test) of the remainder, so the final proportions match
// the configured fractions.
func SplitExamples(examples []Example, cfg SplitConfig) (Split, error) {
	if err := cfg.Validate(); err != nil {
		return Split{}, err
	}
	n := len(examples)
	if n < 3 {
		return Split{}, fmt.Errorf("need at least 3 examples to split, got %d", n)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(n)

	testCount := clampCount(int(math.Round(float64(n)*cfg.TestFraction)), 1, n-2)
	remainder := n - testCount
	valRelative := cfg.ValFraction / (1 - cfg.TestFraction)
	valCount := clampCount(int(math.Round(float64(remainder)*valRelative)), 1, remainder-1)

	// Part assignment per original index, so each part keeps input order.
	const (
		partTrain = iota
		partVal
		partTest
	)
	assignment := make([]int, n)
	for i, idx := range perm {
		switch {
		case i < testCount:
			assignment[idx] = partTest
		case i < testCount+valCount:
			assignment[idx] = partVal
		default:
			assignment[idx] = partTrain
		}
	}

	split := Split{
		Train: make([]Example, 0, n-testCount-valCount),
		Val:   make([]Example, 0, valCount),
		Test:  make([]Example, 0, testCount),
	}
	for i, ex := range examples {
		switch assignment[i] {
		case partTest:
			split.Test = append(split.Test, ex)
		case partVal:
			split.Val = append(split.Val, ex)
		default:
			split.Train = append(split.Train, ex)
		}
	}
	return split, nil
}

func clampCount(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
