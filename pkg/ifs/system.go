package ifs

import (
	"math"
	"slices"
	"sort"

	"github.com/matzehuels/ifscope/pkg/errors"
)

// System is a validated iterated function system. It is immutable after
// construction; all accessors return copies.
type System struct {
	name        string
	description string
	transforms  []Affine
	cumulative  []float64 // cumulative[i] = sum of weights[0..i]
	last        int       // index of the last transform with positive weight
}

// NewSystem validates transforms and builds the cumulative-weight table used
// for selection. It returns an INVALID_SYSTEM error when the list is empty,
// when any weight is negative or not finite, when any hue falls outside
// [0, 1], when any coefficient is not finite, or when all weights are zero.
func NewSystem(name, description string, transforms ...Affine) (*System, error) {
	if len(transforms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSystem, "system %q has no transforms", name)
	}

	cumulative := make([]float64, len(transforms))
	total := 0.0
	last := -1
	for i, t := range transforms {
		if math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) || t.Weight < 0 {
			return nil, errors.New(errors.ErrCodeInvalidSystem, "system %q: transform %d has invalid weight %v", name, i, t.Weight)
		}
		if math.IsNaN(t.Hue) || t.Hue < 0 || t.Hue > 1 {
			return nil, errors.New(errors.ErrCodeInvalidSystem, "system %q: transform %d has hue %v outside [0, 1]", name, i, t.Hue)
		}
		if !t.finite() {
			return nil, errors.New(errors.ErrCodeInvalidSystem, "system %q: transform %d has non-finite coefficients", name, i)
		}
		total += t.Weight
		cumulative[i] = total
		if t.Weight > 0 {
			last = i
		}
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, errors.New(errors.ErrCodeInvalidSystem, "system %q: weights must sum to a positive finite value", name)
	}

	return &System{
		name:        name,
		description: description,
		transforms:  slices.Clone(transforms),
		cumulative:  cumulative,
		last:        last,
	}, nil
}

// Name returns the catalog name of the system.
func (s *System) Name() string { return s.name }

// Description returns a short human-readable description.
func (s *System) Description() string { return s.description }

// Len returns the number of transforms.
func (s *System) Len() int { return len(s.transforms) }

// Transforms returns a copy of the ordered transform list.
func (s *System) Transforms() []Affine { return slices.Clone(s.transforms) }

// Transform returns the i-th transform.
func (s *System) Transform(i int) Affine { return s.transforms[i] }

// Cumulative returns a copy of the cumulative-weight prefix sums.
func (s *System) Cumulative() []float64 { return slices.Clone(s.cumulative) }

// TotalWeight returns the sum of all weights.
func (s *System) TotalWeight() float64 { return s.cumulative[len(s.cumulative)-1] }

// Weights returns the selection weight of every transform, in order.
func (s *System) Weights() []float64 {
	w := make([]float64, len(s.transforms))
	for i, t := range s.transforms {
		w[i] = t.Weight
	}
	return w
}

// Hues returns the hue tag of every transform, in order.
func (s *System) Hues() []float64 {
	h := make([]float64, len(s.transforms))
	for i, t := range s.transforms {
		h[i] = t.Hue
	}
	return h
}

// Probability returns the selection probability weight(i) / total.
func (s *System) Probability(i int) float64 {
	return s.transforms[i].Weight / s.TotalWeight()
}

// Pick returns the index of the transform whose cumulative-weight interval
// [cumulative[i-1], cumulative[i]) contains u. u is expected in
// [0, TotalWeight()); values at or beyond the total resolve to the last
// transform with positive weight, so a zero-weight transform is never chosen.
func (s *System) Pick(u float64) int {
	i := sort.Search(len(s.cumulative), func(i int) bool { return s.cumulative[i] > u })
	if i >= len(s.cumulative) {
		return s.last
	}
	return i
}
