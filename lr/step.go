package lr

import (
	"math"
	"slices"
)

// StepConfig configures StepLR.
type StepConfig struct {
	StepSize int     // steps between decays
	Gamma    float64 // multiplicative decay per boundary
}

// StepLR decays the base rate by Gamma every StepSize steps.
// Formula: base * gamma^floor(t / step_size)
type StepLR struct {
	counter
	stepSize int
	gamma    float64
}

// NewStepLR creates a StepLR bound to baseRate.
func NewStepLR(baseRate float64, cfg StepConfig) (*StepLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if err := validPositiveInt("step_size", cfg.StepSize); err != nil {
		return nil, err
	}
	if err := validPositiveFloat("gamma", cfg.Gamma); err != nil {
		return nil, err
	}
	return &StepLR{counter: c, stepSize: cfg.StepSize, gamma: cfg.Gamma}, nil
}

// Name implements Schedule for StepLR.
func (s *StepLR) Name() string { return "step" }

// RateAt implements RateFunc for StepLR.
func (s *StepLR) RateAt(t int) float64 {
	return s.baseRate * math.Pow(s.gamma, float64(t/s.stepSize))
}

// Step implements Schedule for StepLR.
func (s *StepLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}

// MultiStepConfig configures MultiStepLR.
type MultiStepConfig struct {
	Milestones []int // step indices; order does not matter, duplicates decay twice
	Gamma      float64
}

// MultiStepLR decays the base rate by Gamma once for every milestone <= t.
type MultiStepLR struct {
	counter
	milestones []int // sorted ascending
	gamma      float64
}

// NewMultiStepLR creates a MultiStepLR bound to baseRate. The milestones are copied
// and sorted; the caller's slice is not modified.
func NewMultiStepLR(baseRate float64, cfg MultiStepConfig) (*MultiStepLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if len(cfg.Milestones) == 0 {
		return nil, invalidParameter("milestones must not be empty")
	}
	for _, m := range cfg.Milestones {
		if m < 0 {
			return nil, invalidParameter("milestones must be non-negative, got %d", m)
		}
	}
	if err := validPositiveFloat("gamma", cfg.Gamma); err != nil {
		return nil, err
	}
	milestones := slices.Clone(cfg.Milestones)
	slices.Sort(milestones)
	return &MultiStepLR{counter: c, milestones: milestones, gamma: cfg.Gamma}, nil
}

// Name implements Schedule for MultiStepLR.
func (s *MultiStepLR) Name() string { return "multi-step" }

// Milestones returns the sorted milestones.
func (s *MultiStepLR) Milestones() []int { return slices.Clone(s.milestones) }

// RateAt implements RateFunc for MultiStepLR.
func (s *MultiStepLR) RateAt(t int) float64 {
	// number of milestones <= t
	k, _ := slices.BinarySearch(s.milestones, t+1)
	return s.baseRate * math.Pow(s.gamma, float64(k))
}

// Step implements Schedule for MultiStepLR.
func (s *MultiStepLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}
