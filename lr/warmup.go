package lr

import "math"

// ConstantConfig configures ConstantLR.
type ConstantConfig struct {
	Factor     float64 // multiplier in (0, 1] applied before TotalIters
	TotalIters int
}

// DefaultConstantConfig returns the ConstantLR defaults (factor 1/3 for 5 steps).
func DefaultConstantConfig() ConstantConfig {
	return ConstantConfig{Factor: 1.0 / 3, TotalIters: 5}
}

// ConstantLR holds the rate at base*factor for the first TotalIters steps, then
// restores the base rate permanently.
type ConstantLR struct {
	counter
	factor     float64
	totalIters int
}

// NewConstantLR creates a ConstantLR bound to baseRate.
func NewConstantLR(baseRate float64, cfg ConstantConfig) (*ConstantLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if err := validFactor("factor", cfg.Factor); err != nil {
		return nil, err
	}
	if err := validPositiveInt("total_iters", cfg.TotalIters); err != nil {
		return nil, err
	}
	s := &ConstantLR{counter: c, factor: cfg.Factor, totalIters: cfg.TotalIters}
	s.rate = s.RateAt(0)
	return s, nil
}

// Name implements Schedule for ConstantLR.
func (s *ConstantLR) Name() string { return "constant" }

// RateAt implements RateFunc for ConstantLR.
func (s *ConstantLR) RateAt(t int) float64 {
	if t < s.totalIters {
		return s.baseRate * s.factor
	}
	return s.baseRate
}

// Step implements Schedule for ConstantLR.
func (s *ConstantLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}

// LinearConfig configures LinearLR.
type LinearConfig struct {
	StartFactor float64 // multiplier at t=0, in (0, 1]
	EndFactor   float64 // multiplier from TotalIters on, in [0, 1]
	TotalIters  int
}

// DefaultLinearConfig returns the LinearLR defaults (1/3 -> 1.0 over 5 steps).
func DefaultLinearConfig() LinearConfig {
	return LinearConfig{StartFactor: 1.0 / 3, EndFactor: 1.0, TotalIters: 5}
}

// LinearLR interpolates the multiplier linearly from StartFactor to EndFactor over
// TotalIters steps and holds EndFactor afterwards.
type LinearLR struct {
	counter
	startFactor float64
	endFactor   float64
	totalIters  int
}

// NewLinearLR creates a LinearLR bound to baseRate.
func NewLinearLR(baseRate float64, cfg LinearConfig) (*LinearLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if err := validFactor("start_factor", cfg.StartFactor); err != nil {
		return nil, err
	}
	if math.IsNaN(cfg.EndFactor) || cfg.EndFactor < 0 || cfg.EndFactor > 1 {
		return nil, invalidParameter("end_factor must be in [0, 1], got %v", cfg.EndFactor)
	}
	if err := validPositiveInt("total_iters", cfg.TotalIters); err != nil {
		return nil, err
	}
	s := &LinearLR{counter: c, startFactor: cfg.StartFactor, endFactor: cfg.EndFactor, totalIters: cfg.TotalIters}
	s.rate = s.RateAt(0)
	return s, nil
}

// Name implements Schedule for LinearLR.
func (s *LinearLR) Name() string { return "linear" }

// RateAt implements RateFunc for LinearLR.
func (s *LinearLR) RateAt(t int) float64 {
	frac := float64(min(t, s.totalIters)) / float64(s.totalIters)
	return s.baseRate * (s.startFactor + (s.endFactor-s.startFactor)*frac)
}

// Step implements Schedule for LinearLR.
func (s *LinearLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}

// validFactor checks a multiplier lies in (0, 1].
func validFactor(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return invalidParameter("%s must be in (0, 1], got %v", name, v)
	}
	return nil
}
