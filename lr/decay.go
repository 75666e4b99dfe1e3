package lr

import "math"

// ExponentialConfig configures ExponentialLR.
type ExponentialConfig struct {
	// Gamma must be positive. Values >= 1 are accepted and grow the rate.
	Gamma float64
}

// ExponentialLR multiplies the base rate by gamma^t. There is no floor.
type ExponentialLR struct {
	counter
	gamma float64
}

// NewExponentialLR creates an ExponentialLR bound to baseRate.
func NewExponentialLR(baseRate float64, cfg ExponentialConfig) (*ExponentialLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if err := validPositiveFloat("gamma", cfg.Gamma); err != nil {
		return nil, err
	}
	return &ExponentialLR{counter: c, gamma: cfg.Gamma}, nil
}

// Name implements Schedule for ExponentialLR.
func (s *ExponentialLR) Name() string { return "exponential" }

// RateAt implements RateFunc for ExponentialLR.
func (s *ExponentialLR) RateAt(t int) float64 {
	return s.baseRate * math.Pow(s.gamma, float64(t))
}

// Step implements Schedule for ExponentialLR.
func (s *ExponentialLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}

// PolynomialConfig configures PolynomialLR.
type PolynomialConfig struct {
	TotalIters int
	Power      float64
}

// DefaultPolynomialConfig returns the PolynomialLR defaults (linear decay over 5 steps).
func DefaultPolynomialConfig() PolynomialConfig {
	return PolynomialConfig{TotalIters: 5, Power: 1.0}
}

// PolynomialLR decays the multiplier as (1 - t/total_iters)^power. Once the horizon is
// reached the multiplier stays at zero.
type PolynomialLR struct {
	counter
	totalIters int
	power      float64
}

// NewPolynomialLR creates a PolynomialLR bound to baseRate.
func NewPolynomialLR(baseRate float64, cfg PolynomialConfig) (*PolynomialLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if err := validPositiveInt("total_iters", cfg.TotalIters); err != nil {
		return nil, err
	}
	if err := validPositiveFloat("power", cfg.Power); err != nil {
		return nil, err
	}
	return &PolynomialLR{counter: c, totalIters: cfg.TotalIters, power: cfg.Power}, nil
}

// Name implements Schedule for PolynomialLR.
func (s *PolynomialLR) Name() string { return "polynomial" }

// RateAt implements RateFunc for PolynomialLR.
func (s *PolynomialLR) RateAt(t int) float64 {
	remaining := 1 - float64(min(t, s.totalIters))/float64(s.totalIters)
	return s.baseRate * math.Pow(remaining, s.power)
}

// Step implements Schedule for PolynomialLR.
func (s *PolynomialLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}
