package lr

import (
	"math"

	"github.com/sirupsen/logrus"
)

// cosineAnneal returns the rate at position pos of a half cosine period of length
// period, decaying from hi to lo.
func cosineAnneal(hi, lo float64, pos, period int) float64 {
	return lo + (hi-lo)*(1+math.Cos(math.Pi*float64(pos)/float64(period)))/2
}

// CosineAnnealingConfig configures CosineAnnealingLR.
type CosineAnnealingConfig struct {
	TMax   int     // length of the half period in steps
	EtaMin float64 // absolute floor rate, not a multiplier
}

// CosineAnnealingLR follows one cosine half period from the base rate down to EtaMin
// over TMax steps, then holds at EtaMin. There is no restart.
type CosineAnnealingLR struct {
	counter
	tMax   int
	etaMin float64
}

// NewCosineAnnealingLR creates a CosineAnnealingLR bound to baseRate.
func NewCosineAnnealingLR(baseRate float64, cfg CosineAnnealingConfig) (*CosineAnnealingLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if err := validPositiveInt("t_max", cfg.TMax); err != nil {
		return nil, err
	}
	if err := validNonNegativeFloat("eta_min", cfg.EtaMin); err != nil {
		return nil, err
	}
	return &CosineAnnealingLR{counter: c, tMax: cfg.TMax, etaMin: cfg.EtaMin}, nil
}

// Name implements Schedule for CosineAnnealingLR.
func (s *CosineAnnealingLR) Name() string { return "cosine-annealing" }

// RateAt implements RateFunc for CosineAnnealingLR.
func (s *CosineAnnealingLR) RateAt(t int) float64 {
	return cosineAnneal(s.baseRate, s.etaMin, min(t, s.tMax), s.tMax)
}

// Step implements Schedule for CosineAnnealingLR.
func (s *CosineAnnealingLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}

// WarmRestartsConfig configures CosineAnnealingWarmRestarts.
type WarmRestartsConfig struct {
	T0     int // length of the first period
	TMult  int // period growth factor applied at every restart, >= 1
	EtaMin float64
}

// CosineAnnealingWarmRestarts repeats cosine decays from the base rate to EtaMin,
// restarting at the base rate whenever the position reaches the current period length.
// The period length is multiplied by TMult at each restart, so with T0=10 and TMult=2
// restarts happen at t=10, 30, 70, ...
type CosineAnnealingWarmRestarts struct {
	counter
	tMult  int
	etaMin float64

	// carried across restarts
	period   int // current period length
	pos      int // position within the current period
	restarts int
}

// NewCosineAnnealingWarmRestarts creates a CosineAnnealingWarmRestarts bound to baseRate.
func NewCosineAnnealingWarmRestarts(baseRate float64, cfg WarmRestartsConfig) (*CosineAnnealingWarmRestarts, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if err := validPositiveInt("t_0", cfg.T0); err != nil {
		return nil, err
	}
	if cfg.TMult < 1 {
		return nil, invalidParameter("t_mult must be >= 1, got %d", cfg.TMult)
	}
	if err := validNonNegativeFloat("eta_min", cfg.EtaMin); err != nil {
		return nil, err
	}
	return &CosineAnnealingWarmRestarts{
		counter: c,
		tMult:   cfg.TMult,
		etaMin:  cfg.EtaMin,
		period:  cfg.T0,
	}, nil
}

// Name implements Schedule for CosineAnnealingWarmRestarts.
func (s *CosineAnnealingWarmRestarts) Name() string { return "cosine-warm-restarts" }

// Period returns the length of the period currently in progress.
func (s *CosineAnnealingWarmRestarts) Period() int { return s.period }

// Restarts returns the number of restarts performed so far.
func (s *CosineAnnealingWarmRestarts) Restarts() int { return s.restarts }

// Step implements Schedule for CosineAnnealingWarmRestarts.
func (s *CosineAnnealingWarmRestarts) Step(_ ...float64) error {
	s.pos++
	if s.pos >= s.period {
		s.pos = 0
		s.period *= s.tMult
		s.restarts++
		logrus.Debugf("cosine-warm-restarts: restart %d at step %d, next period %d", s.restarts, s.step+1, s.period)
	}
	s.advance(cosineAnneal(s.baseRate, s.etaMin, s.pos, s.period))
	return nil
}
