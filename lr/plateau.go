package lr

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Plateau comparison modes.
const (
	PlateauMin = "min"
	PlateauMax = "max"

	ThresholdAbs = "abs"
	ThresholdRel = "rel"
)

// ValidPlateauModes is the set of recognized ReduceLROnPlateau modes.
var ValidPlateauModes = map[string]bool{PlateauMin: true, PlateauMax: true}

// ValidThresholdModes is the set of recognized ReduceLROnPlateau threshold modes.
var ValidThresholdModes = map[string]bool{ThresholdAbs: true, ThresholdRel: true}

// PlateauConfig configures ReduceLROnPlateau.
type PlateauConfig struct {
	Mode          string  // min: lower metric is better; max: higher is better
	Factor        float64 // rate multiplier on reduction, in (0, 1)
	Patience      int     // non-improving steps tolerated before reducing
	Threshold     float64 // minimum change that counts as an improvement
	ThresholdMode string  // abs: best -/+ threshold; rel: best * (1 -/+ threshold)
	Cooldown      int     // steps to skip comparison after a reduction
	MinLR         float64 // reductions never go below this rate
}

// DefaultPlateauConfig returns the ReduceLROnPlateau defaults.
func DefaultPlateauConfig() PlateauConfig {
	return PlateauConfig{
		Mode:          PlateauMin,
		Factor:        0.1,
		Patience:      10,
		Threshold:     1e-4,
		ThresholdMode: ThresholdAbs,
	}
}

// PlateauPhase is the state of a ReduceLROnPlateau schedule.
type PlateauPhase string

const (
	// PhaseWatching compares every metric against the best seen so far.
	PhaseWatching PlateauPhase = "watching"
	// PhaseCoolingDown skips comparison for the remaining cooldown steps.
	PhaseCoolingDown PlateauPhase = "cooling-down"
)

// ReduceLROnPlateau multiplies the current rate by Factor once the monitored metric
// has failed to improve for more than Patience consecutive steps.
//
// State machine, one transition per Step:
//
//	watching     --better-->          watching (best = metric, bad = 0)
//	watching     --bad <= patience--> watching (bad++)
//	watching     --bad >  patience--> cooling-down(cooldown), rate *= factor, bad = 0
//	                                  (straight back to watching when cooldown = 0)
//	cooling-down --remaining > 1-->   cooling-down(remaining-1), bad = 0
//	cooling-down --remaining = 1-->   watching, bad = 0
//
// The rate is not a function of the step count; it depends on the metric history.
type ReduceLROnPlateau struct {
	counter
	cfg PlateauConfig

	phase        PlateauPhase
	best         float64
	badSteps     int
	cooldownLeft int
	reductions   int
}

// NewReduceLROnPlateau creates a ReduceLROnPlateau bound to baseRate.
func NewReduceLROnPlateau(baseRate float64, cfg PlateauConfig) (*ReduceLROnPlateau, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if !ValidPlateauModes[cfg.Mode] {
		return nil, invalidParameter("unknown plateau mode %q; valid: min, max", cfg.Mode)
	}
	if !ValidThresholdModes[cfg.ThresholdMode] {
		return nil, invalidParameter("unknown threshold mode %q; valid: abs, rel", cfg.ThresholdMode)
	}
	if math.IsNaN(cfg.Factor) || cfg.Factor <= 0 || cfg.Factor >= 1 {
		return nil, invalidParameter("factor must be in (0, 1), got %v", cfg.Factor)
	}
	if cfg.Patience < 0 {
		return nil, invalidParameter("patience must be non-negative, got %d", cfg.Patience)
	}
	if cfg.Cooldown < 0 {
		return nil, invalidParameter("cooldown must be non-negative, got %d", cfg.Cooldown)
	}
	if err := validNonNegativeFloat("threshold", cfg.Threshold); err != nil {
		return nil, err
	}
	if err := validNonNegativeFloat("min_lr", cfg.MinLR); err != nil {
		return nil, err
	}
	best := math.Inf(1)
	if cfg.Mode == PlateauMax {
		best = math.Inf(-1)
	}
	return &ReduceLROnPlateau{counter: c, cfg: cfg, phase: PhaseWatching, best: best}, nil
}

// Name implements Schedule for ReduceLROnPlateau.
func (s *ReduceLROnPlateau) Name() string { return "plateau" }

// Phase returns the current state of the plateau state machine.
func (s *ReduceLROnPlateau) Phase() PlateauPhase { return s.phase }

// Best returns the best metric seen so far (±Inf before the first comparison).
func (s *ReduceLROnPlateau) Best() float64 { return s.best }

// BadSteps returns the current count of consecutive non-improving steps.
func (s *ReduceLROnPlateau) BadSteps() int { return s.badSteps }

// Reductions returns how many times the rate has been reduced.
func (s *ReduceLROnPlateau) Reductions() int { return s.reductions }

// isBetter reports whether metric improves on the best value beyond the threshold.
// An infinite best (nothing seen yet) is beaten by any finite metric.
func (s *ReduceLROnPlateau) isBetter(metric float64) bool {
	switch {
	case math.IsInf(s.best, 0):
		return true
	case s.cfg.Mode == PlateauMin && s.cfg.ThresholdMode == ThresholdRel:
		return metric < s.best*(1-s.cfg.Threshold)
	case s.cfg.Mode == PlateauMin:
		return metric < s.best-s.cfg.Threshold
	case s.cfg.ThresholdMode == ThresholdRel:
		return metric > s.best*(1+s.cfg.Threshold)
	default:
		return metric > s.best+s.cfg.Threshold
	}
}

// Step implements Schedule for ReduceLROnPlateau. Exactly one finite metric is required.
func (s *ReduceLROnPlateau) Step(metric ...float64) error {
	if len(metric) != 1 {
		return invalidArgument("plateau step requires exactly one metric, got %d", len(metric))
	}
	m := metric[0]
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return invalidArgument("plateau metric must be finite, got %v", m)
	}

	if s.phase == PhaseCoolingDown {
		s.cooldownLeft--
		s.badSteps = 0
		if s.cooldownLeft == 0 {
			s.phase = PhaseWatching
		}
		s.advance(s.rate)
		return nil
	}

	rate := s.rate
	if s.isBetter(m) {
		s.best = m
		s.badSteps = 0
	} else {
		s.badSteps++
		if s.badSteps > s.cfg.Patience {
			s.badSteps = 0
			rate = math.Max(s.rate*s.cfg.Factor, s.cfg.MinLR)
			// already at min_lr: nothing to reduce, so no cooldown either
			if rate < s.rate {
				s.reductions++
				if s.cfg.Cooldown > 0 {
					s.phase = PhaseCoolingDown
					s.cooldownLeft = s.cfg.Cooldown
				}
				logrus.Debugf("plateau: step %d reducing rate %g -> %g (best=%g)", s.step+1, s.rate, rate, s.best)
			}
		}
	}
	s.advance(rate)
	return nil
}
