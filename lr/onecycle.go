package lr

import "math"

// OneCycleLR annealing shapes.
const (
	AnnealCos    = "cos"
	AnnealLinear = "linear"
)

// ValidAnnealStrategies is the set of recognized OneCycleLR interpolation shapes.
var ValidAnnealStrategies = map[string]bool{AnnealCos: true, AnnealLinear: true}

// OneCycleConfig configures OneCycleLR.
type OneCycleConfig struct {
	MaxLR          float64 // peak rate; 0 means the schedule's base rate
	TotalSteps     int
	PctStart       float64 // fraction of TotalSteps spent ramping up, in (0, 1)
	DivFactor      float64 // initial rate = MaxLR / DivFactor
	FinalDivFactor float64 // final rate = MaxLR / FinalDivFactor
	AnnealStrategy string  // cos or linear, used by both phases
	// Strict makes Step past TotalSteps return ErrOutOfRange instead of clamping.
	Strict bool
}

// DefaultOneCycleConfig returns the OneCycleLR defaults. TotalSteps has no default.
func DefaultOneCycleConfig() OneCycleConfig {
	return OneCycleConfig{PctStart: 0.3, DivFactor: 25, FinalDivFactor: 1e4, AnnealStrategy: AnnealCos}
}

// OneCycleLR ramps from MaxLR/DivFactor up to MaxLR over the first PctStart of
// TotalSteps, then anneals down to MaxLR/FinalDivFactor by step TotalSteps-1.
// Beyond that the rate stays at the final value (or Step fails when Strict is set).
type OneCycleLR struct {
	counter
	maxLR      float64
	initialLR  float64
	finalLR    float64
	totalSteps int
	peakStep   float64 // last step of the warm-up phase
	endStep    float64 // last step of the annealing phase
	linear     bool
	strict     bool
}

// NewOneCycleLR creates a OneCycleLR. The initial rate replaces baseRate as the
// current rate, and is written to any optimizer attached later.
func NewOneCycleLR(baseRate float64, cfg OneCycleConfig) (*OneCycleLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	maxLR := cfg.MaxLR
	if maxLR == 0 {
		maxLR = baseRate
	}
	if err := validPositiveFloat("max_lr", maxLR); err != nil {
		return nil, err
	}
	if err := validPositiveInt("total_steps", cfg.TotalSteps); err != nil {
		return nil, err
	}
	if math.IsNaN(cfg.PctStart) || cfg.PctStart <= 0 || cfg.PctStart >= 1 {
		return nil, invalidParameter("pct_start must be in (0, 1), got %v", cfg.PctStart)
	}
	if err := validPositiveFloat("div_factor", cfg.DivFactor); err != nil {
		return nil, err
	}
	if err := validPositiveFloat("final_div_factor", cfg.FinalDivFactor); err != nil {
		return nil, err
	}
	if !ValidAnnealStrategies[cfg.AnnealStrategy] {
		return nil, invalidParameter("unknown anneal strategy %q; valid: cos, linear", cfg.AnnealStrategy)
	}
	peak := cfg.PctStart*float64(cfg.TotalSteps) - 1
	end := float64(cfg.TotalSteps - 1)
	if peak <= 0 || end <= peak {
		return nil, invalidParameter("total_steps=%d with pct_start=%v leaves an empty phase", cfg.TotalSteps, cfg.PctStart)
	}
	s := &OneCycleLR{
		counter:    c,
		maxLR:      maxLR,
		initialLR:  maxLR / cfg.DivFactor,
		finalLR:    maxLR / cfg.FinalDivFactor,
		totalSteps: cfg.TotalSteps,
		peakStep:   peak,
		endStep:    end,
		linear:     cfg.AnnealStrategy == AnnealLinear,
		strict:     cfg.Strict,
	}
	s.rate = s.RateAt(0)
	return s, nil
}

// Name implements Schedule for OneCycleLR.
func (s *OneCycleLR) Name() string { return "one-cycle" }

// TotalSteps returns the schedule horizon.
func (s *OneCycleLR) TotalSteps() int { return s.totalSteps }

func (s *OneCycleLR) anneal(from, to, pct float64) float64 {
	if s.linear {
		return from + (to-from)*pct
	}
	return to + (from-to)*(1+math.Cos(math.Pi*pct))/2
}

// RateAt implements RateFunc for OneCycleLR. Steps past the horizon clamp to the final rate.
func (s *OneCycleLR) RateAt(t int) float64 {
	x := math.Min(float64(t), s.endStep)
	if x <= s.peakStep {
		return s.anneal(s.initialLR, s.maxLR, x/s.peakStep)
	}
	return s.anneal(s.maxLR, s.finalLR, (x-s.peakStep)/(s.endStep-s.peakStep))
}

// Step implements Schedule for OneCycleLR.
func (s *OneCycleLR) Step(_ ...float64) error {
	if s.strict && s.step >= s.totalSteps {
		return outOfRange(s.step+1, s.totalSteps)
	}
	s.advance(s.RateAt(s.step + 1))
	return nil
}
