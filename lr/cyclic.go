package lr

import "math"

// Cyclic amplitude scaling modes.
const (
	CyclicTriangular  = "triangular"
	CyclicTriangular2 = "triangular2"
	CyclicExpRange    = "exp_range"
)

// ValidCyclicModes is the set of recognized CyclicLR modes.
var ValidCyclicModes = map[string]bool{CyclicTriangular: true, CyclicTriangular2: true, CyclicExpRange: true}

// CyclicConfig configures CyclicLR. The schedule's base rate is the floor of the wave.
type CyclicConfig struct {
	MaxLR        float64 // ceiling of the first cycle
	StepSizeUp   int     // steps from floor to ceiling
	StepSizeDown int     // steps from ceiling back to floor; 0 means StepSizeUp
	Mode         string  // triangular, triangular2 or exp_range
	Gamma        float64 // exp_range decay per step; ignored by the other modes
}

// DefaultCyclicConfig returns the CyclicLR defaults. MaxLR has no default.
func DefaultCyclicConfig() CyclicConfig {
	return CyclicConfig{StepSizeUp: 2000, Mode: CyclicTriangular, Gamma: 1.0}
}

// CyclicLR oscillates between the base rate and MaxLR along a triangular wave.
// Cycle index and position within the cycle are derived from the step counter:
//
//	cycle = t / (up + down), pos = t % (up + down)
//
// triangular keeps the full amplitude, triangular2 halves it after every completed cycle,
// and exp_range scales it by gamma^t.
type CyclicLR struct {
	counter
	maxLR        float64
	stepSizeUp   int
	stepSizeDown int
	mode         string
	gamma        float64
}

// NewCyclicLR creates a CyclicLR whose floor is baseRate.
func NewCyclicLR(baseRate float64, cfg CyclicConfig) (*CyclicLR, error) {
	c, err := newCounter(baseRate)
	if err != nil {
		return nil, err
	}
	if !ValidCyclicModes[cfg.Mode] {
		return nil, invalidParameter("unknown cyclic mode %q; valid: triangular, triangular2, exp_range", cfg.Mode)
	}
	if err := validNonNegativeFloat("max_lr", cfg.MaxLR); err != nil {
		return nil, err
	}
	if err := validPositiveInt("step_size_up", cfg.StepSizeUp); err != nil {
		return nil, err
	}
	down := cfg.StepSizeDown
	if down == 0 {
		down = cfg.StepSizeUp
	}
	if err := validPositiveInt("step_size_down", down); err != nil {
		return nil, err
	}
	if cfg.Mode == CyclicExpRange {
		if err := validPositiveFloat("gamma", cfg.Gamma); err != nil {
			return nil, err
		}
	}
	return &CyclicLR{
		counter:      c,
		maxLR:        cfg.MaxLR,
		stepSizeUp:   cfg.StepSizeUp,
		stepSizeDown: down,
		mode:         cfg.Mode,
		gamma:        cfg.Gamma,
	}, nil
}

// Name implements Schedule for CyclicLR.
func (s *CyclicLR) Name() string { return "cyclic" }

// CycleLength returns step_size_up + step_size_down.
func (s *CyclicLR) CycleLength() int { return s.stepSizeUp + s.stepSizeDown }

// RateAt implements RateFunc for CyclicLR.
func (s *CyclicLR) RateAt(t int) float64 {
	length := s.CycleLength()
	cycle := t / length
	pos := t % length

	var scale float64
	if pos <= s.stepSizeUp {
		scale = float64(pos) / float64(s.stepSizeUp)
	} else {
		scale = float64(length-pos) / float64(s.stepSizeDown)
	}

	amplitude := s.maxLR - s.baseRate
	switch s.mode {
	case CyclicTriangular2:
		amplitude /= math.Pow(2, float64(cycle))
	case CyclicExpRange:
		amplitude *= math.Pow(s.gamma, float64(t))
	}
	return s.baseRate + amplitude*scale
}

// Step implements Schedule for CyclicLR.
func (s *CyclicLR) Step(_ ...float64) error {
	s.advance(s.RateAt(s.step + 1))
	return nil
}
