package lr

import (
	"fmt"

	"github.com/inference-sim/lrsim/lr/trace"
)

// DefaultMetric is fed to the schedule when a run supplies no metric for a step.
const DefaultMetric = 0.5

// RunConfig controls a Simulate run.
type RunConfig struct {
	Label string
	Steps int
	// Metrics[i] is passed to Step after recording step i. Steps beyond the end of
	// Metrics use FallbackMetric.
	Metrics        []float64
	FallbackMetric float64
}

// Simulate drives s for cfg.Steps steps the way a training loop would: read the rate
// from the optimizer, then step the schedule. s is attached to a fresh ParamGroup for
// the duration of the run, replacing any optimizer attached before.
func Simulate(s Schedule, cfg RunConfig) (*trace.Series, error) {
	if cfg.Steps <= 0 {
		return nil, invalidArgument("steps must be positive, got %d", cfg.Steps)
	}
	group := &ParamGroup{}
	s.Attach(group)

	series := trace.NewSeries(cfg.Label, s.Name(), cfg.Steps)
	for i := 0; i < cfg.Steps; i++ {
		series.Record(i, group.LearningRate())
		metric := cfg.FallbackMetric
		if i < len(cfg.Metrics) {
			metric = cfg.Metrics[i]
		}
		if err := s.Step(metric); err != nil {
			return series, fmt.Errorf("step %d of %s: %w", i, s.Name(), err)
		}
	}
	return series, nil
}
