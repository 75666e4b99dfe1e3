package lr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/lrsim/lr/trace"
)

func TestSimulate_RejectsNonPositiveSteps(t *testing.T) {
	s, err := NewExponentialLR(0.1, ExponentialConfig{Gamma: 0.9})
	require.NoError(t, err)

	series, err := Simulate(s, RunConfig{Steps: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, series)
}

func TestSimulate_RecordsRateBeforeEachStep(t *testing.T) {
	// GIVEN StepLR(step_size=2, gamma=0.5)
	s, err := NewStepLR(1.0, StepConfig{StepSize: 2, Gamma: 0.5})
	require.NoError(t, err)

	// WHEN simulated for 6 steps
	series, err := Simulate(s, RunConfig{Label: "halving", Steps: 6})
	require.NoError(t, err)

	// THEN point i holds the rate after i completed steps
	assert.Equal(t, "halving", series.Label)
	assert.Equal(t, "step", series.Policy)
	assert.Equal(t, []float64{1, 1, 0.5, 0.5, 0.25, 0.25}, series.Rates())
	for i, p := range series.Points {
		assert.Equal(t, i, p.Step)
	}
	assert.Equal(t, 6, s.LastStep())
}

func TestSimulate_StrictOneCycleStopsAtHorizon(t *testing.T) {
	s := newOneCycle(t, func(c *OneCycleConfig) { c.Strict = true })

	series, err := Simulate(s, RunConfig{Steps: 102})

	assert.ErrorIs(t, err, ErrOutOfRange)
	require.NotNil(t, series)
	assert.Equal(t, 101, series.Len())
}

func TestSimulate_WarmRestartsShowUpAsIncreases(t *testing.T) {
	s, err := NewCosineAnnealingWarmRestarts(0.1, WarmRestartsConfig{T0: 10, TMult: 1})
	require.NoError(t, err)

	series, err := Simulate(s, RunConfig{Steps: 40})
	require.NoError(t, err)

	summary := trace.Summarize(series)
	assert.Equal(t, 3, summary.Increases)
	assert.Equal(t, 39, summary.Changes)
	assert.InDelta(t, 0.1, summary.Max, 1e-15)
	assert.InDelta(t, 0.1, summary.Initial, 1e-15)
}

func TestSimulate_PlateauUsesFallbackMetric(t *testing.T) {
	s := newPlateau(t, func(c *PlateauConfig) { c.Patience = 0 })

	// only the first metric is supplied; the rest fall back to a flat 2.0
	series, err := Simulate(s, RunConfig{Steps: 4, Metrics: []float64{2.0}, FallbackMetric: 2.0})
	require.NoError(t, err)

	rates := series.Rates()
	assert.InDelta(t, 0.1, rates[0], 1e-15)
	assert.InDelta(t, 0.1, rates[1], 1e-15)
	assert.InDelta(t, 0.01, rates[2], 1e-15)
	assert.InDelta(t, 0.001, rates[3], 1e-15)
}

func TestSimulate_ReplacesAttachedOptimizer(t *testing.T) {
	s, err := NewExponentialLR(0.1, ExponentialConfig{Gamma: 0.5})
	require.NoError(t, err)
	mine := &ParamGroup{}
	s.Attach(mine)

	_, err = Simulate(s, RunConfig{Steps: 3})
	require.NoError(t, err)

	// the caller's group saw the rate at attach time only
	assert.Equal(t, 0.1, mine.LearningRate())
}
