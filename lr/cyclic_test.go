package lr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCyclicLR_Triangular(t *testing.T) {
	// GIVEN CyclicLR(base=0.001, max=0.1, step_size_up=5, triangular)
	s, err := NewCyclicLR(0.001, CyclicConfig{MaxLR: 0.1, StepSizeUp: 5, Mode: CyclicTriangular})
	require.NoError(t, err)

	rates := ratesFor(t, s, 30)

	assert.Equal(t, 0.001, rates[0])
	assert.InDelta(t, 0.001+0.099*0.4, rates[2], 1e-12)
	// THEN every cycle reaches the full ceiling and returns to the floor
	for _, peak := range []int{5, 15, 25} {
		assert.InDelta(t, 0.1, rates[peak], 1e-12, "peak at t=%d", peak)
	}
	for _, trough := range []int{10, 20, 30} {
		assert.InDelta(t, 0.001, rates[trough], 1e-12, "trough at t=%d", trough)
	}
	assert.Equal(t, 10, s.CycleLength())
}

func TestCyclicLR_Triangular2HalvesEachCycle(t *testing.T) {
	s, err := NewCyclicLR(0.001, CyclicConfig{MaxLR: 0.1, StepSizeUp: 5, Mode: CyclicTriangular2})
	require.NoError(t, err)

	assert.InDelta(t, 0.1, s.RateAt(5), 1e-12)
	assert.InDelta(t, 0.001+0.099/2, s.RateAt(15), 1e-12)
	assert.InDelta(t, 0.001+0.099/4, s.RateAt(25), 1e-12)
}

func TestCyclicLR_ExpRangeDecaysWithAbsoluteStep(t *testing.T) {
	s, err := NewCyclicLR(0.001, CyclicConfig{MaxLR: 0.1, StepSizeUp: 5, Mode: CyclicExpRange, Gamma: 0.99})
	require.NoError(t, err)

	assert.InDelta(t, 0.001+0.099*math.Pow(0.99, 5), s.RateAt(5), 1e-12)
	assert.InDelta(t, 0.001+0.099*math.Pow(0.99, 15), s.RateAt(15), 1e-12)
	assert.InDelta(t, 0.001+0.099*0.4*math.Pow(0.99, 2), s.RateAt(2), 1e-12)
}

func TestCyclicLR_AsymmetricTriangle(t *testing.T) {
	// GIVEN step_size_up=2 and step_size_down=4
	s, err := NewCyclicLR(0.0, CyclicConfig{MaxLR: 1.0, StepSizeUp: 2, StepSizeDown: 4, Mode: CyclicTriangular})
	require.NoError(t, err)

	want := []float64{0, 0.5, 1.0, 0.75, 0.5, 0.25, 0, 0.5, 1.0}
	for tt, w := range want {
		assert.InDelta(t, w, s.RateAt(tt), 1e-12, "t=%d", tt)
	}
}

func TestCyclicLR_StepSizeDownDefaultsToUp(t *testing.T) {
	s, err := NewCyclicLR(0.0, CyclicConfig{MaxLR: 1.0, StepSizeUp: 3, Mode: CyclicTriangular})
	require.NoError(t, err)
	assert.Equal(t, 6, s.CycleLength())
}
