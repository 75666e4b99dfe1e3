package lr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineAnnealingLR_HalfPeriod(t *testing.T) {
	// GIVEN CosineAnnealingLR(T_max=50, eta_min=0) on base 0.1
	s, err := NewCosineAnnealingLR(0.1, CosineAnnealingConfig{TMax: 50, EtaMin: 0})
	require.NoError(t, err)

	rates := ratesFor(t, s, 80)

	assert.Equal(t, 0.1, rates[0])
	assert.InDelta(t, 0.05, rates[25], 1e-12)
	assert.InDelta(t, 0.0, rates[50], 1e-12)
	for tt := 1; tt <= 50; tt++ {
		assert.LessOrEqual(t, rates[tt], rates[tt-1], "non-increasing at t=%d", tt)
	}
	// THEN it holds at eta_min past T_max, with no restart
	for tt := 51; tt <= 80; tt++ {
		assert.Equal(t, rates[50], rates[tt], "t=%d", tt)
	}
}

func TestCosineAnnealingLR_EtaMinFloor(t *testing.T) {
	s, err := NewCosineAnnealingLR(0.1, CosineAnnealingConfig{TMax: 25, EtaMin: 0.05})
	require.NoError(t, err)
	assert.InDelta(t, 0.05, s.RateAt(25), 1e-12)
	assert.InDelta(t, 0.075, s.RateAt(12), 0.01)
	assert.InDelta(t, 0.05, s.RateAt(1000), 1e-12)
}

func TestCosineAnnealingWarmRestarts_GrowingPeriods(t *testing.T) {
	// GIVEN CosineAnnealingWarmRestarts(T_0=10, T_mult=2) on base 0.1
	s, err := NewCosineAnnealingWarmRestarts(0.1, WarmRestartsConfig{T0: 10, TMult: 2})
	require.NoError(t, err)

	rates := ratesFor(t, s, 75)

	// THEN every restart boundary (periods 10, 20, 40) is back at the base rate
	boundaries := []int{0, 10, 30, 70}
	for _, b := range boundaries {
		assert.Equal(t, 0.1, rates[b], "restart at t=%d", b)
	}
	// AND the rate strictly decreases within each period
	starts := map[int]bool{0: true, 10: true, 30: true, 70: true}
	for tt := 1; tt <= 75; tt++ {
		if starts[tt] {
			continue
		}
		assert.Less(t, rates[tt], rates[tt-1], "strictly decreasing at t=%d", tt)
	}
	assert.Equal(t, 3, s.Restarts())
	assert.Equal(t, 80, s.Period())
}

func TestCosineAnnealingWarmRestarts_FixedPeriod(t *testing.T) {
	s, err := NewCosineAnnealingWarmRestarts(0.1, WarmRestartsConfig{T0: 10, TMult: 1})
	require.NoError(t, err)

	rates := ratesFor(t, s, 40)

	for tt := 0; tt < 10; tt++ {
		assert.InDelta(t, rates[tt], rates[tt+10], 1e-15, "sawtooth repeats at t=%d", tt)
		assert.InDelta(t, rates[tt], rates[tt+30], 1e-15, "sawtooth repeats at t=%d", tt)
	}
	assert.Equal(t, 10, s.Period())
	assert.Equal(t, 4, s.Restarts())
}

func TestCosineAnnealingWarmRestarts_MidPeriod(t *testing.T) {
	s, err := NewCosineAnnealingWarmRestarts(0.2, WarmRestartsConfig{T0: 10, TMult: 1, EtaMin: 0.1})
	require.NoError(t, err)
	rates := ratesFor(t, s, 5)
	assert.InDelta(t, 0.15, rates[5], 1e-12)
}
