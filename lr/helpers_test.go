package lr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ratesFor steps s n times and returns the rate in effect before each step plus the
// final rate, so rates[t] is the rate after t completed steps.
func ratesFor(t *testing.T, s Schedule, n int, metric ...float64) []float64 {
	t.Helper()
	rates := make([]float64, 0, n+1)
	rates = append(rates, s.CurrentRate())
	for i := 0; i < n; i++ {
		require.NoError(t, s.Step(metric...))
		rates = append(rates, s.CurrentRate())
	}
	return rates
}
