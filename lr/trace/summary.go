package trace

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesSummary aggregates statistics from a Series.
type SeriesSummary struct {
	Label     string
	Policy    string
	Steps     int
	Initial   float64
	Final     float64
	Min       float64
	Max       float64
	Mean      float64
	StdDev    float64 // sample standard deviation; 0 with fewer than two points
	Changes   int     // steps where the rate differs from the previous step
	Increases int     // steps where the rate went up (cycles, restarts, warm-up)
}

// Summarize computes aggregate statistics from a Series.
// Safe for nil or empty series (returns zero-value fields).
func Summarize(s *Series) *SeriesSummary {
	summary := &SeriesSummary{}
	if s == nil {
		return summary
	}
	summary.Label = s.Label
	summary.Policy = s.Policy
	summary.Steps = len(s.Points)
	if len(s.Points) == 0 {
		return summary
	}

	rates := s.Rates()
	summary.Initial = rates[0]
	summary.Final = rates[len(rates)-1]
	summary.Min = floats.Min(rates)
	summary.Max = floats.Max(rates)
	summary.Mean = stat.Mean(rates, nil)
	if len(rates) > 1 {
		summary.StdDev = stat.StdDev(rates, nil)
	}

	for i := 1; i < len(rates); i++ {
		if rates[i] != rates[i-1] {
			summary.Changes++
		}
		if rates[i] > rates[i-1] {
			summary.Increases++
		}
	}
	return summary
}
