// Package trace records the learning rate produced at every step of a schedule run.
// It has no dependencies on lr/ and stores pure data types.
package trace

// Point captures the rate in effect at one step.
type Point struct {
	Step int     `json:"step" yaml:"step"`
	Rate float64 `json:"rate" yaml:"rate"`
}
