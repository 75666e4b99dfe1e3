package trace

// Series collects the (step, rate) points of one schedule run.
type Series struct {
	Label  string  `json:"label" yaml:"label"`
	Policy string  `json:"policy" yaml:"policy"`
	Points []Point `json:"points" yaml:"points"`
}

// NewSeries creates a Series ready for recording. capacity pre-sizes the point buffer.
func NewSeries(label, policy string, capacity int) *Series {
	return &Series{
		Label:  label,
		Policy: policy,
		Points: make([]Point, 0, max(capacity, 0)),
	}
}

// Record appends a point.
func (s *Series) Record(step int, rate float64) {
	s.Points = append(s.Points, Point{Step: step, Rate: rate})
}

// Len returns the number of recorded points.
func (s *Series) Len() int { return len(s.Points) }

// Rates returns the recorded rates in step order.
func (s *Series) Rates() []float64 {
	rates := make([]float64, len(s.Points))
	for i, p := range s.Points {
		rates[i] = p.Rate
	}
	return rates
}
