package lr

import "math"

// Optimizer is the collaborator a Schedule drives. The schedule writes its rate into
// the optimizer when attached and after every successful Step; that write is the only
// externally observable effect of stepping.
type Optimizer interface {
	SetLearningRate(rate float64)
}

// ParamGroup is a minimal in-memory Optimizer holding a single learning rate.
type ParamGroup struct {
	LR float64
}

// SetLearningRate implements Optimizer.
func (p *ParamGroup) SetLearningRate(rate float64) { p.LR = rate }

// LearningRate returns the rate last written by a schedule.
func (p *ParamGroup) LearningRate() float64 { return p.LR }

// Schedule is a learning-rate policy advanced once per training step.
//
// After t successful calls to Step, CurrentRate returns the rate in effect for step t;
// before any Step it returns the initial rate. A rejected Step leaves all state untouched.
// Instances are not safe for concurrent use.
type Schedule interface {
	// Name returns the policy name as used in sweep files (e.g. "cosine-annealing").
	Name() string
	// Step advances the schedule by one step. Only ReduceLROnPlateau reads the metric;
	// every other policy ignores it.
	Step(metric ...float64) error
	CurrentRate() float64
	BaseRate() float64
	// LastStep returns the number of completed Step calls.
	LastStep() int
	// Attach binds an optimizer and immediately writes the current rate into it.
	Attach(opt Optimizer)
}

// RateFunc is implemented by schedules whose rate is a pure function of the step counter.
type RateFunc interface {
	RateAt(t int) float64
}

// counter holds the state every policy shares: base rate, step count, current rate
// and the attached optimizer.
type counter struct {
	baseRate float64
	rate     float64
	step     int
	opt      Optimizer
}

func newCounter(baseRate float64) (counter, error) {
	if math.IsNaN(baseRate) || math.IsInf(baseRate, 0) || baseRate < 0 {
		return counter{}, invalidParameter("base rate must be finite and non-negative, got %v", baseRate)
	}
	return counter{baseRate: baseRate, rate: baseRate}, nil
}

func (c *counter) CurrentRate() float64 { return c.rate }

func (c *counter) BaseRate() float64 { return c.baseRate }

func (c *counter) LastStep() int { return c.step }

func (c *counter) Attach(opt Optimizer) {
	c.opt = opt
	c.publish()
}

// advance records one completed step with the rate now in effect.
func (c *counter) advance(rate float64) {
	c.step++
	c.rate = rate
	c.publish()
}

func (c *counter) publish() {
	if c.opt != nil {
		c.opt.SetLearningRate(c.rate)
	}
}

func validPositiveInt(name string, v int) error {
	if v <= 0 {
		return invalidParameter("%s must be positive, got %d", name, v)
	}
	return nil
}

func validPositiveFloat(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalidParameter("%s must be positive, got %v", name, v)
	}
	return nil
}

func validNonNegativeFloat(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return invalidParameter("%s must be non-negative, got %v", name, v)
	}
	return nil
}
