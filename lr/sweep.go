package lr

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/lrsim/lr/trace"
)

// SweepConfig describes a set of schedules to simulate, each with optional
// single-parameter variations.
type SweepConfig struct {
	Steps     int          `yaml:"steps"` // default run length for entries that do not set one
	Schedules []SweepEntry `yaml:"schedules"`
}

// SweepEntry is one base schedule plus variations of it.
type SweepEntry struct {
	Name           string `yaml:"name"`
	ScheduleConfig `yaml:",inline"`
	Steps          int       `yaml:"steps,omitempty"`
	Metrics        []float64 `yaml:"metrics,omitempty"`
	// DefaultMetric is fed to the schedule after Metrics runs out. Unset means 0.5.
	DefaultMetric *float64 `yaml:"default_metric,omitempty"`
	// Variations are merged onto Params one at a time; each produces its own series.
	Variations []Params `yaml:"variations,omitempty"`
}

// SweepResult holds the series produced for one SweepEntry.
type SweepResult struct {
	Name       string
	Base       *trace.Series
	Variations []*trace.Series
	// Skipped lists variations that could not be built, with the reason.
	Skipped []string
}

// All returns the base series followed by the variation series.
func (r *SweepResult) All() []*trace.Series {
	out := make([]*trace.Series, 0, len(r.Variations)+1)
	if r.Base != nil {
		out = append(out, r.Base)
	}
	return append(out, r.Variations...)
}

// LoadSweep reads and parses a YAML sweep file.
// Uses strict field checking: unknown keys are errors.
func LoadSweep(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}
	return ParseSweep(data)
}

// ParseSweep parses a YAML sweep document with strict field checking.
func ParseSweep(data []byte) (*SweepConfig, error) {
	var cfg SweepConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing sweep config: %w", err)
	}
	return &cfg, nil
}

// stepsFor returns the run length for entry e.
func (c *SweepConfig) stepsFor(e *SweepEntry) int {
	if e.Steps > 0 {
		return e.Steps
	}
	return c.Steps
}

// Validate checks entry names, run lengths, metrics and that every base schedule builds.
// Variations are not validated here: RunSweep skips the ones that fail to build.
func (c *SweepConfig) Validate() error {
	if len(c.Schedules) == 0 {
		return fmt.Errorf("sweep has no schedules")
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	seen := make(map[string]bool, len(c.Schedules))
	for i := range c.Schedules {
		e := &c.Schedules[i]
		prefix := fmt.Sprintf("schedules[%d]", i)
		if e.Name == "" {
			return fmt.Errorf("%s: name is required", prefix)
		}
		if seen[e.Name] {
			return fmt.Errorf("%s: duplicate name %q", prefix, e.Name)
		}
		seen[e.Name] = true
		if c.stepsFor(e) <= 0 {
			return fmt.Errorf("%s (%s): steps must be positive", prefix, e.Name)
		}
		for j, m := range e.Metrics {
			if math.IsNaN(m) || math.IsInf(m, 0) {
				return fmt.Errorf("%s (%s): metrics[%d] must be finite, got %v", prefix, e.Name, j, m)
			}
		}
		if _, err := e.Build(); err != nil {
			return fmt.Errorf("%s (%s): %w", prefix, e.Name, err)
		}
	}
	return nil
}

func (c *SweepConfig) runConfig(e *SweepEntry, label string) RunConfig {
	return RunConfig{
		Label:          label,
		Steps:          c.stepsFor(e),
		Metrics:        e.Metrics,
		FallbackMetric: valueOr(e.DefaultMetric, DefaultMetric),
	}
}

// RunSweep validates cfg and simulates every entry and its variations.
// A variation that fails to build is logged and skipped; a base schedule that fails
// is an error.
func RunSweep(cfg *SweepConfig) ([]SweepResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make([]SweepResult, 0, len(cfg.Schedules))
	for i := range cfg.Schedules {
		e := &cfg.Schedules[i]
		res := SweepResult{Name: e.Name}

		sched, err := e.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		res.Base, err = Simulate(sched, cfg.runConfig(e, "Base: "+e.Params.String()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		logrus.Debugf("sweep %s: simulated base %s for %d steps", e.Name, e.Policy, res.Base.Len())

		for _, v := range e.Variations {
			variant := e.ScheduleConfig
			variant.Params = e.Params.Merge(v)
			label := v.String()
			sched, err := variant.Build()
			if err != nil {
				logrus.Warnf("Skipping variation %s for %s due to error: %v", label, e.Name, err)
				res.Skipped = append(res.Skipped, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			series, err := Simulate(sched, cfg.runConfig(e, label))
			if err != nil {
				logrus.Warnf("Skipping variation %s for %s due to error: %v", label, e.Name, err)
				res.Skipped = append(res.Skipped, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			res.Variations = append(res.Variations, series)
		}
		results = append(results, res)
	}
	return results, nil
}
