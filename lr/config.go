package lr

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBaseLR is the base rate used when a schedule config leaves base_lr unset.
const DefaultBaseLR = 0.1

// Params holds policy parameters as read from YAML.
// Nil pointer fields mean "not set" and fall back to the policy default.
type Params struct {
	StepSize       *int     `yaml:"step_size,omitempty"`
	Milestones     []int    `yaml:"milestones,omitempty"`
	Gamma          *float64 `yaml:"gamma,omitempty"`
	Factor         *float64 `yaml:"factor,omitempty"`
	TotalIters     *int     `yaml:"total_iters,omitempty"`
	StartFactor    *float64 `yaml:"start_factor,omitempty"`
	EndFactor      *float64 `yaml:"end_factor,omitempty"`
	Power          *float64 `yaml:"power,omitempty"`
	TMax           *int     `yaml:"t_max,omitempty"`
	T0             *int     `yaml:"t_0,omitempty"`
	TMult          *int     `yaml:"t_mult,omitempty"`
	EtaMin         *float64 `yaml:"eta_min,omitempty"`
	MaxLR          *float64 `yaml:"max_lr,omitempty"`
	StepSizeUp     *int     `yaml:"step_size_up,omitempty"`
	StepSizeDown   *int     `yaml:"step_size_down,omitempty"`
	Mode           *string  `yaml:"mode,omitempty"`
	TotalSteps     *int     `yaml:"total_steps,omitempty"`
	PctStart       *float64 `yaml:"pct_start,omitempty"`
	DivFactor      *float64 `yaml:"div_factor,omitempty"`
	FinalDivFactor *float64 `yaml:"final_div_factor,omitempty"`
	AnnealStrategy *string  `yaml:"anneal_strategy,omitempty"`
	Strict         *bool    `yaml:"strict,omitempty"`
	Patience       *int     `yaml:"patience,omitempty"`
	Threshold      *float64 `yaml:"threshold,omitempty"`
	ThresholdMode  *string  `yaml:"threshold_mode,omitempty"`
	Cooldown       *int     `yaml:"cooldown,omitempty"`
	MinLR          *float64 `yaml:"min_lr,omitempty"`
}

// Merge returns a copy of p with every field set in over replacing p's value.
func (p Params) Merge(over Params) Params {
	out := p
	setIf(&out.StepSize, over.StepSize)
	if over.Milestones != nil {
		out.Milestones = append([]int(nil), over.Milestones...)
	}
	setIf(&out.Gamma, over.Gamma)
	setIf(&out.Factor, over.Factor)
	setIf(&out.TotalIters, over.TotalIters)
	setIf(&out.StartFactor, over.StartFactor)
	setIf(&out.EndFactor, over.EndFactor)
	setIf(&out.Power, over.Power)
	setIf(&out.TMax, over.TMax)
	setIf(&out.T0, over.T0)
	setIf(&out.TMult, over.TMult)
	setIf(&out.EtaMin, over.EtaMin)
	setIf(&out.MaxLR, over.MaxLR)
	setIf(&out.StepSizeUp, over.StepSizeUp)
	setIf(&out.StepSizeDown, over.StepSizeDown)
	setIf(&out.Mode, over.Mode)
	setIf(&out.TotalSteps, over.TotalSteps)
	setIf(&out.PctStart, over.PctStart)
	setIf(&out.DivFactor, over.DivFactor)
	setIf(&out.FinalDivFactor, over.FinalDivFactor)
	setIf(&out.AnnealStrategy, over.AnnealStrategy)
	setIf(&out.Strict, over.Strict)
	setIf(&out.Patience, over.Patience)
	setIf(&out.Threshold, over.Threshold)
	setIf(&out.ThresholdMode, over.ThresholdMode)
	setIf(&out.Cooldown, over.Cooldown)
	setIf(&out.MinLR, over.MinLR)
	return out
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// fields returns the set parameters as (yaml key, rendered value) pairs in declaration order.
func (p Params) fields() ([][2]string, error) {
	var node yaml.Node
	if err := node.Encode(p); err != nil {
		return nil, err
	}
	var out [][2]string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		rendered := val.Value
		if val.Kind == yaml.SequenceNode {
			items := make([]string, len(val.Content))
			for j, item := range val.Content {
				items[j] = item.Value
			}
			rendered = "[" + strings.Join(items, ", ") + "]"
		}
		out = append(out, [2]string{key.Value, rendered})
	}
	return out, nil
}

// Keys returns the YAML names of the parameters that are set.
func (p Params) Keys() []string {
	fields, err := p.fields()
	if err != nil {
		return nil
	}
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f[0]
	}
	return keys
}

// String renders the set parameters as "key=value" pairs, e.g. "step_size=30, gamma=0.1".
func (p Params) String() string {
	fields, err := p.fields()
	if err != nil {
		return fmt.Sprintf("<invalid params: %v>", err)
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f[0] + "=" + f[1]
	}
	return strings.Join(parts, ", ")
}

// policyParams lists the parameters each policy accepts.
var policyParams = map[string][]string{
	"step":                 {"step_size", "gamma"},
	"multi-step":           {"milestones", "gamma"},
	"constant":             {"factor", "total_iters"},
	"linear":               {"start_factor", "end_factor", "total_iters"},
	"exponential":          {"gamma"},
	"polynomial":           {"total_iters", "power"},
	"cosine-annealing":     {"t_max", "eta_min"},
	"cosine-warm-restarts": {"t_0", "t_mult", "eta_min"},
	"cyclic":               {"max_lr", "step_size_up", "step_size_down", "mode", "gamma"},
	"one-cycle":            {"max_lr", "total_steps", "pct_start", "div_factor", "final_div_factor", "anneal_strategy", "strict"},
	"plateau":              {"mode", "factor", "patience", "threshold", "threshold_mode", "cooldown", "min_lr"},
}

// ValidPolicies is the set of recognized policy names.
// Shared by SweepConfig.Validate() and New() to avoid duplication.
var ValidPolicies = func() map[string]bool {
	m := make(map[string]bool, len(policyParams))
	for name := range policyParams {
		m[name] = true
	}
	return m
}()

// IsValidPolicy returns true if name is a recognized policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// PolicyParams returns the parameter names accepted by policy, or nil for unknown policies.
func PolicyParams(policy string) []string {
	return append([]string(nil), policyParams[policy]...)
}

// checkKeys rejects parameters the policy does not accept.
func (p Params) checkKeys(policy string) error {
	allowed := make(map[string]bool)
	for _, k := range policyParams[policy] {
		allowed[k] = true
	}
	for _, k := range p.Keys() {
		if !allowed[k] {
			return invalidParameter("policy %q does not accept parameter %q", policy, k)
		}
	}
	return nil
}

func valueOr[T any](v *T, def T) T {
	if v != nil {
		return *v
	}
	return def
}

func missingParameter(name string) error {
	return invalidParameter("%s is required", name)
}

// New creates a Schedule by policy name.
// Valid names are defined in ValidPolicies; unset parameters take the policy defaults.
// Returns ErrInvalidParameter for unknown names, unknown or missing parameters,
// and out-of-domain values.
func New(policy string, baseRate float64, p Params) (Schedule, error) {
	if !IsValidPolicy(policy) {
		return nil, invalidParameter("unknown policy %q", policy)
	}
	if err := p.checkKeys(policy); err != nil {
		return nil, err
	}
	var (
		sched Schedule
		err   error
	)
	switch policy {
	case "step":
		if p.StepSize == nil {
			return nil, missingParameter("step_size")
		}
		stepSize := *p.StepSize
		sched, err = NewStepLR(baseRate, StepConfig{StepSize: stepSize, Gamma: valueOr(p.Gamma, 0.1)})
	case "multi-step":
		if p.Milestones == nil {
			return nil, missingParameter("milestones")
		}
		sched, err = NewMultiStepLR(baseRate, MultiStepConfig{Milestones: p.Milestones, Gamma: valueOr(p.Gamma, 0.1)})
	case "constant":
		cfg := DefaultConstantConfig()
		cfg.Factor = valueOr(p.Factor, cfg.Factor)
		cfg.TotalIters = valueOr(p.TotalIters, cfg.TotalIters)
		sched, err = NewConstantLR(baseRate, cfg)
	case "linear":
		cfg := DefaultLinearConfig()
		cfg.StartFactor = valueOr(p.StartFactor, cfg.StartFactor)
		cfg.EndFactor = valueOr(p.EndFactor, cfg.EndFactor)
		cfg.TotalIters = valueOr(p.TotalIters, cfg.TotalIters)
		sched, err = NewLinearLR(baseRate, cfg)
	case "exponential":
		if p.Gamma == nil {
			return nil, missingParameter("gamma")
		}
		gamma := *p.Gamma
		sched, err = NewExponentialLR(baseRate, ExponentialConfig{Gamma: gamma})
	case "polynomial":
		cfg := DefaultPolynomialConfig()
		cfg.TotalIters = valueOr(p.TotalIters, cfg.TotalIters)
		cfg.Power = valueOr(p.Power, cfg.Power)
		sched, err = NewPolynomialLR(baseRate, cfg)
	case "cosine-annealing":
		if p.TMax == nil {
			return nil, missingParameter("t_max")
		}
		tMax := *p.TMax
		sched, err = NewCosineAnnealingLR(baseRate, CosineAnnealingConfig{TMax: tMax, EtaMin: valueOr(p.EtaMin, 0)})
	case "cosine-warm-restarts":
		if p.T0 == nil {
			return nil, missingParameter("t_0")
		}
		t0 := *p.T0
		sched, err = NewCosineAnnealingWarmRestarts(baseRate, WarmRestartsConfig{
			T0: t0, TMult: valueOr(p.TMult, 1), EtaMin: valueOr(p.EtaMin, 0),
		})
	case "cyclic":
		cfg := DefaultCyclicConfig()
		if p.MaxLR == nil {
			return nil, missingParameter("max_lr")
		}
		maxLR := *p.MaxLR
		cfg.MaxLR = maxLR
		cfg.StepSizeUp = valueOr(p.StepSizeUp, cfg.StepSizeUp)
		cfg.StepSizeDown = valueOr(p.StepSizeDown, cfg.StepSizeDown)
		cfg.Mode = valueOr(p.Mode, cfg.Mode)
		cfg.Gamma = valueOr(p.Gamma, cfg.Gamma)
		sched, err = NewCyclicLR(baseRate, cfg)
	case "one-cycle":
		cfg := DefaultOneCycleConfig()
		if p.TotalSteps == nil {
			return nil, missingParameter("total_steps")
		}
		totalSteps := *p.TotalSteps
		cfg.TotalSteps = totalSteps
		cfg.MaxLR = valueOr(p.MaxLR, cfg.MaxLR)
		cfg.PctStart = valueOr(p.PctStart, cfg.PctStart)
		cfg.DivFactor = valueOr(p.DivFactor, cfg.DivFactor)
		cfg.FinalDivFactor = valueOr(p.FinalDivFactor, cfg.FinalDivFactor)
		cfg.AnnealStrategy = valueOr(p.AnnealStrategy, cfg.AnnealStrategy)
		cfg.Strict = valueOr(p.Strict, cfg.Strict)
		sched, err = NewOneCycleLR(baseRate, cfg)
	case "plateau":
		cfg := DefaultPlateauConfig()
		cfg.Mode = valueOr(p.Mode, cfg.Mode)
		cfg.Factor = valueOr(p.Factor, cfg.Factor)
		cfg.Patience = valueOr(p.Patience, cfg.Patience)
		cfg.Threshold = valueOr(p.Threshold, cfg.Threshold)
		cfg.ThresholdMode = valueOr(p.ThresholdMode, cfg.ThresholdMode)
		cfg.Cooldown = valueOr(p.Cooldown, cfg.Cooldown)
		cfg.MinLR = valueOr(p.MinLR, cfg.MinLR)
		sched, err = NewReduceLROnPlateau(baseRate, cfg)
	default:
		panic(fmt.Sprintf("unhandled policy %q", policy))
	}
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// ScheduleConfig names a policy, its base rate and its parameters.
type ScheduleConfig struct {
	Policy string   `yaml:"policy"`
	BaseLR *float64 `yaml:"base_lr,omitempty"`
	Params Params   `yaml:"params,omitempty"`
}

// Build creates the configured Schedule. An unset base_lr uses DefaultBaseLR.
func (c ScheduleConfig) Build() (Schedule, error) {
	return New(c.Policy, valueOr(c.BaseLR, DefaultBaseLR), c.Params)
}
