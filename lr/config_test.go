package lr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AllPoliciesBuildWithRequiredParams(t *testing.T) {
	required := map[string]Params{
		"step":                 {StepSize: intPtr(10)},
		"multi-step":           {Milestones: []int{10, 20}},
		"constant":             {},
		"linear":               {},
		"exponential":          {Gamma: float64Ptr(0.9)},
		"polynomial":           {},
		"cosine-annealing":     {TMax: intPtr(10)},
		"cosine-warm-restarts": {T0: intPtr(10)},
		"cyclic":               {MaxLR: float64Ptr(1)},
		"one-cycle":            {TotalSteps: intPtr(100)},
		"plateau":              {},
	}
	require.Len(t, required, len(ValidPolicies), "every policy needs a case here")
	for policy, p := range required {
		t.Run(policy, func(t *testing.T) {
			s, err := New(policy, 0.1, p)
			require.NoError(t, err)
			assert.Equal(t, policy, s.Name())
			assert.Equal(t, 0.1, s.BaseRate())
			assert.Equal(t, 0, s.LastStep())
		})
	}
}

func TestNew_UnknownPolicy(t *testing.T) {
	s, err := New("warmup-cosine", 0.1, Params{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "warmup-cosine")
}

func TestNew_UnknownParameterForPolicy(t *testing.T) {
	// GIVEN a step policy given a cosine parameter
	s, err := New("step", 0.1, Params{StepSize: intPtr(10), TMax: intPtr(5)})

	// THEN construction fails naming the stray key
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "t_max")
}

func TestNew_MissingRequiredParameter(t *testing.T) {
	tests := []struct {
		policy string
		key    string
	}{
		{"step", "step_size"},
		{"multi-step", "milestones"},
		{"exponential", "gamma"},
		{"cosine-annealing", "t_max"},
		{"cosine-warm-restarts", "t_0"},
		{"cyclic", "max_lr"},
		{"one-cycle", "total_steps"},
	}
	for _, tc := range tests {
		t.Run(tc.policy, func(t *testing.T) {
			s, err := New(tc.policy, 0.1, Params{})
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestNew_DefaultsApplied(t *testing.T) {
	// step gamma defaults to 0.1
	s, err := New("step", 1.0, Params{StepSize: intPtr(1)})
	require.NoError(t, err)
	require.NoError(t, s.Step())
	assert.InDelta(t, 0.1, s.CurrentRate(), 1e-15)

	// plateau defaults: min mode, patience 10, factor 0.1
	s, err = New("plateau", 1.0, Params{})
	require.NoError(t, err)
	p := s.(*ReduceLROnPlateau)
	for i := 0; i < 11; i++ {
		require.NoError(t, p.Step(1.0))
	}
	assert.Equal(t, 0, p.Reductions())
	require.NoError(t, p.Step(1.0))
	assert.Equal(t, 1, p.Reductions())
	assert.InDelta(t, 0.1, p.CurrentRate(), 1e-15)

	// constant defaults: 1/3 for 5 steps
	s, err = New("constant", 0.3, Params{})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, s.CurrentRate(), 1e-15)
}

func TestScheduleConfig_Build_DefaultBaseRate(t *testing.T) {
	s, err := ScheduleConfig{Policy: "exponential", Params: Params{Gamma: float64Ptr(0.5)}}.Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseLR, s.BaseRate())

	s, err = ScheduleConfig{Policy: "exponential", BaseLR: float64Ptr(0.01), Params: Params{Gamma: float64Ptr(0.5)}}.Build()
	require.NoError(t, err)
	assert.Equal(t, 0.01, s.BaseRate())
}

func TestParams_String(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want string
	}{
		{"empty", Params{}, ""},
		{"step", Params{StepSize: intPtr(30), Gamma: float64Ptr(0.1)}, "step_size=30, gamma=0.1"},
		{"milestones", Params{Milestones: []int{30, 80}}, "milestones=[30, 80]"},
		{"zero pointer kept", Params{TMax: intPtr(50), EtaMin: float64Ptr(0)}, "t_max=50, eta_min=0"},
		{"string", Params{Mode: stringPtr("triangular2")}, "mode=triangular2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.String())
		})
	}
}

func TestParams_Merge(t *testing.T) {
	base := Params{StepSize: intPtr(30), Gamma: float64Ptr(0.1)}

	merged := base.Merge(Params{Gamma: float64Ptr(0.5)})

	assert.Equal(t, 30, *merged.StepSize)
	assert.Equal(t, 0.5, *merged.Gamma)
	// base untouched
	assert.Equal(t, 0.1, *base.Gamma)

	// merged pointers are not shared with the override
	over := Params{StepSize: intPtr(10)}
	merged = base.Merge(over)
	*over.StepSize = 99
	assert.Equal(t, 10, *merged.StepSize)
}

func TestParams_MergeMilestonesReplaces(t *testing.T) {
	base := Params{Milestones: []int{30, 80}, Gamma: float64Ptr(0.1)}
	merged := base.Merge(Params{Milestones: []int{20}})
	assert.Equal(t, []int{20}, merged.Milestones)
	assert.Equal(t, []int{30, 80}, base.Milestones)
}

func TestPolicyParams(t *testing.T) {
	assert.Equal(t, []string{"step_size", "gamma"}, PolicyParams("step"))
	assert.Nil(t, PolicyParams("nope"))

	// returned slice is a copy
	keys := PolicyParams("step")
	keys[0] = "mutated"
	assert.Equal(t, "step_size", PolicyParams("step")[0])
}
