package lr

func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }

// DefaultSweep returns the built-in sweep: every policy with a representative base
// configuration and the variations worth comparing against it.
func DefaultSweep() *SweepConfig {
	return &SweepConfig{
		Steps: 100,
		Schedules: []SweepEntry{
			{
				Name:           "StepLR",
				ScheduleConfig: ScheduleConfig{Policy: "step", Params: Params{StepSize: intPtr(30), Gamma: float64Ptr(0.1)}},
				Variations:     []Params{{StepSize: intPtr(10)}, {Gamma: float64Ptr(0.5)}},
			},
			{
				Name:           "MultiStepLR",
				ScheduleConfig: ScheduleConfig{Policy: "multi-step", Params: Params{Milestones: []int{30, 80}, Gamma: float64Ptr(0.1)}},
				Variations:     []Params{{Milestones: []int{20, 60}}, {Gamma: float64Ptr(0.5)}},
			},
			{
				Name:           "ConstantLR",
				ScheduleConfig: ScheduleConfig{Policy: "constant", Params: Params{Factor: float64Ptr(0.33), TotalIters: intPtr(5)}},
				Steps:          50,
				Variations:     []Params{{Factor: float64Ptr(0.1)}, {TotalIters: intPtr(20)}},
			},
			{
				Name:           "LinearLR",
				ScheduleConfig: ScheduleConfig{Policy: "linear", Params: Params{StartFactor: float64Ptr(0.33), TotalIters: intPtr(5)}},
				Steps:          50,
				Variations:     []Params{{StartFactor: float64Ptr(0.1)}, {TotalIters: intPtr(20)}},
			},
			{
				Name:           "ExponentialLR",
				ScheduleConfig: ScheduleConfig{Policy: "exponential", Params: Params{Gamma: float64Ptr(0.9)}},
				Variations:     []Params{{Gamma: float64Ptr(0.95)}},
			},
			{
				Name:           "PolynomialLR",
				ScheduleConfig: ScheduleConfig{Policy: "polynomial", Params: Params{TotalIters: intPtr(50), Power: float64Ptr(1.0)}},
				Steps:          60,
				Variations:     []Params{{Power: float64Ptr(2.0)}, {TotalIters: intPtr(30)}},
			},
			{
				Name:           "CosineAnnealingLR",
				ScheduleConfig: ScheduleConfig{Policy: "cosine-annealing", Params: Params{TMax: intPtr(50), EtaMin: float64Ptr(0)}},
				Variations:     []Params{{TMax: intPtr(25)}, {EtaMin: float64Ptr(0.05)}},
			},
			{
				Name:           "ReduceLROnPlateau",
				ScheduleConfig: ScheduleConfig{Policy: "plateau", Params: Params{Mode: stringPtr(PlateauMin), Factor: float64Ptr(0.1), Patience: intPtr(10)}},
				// flat loss
				DefaultMetric: float64Ptr(1.0),
				Variations:    []Params{{Patience: intPtr(5)}, {Factor: float64Ptr(0.5)}},
			},
			{
				Name: "CyclicLR",
				ScheduleConfig: ScheduleConfig{
					Policy: "cyclic",
					BaseLR: float64Ptr(0.001),
					Params: Params{MaxLR: float64Ptr(0.1), StepSizeUp: intPtr(5), Mode: stringPtr(CyclicTriangular)},
				},
				Variations: []Params{{StepSizeUp: intPtr(20)}, {Mode: stringPtr(CyclicTriangular2)}},
			},
			{
				Name:           "OneCycleLR",
				ScheduleConfig: ScheduleConfig{Policy: "one-cycle", Params: Params{MaxLR: float64Ptr(0.1), TotalSteps: intPtr(100)}},
				Variations:     []Params{{PctStart: float64Ptr(0.5)}},
			},
			{
				Name:           "CosineAnnealingWarmRestarts",
				ScheduleConfig: ScheduleConfig{Policy: "cosine-warm-restarts", Params: Params{T0: intPtr(10), TMult: intPtr(1)}},
				Variations:     []Params{{T0: intPtr(20)}, {TMult: intPtr(2)}},
			},
		},
	}
}
